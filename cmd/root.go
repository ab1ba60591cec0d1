package cmd

import (
	"fmt"
	"os"

	"github.com/hydrakv/hydrakv-go/cmd/db"
	"github.com/hydrakv/hydrakv-go/cmd/kv"
	"github.com/hydrakv/hydrakv-go/cmd/queue"
	"github.com/hydrakv/hydrakv-go/cmd/util"
	"github.com/spf13/cobra"
)

const (
	Version = "0.3.2"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "hydrakv",
		Short: "client for the HydraKV key-value server",
		Long: fmt.Sprintf(`hydrakv (v%s)

A client for the HydraKV key-value server, speaking either its
JSON/HTTP API or its binary RPC API.`, Version),
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of the hydrakv client",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("hydrakv v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(kv.KeyValueCommands)
	RootCmd.AddCommand(db.DatabaseCommands)
	RootCmd.AddCommand(queue.QueueCommands)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "transport"
	RootCmd.PersistentFlags().String(key, "http", util.WrapString("transport to use (http, grpc)"))
	key = "codec"
	RootCmd.PersistentFlags().String(key, "json", util.WrapString("wire codec for the rpc transport (json, gob)"))
	key = "log-level"
	RootCmd.PersistentFlags().String(key, "warn", util.WrapString("log level (debug, info, warn, error)"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
