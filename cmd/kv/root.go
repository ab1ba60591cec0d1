package kv

import (
	"github.com/hydrakv/hydrakv-go/client"
	"github.com/hydrakv/hydrakv-go/cmd/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	kvClient *client.Client

	// KeyValueCommands represents the KV command group
	KeyValueCommands = &cobra.Command{
		Use:               "kv",
		Short:             "Perform key-value operations on a database",
		PersistentPreRunE: setupKVClient,
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return kvClient.Close()
		},
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitClientConfig)

	// Add common connection flags to the KV command
	util.SetupClientFlags(KeyValueCommands)

	// Add KV specific flags
	KeyValueCommands.PersistentFlags().String("db", "default", util.WrapString("Name of the database to operate on"))
	KeyValueCommands.PersistentFlags().String("apikey", "", util.WrapString("Api key for the database, overrides the key from --keys-file"))

	// Add subcommands
	KeyValueCommands.AddCommand(setCmd)
	KeyValueCommands.AddCommand(setNXCmd)
	KeyValueCommands.AddCommand(getCmd)
	KeyValueCommands.AddCommand(incrCmd)
	KeyValueCommands.AddCommand(delCmd)
	KeyValueCommands.AddCommand(perfTestCmd)
}

// setupKVClient builds the connected client for all KV subcommands
func setupKVClient(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	var err error
	kvClient, err = util.NewClient()
	return err
}

// dbName returns the target database from the --db flag.
func dbName() string {
	return viper.GetString("db")
}

// apiKeyArgs turns the --apikey flag into the optional credential argument
// of the client methods.
func apiKeyArgs() []string {
	if key := viper.GetString("apikey"); key != "" {
		return []string{key}
	}
	return nil
}
