package db

import (
	"github.com/hydrakv/hydrakv-go/client"
	"github.com/hydrakv/hydrakv-go/cmd/util"
	"github.com/spf13/cobra"
)

var (
	dbClient *client.Client

	// DatabaseCommands represents the database lifecycle command group
	DatabaseCommands = &cobra.Command{
		Use:               "db",
		Short:             "Manage databases and their api keys",
		PersistentPreRunE: setupDBClient,
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return dbClient.Close()
		},
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitClientConfig)

	// Add common connection flags to the db command
	util.SetupClientFlags(DatabaseCommands)

	// Add subcommands
	DatabaseCommands.AddCommand(createCmd)
	DatabaseCommands.AddCommand(deleteCmd)
	DatabaseCommands.AddCommand(renewKeyCmd)
	DatabaseCommands.AddCommand(exportKeysCmd)
}

// setupDBClient builds the connected client for all db subcommands
func setupDBClient(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	var err error
	dbClient, err = util.NewClient()
	return err
}
