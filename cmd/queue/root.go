package queue

import (
	"github.com/hydrakv/hydrakv-go/client"
	"github.com/hydrakv/hydrakv-go/cmd/util"
	"github.com/spf13/cobra"
)

var (
	queueClient *client.Client

	// QueueCommands represents the FiFoLiFo queue command group
	QueueCommands = &cobra.Command{
		Use:               "queue",
		Short:             "Perform FiFoLiFo queue operations",
		PersistentPreRunE: setupQueueClient,
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return queueClient.Close()
		},
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitClientConfig)

	// Add common connection flags to the queue command
	util.SetupClientFlags(QueueCommands)

	// Add subcommands
	QueueCommands.AddCommand(createCmd)
	QueueCommands.AddCommand(pushCmd)
	QueueCommands.AddCommand(fpopCmd)
	QueueCommands.AddCommand(lpopCmd)
	QueueCommands.AddCommand(deleteCmd)
}

// setupQueueClient builds the connected client for all queue subcommands
func setupQueueClient(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	var err error
	queueClient, err = util.NewClient()
	return err
}
