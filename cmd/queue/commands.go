package queue

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	createCmd = &cobra.Command{
		Use:   "create [name]",
		Short: "Creates a capacity-bounded queue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			limit, err := cmd.Flags().GetInt("limit")
			if err != nil {
				return err
			}
			if err := queueClient.QueueCreate(context.Background(), name, limit); err != nil {
				return err
			}
			fmt.Printf("queue=%s created, limit=%d\n", name, limit)
			return nil
		},
	}
	pushCmd = &cobra.Command{
		Use:   "push [name] [value]",
		Short: "Appends a value to a queue",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := queueClient.QueuePush(context.Background(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Println("push successfully")
			return nil
		},
	}
	fpopCmd = &cobra.Command{
		Use:   "fpop [name]",
		Short: "Removes and prints the oldest value of a queue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			value, found, err := queueClient.FIFOPop(context.Background(), name)
			if err != nil {
				return err
			}
			fmt.Printf("queue=%s, found=%v, value=%s\n", name, found, value)
			return nil
		},
	}
	lpopCmd = &cobra.Command{
		Use:   "lpop [name]",
		Short: "Removes and prints the newest value of a queue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			value, found, err := queueClient.LIFOPop(context.Background(), name)
			if err != nil {
				return err
			}
			fmt.Printf("queue=%s, found=%v, value=%s\n", name, found, value)
			return nil
		},
	}
	deleteCmd = &cobra.Command{
		Use:   "delete [name]",
		Short: "Removes a queue and its values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := queueClient.QueueDelete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Println("delete successfully")
			return nil
		},
	}
)

func init() {
	createCmd.Flags().Int("limit", 100, "Maximum number of values the queue holds")
}
