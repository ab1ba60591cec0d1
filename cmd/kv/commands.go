package kv

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	setCmd = &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Sets the value for a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			value := args[1]
			ttl, err := cmd.Flags().GetUint64("ttl")
			if err != nil {
				return err
			}
			if err := kvClient.Set(context.Background(), dbName(), key, value, ttl, apiKeyArgs()...); err != nil {
				return err
			} else {
				fmt.Println("set successfully")
			}
			return nil
		},
	}
	setNXCmd = &cobra.Command{
		Use:   "setnx [key] [value]",
		Short: "Sets the value for a key only if the key is not already set",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			value := args[1]
			ttl, err := cmd.Flags().GetUint64("ttl")
			if err != nil {
				return err
			}
			stored, err := kvClient.SetNX(context.Background(), dbName(), key, value, ttl, apiKeyArgs()...)
			if err != nil {
				return err
			}
			fmt.Printf("key=%s, stored=%t\n", key, stored)
			return nil
		},
	}
	getCmd = &cobra.Command{
		Use:   "get [key]",
		Short: "Reads the value for a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if value, found, err := kvClient.Get(context.Background(), dbName(), key, apiKeyArgs()...); err != nil {
				return err
			} else {
				fmt.Printf("key=%s, found=%v, value=%s\n", key, found, value)
			}
			return nil
		},
	}
	incrCmd = &cobra.Command{
		Use:   "incr [key] [delta]",
		Short: "Increments the numeric value of a key and prints the new value",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			delta := int64(1)
			if len(args) == 2 {
				var err error
				if delta, err = strconv.ParseInt(args[1], 10, 64); err != nil {
					return fmt.Errorf("delta must be a number: %w", err)
				}
			}
			value, err := kvClient.Incr(context.Background(), dbName(), key, delta, apiKeyArgs()...)
			if err != nil {
				return err
			}
			fmt.Printf("key=%s, value=%d\n", key, value)
			return nil
		},
	}
	delCmd = &cobra.Command{
		Use:   "del [key]",
		Short: "Deletes a key value pair",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if err := kvClient.Delete(context.Background(), dbName(), key, apiKeyArgs()...); err != nil {
				return err
			} else {
				fmt.Println("delete successfully")
			}
			return nil
		},
	}
)

func init() {
	setCmd.Flags().Uint64("ttl", 0, "Lifetime of the key in seconds (0 = no expiration)")
	setNXCmd.Flags().Uint64("ttl", 0, "Lifetime of the key in seconds (0 = no expiration)")
}
