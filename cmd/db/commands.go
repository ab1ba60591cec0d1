package db

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	createCmd = &cobra.Command{
		Use:   "create [name]",
		Short: "Creates a database and prints its api key, if the server issues one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if err := dbClient.CreateDB(context.Background(), name); err != nil {
				return err
			}
			if key := dbClient.APIKeyFor(name); key != "" {
				fmt.Printf("db=%s created, apikey=%s\n", name, key)
			} else {
				fmt.Printf("db=%s created\n", name)
			}
			return nil
		},
	}
	deleteCmd = &cobra.Command{
		Use:   "delete [name]",
		Short: "Deletes a database and all its keys",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			apiKey, err := cmd.Flags().GetString("apikey")
			if err != nil {
				return err
			}
			var explicit []string
			if apiKey != "" {
				explicit = []string{apiKey}
			}
			if err := dbClient.DeleteDB(context.Background(), name, explicit...); err != nil {
				return err
			}
			fmt.Println("delete successfully")
			return nil
		},
	}
	renewKeyCmd = &cobra.Command{
		Use:   "renew-key [name]",
		Short: "Lets the server rotate the api key of a database and prints the new key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			key, err := dbClient.RenewAPIKey(context.Background(), name)
			if err != nil {
				return err
			}
			fmt.Printf("db=%s, apikey=%s\n", name, key)
			return nil
		},
	}
	exportKeysCmd = &cobra.Command{
		Use:   "export-keys [path]",
		Short: "Writes the known api keys as JSON, readable again via --keys-file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if err := dbClient.ExportAPIKeys(path); err != nil {
				return err
			}
			fmt.Printf("exported %d keys to %s\n", len(dbClient.APIKeys()), path)
			return nil
		},
	}
)

func init() {
	deleteCmd.Flags().String("apikey", "", "Api key for the database, overrides the key from --keys-file")
}
