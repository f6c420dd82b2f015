package cmd

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	collectionName  string
	collectionIDRaw string
)

var collectionsCmd = &cobra.Command{
	Use:   "collections",
	Short: "Manage entity collections",
}

var collectionsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a collection for entities",
	RunE: func(cmd *cobra.Command, args []string) error {
		auth, err := requestAuth()
		if err != nil {
			return err
		}

		response, err := apiClient().AddCollection(auth, collectionName)
		if err != nil {
			return err
		}

		return printJSON(response)
	},
}

var collectionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all collections",
	RunE: func(cmd *cobra.Command, args []string) error {
		auth, err := requestAuth()
		if err != nil {
			return err
		}

		response, err := apiClient().ListCollections(auth)
		if err != nil {
			return err
		}

		return printJSON(response)
	},
}

var collectionsDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete an entity collection",
	RunE: func(cmd *cobra.Command, args []string) error {
		auth, err := requestAuth()
		if err != nil {
			return err
		}

		collectionID, err := uuid.Parse(collectionIDRaw)
		if err != nil {
			return err
		}

		response, err := apiClient().DeleteCollection(auth, collectionID)
		if err != nil {
			return err
		}

		return printJSON(response)
	},
}

func init() {
	collectionsCreateCmd.Flags().StringVarP(&collectionName, "name", "n", "", "Name of collection")
	_ = collectionsCreateCmd.MarkFlagRequired("name")

	collectionsDeleteCmd.Flags().StringVarP(&collectionIDRaw, "collection-id", "c", "", "Id of collection")
	_ = collectionsDeleteCmd.MarkFlagRequired("collection-id")

	collectionsCmd.AddCommand(collectionsCreateCmd, collectionsListCmd, collectionsDeleteCmd)
	rootCmd.AddCommand(collectionsCmd)
}
