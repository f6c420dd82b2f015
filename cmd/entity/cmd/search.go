package cmd

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/moonstream-to/entity/pkg/entity/client"
)

var (
	searchCollectionIDRaw string
	searchRequiredFields  []string
	searchSecondaryFields []string
	searchFilters         []string
	searchLimit           int
	searchOffset          int
	searchContent         bool
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search entities in a collection",
	RunE: func(cmd *cobra.Command, args []string) error {
		auth, err := requestAuth()
		if err != nil {
			return err
		}

		collectionID, err := uuid.Parse(searchCollectionIDRaw)
		if err != nil {
			return err
		}

		response, err := apiClient().Search(auth, collectionID, client.SearchOpts{
			RequiredFields:  searchRequiredFields,
			SecondaryFields: searchSecondaryFields,
			Filters:         searchFilters,
			Limit:           searchLimit,
			Offset:          searchOffset,
			Content:         searchContent,
		})
		if err != nil {
			return err
		}

		return printJSON(response)
	},
}

func init() {
	searchCmd.Flags().StringVarP(&searchCollectionIDRaw, "collection-id", "c", "", "Id of collection")
	searchCmd.Flags().StringArrayVarP(&searchRequiredFields, "required-field", "r", nil, "Required field clause, may be set multiple times")
	searchCmd.Flags().StringArrayVarP(&searchSecondaryFields, "secondary-field", "s", nil, "Secondary field clause, may be set multiple times")
	searchCmd.Flags().StringArrayVar(&searchFilters, "filters", nil, "Search filter, may be set multiple times")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 10, "Maximum number of results")
	searchCmd.Flags().IntVar(&searchOffset, "offset", 0, "Result offset")
	searchCmd.Flags().BoolVar(&searchContent, "content", true, "Include entity secondary fields in results")
	_ = searchCmd.MarkFlagRequired("collection-id")

	rootCmd.AddCommand(searchCmd)
}
