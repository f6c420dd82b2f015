package cmd

import (
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Get the entity API server version",
	RunE: func(cmd *cobra.Command, args []string) error {
		response, err := apiClient().Version()
		if err != nil {
			return err
		}

		return printJSON(response)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
