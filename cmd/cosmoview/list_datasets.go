// cmd/cosmoview/list_datasets.go
package cosmoview

import (
	"github.com/mwiater/cosmoview/catalog"
	"github.com/spf13/cobra"
)

// listDatasetsCmd implements 'list datasets', which prints the catalog.
var listDatasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "List the datasets in the config",
	Long:  `The 'datasets' subcommand lists every dataset declared in the config file, its source and its declared mass axis and layout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		catalog.ListDatasets(cmd.OutOrStdout(), cfg)
		return nil
	},
}

func init() {
	listCmd.AddCommand(listDatasetsCmd)
}
