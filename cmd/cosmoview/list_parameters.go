// cmd/cosmoview/list_parameters.go
package cosmoview

import (
	"github.com/mwiater/cosmoview/catalog"
	"github.com/spf13/cobra"
)

// listParametersCmd implements 'list parameters', which loads a dataset and
// prints its parameter descriptors.
var listParametersCmd = &cobra.Command{
	Use:   "parameters",
	Short: "List the parameters of a dataset",
	Long:  `The 'parameters' subcommand loads the selected dataset and lists every parameter with its values, marking the default.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, entry, ds, _, err := openDataset(cmd)
		if err != nil {
			return err
		}
		catalog.ListParameters(cmd.OutOrStdout(), entry.Name, ds)
		return nil
	},
}

func init() {
	listCmd.AddCommand(listParametersCmd)
}
