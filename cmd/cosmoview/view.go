// cmd/cosmoview/view.go
package cosmoview

import (
	"github.com/mwiater/cosmoview/cli"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var startGUI = cli.StartGUI

// viewCmd represents the 'view' command.
var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Start the interactive explorer",
	Long:  `The 'view' command starts the terminal explorer: pick a dataset, then move through its parameters and watch the curves and statistics update.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return startGUI(viper.GetString("config"))
	},
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
