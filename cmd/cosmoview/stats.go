// cmd/cosmoview/stats.go
package cosmoview

import (
	"github.com/mwiater/cosmoview/internal/report"
	"github.com/spf13/cobra"
)

var (
	statsSel    selectionFlags
	statsFormat string
	statsDump   bool
)

// statsCmd implements 'stats', which prints the statistics of one selection.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the statistics of one parameter selection",
	Long:  `The 'stats' command resolves the curves of a parameter selection and prints the ξ(r) and n(M) statistics as text, JSON or YAML.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := report.ParseFormat(statsFormat)
		if err != nil {
			return err
		}
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		if err := statsSel.apply(cmd, s); err != nil {
			return err
		}
		frame := s.Frame()
		if statsDump {
			return report.Dump(cmd.OutOrStdout(), report.NewDocument(frame))
		}
		return report.Write(cmd.OutOrStdout(), frame, format)
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsSel.register(statsCmd)
	statsCmd.Flags().StringVarP(&statsFormat, "format", "f", "text", "output format: text, json or yaml")
	statsCmd.Flags().BoolVar(&statsDump, "dump", false, "pretty print the full result for debugging")
}
