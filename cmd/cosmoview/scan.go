// cmd/cosmoview/scan.go
package cosmoview

import (
	"github.com/mwiater/cosmoview/internal/report"
	"github.com/spf13/cobra"
)

var (
	scanSel    selectionFlags
	scanFormat string
)

// scanCmd implements 'scan', which sweeps one parameter through all of its values.
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Sweep one parameter and summarise the statistics",
	Long:  `The 'scan' command steps a parameter through every value, computes the statistics of each curve and summarises them (min, max, mean, std, p50, p95).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := report.ParseFormat(scanFormat)
		if err != nil {
			return err
		}
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		if err := scanSel.apply(cmd, s); err != nil {
			return err
		}
		rep, err := s.Scan(s.Selection().Parameter)
		if err != nil {
			return err
		}
		return report.WriteScan(cmd.OutOrStdout(), rep, format)
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanSel.register(scanCmd)
	scanCmd.Flags().StringVarP(&scanFormat, "format", "f", "text", "output format: text, json or yaml")
}
