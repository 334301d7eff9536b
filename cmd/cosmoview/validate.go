// cmd/cosmoview/validate.go
package cosmoview

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/mwiater/cosmoview/internal/dataset"
	"github.com/spf13/cobra"
)

// validateCmd implements 'validate', which loads a dataset and reports its shape.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load a dataset and report its shape",
	Long:  `The 'validate' command loads the selected dataset, runs every structural check and prints its size, layout, axes and curve counts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, entry, ds, _, err := openDataset(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Dataset:     %s (%s %s)\n", entry.Name, entry.SourceType(), entry.Path)
		if entry.SourceType() == "file" {
			if fi, err := os.Stat(entry.Path); err == nil {
				fmt.Fprintf(out, "Size:        %s\n", humanize.Bytes(uint64(fi.Size())))
			}
		}
		fmt.Fprintf(out, "Layout:      %s (arity %d)\n", ds.Layout(), ds.Arity())
		fmt.Fprintf(out, "Mass axis:   %s\n", ds.MassAxis())
		fmt.Fprintf(out, "Parameters:  %d\n", ds.NumParameters())
		fmt.Fprintf(out, "r samples:   %s\n", humanize.Comma(int64(len(ds.Axis(dataset.Clustering)))))
		fmt.Fprintf(out, "M samples:   %s\n", humanize.Comma(int64(len(ds.Axis(dataset.MassFunction)))))
		fmt.Fprintf(out, "ξ curves:    %s\n", humanize.Comma(int64(ds.CurveCount())))
		fmt.Fprintf(out, "Default key: %s\n", ds.DefaultKey())
		fmt.Fprintln(out, "OK")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
