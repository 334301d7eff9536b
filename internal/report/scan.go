package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/mwiater/cosmoview/scan"
)

// WriteScan renders a parameter scan in the requested format.
func WriteScan(w io.Writer, rep scan.Report, format Format) error {
	switch format {
	case FormatJSON:
		return encodeJSON(w, rep)
	case FormatYAML:
		return encodeYAML(w, rep)
	case FormatText, "":
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Scan of %s\n\n", rep.Parameter)
	fmt.Fprintln(tw, "VALUE\tMAX ξ\tPEAK r\tZERO\tINTEGRAL\tMAX n(M)\tHIGH-MASS\t")
	for _, r := range rep.Rows {
		if r.Error != "" {
			fmt.Fprintf(tw, "%s\t%s\t\t\t\t\t\t\n", r.Label, r.Error)
			continue
		}
		xi, mass := XiLines(r.Xi, nil), MassLines(r.Mass, nil)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			r.Label, cell(xi, 0), cell(xi, 1), cell(xi, 2), cell(xi, 3), cell(mass, 0), cell(mass, 3))
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "METRIC\tN\tMIN\tMAX\tMEAN\tSTD\tP50\tP95\t")
	for _, s := range rep.Summaries {
		fmt.Fprintf(tw, "%s\t%d\t%.4g\t%.4g\t%.4g\t%.4g\t%.4g\t%.4g\t\n",
			s.Metric, s.N, s.Min, s.Max, s.Mean, s.Std, s.P50, s.P95)
	}
	return tw.Flush()
}

func cell(lines []Line, i int) string {
	if i < len(lines) {
		return lines[i].Value
	}
	return "-"
}
