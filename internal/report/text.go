package report

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/mwiater/cosmoview/internal/stats"
	"github.com/mwiater/cosmoview/internal/viewer"
)

// Line is one labelled statistic.
type Line struct {
	Label string
	Value string
}

// XiLines formats ξ(r) statistics the way the viewer displays them.
func XiLines(s *stats.XiStatistics, err error) []Line {
	if s == nil {
		return []Line{{"ξ(r)", unavailable(err)}}
	}
	zero := "N/A"
	if s.HasZeroCrossing {
		zero = fmt.Sprintf("%.2f Mpc/h", s.ZeroCrossing)
	}
	corr := "N/A"
	if s.HasCorrelationLength {
		corr = fmt.Sprintf("%.2f Mpc/h", s.CorrelationLength)
	}
	return []Line{
		{"Max ξ(r)", fmt.Sprintf("%.4f", s.Max)},
		{"Peak r", fmt.Sprintf("%.2f Mpc/h", s.PeakR)},
		{"Zero crossing", zero},
		{"Integral", fmt.Sprintf("%.3f", s.Integral)},
		{"Min ξ(r)", fmt.Sprintf("%.4f", s.Min)},
		{"Mean ξ(r)", fmt.Sprintf("%.4f", s.Mean)},
		{"Correlation length", corr},
		{"Clustering", string(s.Strength)},
	}
}

// MassLines formats n(M) statistics the way the viewer displays them. The
// peak mass is shown in M_sun whatever the axis convention.
func MassLines(s *stats.MassStatistics, err error) []Line {
	if s == nil {
		return []Line{{"n(M)", unavailable(err)}}
	}
	return []Line{
		{"Max n(M)", fmt.Sprintf("%.2e", s.Max)},
		{"Peak M", fmt.Sprintf("%.1e", math.Pow(10, s.PeakLog10Mass))},
		{"Total density", fmt.Sprintf("%.2e", s.TotalIntegral)},
		{"High-mass density", fmt.Sprintf("%.2e", s.HighMassIntegral)},
	}
}

func unavailable(err error) string {
	if err == nil {
		return "unavailable"
	}
	return "unavailable: " + err.Error()
}

func writeText(w io.Writer, f viewer.Frame) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if f.Dataset != "" {
		fmt.Fprintf(tw, "Dataset:\t%s\n", f.Dataset)
	}
	fmt.Fprintf(tw, "Selection:\t%s\n", f.Label)
	if f.Parameter.RangeString != "" {
		fmt.Fprintf(tw, "Range:\t%s\n", f.Parameter.RangeString)
	}
	fmt.Fprintf(tw, "Key:\t%s\n", f.Key)

	var labels []string
	for _, c := range f.Curves.Xi.Curves {
		labels = append(labels, c.Label)
	}
	fmt.Fprintf(tw, "Curves:\t%s\n", strings.Join(labels, "; "))
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "Clustering ξ(r)")
	for _, l := range XiLines(f.Xi, f.XiErr) {
		fmt.Fprintf(tw, "  %s:\t%s\n", l.Label, l.Value)
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "Mass function n(M)")
	for _, l := range MassLines(f.Mass, f.MassErr) {
		fmt.Fprintf(tw, "  %s:\t%s\n", l.Label, l.Value)
	}
	for _, err := range f.Omitted() {
		fmt.Fprintf(tw, "omitted:\t%v\n", err)
	}
	return tw.Flush()
}
