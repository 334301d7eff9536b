package catalog

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mwiater/cosmoview/internal/dataset"
)

var (
	nameStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	entryStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	defaultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// ListDatasets prints every catalog entry, marking the default one.
func ListDatasets(w io.Writer, cfg Config) {
	if len(cfg.Datasets) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No datasets configured."))
		return
	}
	def, _ := cfg.Find("")
	for _, e := range cfg.Datasets {
		line := fmt.Sprintf("- %s", e.Name)
		if e.Name == def.Name {
			fmt.Fprintln(w, defaultStyle.Render(line+" (DEFAULT)"))
		} else {
			fmt.Fprintln(w, entryStyle.Render(line))
		}
		axis := e.MassAxis
		if axis == "" {
			axis = "from document"
		}
		layout := e.Layout
		if layout == "" {
			layout = "auto"
		}
		fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("    %s %s  mass axis: %s  layout: %s", e.SourceType(), e.Path, axis, layout)))
	}
}

// ListParameters prints the parameter descriptors of a loaded dataset.
func ListParameters(w io.Writer, name string, ds *dataset.Dataset) {
	fmt.Fprintln(w, nameStyle.Render(fmt.Sprintf("%s:", name)))
	if d := ds.Description(); d != "" {
		fmt.Fprintln(w, mutedStyle.Render("  "+d))
	}
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("  layout: %s  arity: %d  mass axis: %s", ds.Layout(), ds.Arity(), ds.MassAxis())))
	for i, p := range ds.Parameters() {
		fmt.Fprintln(w, entryStyle.Render(fmt.Sprintf("  [%d] %s", i, p.Name)))
		if p.RangeString != "" {
			fmt.Fprintln(w, "      "+p.RangeString)
		}
		labels := make([]string, p.Count())
		for j := range labels {
			labels[j] = p.Label(j)
		}
		fmt.Fprintln(w, "      values: "+strings.Join(labels, ", "))
	}
}
