// Package report formats a viewer frame or a parameter scan for output.
package report

import (
	"fmt"
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/k0kubun/pp"
	"github.com/mwiater/cosmoview/internal/query"
	"github.com/mwiater/cosmoview/internal/selection"
	"github.com/mwiater/cosmoview/internal/stats"
	"github.com/mwiater/cosmoview/internal/viewer"
	"gopkg.in/yaml.v3"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Format is an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts text, json or yaml ("yml" is an alias).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown format %q (want text, json or yaml)", s)
}

// CurveInfo describes one plotted curve without its samples.
type CurveInfo struct {
	Observable string     `json:"observable" yaml:"observable"`
	Role       query.Role `json:"role" yaml:"role"`
	Label      string     `json:"label" yaml:"label"`
	Key        string     `json:"key" yaml:"key"`
	Points     int        `json:"points" yaml:"points"`
}

// Document is the serialisable form of a frame.
type Document struct {
	Dataset   string              `json:"dataset,omitempty" yaml:"dataset,omitempty"`
	Label     string              `json:"label" yaml:"label"`
	Parameter string              `json:"parameter" yaml:"parameter"`
	Key       string              `json:"key" yaml:"key"`
	Selection selection.Selection `json:"selection" yaml:"selection"`
	Options   query.Options       `json:"options" yaml:"options"`
	Curves    []CurveInfo         `json:"curves" yaml:"curves"`

	Xi        *stats.XiStatistics   `json:"xi,omitempty" yaml:"xi,omitempty"`
	XiError   string                `json:"xi_error,omitempty" yaml:"xi_error,omitempty"`
	Mass      *stats.MassStatistics `json:"mass,omitempty" yaml:"mass,omitempty"`
	MassError string                `json:"mass_error,omitempty" yaml:"mass_error,omitempty"`
	Omitted   []string              `json:"omitted,omitempty" yaml:"omitted,omitempty"`
}

// NewDocument flattens a frame.
func NewDocument(f viewer.Frame) Document {
	d := Document{
		Dataset:   f.Dataset,
		Label:     f.Label,
		Parameter: f.Parameter.Name,
		Key:       f.Key.String(),
		Selection: f.Selection,
		Options:   f.Options,
		Xi:        f.Xi,
		Mass:      f.Mass,
	}
	for _, r := range []query.Resolved{f.Curves.Xi, f.Curves.Nm} {
		for _, c := range r.Curves {
			d.Curves = append(d.Curves, CurveInfo{
				Observable: r.Observable.String(),
				Role:       c.Role,
				Label:      c.Label,
				Key:        c.Key.String(),
				Points:     len(c.Y),
			})
		}
	}
	if f.XiErr != nil {
		d.XiError = f.XiErr.Error()
	}
	if f.MassErr != nil {
		d.MassError = f.MassErr.Error()
	}
	for _, err := range f.Omitted() {
		d.Omitted = append(d.Omitted, err.Error())
	}
	return d
}

// Write renders a frame in the requested format.
func Write(w io.Writer, f viewer.Frame, format Format) error {
	switch format {
	case FormatJSON:
		return encodeJSON(w, NewDocument(f))
	case FormatYAML:
		return encodeYAML(w, NewDocument(f))
	case FormatText, "":
		return writeText(w, f)
	}
	return fmt.Errorf("unknown format %q", format)
}

// Dump pretty prints any value for debugging.
func Dump(w io.Writer, v any) error {
	_, err := pp.Fprintln(w, v)
	return err
}

func encodeJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func encodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("could not encode YAML: %w", err)
	}
	return enc.Close()
}
