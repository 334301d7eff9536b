// Package catalog maps the dataset names of config.json to dataset
// sources and loads them.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mwiater/cosmoview/internal/dataset"
	"github.com/spf13/viper"
)

const (
	configFile = "config.json"
	envPrefix  = "COSMOVIEW"
)

var (
	// ErrUnknownDataset is returned when a name is not in the catalog.
	ErrUnknownDataset = errors.New("unknown dataset")

	// ErrUnsupportedSource is returned for an entry type other than file or http.
	ErrUnsupportedSource = errors.New("unsupported dataset source")
)

// Entry is one named dataset in the config.
type Entry struct {
	Name string `mapstructure:"name" json:"name"`
	Path string `mapstructure:"path" json:"path"`
	// Type is "file" or "http". Empty means http for http(s) URLs, file otherwise.
	Type     string `mapstructure:"type" json:"type,omitempty"`
	MassAxis string `mapstructure:"mass_axis" json:"mass_axis,omitempty"`
	Layout   string `mapstructure:"layout" json:"layout,omitempty"`
}

// SourceType resolves the entry's effective source type.
func (e Entry) SourceType() string {
	if e.Type != "" {
		return strings.ToLower(e.Type)
	}
	if strings.HasPrefix(e.Path, "http://") || strings.HasPrefix(e.Path, "https://") {
		return "http"
	}
	return "file"
}

// Config represents the application's configuration.
type Config struct {
	Datasets       []Entry       `mapstructure:"datasets" json:"datasets"`
	DefaultDataset string        `mapstructure:"default_dataset" json:"default_dataset,omitempty"`
	ShowFiducial   bool          `mapstructure:"show_fiducial" json:"show_fiducial"`
	Debug          bool          `mapstructure:"debug" json:"debug"`
	HTTPTimeout    time.Duration `mapstructure:"http_timeout" json:"http_timeout,omitempty"`
}

// LoadConfig reads path (config.json when empty) with COSMOVIEW_ environment
// overrides for the scalar settings.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		path = configFile
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetDefault("show_fiducial", true)
	v.SetDefault("debug", false)
	v.SetDefault("default_dataset", "")
	v.SetDefault("http_timeout", "0s")

	var cfg Config
	if err := v.ReadInConfig(); err != nil {
		return cfg, fmt.Errorf("could not read %s: %w", path, err)
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("could not parse %s: %w", path, err)
	}
	return cfg, nil
}

// Find returns the entry called name. An empty name selects the default
// dataset, or the first entry when no default is set.
func (c Config) Find(name string) (Entry, error) {
	if name == "" {
		name = c.DefaultDataset
	}
	if name == "" && len(c.Datasets) > 0 {
		return c.Datasets[0], nil
	}
	for _, e := range c.Datasets {
		if e.Name == name {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("%w: %q", ErrUnknownDataset, name)
}

// Names lists the entry names in config order.
func (c Config) Names() []string {
	out := make([]string, len(c.Datasets))
	for i, e := range c.Datasets {
		out[i] = e.Name
	}
	return out
}

// Client returns the HTTP client used for http sources. A zero
// HTTPTimeout means no timeout.
func (c Config) Client() *http.Client {
	return &http.Client{Timeout: c.HTTPTimeout}
}

// Load finds name in the catalog and loads it.
func (c Config) Load(ctx context.Context, name string, opts ...dataset.Option) (*dataset.Dataset, Entry, error) {
	e, err := c.Find(name)
	if err != nil {
		return nil, Entry{}, err
	}
	ds, err := LoadEntry(ctx, e, c.Client(), opts...)
	return ds, e, err
}

// LoadEntry opens the entry's source once and decodes it, applying the
// entry's mass axis and layout declarations.
func LoadEntry(ctx context.Context, e Entry, client *http.Client, opts ...dataset.Option) (*dataset.Dataset, error) {
	src, err := NewSource(e, client)
	if err != nil {
		return nil, err
	}

	var declared []dataset.Option
	axis, err := dataset.ParseMassAxis(e.MassAxis)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", e.Name, err)
	}
	if axis != "" {
		declared = append(declared, dataset.WithMassAxis(axis))
	}
	layout, err := dataset.ParseLayout(e.Layout)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", e.Name, err)
	}
	if layout != "" {
		declared = append(declared, dataset.WithLayout(layout))
	}

	rc, err := src.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", e.Name, err)
	}
	defer rc.Close()

	opts = append(append([]dataset.Option{dataset.WithSource(src.GetName())}, declared...), opts...)
	ds, err := dataset.Load(rc, opts...)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", e.Name, err)
	}
	return ds, nil
}
