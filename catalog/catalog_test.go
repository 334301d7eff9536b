package catalog

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mwiater/cosmoview/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = "../internal/dataset/testdata/scan.json"

var quiet = dataset.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig_SuccessAndMissing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)

	path := writeConfig(t, `{
	  "datasets": [
	    {"name": "local", "path": "data.json", "mass_axis": "linear"},
	    {"name": "remote", "path": "https://example.org/d.json", "layout": "grid"}
	  ],
	  "default_dataset": "remote",
	  "http_timeout": "3s"
	}`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Len(t, cfg.Datasets, 2)
	assert.Equal(t, "linear", cfg.Datasets[0].MassAxis)
	assert.Equal(t, "grid", cfg.Datasets[1].Layout)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.True(t, cfg.ShowFiducial, "show_fiducial defaults to true")
	assert.Equal(t, []string{"local", "remote"}, cfg.Names())
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	path := writeConfig(t, `{"datasets": [], "debug": false}`)
	t.Setenv("COSMOVIEW_DEBUG", "true")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.Debug)
}

func TestFind(t *testing.T) {
	cfg := Config{Datasets: []Entry{{Name: "a"}, {Name: "b"}}}

	e, err := cfg.Find("")
	require.NoError(t, err)
	assert.Equal(t, "a", e.Name)

	cfg.DefaultDataset = "b"
	e, err = cfg.Find("")
	require.NoError(t, err)
	assert.Equal(t, "b", e.Name)

	_, err = cfg.Find("zzz")
	assert.ErrorIs(t, err, ErrUnknownDataset)
}

func TestEntrySourceType(t *testing.T) {
	assert.Equal(t, "file", Entry{Path: "x.json"}.SourceType())
	assert.Equal(t, "http", Entry{Path: "https://h/x.json"}.SourceType())
	assert.Equal(t, "s3", Entry{Path: "x", Type: "S3"}.SourceType())

	_, err := NewSource(Entry{Name: "x", Type: "s3"}, nil)
	assert.ErrorIs(t, err, ErrUnsupportedSource)
}

func TestLoadEntry_File(t *testing.T) {
	ds, err := LoadEntry(context.Background(), Entry{Name: "scan", Path: fixture}, nil, quiet)
	require.NoError(t, err)
	assert.Equal(t, dataset.MassLinear, ds.MassAxis())
}

func TestLoadEntry_DeclaredAxisOverridesDocument(t *testing.T) {
	ds, err := LoadEntry(context.Background(), Entry{Name: "scan", Path: fixture, MassAxis: "log10"}, nil, quiet)
	require.NoError(t, err)
	assert.Equal(t, dataset.MassLog10, ds.MassAxis())

	_, err = LoadEntry(context.Background(), Entry{Name: "scan", Path: fixture, MassAxis: "ln"}, nil, quiet)
	assert.Error(t, err)
}

func TestLoadEntry_HTTPSingleRequest(t *testing.T) {
	body, err := os.ReadFile(fixture)
	require.NoError(t, err)

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	cfg := Config{Datasets: []Entry{{Name: "remote", Path: srv.URL + "/data.json"}}}
	ds, e, err := cfg.Load(context.Background(), "remote", quiet)
	require.NoError(t, err)
	assert.Equal(t, "remote", e.Name)
	assert.Equal(t, 5, ds.CurveCount())
	assert.Equal(t, int32(1), hits.Load())
}

func TestLoadEntry_HTTPFailureIsNotRetried(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := LoadEntry(context.Background(), Entry{Name: "remote", Path: srv.URL}, srv.Client(), quiet)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.Equal(t, int32(1), hits.Load())
}

func TestLoadEntry_InvalidDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"r_values": [1]}`))
	}))
	defer srv.Close()

	_, err := LoadEntry(context.Background(), Entry{Name: "bad", Path: srv.URL}, nil, quiet)
	assert.ErrorIs(t, err, dataset.ErrDatasetInvalid)
}

func TestListDatasets(t *testing.T) {
	var buf bytes.Buffer
	ListDatasets(&buf, Config{
		Datasets: []Entry{
			{Name: "one", Path: "one.json", MassAxis: "linear"},
			{Name: "two", Path: "http://h/two.json"},
		},
		DefaultDataset: "two",
	})
	out := buf.String()
	assert.Contains(t, out, "- one")
	assert.Contains(t, out, "- two (DEFAULT)")
	assert.Contains(t, out, "mass axis: linear")
	assert.Contains(t, out, "http http://h/two.json")

	buf.Reset()
	ListDatasets(&buf, Config{})
	assert.Contains(t, buf.String(), "No datasets configured.")
}

func TestListParameters(t *testing.T) {
	ds, err := dataset.LoadFile(fixture, quiet)
	require.NoError(t, err)

	var buf bytes.Buffer
	ListParameters(&buf, "scan", ds)
	out := buf.String()
	assert.Contains(t, out, "scan:")
	assert.Contains(t, out, "[1] Omega_m")
	assert.Contains(t, out, "Omega_m: 0.1 - 0.5")
	assert.Contains(t, out, "values: 0.1, 0.3, 0.5")
}
