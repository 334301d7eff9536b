package cosmoview

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mwiater/cosmoview/catalog"
	"github.com/mwiater/cosmoview/internal/selection"
)

func TestStats_DefaultSelectionText(t *testing.T) {
	out, err := run(t, "stats", "-c", writeConfig(t))
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	for _, want := range []string{"Omega_m = 0.3", "Clustering ξ(r)", "Mass function n(M)", "Fiducial"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output, got:\n%s", want, out)
		}
	}
}

func TestStats_JSONWithValueAndHideRange(t *testing.T) {
	out, err := run(t, "stats", "-c", writeConfig(t), "--value", "2", "--hide-range", "--fiducial=false", "--format", "json")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	var doc struct {
		Label  string `json:"label"`
		Curves []struct {
			Observable string `json:"observable"`
			Role       string `json:"role"`
		} `json:"curves"`
		Xi struct {
			Max             float64 `json:"max"`
			HasZeroCrossing bool    `json:"has_zero_crossing"`
		} `json:"xi"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if doc.Label != "Omega_m = 0.5" {
		t.Fatalf("unexpected label %q", doc.Label)
	}
	if doc.Xi.Max != 3 || doc.Xi.HasZeroCrossing {
		t.Fatalf("unexpected xi statistics %+v", doc.Xi)
	}
	// Only the primary curve of each observable remains.
	if len(doc.Curves) != 2 {
		t.Fatalf("expected 2 curves, got %+v", doc.Curves)
	}
}

func TestStats_OutOfRangeValueFails(t *testing.T) {
	_, err := run(t, "stats", "-c", writeConfig(t), "--value", "7")
	if !errors.Is(err, selection.ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestStats_UnknownDataset(t *testing.T) {
	_, err := run(t, "stats", "-c", writeConfig(t), "-d", "nothere")
	if !errors.Is(err, catalog.ErrUnknownDataset) {
		t.Fatalf("expected ErrUnknownDataset, got %v", err)
	}
}

func TestStats_BadFormat(t *testing.T) {
	if _, err := run(t, "stats", "-c", writeConfig(t), "--format", "xml"); err == nil {
		t.Fatal("expected an error for an unknown format")
	}
}

func TestScan_YAML(t *testing.T) {
	out, err := run(t, "scan", "-c", writeConfig(t), "--param", "1", "--format", "yaml")
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if !strings.Contains(out, "xi_max") {
		t.Fatalf("expected metric summaries in output, got:\n%s", out)
	}
}

func TestExport_WritesPNGs(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, "export", "-c", writeConfig(t), "--out", dir, "--width", "400", "--height", "300")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	for _, name := range []string{"xi.png", "nm.png"} {
		b, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("missing %s: %v", name, err)
		}
		if !bytes.HasPrefix(b, []byte("\x89PNG")) {
			t.Fatalf("%s is not a PNG", name)
		}
		if !strings.Contains(out, name) {
			t.Fatalf("expected %s in output, got:\n%s", name, out)
		}
	}
}

func TestValidate(t *testing.T) {
	out, err := run(t, "validate", "-c", writeConfig(t))
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	for _, want := range []string{"fixture", "Parameters:  3", "scan", "OK"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output, got:\n%s", want, out)
		}
	}
}

func TestValidate_MissingFile(t *testing.T) {
	if _, err := run(t, "validate", "-c", writeConfig(t), "-d", "missing"); err == nil {
		t.Fatal("expected an error for a missing dataset file")
	}
}

func TestListDatasets(t *testing.T) {
	out, err := run(t, "list", "datasets", "-c", writeConfig(t))
	if err != nil {
		t.Fatalf("list datasets: %v", err)
	}
	if !strings.Contains(out, "fixture (DEFAULT)") || !strings.Contains(out, "missing") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestListParameters(t *testing.T) {
	out, err := run(t, "list", "parameters", "-c", writeConfig(t))
	if err != nil {
		t.Fatalf("list parameters: %v", err)
	}
	if !strings.Contains(out, "Omega_m") || !strings.Contains(out, "sigma_8") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}
