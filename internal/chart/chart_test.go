package chart

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"battery_cycling/internal/simulation"
)

func discharge() *simulation.Result {
	return &simulation.Result{
		XVariable: "Time [s]",
		YVariable: "Voltage [V]",
		XData:     []float64{0, 600, 1200, 1800, 2400},
		YData:     []float64{4.2, 4.0, 3.8, 3.5, 3.0},
	}
}

func TestASCII(t *testing.T) {
	out, err := ASCII(discharge(), 5, 40)
	if err != nil {
		t.Fatalf("ASCII: %v", err)
	}
	if !strings.Contains(out, "Voltage [V] vs Time [s] [0 .. 2400]") {
		t.Fatalf("caption missing:\n%s", out)
	}
	if lines := strings.Count(out, "\n"); lines < 5 {
		t.Fatalf("expected at least 5 rows, got %d:\n%s", lines, out)
	}
}

func TestASCII_Empty(t *testing.T) {
	if _, err := ASCII(&simulation.Result{}, 0, 0); !errors.Is(err, ErrEmptySeries) {
		t.Fatalf("expected ErrEmptySeries, got %v", err)
	}
	if _, err := ASCII(nil, 0, 0); !errors.Is(err, ErrEmptySeries) {
		t.Fatalf("expected ErrEmptySeries for nil, got %v", err)
	}
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, discharge()); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG\r\n\x1a\n")) {
		t.Fatalf("output is not a PNG")
	}
}

func TestWritePNG_Errors(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, &simulation.Result{}); !errors.Is(err, ErrEmptySeries) {
		t.Fatalf("expected ErrEmptySeries, got %v", err)
	}
	bad := discharge()
	bad.YData = bad.YData[:2]
	if err := WritePNG(&buf, bad); err == nil {
		t.Fatalf("expected length mismatch error")
	}
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voltage.png")
	if err := SavePNG(path, discharge()); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		t.Fatalf("png not written: %v", err)
	}
}

func TestSavePNG_FailureLeavesNoFile(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.png")
	if err := SavePNG(empty, &simulation.Result{}); !errors.Is(err, ErrEmptySeries) {
		t.Fatalf("expected ErrEmptySeries, got %v", err)
	}
	if _, err := os.Stat(empty); !os.IsNotExist(err) {
		t.Fatalf("empty chart left a file behind: %v", err)
	}

	bad := discharge()
	bad.XData = bad.XData[:1]
	mismatch := filepath.Join(dir, "mismatch.png")
	if err := SavePNG(mismatch, bad); err == nil {
		t.Fatalf("expected length mismatch error")
	}
	if _, err := os.Stat(mismatch); !os.IsNotExist(err) {
		t.Fatalf("failed chart left a file behind: %v", err)
	}
}
