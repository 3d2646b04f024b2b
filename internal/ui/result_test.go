package ui

import (
	"errors"
	"strings"
	"testing"
)

func TestResultRenderSuccess(t *testing.T) {
	result := NewSuccessResult("Updated database.host in app", map[string]string{
		"Path":  "/etc/app.json",
		"Value": "db.internal",
	})
	result.SetWidth(80)

	out := result.Render()
	if !strings.Contains(out, "SUCCESS") {
		t.Errorf("missing SUCCESS banner:\n%s", out)
	}
	if !strings.Contains(out, "Updated database.host in app") {
		t.Errorf("missing title:\n%s", out)
	}
	if !strings.Contains(out, SuccessMarker) {
		t.Errorf("missing success marker:\n%s", out)
	}
	// Details render in sorted key order for reproducible output.
	pathIdx := strings.Index(out, "Path")
	valueIdx := strings.Index(out, "Value")
	if pathIdx < 0 || valueIdx < 0 || pathIdx > valueIdx {
		t.Errorf("details out of order (Path=%d, Value=%d):\n%s", pathIdx, valueIdx, out)
	}
}

func TestResultRenderFailure(t *testing.T) {
	err := errors.New("no configuration named app")
	result := NewFailureResult("Lookup failed", err, []string{"See what is loaded with: dotjson list"})
	result.SetWidth(80)

	out := result.Render()
	if !strings.Contains(out, "FAILED") {
		t.Errorf("missing FAILED banner:\n%s", out)
	}
	if !strings.Contains(out, "no configuration named app") {
		t.Errorf("missing error text:\n%s", out)
	}
	if !strings.Contains(out, "Troubleshooting:") {
		t.Errorf("missing troubleshooting section:\n%s", out)
	}
	if !strings.Contains(out, "dotjson list") {
		t.Errorf("missing tip:\n%s", out)
	}
}

func TestResultRenderFailureWithoutTips(t *testing.T) {
	result := NewFailureResult("Scan failed", errors.New("network unreachable"), nil)
	result.SetWidth(80)

	out := result.Render()
	if strings.Contains(out, "Troubleshooting:") {
		t.Errorf("unexpected troubleshooting section:\n%s", out)
	}
}

func TestResultAddDetail(t *testing.T) {
	result := NewSuccessResult("Loaded", nil)
	result.AddDetail("Config", "app")
	if result.Details["Config"] != "app" {
		t.Errorf("AddDetail did not store value: %v", result.Details)
	}
}

func TestHeaderRender(t *testing.T) {
	header := NewHeader("Network Discovery", "dotjson discover", map[string]string{
		"Service": "_dotjson._tcp",
		"Timeout": "10s",
	})
	header.SetWidth(80)

	out := header.Render()
	if !strings.Contains(out, "NETWORK DISCOVERY") {
		t.Errorf("title not uppercased:\n%s", out)
	}
	if !strings.Contains(out, "dotjson discover") {
		t.Errorf("missing command line:\n%s", out)
	}
	if !strings.Contains(out, "_dotjson._tcp") {
		t.Errorf("missing param value:\n%s", out)
	}
}

func TestGetTerminalWidthBounds(t *testing.T) {
	// Not a TTY under go test, so the fallback lower bound applies.
	width := GetTerminalWidth()
	if width < MinTerminalWidth || width > MaxContentWidth {
		t.Errorf("GetTerminalWidth() = %d, want between %d and %d", width, MinTerminalWidth, MaxContentWidth)
	}
}
