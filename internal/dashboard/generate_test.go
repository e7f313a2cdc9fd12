package dashboard

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRenderMissingEnv(t *testing.T) {
	t.Setenv("GREPTIMEDB_DATASOURCE_UID", "")
	if err := Render(t.TempDir(), DefaultTables()); err == nil {
		t.Fatalf("expected error for missing env vars")
	}
}

func TestRenderSuccess(t *testing.T) {
	t.Setenv("GREPTIMEDB_DATASOURCE_UID", "uid1")

	dir := t.TempDir()
	if err := Render(dir, Tables{Runs: "runs_x"}); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	b, err := os.ReadFile(filepath.Join(dir, "ctsim-runs.json"))
	if err != nil {
		t.Fatalf("read dashboard: %v", err)
	}
	if !strings.Contains(string(b), "uid1") || !strings.Contains(string(b), "FROM runs_x") {
		t.Fatalf("runs dashboard not rendered: %s", b)
	}
	var doc map[string]any
	if err := json.Unmarshal(b, &doc); err != nil {
		t.Fatalf("runs dashboard is not valid JSON: %v", err)
	}

	b, err = os.ReadFile(filepath.Join(dir, "ctsim-profile.json"))
	if err != nil {
		t.Fatalf("read profile dashboard: %v", err)
	}
	if !strings.Contains(string(b), "FROM ctsim_profile") {
		t.Fatalf("default profile table not rendered")
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		t.Fatalf("profile dashboard is not valid JSON: %v", err)
	}
}
