package callgraph

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEdgesJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "edges.json")
	data := `[{"Caller":"main","Callee":"helper"},{"Caller":"helper","Callee":"malloc"}]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	edges, err := LoadEdgesJSON(path)
	if err != nil {
		t.Fatalf("LoadEdgesJSON: %v", err)
	}
	if len(edges) != 2 {
		t.Fatalf("LoadEdgesJSON() = %v, want 2 edges", edges)
	}
	if edges[0].Caller != "main" || edges[0].Callee != "helper" {
		t.Errorf("edges[0] = %+v, want Caller=main Callee=helper", edges[0])
	}
}

func TestLoadEdgesJSONMissingFile(t *testing.T) {
	if _, err := LoadEdgesJSON("/nonexistent/edges.json"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
