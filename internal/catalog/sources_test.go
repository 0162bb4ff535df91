package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSourcesOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	if err := os.WriteFile(path, []byte("pemonlist: https://example.com/pemon.csv\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	src, err := LoadSources(path)
	if err != nil {
		t.Fatalf("load sources: %v", err)
	}
	if src.PemonList != "https://example.com/pemon.csv" {
		t.Fatalf("override not applied: %q", src.PemonList)
	}
	if src.DemonList == "" || src.ImpossibleList == "" {
		t.Fatalf("unset entries must keep defaults")
	}

	url, err := src.URL(PemonList)
	if err != nil || url != src.PemonList {
		t.Fatalf("URL resolution: %q %v", url, err)
	}
	if _, err := src.URL(ListType("nope")); err == nil {
		t.Fatalf("expected error for unknown list type")
	}
}
