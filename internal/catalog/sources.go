package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Sources maps each list type to its published CSV URL.
type Sources struct {
	DemonList      string `yaml:"demonlist"`
	PemonList      string `yaml:"pemonlist"`
	ImpossibleList string `yaml:"impossiblelist"`
}

func DefaultSources() Sources {
	return Sources{
		DemonList:      "https://docs.google.com/spreadsheets/d/e/2PACX-1vSDN7HUdFLEi7P5CkSFXFz_b16Os_8hdEItayViA0TfNze8nudO6sxlJgL9h2K8gkYMQah6RS1KXvL2/pub?gid=1550981254&single=true&output=csv",
		PemonList:      "https://docs.google.com/spreadsheets/d/e/2PACX-1vRULqi0QRDR6gfQo8P2bfqpcqnnZJSkD1ZT-D2XiF7urmzvLwcf10L85KSVp20q65AkMjsha6Lg2LIQ/pub?output=csv",
		ImpossibleList: "https://docs.google.com/spreadsheets/d/e/2PACX-1vQ4iVSl1wTRfOZwLAoyZF-ej_Be2LCgtpXnHgswXbZJczu1EXvrWsGvffpPtAtWxx6-XlOcGsgaHDLo/pub?output=csv",
	}
}

// LoadSources reads a yaml source map, filling unset entries from the
// defaults. An empty path yields the defaults unchanged.
func LoadSources(path string) (Sources, error) {
	src := DefaultSources()
	if path == "" {
		return src, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return src, err
	}
	var override Sources
	if err := yaml.Unmarshal(b, &override); err != nil {
		return src, fmt.Errorf("parse %s: %w", path, err)
	}
	if override.DemonList != "" {
		src.DemonList = override.DemonList
	}
	if override.PemonList != "" {
		src.PemonList = override.PemonList
	}
	if override.ImpossibleList != "" {
		src.ImpossibleList = override.ImpossibleList
	}
	return src, nil
}

// URL resolves the source URL for a list type.
func (s Sources) URL(list ListType) (string, error) {
	switch list {
	case DemonList:
		return s.DemonList, nil
	case PemonList:
		return s.PemonList, nil
	case ImpossibleList:
		return s.ImpossibleList, nil
	}
	return "", fmt.Errorf("unknown list type %q", list)
}
