package catalog

import (
	"errors"
	"strings"
	"testing"
)

func TestDecodeCSVColumnPriorities(t *testing.T) {
	csv := strings.Join([]string{
		`Level,ID Level,Creators,Display Nickname,Level Placement Opinion,Video Link,Rating,Tags,Description,Length,Objects,Downloads`,
		`Bloodbath,10565740,Riot,Michigun,Extreme,https://youtu.be/abc,4.8,"Classic, Hard",The original,Long,24000,"26,000,000"`,
		`,999,Nobody,,Easy,,1,,,Tiny,10,5`,
		`Tartarus,60266549,Riot,Dolphy,Extreme,,5,,,XL,190000,8000000`,
	}, "\n")

	levels, err := DecodeCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(levels) != 2 {
		t.Fatalf("expected 2 levels after dropping empty names, got %d", len(levels))
	}

	first := levels[0]
	if first.Name != "Bloodbath" || first.ID != "10565740" {
		t.Fatalf("unexpected first row: %+v", first)
	}
	if first.Verifier != "Michigun" {
		t.Fatalf("expected verifier from Display Nickname, got %q", first.Verifier)
	}
	if first.Rating != 4.8 {
		t.Fatalf("expected rating 4.8, got %v", first.Rating)
	}
	if len(first.Tags) != 2 || first.Tags[0] != "Classic" || first.Tags[1] != "Hard" {
		t.Fatalf("expected trimmed tags, got %v", first.Tags)
	}
	if first.Downloads != 26000000 {
		t.Fatalf("expected grouped downloads parsed, got %d", first.Downloads)
	}

	// Missing verifier column value falls back to the creator.
	if levels[1].Verifier != "Riot" {
		t.Fatalf("expected verifier fallback to creator, got %q", levels[1].Verifier)
	}
}

func TestDecodeCSVAlternateHeaders(t *testing.T) {
	csv := "Name,ID,Creator,Verifier,Difficulty,Video,Rating\nSilent Clubstep,42,TheRealSailent,Paqoe,Impossible,,0\n"
	levels, err := DecodeCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if levels[0].Name != "Silent Clubstep" || levels[0].ID != "42" || levels[0].Difficulty != "Impossible" {
		t.Fatalf("alternate headers not resolved: %+v", levels[0])
	}
}

func TestDecodeCSVEmptyDataset(t *testing.T) {
	csv := "Level,ID Level\n,1\n  ,2\n"
	_, err := DecodeCSV(strings.NewReader(csv))
	if !errors.Is(err, ErrEmptyDataset) {
		t.Fatalf("expected ErrEmptyDataset, got %v", err)
	}
}

func TestDecodeCSVMalformed(t *testing.T) {
	_, err := DecodeCSV(strings.NewReader("Level\n\"unterminated"))
	if !errors.Is(err, ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}

func TestStoreFindByIDFirstMatch(t *testing.T) {
	s := &Store{Rows: []Level{
		{ID: "7", Name: "first"},
		{ID: "7", Name: "second"},
	}}
	lvl, ok := s.FindByID("7")
	if !ok || lvl.Name != "first" {
		t.Fatalf("duplicate ids must resolve to first match, got %+v ok=%v", lvl, ok)
	}
	if s.RankOf("7") != 1 {
		t.Fatalf("expected rank 1, got %d", s.RankOf("7"))
	}
	if _, ok := s.FindByID("missing"); ok {
		t.Fatalf("expected miss for unknown id")
	}
}
