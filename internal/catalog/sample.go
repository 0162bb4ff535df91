package catalog

import "time"

// SampleStore returns a fixed built-in dataset. It never fails and exists so
// the app stays usable when both the network and the cache are unavailable.
func SampleStore(list ListType) *Store {
	rows := []Level{
		{
			ID:          "123456",
			Name:        "Sample Demon",
			Creator:     "SampleCreator",
			Verifier:    "SampleVerifier",
			Difficulty:  "Extreme",
			VideoURL:    "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			Rating:      4.5,
			Tags:        []string{"Sample", "Test", "Demo"},
			Description: "A sample level used when live data cannot be loaded.",
			Length:      "Long",
			Objects:     85000,
			Downloads:   1200000,
		},
		{
			ID:          "123457",
			Name:        "Practice Gauntlet",
			Creator:     "SampleCreator",
			Verifier:    "SampleVerifier",
			Difficulty:  "Hard",
			Rating:      3.5,
			Tags:        []string{"Sample", "Practice"},
			Description: "Second sample entry.",
			Length:      "Medium",
			Objects:     42000,
			Downloads:   340000,
		},
		{
			ID:          "123458",
			Name:        "Impossible Wave",
			Creator:     "WaveMaker",
			Verifier:    "WaveMaker",
			Difficulty:  "Impossible",
			Rating:      5,
			Tags:        []string{"Sample", "Wave"},
			Description: "Third sample entry.",
			Length:      "XL",
			Objects:     120000,
			Downloads:   98000,
		},
	}
	return &Store{List: list, Rows: rows, Strategy: StrategySample, LoadedAt: time.Now().UTC()}
}
