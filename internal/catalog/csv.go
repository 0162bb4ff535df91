package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Column resolution order per semantic field. The three source sheets use
// different headers for the same thing; first present, non-empty column wins.
var (
	nameColumns       = []string{"Level", "Name"}
	idColumns         = []string{"ID Level", "ID"}
	creatorColumns    = []string{"Creators", "Creator"}
	verifierColumns   = []string{"Display Nickname", "Verifier"}
	videoColumns      = []string{"Video Link", "Video"}
	difficultyColumns = []string{"Level Placement Opinion", "Difficulty"}
)

// DecodeCSV parses a headered CSV document into levels. Rows whose resolved
// name is empty after trimming are dropped.
func DecodeCSV(r io.Reader) ([]Level, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("%w: missing header row", ErrParse)
	}

	header := records[0]
	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.TrimSpace(col)] = i
	}

	levels := make([]Level, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := rowReader{index: index, record: rec}
		name := strings.TrimSpace(row.first(nameColumns))
		if name == "" {
			continue
		}
		creator := row.first(creatorColumns)
		verifier := row.first(verifierColumns)
		if strings.TrimSpace(verifier) == "" {
			verifier = creator
		}
		levels = append(levels, Level{
			ID:          strings.TrimSpace(row.first(idColumns)),
			Name:        name,
			Creator:     creator,
			Verifier:    verifier,
			Difficulty:  row.first(difficultyColumns),
			VideoURL:    row.first(videoColumns),
			Rating:      parseFloat(row.get("Rating")),
			Tags:        splitTags(row.get("Tags")),
			Description: row.get("Description"),
			Length:      row.get("Length"),
			Objects:     parseInt(row.get("Objects")),
			Downloads:   parseInt(row.get("Downloads")),
		})
	}
	if len(levels) == 0 {
		return nil, ErrEmptyDataset
	}
	return levels, nil
}

type rowReader struct {
	index  map[string]int
	record []string
}

func (r rowReader) get(col string) string {
	i, ok := r.index[col]
	if !ok || i >= len(r.record) {
		return ""
	}
	return r.record[i]
}

func (r rowReader) first(cols []string) string {
	for _, col := range cols {
		if v := r.get(col); strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func splitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func parseFloat(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return v
}

func parseInt(raw string) int {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	v, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0
	}
	return v
}
