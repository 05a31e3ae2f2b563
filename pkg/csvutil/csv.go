package csvutil

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

var ErrNoHeader = errors.New("csv: missing header row")

// Write emits a header row followed by one line per row. Fields containing
// commas, quotes or newlines are quoted and inner quotes doubled.
func Write(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

// Read parses a header-driven CSV document into one map per data row,
// keyed by header name. Values are trimmed of whitespace and stray quotes.
// Short rows leave the missing columns empty; blank lines are skipped.
func Read(r io.Reader) ([]map[string]string, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	lines, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrNoHeader
	}

	header := make([]string, len(lines[0]))
	for i, h := range lines[0] {
		header[i] = clean(h)
	}

	records := make([]map[string]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		if isBlank(line) {
			continue
		}
		rec := make(map[string]string, len(header))
		for i, h := range header {
			if i < len(line) {
				rec[h] = clean(line[i])
			} else {
				rec[h] = ""
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

func clean(s string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(s), `"`))
}

func isBlank(line []string) bool {
	for _, f := range line {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
