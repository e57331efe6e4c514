package universe

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNoSymbolColumn is returned when the universe file has no
// recognizable symbol column. This is a configuration error: the run
// aborts before any fetch is dispatched.
var ErrNoSymbolColumn = errors.New("no symbol column found")

// symbolHeaders are the accepted header names, matched case-insensitively
var symbolHeaders = []string{"ticker", "symbol", "code"}

// Load reads the symbol universe from a delimited file.
//
// The first row is treated as a header and probed for a symbol column.
// Symbols are trimmed and upper-cased; blank cells are skipped. Input
// order is preserved and duplicates are kept — each occurrence is an
// independent unit of work downstream.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open universe file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // tolerate ragged rows

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read universe file: %w", err)
	}

	if len(records) == 0 {
		return []string{}, nil
	}

	col := findSymbolColumn(records[0])
	if col < 0 {
		return nil, fmt.Errorf("%w (headers: %s)", ErrNoSymbolColumn, strings.Join(records[0], ", "))
	}

	symbols := make([]string, 0, len(records)-1)
	for _, record := range records[1:] {
		if col >= len(record) {
			continue
		}
		symbol := strings.ToUpper(strings.TrimSpace(record[col]))
		if symbol == "" {
			continue
		}
		symbols = append(symbols, symbol)
	}

	return symbols, nil
}

// findSymbolColumn returns the index of the first header matching an
// accepted symbol-column name, or -1
func findSymbolColumn(header []string) int {
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		for _, accepted := range symbolHeaders {
			if name == accepted {
				return i
			}
		}
	}
	return -1
}
