// core/table_store.go
package core

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/signalsfoundry/mission-replay/model"
)

// fieldDelimiter separates fields within a telemetry row. There is no
// quoting or escaping: a recorded field that itself contains a comma is
// unsupported and will misalign every column after it. That limitation
// is part of the table format, so it is documented here rather than
// papered over with a real CSV parser.
const fieldDelimiter = ","

// LoadTable reads a line-oriented telemetry table from r. Each line is
// split on the field delimiter; the first line is discarded
// unconditionally as the header. A source with no data rows after the
// header yields an empty table, not an error.
func LoadTable(r io.Reader) (model.Table, error) {
	if r == nil {
		return nil, fmt.Errorf("LoadTable: nil source")
	}

	var table model.Table
	sc := bufio.NewScanner(r)
	first := true
	for sc.Scan() {
		line := strings.TrimSuffix(sc.Text(), "\r")
		if first {
			first = false
			continue
		}
		table = append(table, model.Row(strings.Split(line, fieldDelimiter)))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("LoadTable: read failed: %w", err)
	}
	return table, nil
}

// LoadTableFile loads a telemetry table from the file at path. A
// missing or unreadable file is the only load failure; callers treat it
// as fatal at startup.
func LoadTableFile(path string) (model.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("LoadTableFile: open %q: %w", path, err)
	}
	defer f.Close()

	table, err := LoadTable(f)
	if err != nil {
		return nil, fmt.Errorf("LoadTableFile: %q: %w", path, err)
	}
	return table, nil
}
