package core

import (
	"errors"
	"fmt"

	"github.com/signalsfoundry/mission-replay/model"
)

var (
	ErrIndexOutOfRange = errors.New("index outside table")
	ErrMalformedRow    = errors.New("malformed telemetry row")
)

// antennaColumn is the column of the availability table holding the
// antenna/satellite identifier for that index.
const antennaColumn = 1

// lookaheadSpan bounds how far SelectAntenna peeks past a suspected
// antenna switch. The look-ahead cursor advances by 2 per step, so only
// offsets 1, 3, 5, … 19 are actually inspected.
const lookaheadSpan = 20

// SelectAntenna picks the antenna that should currently be treated as
// highest priority, with hysteresis against short dropouts: when the raw
// feed flips at index, the previous antenna is kept unless the new name
// also holds across the sampled look-ahead window. The look-ahead clamps
// at the end of the table; a switch on the final rows is accepted once
// no inspectable future sample contradicts it.
//
// This is a best-effort noise filter. It catches the common single- and
// short-run glitch patterns it samples for, nothing more.
func SelectAntenna(table model.Table, index int) (string, error) {
	current, err := antennaAt(table, index)
	if err != nil {
		return "", err
	}
	if index <= 0 {
		// No history to compare against.
		return current, nil
	}

	previous, err := antennaAt(table, index-1)
	if err != nil {
		return "", err
	}
	if previous == current {
		// Stable, no switch in progress.
		return previous, nil
	}

	// A switch just occurred. Sample ahead, skipping every other row.
	for offset := 1; offset <= lookaheadSpan; offset += 2 {
		future := index + offset
		if future >= len(table) {
			break
		}
		name, err := antennaAt(table, future)
		if err != nil {
			return "", err
		}
		if name != current {
			// Transient noise: reject the new antenna.
			return previous, nil
		}
	}
	return current, nil
}

func antennaAt(table model.Table, index int) (string, error) {
	row, ok := table.Row(index)
	if !ok {
		return "", fmt.Errorf("%w: row %d of %d", ErrIndexOutOfRange, index, len(table))
	}
	name, ok := row.Field(antennaColumn)
	if !ok {
		return "", fmt.Errorf("%w: row %d has %d fields, want at least %d",
			ErrMalformedRow, index, len(row), antennaColumn+1)
	}
	return name, nil
}
