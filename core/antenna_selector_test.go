package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/signalsfoundry/mission-replay/model"
)

// availabilityTable builds an antenna availability table where row i is
// {i, names[i]}.
func availabilityTable(names ...string) model.Table {
	table := make(model.Table, 0, len(names))
	for i, name := range names {
		table = append(table, model.Row{fmt.Sprintf("%d", i), name})
	}
	return table
}

// repeat returns n copies of name.
func repeat(name string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = name
	}
	return out
}

func TestSelectAntennaSingleGlitchSuppressed(t *testing.T) {
	names := append([]string{"A", "A", "A", "B"}, repeat("A", 30)...)
	table := availabilityTable(names...)

	got, err := SelectAntenna(table, 3)
	if err != nil {
		t.Fatalf("SelectAntenna error: %v", err)
	}
	if got != "A" {
		t.Fatalf("SelectAntenna = %q, want glitch to B suppressed (A)", got)
	}
}

func TestSelectAntennaSustainedSwitchAccepted(t *testing.T) {
	names := append([]string{"A", "A", "A"}, repeat("B", 30)...)
	table := availabilityTable(names...)

	got, err := SelectAntenna(table, 3)
	if err != nil {
		t.Fatalf("SelectAntenna error: %v", err)
	}
	if got != "B" {
		t.Fatalf("SelectAntenna = %q, want sustained switch accepted (B)", got)
	}
}

func TestSelectAntennaIndexZeroHasNoHistory(t *testing.T) {
	table := availabilityTable("X", "Y", "Z")
	got, err := SelectAntenna(table, 0)
	if err != nil {
		t.Fatalf("SelectAntenna error: %v", err)
	}
	if got != "X" {
		t.Fatalf("SelectAntenna(0) = %q, want X", got)
	}
}

func TestSelectAntennaStableFeed(t *testing.T) {
	table := availabilityTable(repeat("A", 10)...)
	got, err := SelectAntenna(table, 5)
	if err != nil {
		t.Fatalf("SelectAntenna error: %v", err)
	}
	if got != "A" {
		t.Fatalf("SelectAntenna = %q, want A", got)
	}
}

// The look-ahead cursor advances by 2, so a contradicting sample at a
// skipped offset is never inspected and the switch is still accepted.
func TestSelectAntennaLookaheadSamplesAlternateRows(t *testing.T) {
	names := append([]string{"A", "A", "A"}, repeat("B", 30)...)
	names[5] = "A" // offset 2 from the switch at index 3: skipped
	table := availabilityTable(names...)

	got, err := SelectAntenna(table, 3)
	if err != nil {
		t.Fatalf("SelectAntenna error: %v", err)
	}
	if got != "B" {
		t.Fatalf("SelectAntenna = %q, want B (offset 2 is never sampled)", got)
	}
}

// Near the end of the table the look-ahead clamps to the rows that
// exist; with no inspectable future sample the switch is accepted.
func TestSelectAntennaClampsAtTableEnd(t *testing.T) {
	table := availabilityTable("A", "A", "B")
	got, err := SelectAntenna(table, 2)
	if err != nil {
		t.Fatalf("SelectAntenna error: %v", err)
	}
	if got != "B" {
		t.Fatalf("SelectAntenna at final row = %q, want B", got)
	}

	table = availabilityTable("A", "A", "B", "A")
	got, err = SelectAntenna(table, 2)
	if err != nil {
		t.Fatalf("SelectAntenna error: %v", err)
	}
	if got != "A" {
		t.Fatalf("SelectAntenna = %q, want A (one future sample contradicts)", got)
	}
}

func TestSelectAntennaIndexOutOfRange(t *testing.T) {
	table := availabilityTable("A", "A")
	if _, err := SelectAntenna(table, 7); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("got %v, want ErrIndexOutOfRange", err)
	}
	if _, err := SelectAntenna(model.Table{}, 0); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("empty table: got %v, want ErrIndexOutOfRange", err)
	}
}

func TestSelectAntennaMalformedRow(t *testing.T) {
	table := model.Table{
		{"0", "A"},
		{"1"}, // missing antenna field
		{"2", "A"},
	}
	if _, err := SelectAntenna(table, 1); !errors.Is(err, ErrMalformedRow) {
		t.Fatalf("got %v, want ErrMalformedRow", err)
	}
}
