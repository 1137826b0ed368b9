package core

import (
	"context"
	"testing"

	"github.com/signalsfoundry/mission-replay/internal/logging"
	"github.com/signalsfoundry/mission-replay/model"
)

func TestParsePosition(t *testing.T) {
	pos, ok := ParsePosition(model.Row{"0", "1.5", "-2.25", "3000"})
	if !ok {
		t.Fatalf("ParsePosition failed on well-formed row")
	}
	if pos.X != 1.5 || pos.Y != -2.25 || pos.Z != 3000 {
		t.Fatalf("ParsePosition = %+v", pos)
	}

	if _, ok := ParsePosition(model.Row{"0", "1.5"}); ok {
		t.Fatalf("ParsePosition should fail on short row")
	}
	if _, ok := ParsePosition(model.Row{"0", "1.5", "oops", "3"}); ok {
		t.Fatalf("ParsePosition should fail on non-numeric field")
	}
}

func TestTrajectoryPointsSkipsMalformedRows(t *testing.T) {
	table := model.Table{
		{"0", "1", "2", "3"},
		{"1", "bad", "2", "3"},
		{"2"},
		{"3", "4", "5", "6"},
	}
	points := TrajectoryPoints(context.Background(), table, logging.Noop())
	if len(points) != 2 {
		t.Fatalf("len(points) = %d, want 2 (malformed rows skipped)", len(points))
	}
	if points[1].X != 4 {
		t.Fatalf("points[1].X = %v, want 4", points[1].X)
	}
}

func TestPositionAt(t *testing.T) {
	table := model.Table{{"0", "1", "2", "3"}}
	if _, ok := PositionAt(table, 5); ok {
		t.Fatalf("PositionAt out of range should report missing")
	}
	pos, ok := PositionAt(table, 0)
	if !ok || pos.Z != 3 {
		t.Fatalf("PositionAt(0) = %+v, %v", pos, ok)
	}
}
