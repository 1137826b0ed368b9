package core

import (
	"context"
	"strconv"

	"github.com/signalsfoundry/mission-replay/internal/logging"
	"github.com/signalsfoundry/mission-replay/model"
)

// Trajectory rows carry the spacecraft position as decimal text in
// columns 1–3. Parsing is rendering-only and best-effort: a malformed
// row is skipped, never fatal.

// ParsePosition decodes the X/Y/Z position from a trajectory row. The
// second return is false when the row is too short or any coordinate
// fails to parse.
func ParsePosition(row model.Row) (model.Position, bool) {
	var coords [3]float64
	for i := range coords {
		raw, ok := row.Field(i + 1)
		if !ok {
			return model.Position{}, false
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return model.Position{}, false
		}
		coords[i] = v
	}
	return model.Position{X: coords[0], Y: coords[1], Z: coords[2]}, true
}

// PositionAt decodes the position at a simulation index, if there is a
// well-formed row there.
func PositionAt(table model.Table, index int) (model.Position, bool) {
	row, ok := table.Row(index)
	if !ok {
		return model.Position{}, false
	}
	return ParsePosition(row)
}

// TrajectoryPoints decodes every well-formed position in the table,
// logging and skipping rows that fail to parse.
func TrajectoryPoints(ctx context.Context, table model.Table, log logging.Logger) []model.Position {
	if log == nil {
		log = logging.Noop()
	}
	points := make([]model.Position, 0, len(table))
	for i, row := range table {
		p, ok := ParsePosition(row)
		if !ok {
			log.Debug(ctx, "skipping malformed trajectory row", logging.Int("row", i))
			continue
		}
		points = append(points, p)
	}
	return points
}
