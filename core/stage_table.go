package core

import (
	"errors"
	"fmt"
	"sort"

	"github.com/signalsfoundry/mission-replay/model"
)

var (
	ErrStageNotFound = errors.New("no stage covers index")
	ErrBadStageTable = errors.New("invalid stage table")
)

// StageTable is an ordered list of stage definitions, sorted ascending
// by StartIndex. The ordering is an invariant assumed by Resolve, not
// re-checked per call; Validate enforces it once at startup.
type StageTable []model.StageDefinition

// Validate checks the startup invariants: the table is non-empty,
// sorted ascending by StartIndex, and its first entry covers index 0.
// A malformed stage configuration is a configuration error surfaced
// here, never at tick time.
func (st StageTable) Validate() error {
	if len(st) == 0 {
		return fmt.Errorf("%w: empty", ErrBadStageTable)
	}
	if st[0].StartIndex > 0 {
		return fmt.Errorf("%w: first stage starts at %d, must cover index 0", ErrBadStageTable, st[0].StartIndex)
	}
	for i := 1; i < len(st); i++ {
		if st[i].StartIndex < st[i-1].StartIndex {
			return fmt.Errorf("%w: stages not sorted ascending at position %d", ErrBadStageTable, i)
		}
	}
	return nil
}

// Resolve returns the stage active at the given simulation index: the
// last definition whose StartIndex is at or before index. Last-match
// semantics matter when definitions share a boundary; the most recently
// entered stage wins. Returns ErrStageNotFound when index precedes the
// first boundary or the table is empty.
func (st StageTable) Resolve(index int) (model.StageDefinition, error) {
	n := sort.Search(len(st), func(i int) bool { return st[i].StartIndex > index })
	if n == 0 {
		return model.StageDefinition{}, fmt.Errorf("%w: index %d", ErrStageNotFound, index)
	}
	return st[n-1], nil
}
