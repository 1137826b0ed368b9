// core/stage_loader.go
package core

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/signalsfoundry/mission-replay/model"
)

// internal JSON shapes – keep them unexported so we’re free to evolve them.
type stageConfigJSON struct {
	Stages []stageDefJSON `json:"stages"`
}

type stageDefJSON struct {
	StartIndex int    `json:"start_index"`
	Stage      string `json:"stage"`
}

// LoadStageConfig reads a JSON stage configuration from r and returns
// the resulting stage table. It fails only on JSON / structural errors
// and on a table that breaks the startup invariants (Validate); unknown
// stage names are tolerated and map to StageNone.
func LoadStageConfig(r io.Reader) (StageTable, error) {
	var payload stageConfigJSON
	dec := json.NewDecoder(r)
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("LoadStageConfig: decode failed: %w", err)
	}

	table := make(StageTable, 0, len(payload.Stages))
	for _, js := range payload.Stages {
		table = append(table, model.StageDefinition{
			StartIndex: js.StartIndex,
			Stage:      stageTypeFromString(js.Stage),
		})
	}

	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("LoadStageConfig: %w", err)
	}
	return table, nil
}

// stageTypeFromString maps the JSON "stage" string to our Stage* constants.
//
// We keep this tolerant: unknown / empty values map to StageNone rather
// than failing the whole load. If we add more stages later, we extend
// this switch.
func stageTypeFromString(s string) model.StageType {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "launch":
		return model.StageLaunch
	case "orbiting_earth", "orbitingearth", "orbit":
		return model.StageOrbitingEarth
	case "travelling_to_moon", "travellingtomoon", "translunar":
		return model.StageTravellingToMoon
	case "flying_by_moon", "flyingbymoon", "flyby":
		return model.StageFlyingByMoon
	case "returning_to_earth", "returningtoearth", "return":
		return model.StageReturningToEarth
	case "reentry_and_splashdown", "reentryandsplashdown", "reentry", "splashdown":
		return model.StageReEntryAndSplashdown
	default:
		return model.StageNone
	}
}
