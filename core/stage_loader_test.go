package core

import (
	"errors"
	"strings"
	"testing"

	"github.com/signalsfoundry/mission-replay/model"
)

func TestLoadStageConfig(t *testing.T) {
	src := `{
		"stages": [
			{"start_index": 0, "stage": "launch"},
			{"start_index": 100, "stage": "orbiting_earth"},
			{"start_index": 500, "stage": "travelling_to_moon"}
		]
	}`
	stages, err := LoadStageConfig(strings.NewReader(src))
	if err != nil {
		t.Fatalf("LoadStageConfig error: %v", err)
	}
	if len(stages) != 3 {
		t.Fatalf("len(stages) = %d, want 3", len(stages))
	}
	if stages[1].Stage != model.StageOrbitingEarth || stages[1].StartIndex != 100 {
		t.Fatalf("stages[1] = %+v, want {100 OrbitingEarth}", stages[1])
	}
}

func TestLoadStageConfigUnknownStageMapsToNone(t *testing.T) {
	src := `{"stages": [{"start_index": 0, "stage": "aerobraking"}]}`
	stages, err := LoadStageConfig(strings.NewReader(src))
	if err != nil {
		t.Fatalf("LoadStageConfig error: %v", err)
	}
	if stages[0].Stage != model.StageNone {
		t.Fatalf("unknown stage mapped to %v, want StageNone", stages[0].Stage)
	}
}

func TestLoadStageConfigBadJSON(t *testing.T) {
	if _, err := LoadStageConfig(strings.NewReader("{not json")); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestLoadStageConfigRejectsInvalidTable(t *testing.T) {
	src := `{"stages": [{"start_index": 10, "stage": "launch"}]}`
	if _, err := LoadStageConfig(strings.NewReader(src)); !errors.Is(err, ErrBadStageTable) {
		t.Fatalf("got %v, want ErrBadStageTable", err)
	}
}
