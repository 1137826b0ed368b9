package model

// StageType is the coarse phase label for the mission timeline.
type StageType int

const (
	StageNone StageType = iota
	StageLaunch
	StageOrbitingEarth
	StageTravellingToMoon
	StageFlyingByMoon
	StageReturningToEarth
	StageReEntryAndSplashdown
)

func (s StageType) String() string {
	switch s {
	case StageLaunch:
		return "Launch"
	case StageOrbitingEarth:
		return "OrbitingEarth"
	case StageTravellingToMoon:
		return "TravellingToMoon"
	case StageFlyingByMoon:
		return "FlyingByMoon"
	case StageReturningToEarth:
		return "ReturningToEarth"
	case StageReEntryAndSplashdown:
		return "ReEntryAndSplashdown"
	default:
		return "None"
	}
}

// StageDefinition marks the simulation index at which a mission stage
// begins. A stage runs from StartIndex until the next definition's
// StartIndex in the surrounding stage table.
type StageDefinition struct {
	StartIndex int
	Stage      StageType
}

// Equal reports structural equality, which is what stage change
// detection compares: same boundary and same stage label.
func (d StageDefinition) Equal(other StageDefinition) bool {
	return d.StartIndex == other.StartIndex && d.Stage == other.Stage
}
