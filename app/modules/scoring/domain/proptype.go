package scoringdomain

// PropType identifies the kind of prediction a pick is about.
type PropType string

const (
	PropRaceWinner      PropType = "race_winner"
	PropPodiumP1        PropType = "podium_p1"
	PropPodiumP2        PropType = "podium_p2"
	PropPodiumP3        PropType = "podium_p3"
	PropFastestLap      PropType = "fastest_lap"
	PropPolePosition    PropType = "pole_position"
	PropFirstRetirement PropType = "first_retirement"
	PropSafetyCar       PropType = "safety_car"
	PropLapTime         PropType = "lap_time_prediction"
	PropSectorTime      PropType = "sector_time_prediction"
	PropPitWindowStart  PropType = "pit_window_start"
	PropPitWindowEnd    PropType = "pit_window_end"
	PropTotalPitStops   PropType = "total_pit_stops"
)

func (p PropType) String() string { return string(p) }

// expectedPosition is the finishing position a position-based prop predicts.
// Unmapped prop types default to P1.
var expectedPosition = map[PropType]int{
	PropRaceWinner:   1,
	PropPodiumP1:     1,
	PropPodiumP2:     2,
	PropPodiumP3:     3,
	PropPolePosition: 1,
}

// ExpectedPosition returns the finishing position a position-based prop type
// is measured against.
func ExpectedPosition(propType PropType) int {
	if pos, ok := expectedPosition[propType]; ok {
		return pos
	}
	return 1
}
