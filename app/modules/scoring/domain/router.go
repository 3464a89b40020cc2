package scoringdomain

// ResultData is the slice of an ingested result the algorithms need: the
// headline value plus the auxiliary mappings ingestion stores in the result
// metadata ("finishing_order", "lap_times").
type ResultData struct {
	ActualValue    string
	FinishingOrder map[string]int
	LapTimes       map[string]float64
}

// algorithm family per prop type; prop types absent from this table degrade
// to a zero-point outcome rather than failing the batch.
type family int

const (
	familyUnsupported family = iota
	familyPosition
	familyFastestLap
	familyTimedValue
	familyPitWindow
	familyBoolean
	familyCount
)

var families = map[PropType]family{
	PropRaceWinner:      familyPosition,
	PropPodiumP1:        familyPosition,
	PropPodiumP2:        familyPosition,
	PropPodiumP3:        familyPosition,
	PropPolePosition:    familyPosition,
	PropFirstRetirement: familyPosition,
	PropFastestLap:      familyFastestLap,
	PropLapTime:         familyTimedValue,
	PropSectorTime:      familyTimedValue,
	PropPitWindowStart:  familyPitWindow,
	PropPitWindowEnd:    familyPitWindow,
	PropSafetyCar:       familyBoolean,
	PropTotalPitStops:   familyCount,
}

// ScorePick routes one pick to its algorithm family. results holds every
// ingested result for the pick's prop type; only the first is consulted
// (multiple results per prop type is not a supported configuration). A
// returned error is always a *ParseError and means the pick must be skipped,
// not that the batch failed.
func ScorePick(propType PropType, pickValue string, results []ResultData) (Outcome, error) {
	if len(results) == 0 {
		return Outcome{
			Points:   0,
			Metadata: map[string]any{"error": "no results available for this prediction type"},
		}, nil
	}
	result := results[0]

	switch families[propType] {
	case familyPosition:
		predicted := ParseDriverCode(pickValue)
		actual := ParseDriverCode(result.ActualValue)
		return ScoreDriverPosition(predicted, actual, result.FinishingOrder, propType), nil

	case familyFastestLap:
		predicted := ParseDriverCode(pickValue)
		actual := ParseDriverCode(result.ActualValue)
		return ScoreFastestLap(predicted, actual, result.LapTimes), nil

	case familyTimedValue:
		predicted, err := ParseTimeValue(pickValue)
		if err != nil {
			return Outcome{}, err
		}
		actual, err := ParseTimeValue(result.ActualValue)
		if err != nil {
			return Outcome{}, err
		}
		return ScoreTimedValue(predicted, actual), nil

	case familyPitWindow:
		predicted, err := ParseLapNumber(pickValue)
		if err != nil {
			return Outcome{}, err
		}
		actual, err := ParseLapNumber(result.ActualValue)
		if err != nil {
			return Outcome{}, err
		}
		return ScorePitWindow(predicted, actual), nil

	case familyBoolean:
		return ScoreBoolean(ParseBoolean(pickValue), ParseBoolean(result.ActualValue)), nil

	case familyCount:
		predicted, err := ParseLapNumber(pickValue)
		if err != nil {
			return Outcome{}, err
		}
		actual, err := ParseLapNumber(result.ActualValue)
		if err != nil {
			return Outcome{}, err
		}
		return ScoreCount(predicted, actual), nil

	default:
		return Outcome{
			Points:   0,
			Metadata: map[string]any{"error": "unsupported prop type: " + string(propType)},
		}, nil
	}
}
