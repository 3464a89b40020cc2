package scoringdomain

import "math"

// Point values shared by every algorithm family. The tier tables are fixed
// design constants, not runtime configuration.
const (
	ExactMatchPoints = 10

	// Margin sentinel assigned when the predicted driver never finished.
	dnfMargin = 20.0

	// Absolute epsilon for exact-match on timed-value predictions. Independent
	// of the percentage point tiers.
	timeExactEpsilon = 0.01
)

// nearMatchPoints awards partial points by finishing-position distance.
var nearMatchPoints = map[int]int{
	1: 7,
	2: 4,
	3: 2,
}

// ScoreDriverPosition scores position-based props (race winner, podium,
// pole, first retirement). finishingOrder maps driver code to finishing
// position; a predicted driver absent from it did not finish.
func ScoreDriverPosition(predictedDriver, actualDriver string, finishingOrder map[string]int, propType PropType) Outcome {
	if predictedDriver == actualDriver {
		return Outcome{
			Points:     ExactMatchPoints,
			Margin:     marginOf(0),
			ExactMatch: true,
			Metadata: map[string]any{
				"predicted_driver": predictedDriver,
				"actual_driver":    actualDriver,
				"result":           ResultExactMatch,
			},
		}
	}

	predictedPosition, finished := finishingOrder[predictedDriver]
	if !finished {
		return Outcome{
			Points: 0,
			Margin: marginOf(dnfMargin),
			Metadata: map[string]any{
				"predicted_driver": predictedDriver,
				"actual_driver":    actualDriver,
				"result":           ResultDNF,
				"reason":           "predicted driver did not finish",
			},
		}
	}

	expected := ExpectedPosition(propType)
	diff := predictedPosition - expected
	if diff < 0 {
		diff = -diff
	}

	points := nearMatchPoints[diff]

	return Outcome{
		Points: points,
		Margin: marginOf(float64(diff)),
		Metadata: map[string]any{
			"predicted_driver":   predictedDriver,
			"actual_driver":      actualDriver,
			"predicted_position": predictedPosition,
			"expected_position":  expected,
			"position_diff":      diff,
			"result":             classify(points),
		},
	}
}

// ScoreFastestLap scores fastest-lap driver predictions. lapTimes maps
// driver code to that driver's fastest lap in seconds.
func ScoreFastestLap(predictedDriver, actualDriver string, lapTimes map[string]float64) Outcome {
	if predictedDriver == actualDriver {
		return Outcome{
			Points:     ExactMatchPoints,
			Margin:     marginOf(0),
			ExactMatch: true,
			Metadata: map[string]any{
				"predicted_driver": predictedDriver,
				"actual_driver":    actualDriver,
				"result":           ResultExactMatch,
			},
		}
	}

	predictedTime, havePredicted := lapTimes[predictedDriver]
	actualTime, haveActual := lapTimes[actualDriver]
	if !havePredicted || !haveActual {
		return Outcome{
			Points: 0,
			Metadata: map[string]any{
				"predicted_driver": predictedDriver,
				"actual_driver":    actualDriver,
				"result":           ResultNoData,
			},
		}
	}

	timeDiff := math.Abs(predictedTime - actualTime)

	var points int
	switch {
	case timeDiff < 0.5:
		points = 7
	case timeDiff < 1.0:
		points = 4
	case timeDiff < 2.0:
		points = 2
	}

	return Outcome{
		Points: points,
		Margin: marginOf(timeDiff),
		Metadata: map[string]any{
			"predicted_driver": predictedDriver,
			"actual_driver":    actualDriver,
			"predicted_time":   predictedTime,
			"actual_time":      actualTime,
			"time_diff":        timeDiff,
			"result":           classify(points),
		},
	}
}

// ScoreTimedValue scores lap-time and sector-time predictions by relative
// percentage error. The exact-match flag is strict on absolute time, not on
// the percentage tier.
func ScoreTimedValue(predictedTime, actualTime float64) Outcome {
	// A zero actual time is bogus ingested data; dividing by it would poison
	// the metadata with Inf/NaN, which JSONB cannot store.
	if actualTime == 0 {
		return Outcome{
			Points: 0,
			Metadata: map[string]any{
				"predicted_time": predictedTime,
				"actual_time":    actualTime,
				"result":         ResultNoData,
				"reason":         "actual time is zero",
			},
		}
	}

	timeDiff := math.Abs(predictedTime - actualTime)
	percentageError := timeDiff / actualTime * 100

	var points int
	switch {
	case percentageError < 0.5:
		points = 10
	case percentageError < 1.0:
		points = 8
	case percentageError < 2.0:
		points = 6
	case percentageError < 3.0:
		points = 4
	case percentageError < 5.0:
		points = 2
	}

	return Outcome{
		Points:     points,
		Margin:     marginOf(timeDiff),
		ExactMatch: timeDiff < timeExactEpsilon,
		Metadata: map[string]any{
			"predicted_time":   predictedTime,
			"actual_time":      actualTime,
			"time_diff":        timeDiff,
			"percentage_error": percentageError,
		},
	}
}

// ScorePitWindow scores pit-stop lap predictions by integer lap distance.
func ScorePitWindow(predictedLap, actualLap int) Outcome {
	lapDiff := predictedLap - actualLap
	if lapDiff < 0 {
		lapDiff = -lapDiff
	}

	var points int
	switch {
	case lapDiff == 0:
		points = 10
	case lapDiff == 1:
		points = 7
	case lapDiff == 2:
		points = 5
	case lapDiff == 3:
		points = 3
	case lapDiff <= 5:
		points = 1
	}

	return Outcome{
		Points:     points,
		Margin:     marginOf(float64(lapDiff)),
		ExactMatch: lapDiff == 0,
		Metadata: map[string]any{
			"predicted_lap": predictedLap,
			"actual_lap":    actualLap,
			"lap_diff":      lapDiff,
		},
	}
}

// ScoreBoolean scores yes/no predictions (safety car). A mismatch carries a
// unit margin sentinel.
func ScoreBoolean(predictedValue, actualValue bool) Outcome {
	exact := predictedValue == actualValue

	points := 0
	margin := 1.0
	if exact {
		points = ExactMatchPoints
		margin = 0
	}

	return Outcome{
		Points:     points,
		Margin:     marginOf(margin),
		ExactMatch: exact,
		Metadata: map[string]any{
			"predicted_value": predictedValue,
			"actual_value":    actualValue,
		},
	}
}

// ScoreCount scores integer count predictions (total pit stops).
func ScoreCount(predictedCount, actualCount int) Outcome {
	diff := predictedCount - actualCount
	if diff < 0 {
		diff = -diff
	}

	var points int
	switch {
	case diff == 0:
		points = 10
	case diff == 1:
		points = 6
	case diff == 2:
		points = 3
	}

	return Outcome{
		Points:     points,
		Margin:     marginOf(float64(diff)),
		ExactMatch: diff == 0,
		Metadata: map[string]any{
			"predicted_count": predictedCount,
			"actual_count":    actualCount,
			"diff":            diff,
		},
	}
}

func classify(points int) string {
	if points > 0 {
		return ResultNearMatch
	}
	return ResultMiss
}
