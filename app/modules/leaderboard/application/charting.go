package leaderboardservice

import (
	"bytes"
	"context"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const chartBarLimit = 10

// RenderSeasonChart produces a PNG bar chart of the season's top standings.
func (s *LeaderboardService) RenderSeasonChart(ctx context.Context, year int, limit int) ([]byte, error) {
	if limit <= 0 || limit > chartBarLimit {
		limit = chartBarLimit
	}

	standings, err := s.SeasonLeaderboard(ctx, year, limit)
	if err != nil {
		return nil, err
	}
	if len(standings) == 0 {
		return renderNoDataPlaceholder(fmt.Sprintf("No scores recorded for %d", year))
	}

	bars := make([]chart.Value, len(standings))
	for i, standing := range standings {
		bars[i] = chart.Value{
			Label: standing.DisplayName,
			Value: float64(standing.TotalPoints),
		}
	}

	// Standings are ordered, so the first row carries the maximum.
	axisMax := float64(standings[0].TotalPoints) * 1.1
	if axisMax <= 0 {
		axisMax = 1
	}

	graph := chart.BarChart{
		Title:    fmt.Sprintf("%d Season Standings", year),
		Width:    800,
		Height:   400,
		BarWidth: 50,
		Bars:     bars,
		YAxis: chart.YAxis{
			Name: "Points",
			Range: &chart.ContinuousRange{
				Min: 0,
				Max: axisMax,
			},
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render season chart: %w", err)
	}
	return buffer.Bytes(), nil
}

func renderNoDataPlaceholder(msg string) ([]byte, error) {
	const (
		width  = 400
		height = 200
	)

	graph := chart.Chart{
		Width:  width,
		Height: height,
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, chartDefaults chart.Style) {
				r.SetFontColor(drawing.ColorBlack)
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				x := (cb.Width() - tb.Width()) / 2
				y := (cb.Height() + tb.Height()) / 2
				r.Text(msg, x, y)
			},
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
