package leaderboardservice

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

const exportScoreLimit = 1000

// ExportEventScores builds an xlsx workbook for one event: a Standings sheet
// with per-user totals and a Picks sheet with every scored pick.
func (s *LeaderboardService) ExportEventScores(ctx context.Context, eventID uuid.UUID) ([]byte, error) {
	ctx, span := s.tracer.Start(ctx, "leaderboard.ExportEventScores")
	defer span.End()

	standings, err := s.EventLeaderboard(ctx, eventID, 0)
	if err != nil {
		return nil, err
	}

	views, err := s.scoring.GetEventScores(ctx, eventID, exportScoreLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load scores for export: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const standingsSheet = "Standings"
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, standingsSheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	standingsHeader := []any{"Rank", "User", "Points", "Picks Scored", "Exact Matches"}
	if err := f.SetSheetRow(standingsSheet, "A1", &standingsHeader); err != nil {
		return nil, fmt.Errorf("failed to write standings header: %w", err)
	}
	for i, standing := range standings {
		row := []any{
			standing.Rank,
			standing.DisplayName,
			standing.TotalPoints,
			standing.PicksScored,
			standing.ExactMatches,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(standingsSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write standings row: %w", err)
		}
	}

	const picksSheet = "Picks"
	if _, err := f.NewSheet(picksSheet); err != nil {
		return nil, fmt.Errorf("failed to create picks sheet: %w", err)
	}

	picksHeader := []any{"User ID", "Prop", "Prediction", "Points", "Margin", "Exact"}
	if err := f.SetSheetRow(picksSheet, "A1", &picksHeader); err != nil {
		return nil, fmt.Errorf("failed to write picks header: %w", err)
	}
	for i, view := range views {
		margin := ""
		if view.Margin != nil {
			margin = fmt.Sprintf("%.3f", *view.Margin)
		}
		row := []any{
			view.UserID.String(),
			string(view.PropType),
			view.PredictedValue,
			view.Points,
			margin,
			view.ExactMatch,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(picksSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write picks row: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
