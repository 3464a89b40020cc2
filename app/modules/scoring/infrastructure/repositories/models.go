package scoringdb

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	scoringdomain "github.com/podium-club/gridpicks/app/modules/scoring/domain"
)

// EventType enumerates F1 session types.
type EventType string

const (
	EventPractice1        EventType = "practice_1"
	EventPractice2        EventType = "practice_2"
	EventPractice3        EventType = "practice_3"
	EventSprintQualifying EventType = "sprint_qualifying"
	EventSprint           EventType = "sprint"
	EventQualifying       EventType = "qualifying"
	EventRace             EventType = "race"
)

// EventStatus tracks the session lifecycle.
type EventStatus string

const (
	EventScheduled EventStatus = "scheduled"
	EventLive      EventStatus = "live"
	EventCompleted EventStatus = "completed"
	EventCancelled EventStatus = "cancelled"
)

// ResultSource identifies the system a result was ingested from.
type ResultSource string

const (
	SourceFastF1    ResultSource = "fastf1"
	SourceManual    ResultSource = "manual"
	SourceFIATiming ResultSource = "fia_timing"
)

// Audit entity types and actions.
type EntityType string

const (
	EntityUser   EntityType = "user"
	EntityLeague EntityType = "league"
	EntityEvent  EntityType = "event"
	EntityPick   EntityType = "pick"
	EntityResult EntityType = "result"
	EntityScore  EntityType = "score"
)

type AuditAction string

const (
	ActionCreate          AuditAction = "create"
	ActionUpdate          AuditAction = "update"
	ActionDelete          AuditAction = "delete"
	ActionScoreCalculated AuditAction = "score_calculated"
	ActionScoreOverridden AuditAction = "score_overridden"
	ActionDataIngested    AuditAction = "data_ingested"
)

// Event is one F1 session (practice, qualifying, race).
type Event struct {
	bun.BaseModel `bun:"table:events,alias:e"`

	ID          uuid.UUID   `bun:"id,pk,type:uuid"`
	Name        string      `bun:"name,notnull"`
	CircuitID   string      `bun:"circuit_id,notnull"`
	CircuitName string      `bun:"circuit_name,notnull"`
	SessionType EventType   `bun:"session_type,notnull"`
	RoundNumber int         `bun:"round_number,notnull"`
	Year        int         `bun:"year,notnull"`
	StartTime   time.Time   `bun:"start_time,notnull"`
	EndTime     time.Time   `bun:"end_time,notnull"`
	Status      EventStatus `bun:"status,notnull,default:'scheduled'"`
	CreatedAt   time.Time   `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt   time.Time   `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// Pick is a user's prediction for one prop on one event. PropValue is opaque
// text: a bare scalar or a small JSON object (see the domain parsers).
type Pick struct {
	bun.BaseModel `bun:"table:picks,alias:p"`

	ID        uuid.UUID              `bun:"id,pk,type:uuid"`
	UserID    uuid.UUID              `bun:"user_id,type:uuid,notnull"`
	EventID   uuid.UUID              `bun:"event_id,type:uuid,notnull"`
	PropType  scoringdomain.PropType `bun:"prop_type,notnull"`
	PropValue string                 `bun:"prop_value,notnull"`
	Metadata  map[string]any         `bun:"metadata,type:jsonb"`
	CreatedAt time.Time              `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time              `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// Result is the ingested official outcome for one prop on one event.
// Metadata may carry auxiliary data keyed "finishing_order" (driver code ->
// position) or "lap_times" (driver code -> seconds).
type Result struct {
	bun.BaseModel `bun:"table:results,alias:r"`

	ID              uuid.UUID              `bun:"id,pk,type:uuid"`
	EventID         uuid.UUID              `bun:"event_id,type:uuid,notnull"`
	PropType        scoringdomain.PropType `bun:"prop_type,notnull"`
	ActualValue     string                 `bun:"actual_value,notnull"`
	Metadata        map[string]any         `bun:"metadata,type:jsonb"`
	Source          ResultSource           `bun:"source,notnull,default:'fastf1'"`
	SourceReference string                 `bun:"source_reference"`
	IngestedAt      time.Time              `bun:"ingested_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt       time.Time              `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// Score is the persisted outcome of scoring one pick. The unique pick_id
// constraint backs the one-score-per-pick invariant; rescoring updates the
// row in place.
type Score struct {
	bun.BaseModel `bun:"table:scores,alias:s"`

	ID         uuid.UUID      `bun:"id,pk,type:uuid"`
	PickID     uuid.UUID      `bun:"pick_id,type:uuid,notnull,unique"`
	UserID     uuid.UUID      `bun:"user_id,type:uuid,notnull"`
	Points     int            `bun:"points,notnull,default:0"`
	Margin     *float64       `bun:"margin"`
	ExactMatch bool           `bun:"exact_match,notnull,default:false"`
	Metadata   map[string]any `bun:"metadata,type:jsonb"`
	CreatedAt  time.Time      `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt  time.Time      `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// AuditLog is an append-only record of a scoring operation.
type AuditLog struct {
	bun.BaseModel `bun:"table:audit,alias:a"`

	ID          uuid.UUID      `bun:"id,pk,type:uuid"`
	EntityType  EntityType     `bun:"entity_type,notnull"`
	EntityID    uuid.UUID      `bun:"entity_id,type:uuid,notnull"`
	Action      AuditAction    `bun:"action,notnull"`
	Metadata    map[string]any `bun:"metadata,type:jsonb"`
	PerformedBy *uuid.UUID     `bun:"performed_by,type:uuid"`
	PerformedAt time.Time      `bun:"performed_at,nullzero,notnull,default:current_timestamp"`
}

var (
	_ bun.BeforeInsertHook = (*Score)(nil)
	_ bun.BeforeInsertHook = (*AuditLog)(nil)
)

func (s *Score) BeforeInsert(context.Context, *bun.InsertQuery) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (a *AuditLog) BeforeInsert(context.Context, *bun.InsertQuery) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// ResultData converts the stored row into the shape the scoring algorithms
// consume, lifting the auxiliary mappings out of the JSONB metadata.
func (r *Result) ResultData() scoringdomain.ResultData {
	data := scoringdomain.ResultData{ActualValue: r.ActualValue}

	if raw, ok := r.Metadata["finishing_order"].(map[string]any); ok {
		data.FinishingOrder = make(map[string]int, len(raw))
		for driver, pos := range raw {
			if f, ok := pos.(float64); ok {
				data.FinishingOrder[driver] = int(f)
			}
		}
	}

	if raw, ok := r.Metadata["lap_times"].(map[string]any); ok {
		data.LapTimes = make(map[string]float64, len(raw))
		for driver, t := range raw {
			if f, ok := t.(float64); ok {
				data.LapTimes[driver] = f
			}
		}
	}

	return data
}
