package scoringservice

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/podium-club/gridpicks/app/eventbus"
	scoringdb "github.com/podium-club/gridpicks/app/modules/scoring/infrastructure/repositories"
)

// FakeRepository provides a programmable in-memory stub for the
// scoringdb.Repository interface. Defaults act on the in-memory maps; each
// method can be overridden through its *Func field.
type FakeRepository struct {
	trace []string

	Events  map[uuid.UUID]*scoringdb.Event
	Results []scoringdb.Result
	Picks   []scoringdb.Pick
	Scores  map[uuid.UUID]*scoringdb.Score // keyed by pick ID
	Audits  []scoringdb.AuditLog

	GetEventFunc         func(ctx context.Context, db bun.IDB, eventID uuid.UUID) (*scoringdb.Event, error)
	ListEventResultsFunc func(ctx context.Context, db bun.IDB, eventID uuid.UUID) ([]scoringdb.Result, error)
	ListEventPicksFunc   func(ctx context.Context, db bun.IDB, eventID uuid.UUID) ([]scoringdb.Pick, error)
	GetScoreByPickIDFunc func(ctx context.Context, db bun.IDB, pickID uuid.UUID) (*scoringdb.Score, error)
	CreateScoreFunc      func(ctx context.Context, db bun.IDB, score *scoringdb.Score) error
	UpdateScoreFunc      func(ctx context.Context, db bun.IDB, score *scoringdb.Score) error
	CreateAuditLogFunc   func(ctx context.Context, db bun.IDB, entry *scoringdb.AuditLog) error
	ListEventScoresFunc  func(ctx context.Context, db bun.IDB, eventID uuid.UUID, limit int) ([]scoringdb.EventScoreRow, error)
}

// NewFakeRepository initializes a FakeRepository with empty stores.
func NewFakeRepository() *FakeRepository {
	return &FakeRepository{
		Events: map[uuid.UUID]*scoringdb.Event{},
		Scores: map[uuid.UUID]*scoringdb.Score{},
	}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeRepository) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeRepository) GetEvent(ctx context.Context, db bun.IDB, eventID uuid.UUID) (*scoringdb.Event, error) {
	f.record("GetEvent")
	if f.GetEventFunc != nil {
		return f.GetEventFunc(ctx, db, eventID)
	}
	event, ok := f.Events[eventID]
	if !ok {
		return nil, scoringdb.ErrEventNotFound
	}
	return event, nil
}

func (f *FakeRepository) ListEventResults(ctx context.Context, db bun.IDB, eventID uuid.UUID) ([]scoringdb.Result, error) {
	f.record("ListEventResults")
	if f.ListEventResultsFunc != nil {
		return f.ListEventResultsFunc(ctx, db, eventID)
	}
	var results []scoringdb.Result
	for _, r := range f.Results {
		if r.EventID == eventID {
			results = append(results, r)
		}
	}
	return results, nil
}

func (f *FakeRepository) ListEventPicks(ctx context.Context, db bun.IDB, eventID uuid.UUID) ([]scoringdb.Pick, error) {
	f.record("ListEventPicks")
	if f.ListEventPicksFunc != nil {
		return f.ListEventPicksFunc(ctx, db, eventID)
	}
	var picks []scoringdb.Pick
	for _, p := range f.Picks {
		if p.EventID == eventID {
			picks = append(picks, p)
		}
	}
	return picks, nil
}

func (f *FakeRepository) GetScoreByPickID(ctx context.Context, db bun.IDB, pickID uuid.UUID) (*scoringdb.Score, error) {
	f.record("GetScoreByPickID")
	if f.GetScoreByPickIDFunc != nil {
		return f.GetScoreByPickIDFunc(ctx, db, pickID)
	}
	score, ok := f.Scores[pickID]
	if !ok {
		return nil, scoringdb.ErrScoreNotFound
	}
	copied := *score
	return &copied, nil
}

func (f *FakeRepository) CreateScore(ctx context.Context, db bun.IDB, score *scoringdb.Score) error {
	f.record("CreateScore")
	if f.CreateScoreFunc != nil {
		return f.CreateScoreFunc(ctx, db, score)
	}
	if score.ID == uuid.Nil {
		score.ID = uuid.New()
	}
	copied := *score
	f.Scores[score.PickID] = &copied
	return nil
}

func (f *FakeRepository) UpdateScore(ctx context.Context, db bun.IDB, score *scoringdb.Score) error {
	f.record("UpdateScore")
	if f.UpdateScoreFunc != nil {
		return f.UpdateScoreFunc(ctx, db, score)
	}
	copied := *score
	f.Scores[score.PickID] = &copied
	return nil
}

func (f *FakeRepository) CreateAuditLog(ctx context.Context, db bun.IDB, entry *scoringdb.AuditLog) error {
	f.record("CreateAuditLog")
	if f.CreateAuditLogFunc != nil {
		return f.CreateAuditLogFunc(ctx, db, entry)
	}
	f.Audits = append(f.Audits, *entry)
	return nil
}

func (f *FakeRepository) ListEventScores(ctx context.Context, db bun.IDB, eventID uuid.UUID, limit int) ([]scoringdb.EventScoreRow, error) {
	f.record("ListEventScores")
	if f.ListEventScoresFunc != nil {
		return f.ListEventScoresFunc(ctx, db, eventID, limit)
	}
	var rows []scoringdb.EventScoreRow
	for _, p := range f.Picks {
		if p.EventID != eventID {
			continue
		}
		if score, ok := f.Scores[p.ID]; ok {
			rows = append(rows, scoringdb.EventScoreRow{Score: *score, Pick: p})
		}
		if len(rows) == limit {
			break
		}
	}
	return rows, nil
}

// Ensure the fake satisfies the interface.
var _ scoringdb.Repository = (*FakeRepository)(nil)

// FakeEventBus captures published payloads per topic.
type FakeEventBus struct {
	Published map[string][]any
	Err       error
}

func NewFakeEventBus() *FakeEventBus {
	return &FakeEventBus{Published: map[string][]any{}}
}

func (f *FakeEventBus) Publish(_ context.Context, topic string, payload any) error {
	if f.Err != nil {
		return f.Err
	}
	f.Published[topic] = append(f.Published[topic], payload)
	return nil
}

func (f *FakeEventBus) Subscriber() message.Subscriber { return nil }

func (f *FakeEventBus) Close() error { return nil }

var _ eventbus.EventBus = (*FakeEventBus)(nil)
