package leaderboarddb

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is a registered player.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID          uuid.UUID `bun:"id,pk,type:uuid"`
	DisplayName string    `bun:"display_name,notnull"`
	Email       string    `bun:"email,notnull,unique"`
	CreatedAt   time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt   time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// League is a private group of users competing against each other.
type League struct {
	bun.BaseModel `bun:"table:leagues,alias:l"`

	ID        uuid.UUID `bun:"id,pk,type:uuid"`
	Name      string    `bun:"name,notnull"`
	OwnerID   uuid.UUID `bun:"owner_id,type:uuid,notnull"`
	JoinCode  string    `bun:"join_code,notnull,unique"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// LeagueMember links a user to a league.
type LeagueMember struct {
	bun.BaseModel `bun:"table:league_members,alias:lm"`

	ID       uuid.UUID `bun:"id,pk,type:uuid"`
	LeagueID uuid.UUID `bun:"league_id,type:uuid,notnull"`
	UserID   uuid.UUID `bun:"user_id,type:uuid,notnull"`
	JoinedAt time.Time `bun:"joined_at,nullzero,notnull,default:current_timestamp"`
}

var (
	_ bun.BeforeInsertHook = (*User)(nil)
	_ bun.BeforeInsertHook = (*League)(nil)
	_ bun.BeforeInsertHook = (*LeagueMember)(nil)
)

func (u *User) BeforeInsert(context.Context, *bun.InsertQuery) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (l *League) BeforeInsert(context.Context, *bun.InsertQuery) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

func (m *LeagueMember) BeforeInsert(context.Context, *bun.InsertQuery) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
