package model

import (
	"time"
)

// ReactionType is the tri-state a stored reaction row can hold. "Absent" is
// intentionally not a variant: a pair that never reacted has no row at all,
// which keeps "explicitly cleared" (a neutral row) distinct from "never
// reacted" (no row).
type ReactionType string

const (
	ReactionLike    ReactionType = "like"
	ReactionDislike ReactionType = "dislike"
	ReactionNeutral ReactionType = "neutral"
)

// Valid reports whether t is one of the three storable reaction types.
func (t ReactionType) Valid() bool {
	switch t {
	case ReactionLike, ReactionDislike, ReactionNeutral:
		return true
	}
	return false
}

/*

Reaction is the reaction an account holds toward a post

AccountID: reacting account, part of composite primary key
PostID: post reacted to, part of composite primary key
CreatedAt: time when the row is first created
UpdatedAt: time of the latest type transition
Type: one of like/dislike/neutral

The composite primary key enforces at most one row per (account, post) pair,
a second reaction from the same account mutates the existing row through an
upsert rather than inserting a new one.

*/

type Reaction struct {
	AccountID string `gorm:"primaryKey"`
	PostID    string `gorm:"primaryKey;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Type      ReactionType `gorm:"column:reaction_type;not null"`
}
