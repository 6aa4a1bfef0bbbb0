package model

import (
	"time"

	"gorm.io/gorm"
)

/*

FollowEdge is the join row behind the self-referential "many-to-many"
Following relation on Profile

FollowerID: profile that follows, part of composite primary key
FolloweeID: profile being followed, part of composite primary key
CreatedAt: time when relation is created

The composite primary key makes a duplicate follow a unique violation at the
storage layer, on top of the explicit existence check done by the store.

*/

type FollowEdge struct {
	FollowerID string `gorm:"primaryKey"`
	FolloweeID string `gorm:"primaryKey;index"`
	CreatedAt  time.Time
}

func (FollowEdge) BeforeCreate(db *gorm.DB) error {
	return nil
}
