package model

import (
	"time"
)

/*

Comment is a child record attached to a post

Id: primary key, use to identify a comment
CreatedAt: time when entity is created, comments under a post are listed in
	ascending creation order
UpdatedAt: time when entity is last modified

PostID: post this comment is attached to, "belongs-to" relation
ProfileID:
Profile: authoring profile, "belongs-to" relation
Content: comment's content in plain text

*/

type Comment struct {
	Id        string `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	PostID    string   `gorm:"index;not null"`
	ProfileID string   `gorm:"index;not null"`
	Profile   *Profile `json:"profile"`
	Content   string
}
