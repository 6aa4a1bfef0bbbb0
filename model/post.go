package model

import (
	"time"
)

/*

Post is a piece of content published by a profile

Id: primary key, use to identify a post
CreatedAt: time when entity is created
UpdatedAt: time when entity is last modified on write

ProfileID:
Profile: authoring profile, "belongs-to" relation
Content: post's content in plain text
ImageUrl: opaque reference to an attached image in external storage

Tags: labels attached to this post, "many-to-many" relation through PostTag

LikesAmount, DislikesAmount, CommentsAmount: derived aggregates computed by
	the store's read queries, never persisted. Keeping them out of the table
	means they can never drift from the reaction/comment rows they are
	counted from.

*/

type Post struct {
	Id        string `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	ProfileID string   `gorm:"index;not null"`
	Profile   *Profile `json:"profile"`
	Content   string
	ImageUrl  string
	Tags      []*Tag `json:"tags" gorm:"many2many:post_tags;"`

	LikesAmount    int64 `json:"likes_amount" gorm:"->;-:migration"`
	DislikesAmount int64 `json:"dislikes_amount" gorm:"->;-:migration"`
	CommentsAmount int64 `json:"comments_amount" gorm:"->;-:migration"`
}
