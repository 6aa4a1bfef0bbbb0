package model

import (
	"time"

	"gorm.io/gorm"
)

/*

Tag is a shared, uniquely named label attachable to many posts

Id: primary key, use to identify a tag
CreatedAt: time when entity is created
Name: unique tag name, resolved with get-or-create semantics so the same
	name is never duplicated even under concurrent creation
Posts: posts carrying this tag, "many-to-many" relation through PostTag

A tag is referenced by posts, never owned by one, so deleting a post leaves
its tags in place.

*/

type Tag struct {
	Id        string `gorm:"primaryKey"`
	CreatedAt time.Time
	Name      string  `gorm:"uniqueIndex;not null"`
	Posts     []*Post `json:"posts" gorm:"many2many:post_tags;"`
}

/*

PostTag is the join row of the Post/Tag "many-to-many" relation

PostID: post id, part of composite primary key
TagID: tag id, part of composite primary key
CreatedAt: time when relation is created

*/

type PostTag struct {
	PostID    string `gorm:"primaryKey"`
	TagID     string `gorm:"primaryKey"`
	CreatedAt time.Time
}

func (PostTag) BeforeCreate(db *gorm.DB) error {
	return nil
}
