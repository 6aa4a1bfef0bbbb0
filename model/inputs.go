package model

import (
	"time"
)

// NewProfileInput carries the fields needed to create a profile for an
// account.
type NewProfileInput struct {
	AccountID string     `json:"account_id"`
	Nickname  string     `json:"nickname"`
	Bio       string     `json:"bio"`
	BirthDate *time.Time `json:"birth_date"`
	AvatarUrl string     `json:"avatar_url"`
}

// ProfileUpdateInput is a partial profile patch. Nil fields are left
// untouched.
type ProfileUpdateInput struct {
	Nickname  *string    `json:"nickname"`
	Bio       *string    `json:"bio"`
	BirthDate *time.Time `json:"birth_date"`
	AvatarUrl *string    `json:"avatar_url"`
}

// NewPostInput carries the fields needed to create a post. Tag names are
// resolved with get-or-create semantics.
type NewPostInput struct {
	ProfileID string   `json:"profile_id"`
	Content   string   `json:"content"`
	ImageUrl  string   `json:"image_url"`
	Tags      []string `json:"tags"`
}

// PostUpdateInput is a partial post patch. Nil fields are left untouched.
// A nil Tags slice means "tags not supplied"; an empty non-nil slice in
// full-replace mode clears every tag association.
type PostUpdateInput struct {
	Content  *string  `json:"content"`
	ImageUrl *string  `json:"image_url"`
	Tags     []string `json:"tags"`
}

// NewCommentInput carries the fields needed to attach a comment to a post.
type NewCommentInput struct {
	ProfileID string `json:"profile_id"`
	PostID    string `json:"post_id"`
	Content   string `json:"content"`
}

// ProfileFilter narrows profile listings. Nickname is matched as a
// case-insensitive substring.
type ProfileFilter struct {
	Nickname string
}

// PostFilter narrows post listings. Nickname is a case-insensitive substring
// match on the author's nickname. Tags use OR semantics with
// case-insensitive exact match per name.
type PostFilter struct {
	Nickname string
	Tags     []string
}
