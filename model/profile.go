package model

import (
	"time"
)

/*

Profile is the user-facing identity attached to an external account

Id: primary key, use to identify a profile
CreatedAt: time when entity is created
UpdatedAt: time when entity is last modified

AccountID: id of the account issued by the auth collaborator, exactly one
	profile may exist per account (unique index)
Nickname: unique display name, used for substring filtering
Bio: optional free-text self description
BirthDate: optional date of birth
AvatarUrl: opaque reference to an avatar image in external storage, this
	service never validates the content behind it

Following: profiles this profile follows, "many-to-many" self reference
	through FollowEdge. The relation is directional: A following B does not
	imply B following A. Followers are not stored, they are derived from the
	same edge table at query time.
Posts: posts authored by this profile, "has-many" relation

*/

type Profile struct {
	Id        string `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	AccountID string `gorm:"uniqueIndex;not null"`
	Nickname  string `gorm:"uniqueIndex;not null"`
	Bio       string
	BirthDate *time.Time
	AvatarUrl string
	Following []*Profile `json:"following" gorm:"many2many:follow_edges;joinForeignKey:FollowerID;joinReferences:FolloweeID"`
	Posts     []*Post    `json:"posts" gorm:"foreignKey:ProfileID"`
}

// ProfileSummary is the compact profile view returned by follow listings and
// profile search.
type ProfileSummary struct {
	Id        string `json:"id"`
	Nickname  string `json:"nickname"`
	AvatarUrl string `json:"avatar_url"`
}
