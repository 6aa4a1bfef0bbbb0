package store

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AndriiIshchenko/social-media-api/model"
)

// SetReaction records the account's reaction toward a post as a single
// atomic upsert keyed by the (account_id, post_id) composite primary key.
// If no row exists one is created with the requested type, including an
// explicit neutral; if a row exists its type is overwritten. Concurrent
// calls for the same pair serialize on the primary key, so exactly one row
// survives and it holds the type of whichever writer committed last.
//
// The type is required input. There is no default: a missing or unknown
// type fails validation before anything is written, so a neutral row can
// only ever exist because a caller explicitly asked for it.
func (s *Store) SetReaction(accountID, postID string, reactionType model.ReactionType) (*model.Reaction, error) {
	if !reactionType.Valid() {
		return nil, validationf("reaction type %q is not one of like, dislike, neutral", reactionType)
	}
	if accountID == "" {
		return nil, validationf("account id is required")
	}

	reaction := model.Reaction{
		AccountID: accountID,
		PostID:    postID,
		Type:      reactionType,
	}

	err := s.inTransaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Post{}).
			Where("id = ?", postID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return notFoundf("post %s does not exist", postID)
		}

		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "account_id"}, {Name: "post_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"reaction_type", "updated_at"}),
		}).Create(&reaction).Error
	})
	if err != nil {
		return nil, err
	}
	return &reaction, nil
}

// GetReaction returns the stored reaction for a (account, post) pair, or
// not-found when the pair never reacted. A neutral row is a real reaction
// and is returned as such.
func (s *Store) GetReaction(accountID, postID string) (*model.Reaction, error) {
	var reaction model.Reaction
	err := s.DB.Where("account_id = ? AND post_id = ?", accountID, postID).
		First(&reaction).Error
	if err != nil {
		if isNotFound(err) {
			return nil, notFoundf("account %s has no reaction on post %s", accountID, postID)
		}
		return nil, err
	}
	return &reaction, nil
}
