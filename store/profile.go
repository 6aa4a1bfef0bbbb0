package store

import (
	"strings"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"

	"github.com/AndriiIshchenko/social-media-api/model"
)

// CreateProfile creates the single profile an account may own. The
// check-then-insert runs inside one transaction, and the unique indexes on
// account_id and nickname back the check up so a concurrent racer loses with
// a conflict instead of producing a second row.
func (s *Store) CreateProfile(input model.NewProfileInput) (*model.Profile, error) {
	if input.AccountID == "" {
		return nil, validationf("account id is required")
	}
	if strings.TrimSpace(input.Nickname) == "" {
		return nil, validationf("nickname is required")
	}
	if err := validateImageRef(input.AvatarUrl); err != nil {
		return nil, err
	}

	profile := model.Profile{
		Id:        uuid.New().String(),
		AccountID: input.AccountID,
		Nickname:  input.Nickname,
		Bio:       input.Bio,
		BirthDate: input.BirthDate,
		AvatarUrl: input.AvatarUrl,
	}

	err := s.inTransaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Profile{}).
			Where("account_id = ?", input.AccountID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return conflictf("account %s already has a profile", input.AccountID)
		}

		if err := tx.Create(&profile).Error; err != nil {
			if isUniqueViolation(err) {
				return conflictf("profile for account %s or nickname %q already exists", input.AccountID, input.Nickname)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetProfile returns a profile by id.
func (s *Store) GetProfile(profileID string) (*model.Profile, error) {
	var profile model.Profile
	if err := s.DB.Where("id = ?", profileID).First(&profile).Error; err != nil {
		if isNotFound(err) {
			return nil, notFoundf("profile %s does not exist", profileID)
		}
		return nil, err
	}
	return &profile, nil
}

// GetProfileByAccount returns the profile owned by an account, if any.
func (s *Store) GetProfileByAccount(accountID string) (*model.Profile, error) {
	var profile model.Profile
	if err := s.DB.Where("account_id = ?", accountID).First(&profile).Error; err != nil {
		if isNotFound(err) {
			return nil, notFoundf("account %s has no profile", accountID)
		}
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile applies a partial patch to the actor's own profile. Nil
// fields stay untouched.
func (s *Store) UpdateProfile(actorProfileID, profileID string, patch model.ProfileUpdateInput) (*model.Profile, error) {
	if actorProfileID != profileID {
		return nil, forbiddenf("profile %s cannot edit profile %s", actorProfileID, profileID)
	}
	if patch.Nickname != nil && strings.TrimSpace(*patch.Nickname) == "" {
		return nil, validationf("nickname cannot be empty")
	}
	if patch.AvatarUrl != nil {
		if err := validateImageRef(*patch.AvatarUrl); err != nil {
			return nil, err
		}
	}

	var profile model.Profile
	err := s.inTransaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", profileID).First(&profile).Error; err != nil {
			if isNotFound(err) {
				return notFoundf("profile %s does not exist", profileID)
			}
			return err
		}

		if patch.Nickname != nil {
			profile.Nickname = *patch.Nickname
		}
		if patch.Bio != nil {
			profile.Bio = *patch.Bio
		}
		if patch.BirthDate != nil {
			profile.BirthDate = patch.BirthDate
		}
		if patch.AvatarUrl != nil {
			profile.AvatarUrl = *patch.AvatarUrl
		}

		if err := tx.Save(&profile).Error; err != nil {
			if isUniqueViolation(err) {
				return conflictf("nickname %q is taken", profile.Nickname)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// DeleteProfile removes the actor's own profile and everything it owns:
// comments, reactions, follow edges in both directions, and authored posts
// with their child rows. The whole cascade is one transaction so a failure
// midway leaves the store unchanged.
func (s *Store) DeleteProfile(actorProfileID, profileID string) error {
	if actorProfileID != profileID {
		return forbiddenf("profile %s cannot delete profile %s", actorProfileID, profileID)
	}

	return s.inTransaction(func(tx *gorm.DB) error {
		var profile model.Profile
		if err := tx.Where("id = ?", profileID).First(&profile).Error; err != nil {
			if isNotFound(err) {
				return notFoundf("profile %s does not exist", profileID)
			}
			return err
		}

		var postIDs []string
		if err := tx.Model(&model.Post{}).
			Where("profile_id = ?", profileID).
			Pluck("id", &postIDs).Error; err != nil {
			return err
		}

		if len(postIDs) > 0 {
			for _, child := range []interface{}{&model.Reaction{}, &model.Comment{}} {
				if err := tx.Where("post_id IN ?", postIDs).Delete(child).Error; err != nil {
					return err
				}
			}
			if err := tx.Where("post_id IN ?", postIDs).Delete(&model.PostTag{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", postIDs).Delete(&model.Post{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("profile_id = ?", profileID).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("account_id = ?", profile.AccountID).Delete(&model.Reaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("follower_id = ? OR followee_id = ?", profileID, profileID).
			Delete(&model.FollowEdge{}).Error; err != nil {
			return err
		}

		return tx.Delete(&profile).Error
	})
}

// ListProfiles returns profiles matching the filter. The nickname filter is
// a case-insensitive substring match. Unknown filter keys never reach here,
// the transport layer only reads the ones it knows.
func (s *Store) ListProfiles(filter model.ProfileFilter) ([]*model.Profile, error) {
	q := s.DB.Model(&model.Profile{})
	if filter.Nickname != "" {
		q = q.Where("nickname ILIKE ?", "%"+escapeLike(filter.Nickname)+"%")
	}

	var profiles []*model.Profile
	if err := q.Order("created_at").Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

// Follow inserts the directed edge actor -> target. Following yourself is
// rejected, and a duplicate edge is an explicit conflict rather than a
// silent no-op. The composite primary key on follow_edges breaks the tie if
// two racers pass the existence check together.
func (s *Store) Follow(actorProfileID, targetProfileID string) error {
	if actorProfileID == targetProfileID {
		return invalidOperationf("profile %s cannot follow itself", actorProfileID)
	}

	return s.inTransaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Profile{}).
			Where("id IN ?", []string{actorProfileID, targetProfileID}).
			Count(&count).Error; err != nil {
			return err
		}
		if count != 2 {
			return notFoundf("profile %s or %s does not exist", actorProfileID, targetProfileID)
		}

		if err := tx.Model(&model.FollowEdge{}).
			Where("follower_id = ? AND followee_id = ?", actorProfileID, targetProfileID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return conflictf("profile %s already follows %s", actorProfileID, targetProfileID)
		}

		edge := model.FollowEdge{FollowerID: actorProfileID, FolloweeID: targetProfileID}
		if err := tx.Create(&edge).Error; err != nil {
			if isUniqueViolation(err) {
				return conflictf("profile %s already follows %s", actorProfileID, targetProfileID)
			}
			return err
		}
		return nil
	})
}

// Unfollow removes the directed edge actor -> target. Removing an edge that
// does not exist is semantically nonsensical, not merely idempotent.
func (s *Store) Unfollow(actorProfileID, targetProfileID string) error {
	return s.inTransaction(func(tx *gorm.DB) error {
		result := tx.Where("follower_id = ? AND followee_id = ?", actorProfileID, targetProfileID).
			Delete(&model.FollowEdge{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return invalidOperationf("profile %s does not follow %s", actorProfileID, targetProfileID)
		}
		return nil
	})
}

// ListFollowing returns summaries of the profiles the given profile follows.
func (s *Store) ListFollowing(profileID string) ([]*model.ProfileSummary, error) {
	return s.listFollowEdges(profileID, "follow_edges.follower_id", "follow_edges.followee_id")
}

// ListFollowers returns summaries of the profiles following the given
// profile. Followers are not materialized anywhere: this is an inverse scan
// of the same edge table ListFollowing reads, so the two views cannot
// desync.
func (s *Store) ListFollowers(profileID string) ([]*model.ProfileSummary, error) {
	return s.listFollowEdges(profileID, "follow_edges.followee_id", "follow_edges.follower_id")
}

func (s *Store) listFollowEdges(profileID, matchColumn, joinColumn string) ([]*model.ProfileSummary, error) {
	if _, err := s.GetProfile(profileID); err != nil {
		return nil, err
	}

	var profiles []*model.Profile
	if err := s.DB.Model(&model.Profile{}).
		Joins("JOIN follow_edges ON "+joinColumn+" = profiles.id").
		Where(matchColumn+" = ?", profileID).
		Find(&profiles).Error; err != nil {
		return nil, err
	}

	summaries := make([]*model.ProfileSummary, 0, len(profiles))
	if err := copier.Copy(&summaries, &profiles); err != nil {
		return nil, err
	}
	return summaries, nil
}
