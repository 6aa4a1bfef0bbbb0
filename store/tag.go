package store

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AndriiIshchenko/social-media-api/model"
)

// getOrCreateTags resolves each name to a tag row, creating missing ones.
// The insert uses ON CONFLICT DO NOTHING against the unique name index, so
// two transactions racing on the same new name both end up referencing the
// single surviving row. Matching is case-sensitive exact, same as creation.
func getOrCreateTags(tx *gorm.DB, names []string) ([]*model.Tag, error) {
	tags := make([]*model.Tag, 0, len(names))
	seen := make(map[string]bool)

	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			return nil, validationf("tag name cannot be empty")
		}
		if seen[name] {
			continue
		}
		seen[name] = true

		tag := model.Tag{Id: uuid.New().String(), Name: name}
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&tag)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			// Lost the race or the tag predates us, read the winner.
			if err := tx.Where("name = ?", name).First(&tag).Error; err != nil {
				return nil, err
			}
		}
		tags = append(tags, &tag)
	}
	return tags, nil
}

// ListTags returns all known tags in creation order.
func (s *Store) ListTags() ([]*model.Tag, error) {
	var tags []*model.Tag
	if err := s.DB.Order("created_at").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}
