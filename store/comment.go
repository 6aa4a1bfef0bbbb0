package store

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AndriiIshchenko/social-media-api/model"
)

// AddComment attaches a comment to a post. The author must already own a
// profile; both author and post are checked inside the transaction so the
// insert cannot race a profile deletion.
func (s *Store) AddComment(input model.NewCommentInput) (*model.Comment, error) {
	if strings.TrimSpace(input.Content) == "" {
		return nil, validationf("comment content is required")
	}

	comment := model.Comment{
		Id:        uuid.New().String(),
		PostID:    input.PostID,
		ProfileID: input.ProfileID,
		Content:   input.Content,
	}

	err := s.inTransaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Profile{}).
			Where("id = ?", input.ProfileID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return notFoundf("profile %s does not exist", input.ProfileID)
		}

		if err := tx.Model(&model.Post{}).
			Where("id = ?", input.PostID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return notFoundf("post %s does not exist", input.PostID)
		}

		return tx.Create(&comment).Error
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// UpdateComment rewrites the content of a comment owned by the actor.
func (s *Store) UpdateComment(actorProfileID, commentID, content string) (*model.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, validationf("comment content cannot be empty")
	}

	var comment model.Comment
	err := s.inTransaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", commentID).First(&comment).Error; err != nil {
			if isNotFound(err) {
				return notFoundf("comment %s does not exist", commentID)
			}
			return err
		}
		if comment.ProfileID != actorProfileID {
			return forbiddenf("profile %s does not own comment %s", actorProfileID, commentID)
		}

		comment.Content = content
		return tx.Save(&comment).Error
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment removes a comment owned by the actor.
func (s *Store) DeleteComment(actorProfileID, commentID string) error {
	return s.inTransaction(func(tx *gorm.DB) error {
		var comment model.Comment
		if err := tx.Where("id = ?", commentID).First(&comment).Error; err != nil {
			if isNotFound(err) {
				return notFoundf("comment %s does not exist", commentID)
			}
			return err
		}
		if comment.ProfileID != actorProfileID {
			return forbiddenf("profile %s does not own comment %s", actorProfileID, commentID)
		}
		return tx.Delete(&comment).Error
	})
}

// ListComments returns a post's comments in stable chronological order for
// display under the post.
func (s *Store) ListComments(postID string) ([]*model.Comment, error) {
	if _, err := s.GetPost(postID); err != nil {
		return nil, err
	}

	var comments []*model.Comment
	err := s.DB.Preload("Profile").
		Where("post_id = ?", postID).
		Order("created_at asc, id asc").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}
