package store

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AndriiIshchenko/social-media-api/model"
)

// derivedAmounts computes the per-post aggregates at query time. The counts
// are never stored anywhere, so they cannot drift from the reaction and
// comment rows they are counted from.
const derivedAmounts = `posts.*,
	(SELECT count(*) FROM reactions WHERE reactions.post_id = posts.id AND reactions.reaction_type = 'like') AS likes_amount,
	(SELECT count(*) FROM reactions WHERE reactions.post_id = posts.id AND reactions.reaction_type = 'dislike') AS dislikes_amount,
	(SELECT count(*) FROM comments WHERE comments.post_id = posts.id) AS comments_amount`

// CreatePost creates a post for the authoring profile, resolving every tag
// name with get-or-create semantics. Post and tag associations commit
// together or not at all.
func (s *Store) CreatePost(input model.NewPostInput) (*model.Post, error) {
	if strings.TrimSpace(input.Content) == "" {
		return nil, validationf("post content is required")
	}
	if err := validateImageRef(input.ImageUrl); err != nil {
		return nil, err
	}

	post := model.Post{
		Id:        uuid.New().String(),
		ProfileID: input.ProfileID,
		Content:   input.Content,
		ImageUrl:  input.ImageUrl,
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

		tags, err := getOrCreateTags(tx, input.Tags)
		if err != nil {
			return err
		}

		if err := tx.Create(&post).Error; err != nil {
			return err
		}
		if len(tags) > 0 {
			if err := tx.Model(&post).Association("Tags").Append(tags); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetPost(post.Id)
}

// GetPost returns a post with its author, tags and derived counts.
func (s *Store) GetPost(postID string) (*model.Post, error) {
	var post model.Post
	err := s.DB.Model(&model.Post{}).
		Select(derivedAmounts).
		Preload("Profile").
		Preload("Tags").
		Where("posts.id = ?", postID).
		First(&post).Error
	if err != nil {
		if isNotFound(err) {
			return nil, notFoundf("post %s does not exist", postID)
		}
		return nil, err
	}
	return &post, nil
}

// UpdatePost applies a partial patch to a post owned by the actor. Content
// and image are only touched when supplied, in both modes. Tag semantics
// differ: partial merge adds the supplied tags on top of the existing ones,
// full replace drops every association and re-adds only the supplied list.
// A nil tag list means "not supplied" and leaves associations alone either
// way.
func (s *Store) UpdatePost(actorProfileID, postID string, patch model.PostUpdateInput, partial bool) (*model.Post, error) {
	if patch.Content != nil && strings.TrimSpace(*patch.Content) == "" {
		return nil, validationf("post content cannot be empty")
	}
	if patch.ImageUrl != nil {
		if err := validateImageRef(*patch.ImageUrl); err != nil {
			return nil, err
		}
	}

	err := s.inTransaction(func(tx *gorm.DB) error {
		var post model.Post
		if err := tx.Where("id = ?", postID).First(&post).Error; err != nil {
			if isNotFound(err) {
				return notFoundf("post %s does not exist", postID)
			}
			return err
		}
		if post.ProfileID != actorProfileID {
			return forbiddenf("profile %s does not own post %s", actorProfileID, postID)
		}

		if patch.Content != nil {
			post.Content = *patch.Content
		}
		if patch.ImageUrl != nil {
			post.ImageUrl = *patch.ImageUrl
		}
		if err := tx.Save(&post).Error; err != nil {
			return err
		}

		if patch.Tags == nil {
			return nil
		}
		tags, err := getOrCreateTags(tx, patch.Tags)
		if err != nil {
			return err
		}
		if partial {
			return tx.Model(&post).Association("Tags").Append(tags)
		}
		return tx.Model(&post).Association("Tags").Replace(tags)
	})
	if err != nil {
		return nil, err
	}
	return s.GetPost(postID)
}

// DeletePost always fails. Not offering post deletion is a product decision,
// the operation exists so the contract rejects the request definitively
// instead of leaving it unimplemented.
func (s *Store) DeletePost(actorProfileID, postID string) error {
	return invalidOperationf("posts cannot be deleted")
}

// ListPosts returns posts matching the filter, newest first, with derived
// counts attached. Tag filtering is OR semantics: a post matches when it
// carries any of the requested names, compared case-insensitively.
func (s *Store) ListPosts(filter model.PostFilter) ([]*model.Post, error) {
	q := s.DB.Model(&model.Post{}).
		Select(derivedAmounts).
		Preload("Profile").
		Preload("Tags")

	if filter.Nickname != "" {
		q = q.Joins("JOIN profiles ON profiles.id = posts.profile_id").
			Where("profiles.nickname ILIKE ?", "%"+escapeLike(filter.Nickname)+"%")
	}

	if len(filter.Tags) > 0 {
		lowered := make([]string, 0, len(filter.Tags))
		for _, tag := range filter.Tags {
			lowered = append(lowered, strings.ToLower(tag))
		}
		tagged := s.DB.Model(&model.PostTag{}).
			Select("post_tags.post_id").
			Joins("JOIN tags ON tags.id = post_tags.tag_id").
			Where("lower(tags.name) IN ?", lowered)
		q = q.Where("posts.id IN (?)", tagged)
	}

	var posts []*model.Post
	if err := q.Order("posts.created_at desc").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}
