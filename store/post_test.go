package store

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/AndriiIshchenko/social-media-api/model"
)

func TestCreatePost(t *testing.T) {
	s := newTestStore(t)
	alice := createTestProfile(t, s, "account_1", "alice")

	t.Run("Test Post Creation With Tags", func(t *testing.T) {
		post := createTestPost(t, s, alice.Id, "hello world", "intro", "go")
		require.Equal(t, alice.Id, post.ProfileID)
		require.Equal(t, "alice", post.Profile.Nickname)
		require.Equal(t, "", cmp.Diff(
			[]string{"go", "intro"}, tagNames(post),
			cmpopts.SortSlices(func(a, b string) bool { return a < b })))
	})

	t.Run("Test Shared Tag Is Never Duplicated", func(t *testing.T) {
		createTestPost(t, s, alice.Id, "post one", "python")
		createTestPost(t, s, alice.Id, "post two", "python")

		var count int64
		require.NoError(t, s.DB.Model(&model.Tag{}).
			Where("name = ?", "python").Count(&count).Error)
		require.Equal(t, int64(1), count)

		posts, err := s.ListPosts(model.PostFilter{Tags: []string{"python"}})
		require.NoError(t, err)
		require.Equal(t, 2, len(posts))
	})

	t.Run("Test Missing Content Fails Validation", func(t *testing.T) {
		_, err := s.CreatePost(model.NewPostInput{ProfileID: alice.Id})
		require.True(t, errors.Is(err, ErrValidation))
	})

	t.Run("Test Unknown Author Is Not Found", func(t *testing.T) {
		_, err := s.CreatePost(model.NewPostInput{
			ProfileID: "no_such_profile",
			Content:   "orphan",
		})
		require.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("Test Failed Creation Leaves No Tags Behind", func(t *testing.T) {
		_, err := s.CreatePost(model.NewPostInput{
			ProfileID: alice.Id,
			Content:   "bad tags",
			Tags:      []string{"ok", " "},
		})
		require.True(t, errors.Is(err, ErrValidation))

		var count int64
		require.NoError(t, s.DB.Model(&model.Tag{}).
			Where("name = ?", "ok").Count(&count).Error)
		require.Equal(t, int64(0), count)
	})
}

func TestGetOrCreateTagConcurrently(t *testing.T) {
	s := newTestStore(t)
	alice := createTestProfile(t, s, "account_1", "alice")

	const racers = 8
	var wg sync.WaitGroup
	errs := make([]error, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, errs[n] = s.CreatePost(model.NewPostInput{
				ProfileID: alice.Id,
				Content:   "tagged",
				Tags:      []string{"python"},
			})
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}

	var count int64
	require.NoError(t, s.DB.Model(&model.Tag{}).
		Where("name = ?", "python").Count(&count).Error)
	require.Equal(t, int64(1), count)

	posts, err := s.ListPosts(model.PostFilter{Tags: []string{"python"}})
	require.NoError(t, err)
	require.Equal(t, racers, len(posts))
}

func TestUpdatePost(t *testing.T) {
	s := newTestStore(t)
	alice := createTestProfile(t, s, "account_1", "alice")
	bob := createTestProfile(t, s, "account_2", "bob")

	t.Run("Test Full Replace Swaps The Tag Set", func(t *testing.T) {
		post := createTestPost(t, s, alice.Id, "replace me", "a", "b")

		updated, err := s.UpdatePost(alice.Id, post.Id, model.PostUpdateInput{
			Tags: []string{"c"},
		}, false)
		require.NoError(t, err)
		require.Equal(t, []string{"c"}, tagNames(updated))
		// Content was not supplied, so it stays.
		require.Equal(t, "replace me", updated.Content)
	})

	t.Run("Test Partial Merge Adds On Top", func(t *testing.T) {
		post := createTestPost(t, s, alice.Id, "merge me", "a")

		updated, err := s.UpdatePost(alice.Id, post.Id, model.PostUpdateInput{
			Tags: []string{"b"},
		}, true)
		require.NoError(t, err)
		require.Equal(t, "", cmp.Diff(
			[]string{"a", "b"}, tagNames(updated),
			cmpopts.SortSlices(func(a, b string) bool { return a < b })))
	})

	t.Run("Test Nil Tags Leave Associations Alone", func(t *testing.T) {
		post := createTestPost(t, s, alice.Id, "keep my tags", "a", "b")

		content := "new content"
		updated, err := s.UpdatePost(alice.Id, post.Id, model.PostUpdateInput{
			Content: &content,
		}, false)
		require.NoError(t, err)
		require.Equal(t, "new content", updated.Content)
		require.Equal(t, 2, len(updated.Tags))
	})

	t.Run("Test Empty Tag List Clears In Full Replace", func(t *testing.T) {
		post := createTestPost(t, s, alice.Id, "strip me", "a")

		updated, err := s.UpdatePost(alice.Id, post.Id, model.PostUpdateInput{
			Tags: []string{},
		}, false)
		require.NoError(t, err)
		require.Equal(t, 0, len(updated.Tags))
	})

	t.Run("Test Updating Someone Else's Post Is Forbidden", func(t *testing.T) {
		post := createTestPost(t, s, alice.Id, "mine")

		content := "hijacked"
		_, err := s.UpdatePost(bob.Id, post.Id, model.PostUpdateInput{
			Content: &content,
		}, true)
		require.True(t, errors.Is(err, ErrForbidden))
	})
}

func TestDeletePostIsAlwaysRejected(t *testing.T) {
	s := newTestStore(t)
	alice := createTestProfile(t, s, "account_1", "alice")
	post := createTestPost(t, s, alice.Id, "undeletable")

	// Rejected even for the owner, this is a product decision not an
	// authorization failure.
	err := s.DeletePost(alice.Id, post.Id)
	require.True(t, errors.Is(err, ErrInvalidOperation))

	got, err := s.GetPost(post.Id)
	require.NoError(t, err)
	require.Equal(t, post.Id, got.Id)
}

func TestListPosts(t *testing.T) {
	s := newTestStore(t)
	alice := createTestProfile(t, s, "account_1", "Alice")
	bob := createTestProfile(t, s, "account_2", "bob")

	createTestPost(t, s, alice.Id, "alice one", "Python", "web")
	createTestPost(t, s, alice.Id, "alice two", "go")
	createTestPost(t, s, bob.Id, "bob one", "go", "web")

	t.Run("Test Nickname Substring Filter", func(t *testing.T) {
		posts, err := s.ListPosts(model.PostFilter{Nickname: "lic"})
		require.NoError(t, err)
		require.Equal(t, 2, len(posts))
	})

	t.Run("Test Tag Filter Is Case Insensitive OR", func(t *testing.T) {
		posts, err := s.ListPosts(model.PostFilter{Tags: []string{"python", "GO"}})
		require.NoError(t, err)
		require.Equal(t, 3, len(posts))
	})

	t.Run("Test Combined Filters Intersect", func(t *testing.T) {
		posts, err := s.ListPosts(model.PostFilter{
			Nickname: "alice",
			Tags:     []string{"web"},
		})
		require.NoError(t, err)
		require.Equal(t, 1, len(posts))
		require.Equal(t, "alice one", posts[0].Content)
	})

	t.Run("Test No Filter Returns Everything", func(t *testing.T) {
		posts, err := s.ListPosts(model.PostFilter{})
		require.NoError(t, err)
		require.Equal(t, 3, len(posts))
	})

	t.Run("Test Unmatched Tag Returns Nothing", func(t *testing.T) {
		posts, err := s.ListPosts(model.PostFilter{Tags: []string{"rust"}})
		require.NoError(t, err)
		require.Equal(t, 0, len(posts))
	})
}
