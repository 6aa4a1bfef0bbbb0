package store

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AndriiIshchenko/social-media-api/model"
	"github.com/AndriiIshchenko/social-media-api/utils"
	"github.com/AndriiIshchenko/social-media-api/utils/dotenv"
)

func TestMain(m *testing.M) {
	dotenv.LoadDotEnvsInTests()
	os.Exit(m.Run())
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, _ := utils.CreateTempDB(t)
	return New(db)
}

// create profile, do sanity checks and return it
func createTestProfile(t *testing.T, s *Store, accountID string, nickname string) *model.Profile {
	t.Helper()
	profile, err := s.CreateProfile(model.NewProfileInput{
		AccountID: accountID,
		Nickname:  nickname,
	})
	require.NoError(t, err)
	require.NotEmpty(t, profile.Id)
	require.Equal(t, accountID, profile.AccountID)
	require.Equal(t, nickname, profile.Nickname)
	return profile
}

// create post, do sanity checks and return it
func createTestPost(t *testing.T, s *Store, profileID string, content string, tags ...string) *model.Post {
	t.Helper()
	post, err := s.CreatePost(model.NewPostInput{
		ProfileID: profileID,
		Content:   content,
		Tags:      tags,
	})
	require.NoError(t, err)
	require.NotEmpty(t, post.Id)
	require.Equal(t, content, post.Content)
	require.Equal(t, len(tags), len(post.Tags))
	return post
}

func tagNames(post *model.Post) []string {
	names := make([]string, 0, len(post.Tags))
	for _, tag := range post.Tags {
		names = append(names, tag.Name)
	}
	return names
}
