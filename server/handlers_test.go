package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AndriiIshchenko/social-media-api/app_setting"
	"github.com/AndriiIshchenko/social-media-api/store"
	"github.com/AndriiIshchenko/social-media-api/utils"
	"github.com/AndriiIshchenko/social-media-api/utils/dotenv"
)

func TestMain(m *testing.M) {
	dotenv.LoadDotEnvsInTests()
	os.Exit(m.Run())
}

func prepareTestRouter(t *testing.T) (*store.Store, http.Handler) {
	t.Helper()
	db, _ := utils.CreateTempDB(t)
	s := store.New(db)
	return s, NewRouter(s, app_setting.DefaultServerAppSetting())
}

func doJSON(t *testing.T, router http.Handler, method, path, accountID string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if accountID != "" {
		req.Header.Set("X-Account-Id", accountID)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestIdentityRequired(t *testing.T) {
	_, router := prepareTestRouter(t)

	w := doJSON(t, router, "GET", "/api/profiles", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, "GET", "/ping", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestProfileEndpoints(t *testing.T) {
	_, router := prepareTestRouter(t)

	w := doJSON(t, router, "POST", "/api/profiles", "account_1", map[string]string{
		"nickname": "alice",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Same account again conflicts.
	w = doJSON(t, router, "POST", "/api/profiles", "account_1", map[string]string{
		"nickname": "alice_two",
	})
	require.Equal(t, http.StatusConflict, w.Code)

	// The filter is a case-insensitive substring; unknown params are ignored.
	w = doJSON(t, router, "GET", "/api/profiles?nickname=ALI&bogus=1", "account_1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var profiles []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profiles))
	require.Equal(t, 1, len(profiles))
}

func TestPostEndpoints(t *testing.T) {
	s, router := prepareTestRouter(t)

	w := doJSON(t, router, "POST", "/api/profiles", "account_1", map[string]string{
		"nickname": "alice",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, "POST", "/api/posts", "account_1", map[string]interface{}{
		"content": "hello",
		"tags":    []string{"intro"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var post struct {
		Id string `json:"Id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))
	require.NotEmpty(t, post.Id)

	// A profileless account can still react, but not post.
	w = doJSON(t, router, "POST", fmt.Sprintf("/api/posts/%s/like", post.Id), "account_2", map[string]string{
		"like_type": "like",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, "POST", "/api/posts", "account_2", map[string]string{
		"content": "no profile yet",
	})
	require.Equal(t, http.StatusForbidden, w.Code)

	// Invalid reaction type is a 400.
	w = doJSON(t, router, "POST", fmt.Sprintf("/api/posts/%s/like", post.Id), "account_2", map[string]string{
		"like_type": "love",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Deletion is rejected for everyone, including the author.
	w = doJSON(t, router, "DELETE", fmt.Sprintf("/api/posts/%s", post.Id), "account_1", nil)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	got, err := s.GetPost(post.Id)
	require.NoError(t, err)
	require.Equal(t, int64(1), got.LikesAmount)
}
