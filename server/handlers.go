// Package server wires the store operations to a REST surface. It holds no
// business logic: handlers translate requests into store calls and store
// errors into status codes.
package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/AndriiIshchenko/social-media-api/app_setting"
	"github.com/AndriiIshchenko/social-media-api/model"
	"github.com/AndriiIshchenko/social-media-api/server/middlewares"
	"github.com/AndriiIshchenko/social-media-api/store"
	. "github.com/AndriiIshchenko/social-media-api/utils/log"
)

// APIHandler exposes the store operations over REST.
type APIHandler struct {
	Store *store.Store
}

// NewRouter builds the gin engine with cors, identity middleware and all
// routes registered.
func NewRouter(s *store.Store, setting app_setting.ServerAppSetting) *gin.Engine {
	if setting.GIN_RELEASE_MODE {
		gin.SetMode(gin.ReleaseMode)
	}

	// Default With the Logger and Recovery middleware already attached
	router := gin.Default()

	if len(setting.CORS_ALLOW_ORIGINS) > 0 {
		config := cors.DefaultConfig()
		config.AllowOrigins = setting.CORS_ALLOW_ORIGINS
		router.Use(cors.New(config))
	} else {
		router.Use(cors.Default())
	}

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	h := &APIHandler{Store: s}
	api := router.Group("/api", middlewares.Identity())
	{
		api.POST("/profiles", h.CreateProfile)
		api.GET("/profiles", h.ListProfiles)
		api.GET("/profiles/:id", h.GetProfile)
		api.PATCH("/profiles/:id", h.UpdateProfile)
		api.DELETE("/profiles/:id", h.DeleteProfile)
		api.POST("/profiles/:id/follow", h.Follow)
		api.POST("/profiles/:id/unfollow", h.Unfollow)
		api.GET("/profiles/:id/following", h.ListFollowing)
		api.GET("/profiles/:id/followers", h.ListFollowers)

		api.POST("/posts", h.CreatePost)
		api.GET("/posts", h.ListPosts)
		api.GET("/posts/:id", h.GetPost)
		api.PUT("/posts/:id", h.ReplacePost)
		api.PATCH("/posts/:id", h.PatchPost)
		api.DELETE("/posts/:id", h.DeletePost)
		api.POST("/posts/:id/like", h.SetReaction)
		api.POST("/posts/:id/comments", h.AddComment)
		api.GET("/posts/:id/comments", h.ListComments)

		api.PATCH("/comments/:id", h.UpdateComment)
		api.DELETE("/comments/:id", h.DeleteComment)
	}

	return router
}

// renderError maps the store taxonomy to HTTP status codes. Unknown errors
// never leak internals to the caller.
func renderError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, store.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, store.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, store.ErrInvalidOperation):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, store.ErrStorageUnavailable):
		status = http.StatusServiceUnavailable
		Log.Error("storage unavailable: ", err)
	default:
		Log.Error("unhandled error: ", err)
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// actorProfile resolves the profile owned by the authenticated account.
// Operations that mutate owned entities require one.
func (h *APIHandler) actorProfile(c *gin.Context) (*model.Profile, error) {
	profile, err := h.Store.GetProfileByAccount(middlewares.AccountID(c))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.WithMessage(store.ErrForbidden, "account must create a profile to perform this action")
		}
		return nil, err
	}
	return profile, nil
}

func (h *APIHandler) CreateProfile(c *gin.Context) {
	var input model.NewProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		renderError(c, errors.WithMessage(store.ErrValidation, err.Error()))
		return
	}
	// The account owning the new profile is always the caller's, whatever
	// the body claims.
	input.AccountID = middlewares.AccountID(c)

	profile, err := h.Store.CreateProfile(input)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, profile)
}

func (h *APIHandler) ListProfiles(c *gin.Context) {
	filter := model.ProfileFilter{Nickname: c.Query("nickname")}
	profiles, err := h.Store.ListProfiles(filter)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, profiles)
}

func (h *APIHandler) GetProfile(c *gin.Context) {
	profile, err := h.Store.GetProfile(c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *APIHandler) UpdateProfile(c *gin.Context) {
	actor, err := h.actorProfile(c)
	if err != nil {
		renderError(c, err)
		return
	}

	var patch model.ProfileUpdateInput
	if err := c.ShouldBindJSON(&patch); err != nil {
		renderError(c, errors.WithMessage(store.ErrValidation, err.Error()))
		return
	}

	profile, err := h.Store.UpdateProfile(actor.Id, c.Param("id"), patch)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *APIHandler) DeleteProfile(c *gin.Context) {
	actor, err := h.actorProfile(c)
	if err != nil {
		renderError(c, err)
		return
	}

	if err := h.Store.DeleteProfile(actor.Id, c.Param("id")); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *APIHandler) Follow(c *gin.Context) {
	actor, err := h.actorProfile(c)
	if err != nil {
		renderError(c, err)
		return
	}

	if err := h.Store.Follow(actor.Id, c.Param("id")); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "followed"})
}

func (h *APIHandler) Unfollow(c *gin.Context) {
	actor, err := h.actorProfile(c)
	if err != nil {
		renderError(c, err)
		return
	}

	if err := h.Store.Unfollow(actor.Id, c.Param("id")); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "unfollowed"})
}

func (h *APIHandler) ListFollowing(c *gin.Context) {
	summaries, err := h.Store.ListFollowing(c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaries)
}

func (h *APIHandler) ListFollowers(c *gin.Context) {
	summaries, err := h.Store.ListFollowers(c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaries)
}

func (h *APIHandler) CreatePost(c *gin.Context) {
	actor, err := h.actorProfile(c)
	if err != nil {
		renderError(c, err)
		return
	}

	var input model.NewPostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		renderError(c, errors.WithMessage(store.ErrValidation, err.Error()))
		return
	}
	input.ProfileID = actor.Id

	post, err := h.Store.CreatePost(input)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (h *APIHandler) ListPosts(c *gin.Context) {
	// Unknown query params are ignored on purpose, only the filters below
	// are part of the contract.
	filter := model.PostFilter{
		Nickname: c.Query("nickname"),
		Tags:     c.QueryArray("tag"),
	}
	posts, err := h.Store.ListPosts(filter)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *APIHandler) GetPost(c *gin.Context) {
	post, err := h.Store.GetPost(c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// ReplacePost is the full-replace update mode: supplied tags become the
// post's entire tag set.
func (h *APIHandler) ReplacePost(c *gin.Context) {
	h.updatePost(c, false)
}

// PatchPost is the partial-merge update mode: supplied tags are added on top
// of the existing ones.
func (h *APIHandler) PatchPost(c *gin.Context) {
	h.updatePost(c, true)
}

func (h *APIHandler) updatePost(c *gin.Context, partial bool) {
	actor, err := h.actorProfile(c)
	if err != nil {
		renderError(c, err)
		return
	}

	var patch model.PostUpdateInput
	if err := c.ShouldBindJSON(&patch); err != nil {
		renderError(c, errors.WithMessage(store.ErrValidation, err.Error()))
		return
	}

	post, err := h.Store.UpdatePost(actor.Id, c.Param("id"), patch, partial)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *APIHandler) DeletePost(c *gin.Context) {
	// Rejected regardless of caller identity, no actor lookup on purpose.
	renderError(c, h.Store.DeletePost("", c.Param("id")))
}

func (h *APIHandler) SetReaction(c *gin.Context) {
	var body struct {
		LikeType string `json:"like_type"`
	}
	// The type may arrive as a query param or in the body, body wins.
	likeType := c.Query("like_type")
	if err := c.ShouldBindJSON(&body); err == nil && body.LikeType != "" {
		likeType = body.LikeType
	}

	reaction, err := h.Store.SetReaction(
		middlewares.AccountID(c), c.Param("id"), model.ReactionType(likeType))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reaction)
}

func (h *APIHandler) AddComment(c *gin.Context) {
	actor, err := h.actorProfile(c)
	if err != nil {
		renderError(c, err)
		return
	}

	var input model.NewCommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		renderError(c, errors.WithMessage(store.ErrValidation, err.Error()))
		return
	}
	input.ProfileID = actor.Id
	input.PostID = c.Param("id")

	comment, err := h.Store.AddComment(input)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *APIHandler) ListComments(c *gin.Context) {
	comments, err := h.Store.ListComments(c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (h *APIHandler) UpdateComment(c *gin.Context) {
	actor, err := h.actorProfile(c)
	if err != nil {
		renderError(c, err)
		return
	}

	var body struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		renderError(c, errors.WithMessage(store.ErrValidation, err.Error()))
		return
	}

	comment, err := h.Store.UpdateComment(actor.Id, c.Param("id"), body.Content)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (h *APIHandler) DeleteComment(c *gin.Context) {
	actor, err := h.actorProfile(c)
	if err != nil {
		renderError(c, err)
		return
	}

	if err := h.Store.DeleteComment(actor.Id, c.Param("id")); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
