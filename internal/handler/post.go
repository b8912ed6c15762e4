package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mdd-social/mdd-api/internal/model"
	"github.com/mdd-social/mdd-api/internal/queue"
	"github.com/mdd-social/mdd-api/internal/repository"
)

// PostHandler serves the post endpoints: the authenticated feed, the
// full listing, creation and single-post lookup.
type PostHandler struct {
	Posts    PostStore
	Subjects SubjectStore
	Users    UserStore
	Events   EventPublisher // optional; nil disables event publishing
}

func NewPostHandler(posts PostStore, subjects SubjectStore, users UserStore, events EventPublisher) *PostHandler {
	return &PostHandler{Posts: posts, Subjects: subjects, Users: users, Events: events}
}

// ----- DTOs -----

// createPostReq keeps the original wire names: the subject travels as
// "themeId" and the author as "userId".
type createPostReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ThemeID     uint64 `json:"themeId"`
	UserID      uint64 `json:"userId"`
}

type postResp struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	ThemeID     uint64    `json:"themeId"`
	UserID      uint64    `json:"userId"`
}

func toPostResp(p model.Post) postResp {
	return postResp{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Date:        p.Date,
		ThemeID:     p.SubjectID,
		UserID:      p.AuthorID,
	}
}

// CreatePost resolves the subject and the author before anything is
// written; either reference missing means 404 and no partial post.
// After the insert a post.created event is published best-effort.
func (h *PostHandler) CreatePost(c echo.Context) error {
	var req createPostReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" || req.ThemeID == 0 || req.UserID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title/themeId/userId required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	subject, err := h.Subjects.GetByID(ctx, req.ThemeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "subject not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	author, err := h.Users.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	post := model.Post{
		Title:       req.Title,
		Description: req.Description,
		AuthorID:    author.ID,
		SubjectID:   subject.ID,
	}
	if err := h.Posts.Create(ctx, &post); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create post failed"})
	}

	if h.Events != nil {
		// Best-effort: a broker outage must not fail the request.
		_ = h.Events.PublishPostCreated(ctx, queue.PostCreatedEvent{
			PostID:       post.ID,
			Title:        post.Title,
			AuthorID:     author.ID,
			AuthorName:   author.UserName,
			SubjectID:    subject.ID,
			SubjectTitle: subject.Title,
			CreatedAt:    post.Date.UTC().Format(time.RFC3339),
		})
	}

	return c.JSON(http.StatusCreated, toPostResp(post))
}

// GetPost returns a single post by id.
func (h *PostHandler) GetPost(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "post not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toPostResp(p))
}

// GetPosts returns every post. sortBy defaults to "date" and order to
// "desc"; an order other than asc/desc is a validation error.
func (h *PostHandler) GetPosts(c echo.Context) error {
	sortBy := c.QueryParam("sortBy")
	if sortBy == "" {
		sortBy = "date"
	}
	order := c.QueryParam("order")
	if order == "" {
		order = "desc"
	}
	if !strings.EqualFold(order, "asc") && !strings.EqualFold(order, "desc") {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order value: " + order})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	posts, err := h.Posts.ListAll(ctx, sortBy, order)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]postResp, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostResp(p))
	}
	return c.JSON(http.StatusOK, out)
}

// GetPostsForUser returns the feed: every post filed under a subject
// the user is subscribed to. Zero subscriptions yields an empty list,
// not an error.
func (h *PostHandler) GetPostsForUser(c echo.Context) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	posts, err := h.Posts.ListForSubscriber(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]postResp, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostResp(p))
	}
	return c.JSON(http.StatusOK, out)
}
