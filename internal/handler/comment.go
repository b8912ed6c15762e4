package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mdd-social/mdd-api/internal/model"
	"github.com/mdd-social/mdd-api/internal/repository"
)

// CommentHandler serves comment creation and listing under a post.
type CommentHandler struct {
	Comments CommentStore
	Posts    PostStore
	Users    UserStore
}

func NewCommentHandler(comments CommentStore, posts PostStore, users UserStore) *CommentHandler {
	return &CommentHandler{Comments: comments, Posts: posts, Users: users}
}

type createCommentReq struct {
	Description string `json:"description"`
	UserID      uint64 `json:"userId"`
}

type commentResp struct {
	ID          uint64    `json:"id"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	UserID      uint64    `json:"userId"`
	PostID      uint64    `json:"postId"`
	UserName    string    `json:"userName"`
}

// AddComment attaches a comment to a post. The post and the author
// must both resolve before any write happens; the date is stamped
// server-side and any client-supplied date is ignored.
func (h *CommentHandler) AddComment(c echo.Context) error {
	postID, err := pathID(c, "postId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid post ID format"})
	}
	var req createCommentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.UserID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user id required"})
	}
	if strings.TrimSpace(req.Description) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "description required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Posts.GetByID(ctx, postID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "post not found"})
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

	comment := model.Comment{
		Description: req.Description,
		AuthorID:    author.ID,
		PostID:      postID,
	}
	if err := h.Comments.Create(ctx, &comment); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create comment failed"})
	}

	return c.JSON(http.StatusCreated, commentResp{
		ID:          comment.ID,
		Description: comment.Description,
		Date:        comment.Date,
		UserID:      comment.AuthorID,
		PostID:      comment.PostID,
		UserName:    author.UserName,
	})
}

// GetComments lists the comments of a post, oldest first.
func (h *CommentHandler) GetComments(c echo.Context) error {
	postID, err := pathID(c, "postId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid post ID format"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	comments, err := h.Comments.ListByPost(ctx, postID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]commentResp, 0, len(comments))
	for _, cm := range comments {
		out = append(out, commentResp{
			ID:          cm.ID,
			Description: cm.Description,
			Date:        cm.Date,
			UserID:      cm.AuthorID,
			PostID:      cm.PostID,
			UserName:    cm.AuthorName,
		})
	}
	return c.JSON(http.StatusOK, out)
}
