package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mdd-social/mdd-api/internal/repository"
)

// SubscriptionHandler serves subscribe and unsubscribe. Both routes
// address the relation by the (userId, subjectId) pair in the path.
type SubscriptionHandler struct {
	Users         UserStore
	Subjects      SubjectStore
	Subscriptions SubscriptionStore
}

func NewSubscriptionHandler(users UserStore, subjects SubjectStore, subs SubscriptionStore) *SubscriptionHandler {
	return &SubscriptionHandler{Users: users, Subjects: subjects, Subscriptions: subs}
}

// Subscribe creates the relation. Both ids must resolve (404
// otherwise) and the pair must not already exist (409). The
// composite-key constraint in the subscriptions table backs the
// existence check, so two concurrent identical calls cannot both
// insert: the loser's duplicate-key error surfaces as the same 409.
func (h *SubscriptionHandler) Subscribe(c echo.Context) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	subjectID, err := pathID(c, "subjectId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid subject id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if _, err := h.Subjects.GetByID(ctx, subjectID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "subject not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	exists, err := h.Subscriptions.Exists(ctx, userID, subjectID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if exists {
		return c.JSON(http.StatusConflict, echo.Map{"error": "subscription already exists"})
	}
	if err := h.Subscriptions.Create(ctx, userID, subjectID); err != nil {
		if errors.Is(err, repository.ErrSubscriptionExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "subscription already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "subscribe failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "User successfully subscribed to subject."})
}

// Unsubscribe deletes the relation; a missing pair is 404 and the
// ledger stays unchanged.
func (h *SubscriptionHandler) Unsubscribe(c echo.Context) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	subjectID, err := pathID(c, "subjectId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid subject id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Subscriptions.Delete(ctx, userID, subjectID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "subscription not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "unsubscribe failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "User successfully unsubscribed from subject."})
}
