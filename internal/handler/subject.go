package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// SubjectHandler serves the read-only subject endpoints.
type SubjectHandler struct {
	Subjects      SubjectStore
	Subscriptions SubscriptionStore
}

func NewSubjectHandler(subjects SubjectStore, subs SubscriptionStore) *SubjectHandler {
	return &SubjectHandler{Subjects: subjects, Subscriptions: subs}
}

// GetSubjects returns every subject, wrapped under a "subject" key.
func (h *SubjectHandler) GetSubjects(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	subjects, err := h.Subjects.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"subject": subjects})
}

// GetSubjectsForUser returns the subjects a user is subscribed to. A
// user with no subscriptions gets an empty list.
func (h *SubjectHandler) GetSubjectsForUser(c echo.Context) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	subjects, err := h.Subscriptions.ListSubjectsFor(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, subjects)
}
