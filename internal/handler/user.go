package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mdd-social/mdd-api/internal/config"
	"github.com/mdd-social/mdd-api/internal/model"
	"github.com/mdd-social/mdd-api/internal/repository"
	"github.com/mdd-social/mdd-api/internal/utils"
)

// UserHandler serves the profile endpoints.
type UserHandler struct {
	Cfg           config.Config
	Users         UserStore
	Subscriptions SubscriptionStore
}

func NewUserHandler(cfg config.Config, users UserStore, subs SubscriptionStore) *UserHandler {
	return &UserHandler{Cfg: cfg, Users: users, Subscriptions: subs}
}

// updateUserReq carries a profile update. UserName and email always
// overwrite the stored values. The password is re-hashed only when
// ChangePassword is set and Password is non-empty; sending the old
// password back without the flag changes nothing.
type updateUserReq struct {
	UserName       string `json:"userName"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	ChangePassword bool   `json:"changePassword"`
}

// userResp is the profile representation, including the subjects the
// user is subscribed to.
type userResp struct {
	ID           uint64          `json:"id"`
	UserName     string          `json:"userName"`
	Email        string          `json:"email"`
	Subscription []model.Subject `json:"subscription"`
}

// GetUser returns a user by id together with their subscribed
// subjects.
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	subjects, err := h.Subscriptions.ListSubjectsFor(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	return c.JSON(http.StatusOK, userResp{
		ID: u.ID, UserName: u.UserName, Email: u.Email, Subscription: subjects,
	})
}

// UpdateUser overwrites userName and email and, when requested,
// re-derives the password hash. Returns the updated profile.
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req updateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.UserName = strings.TrimSpace(req.UserName)
	if req.UserName == "" || req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "userName/email required"})
	}

	var newHash string
	if req.ChangePassword && req.Password != "" {
		newHash, err = utils.HashPassword(req.Password, h.Cfg.BcryptCost)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hash password failed"})
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.Update(ctx, id, req.UserName, req.Email, newHash); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		case errors.Is(err, repository.ErrEmailExists):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "email already exists"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
		}
	}

	subjects, err := h.Subscriptions.ListSubjectsFor(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, userResp{
		ID: id, UserName: req.UserName, Email: req.Email, Subscription: subjects,
	})
}

// pathID parses a numeric path parameter. Non-numeric segments are a
// validation error surfaced as 400 by the callers.
func pathID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}
