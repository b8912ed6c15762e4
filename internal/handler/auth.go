package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mdd-social/mdd-api/internal/auth"
	"github.com/mdd-social/mdd-api/internal/config"
	"github.com/mdd-social/mdd-api/internal/repository"
	"github.com/mdd-social/mdd-api/internal/utils"
)

// AuthHandler bundles dependencies for the register and login
// endpoints, the only two routes reachable without a principal.
type AuthHandler struct {
	Cfg    config.Config
	Users  UserStore
	Tokens *auth.TokenProvider
}

func NewAuthHandler(cfg config.Config, users UserStore, tokens *auth.TokenProvider) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users, Tokens: tokens}
}

// ----- DTOs -----

type registerReq struct {
	UserName string `json:"userName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
type credentialsReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authResp is returned by both register and login; the token is the
// client's credential for every protected route.
type authResp struct {
	ID       uint64 `json:"id"`
	UserName string `json:"userName"`
	Email    string `json:"email"`
	Token    string `json:"token"`
}

// Register creates the user and returns the identity token
// immediately. A duplicate email yields 400 and no second row.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.UserName = strings.TrimSpace(req.UserName)
	if req.UserName == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "userName/email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.UserName, req.Email, req.Password, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	token, err := h.Tokens.Issue(auth.Principal{ID: uid, Email: req.Email, UserName: req.UserName})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}

	return c.JSON(http.StatusCreated, authResp{
		ID: uid, UserName: req.UserName, Email: req.Email, Token: token,
	})
}

// Login verifies the credentials and returns a fresh token. An
// unknown email is 404, a wrong password 400; no token is issued on
// either path.
func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown user"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid password"})
	}

	token, err := h.Tokens.Issue(auth.Principal{ID: u.ID, Email: u.Email, UserName: u.UserName})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}

	return c.JSON(http.StatusOK, authResp{
		ID: u.ID, UserName: u.UserName, Email: u.Email, Token: token,
	})
}
