// Package router wires the HTTP surface: which handler serves which
// path and which middleware guards it.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/mdd-social/mdd-api/internal/auth"
	"github.com/mdd-social/mdd-api/internal/handler"
	"github.com/mdd-social/mdd-api/internal/middleware"
)

// Handlers groups every handler the router mounts.
type Handlers struct {
	Auth          *handler.AuthHandler
	Users         *handler.UserHandler
	Subjects      *handler.SubjectHandler
	Subscriptions *handler.SubscriptionHandler
	Posts         *handler.PostHandler
	Comments      *handler.CommentHandler
}

// Register mounts all routes. The token middleware runs on every
// request: it binds a principal when a valid bearer token is present
// and aborts with 401 when a presented token is invalid. Route
// authorization is declarative: register and login (and the health
// check) are the only routes outside the RequireAuth group.
func Register(e *echo.Echo, h Handlers, tokens *auth.TokenProvider, cache echo.MiddlewareFunc) {
	e.Use(middleware.Authenticate(tokens))

	e.GET("/healthz", handler.Health)

	// Allow-listed: reachable without a principal.
	e.POST("/auth/register", h.Auth.Register)
	e.POST("/auth/login", h.Auth.Login)

	// Everything else requires a bound principal.
	g := e.Group("", middleware.RequireAuth())

	g.GET("/user/:id", h.Users.GetUser)
	g.PUT("/user/:id", h.Users.UpdateUser)

	g.POST("/subscriptions/:userId/:subjectId", h.Subscriptions.Subscribe)
	g.DELETE("/subscriptions/:userId/:subjectId", h.Subscriptions.Unsubscribe)

	// The full subject list is identical for every user, so it is the
	// one response worth caching.
	if cache != nil {
		g.GET("/subject", h.Subjects.GetSubjects, cache)
	} else {
		g.GET("/subject", h.Subjects.GetSubjects)
	}
	g.GET("/subjects/user/:userId", h.Subjects.GetSubjectsForUser)

	g.GET("/post", h.Posts.GetPosts)
	g.POST("/post", h.Posts.CreatePost)
	g.GET("/post/:id", h.Posts.GetPost)
	g.GET("/post/user/:userId", h.Posts.GetPostsForUser)

	g.POST("/post/:postId/comment", h.Comments.AddComment)
	g.GET("/post/:postId/comment", h.Comments.GetComments)
}
