package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/social-feed/internal/handler"
    mw "github.com/iliyamo/social-feed/internal/middleware"
)

// RegisterRoutes registers routes that need no handler state.  Currently
// that is only the health check used by load balancers and monitoring.
func RegisterRoutes(e *echo.Echo) {
    e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the register and login endpoints under /api/auth.
// Neither requires a session.  The rate limiter guards both against
// credential stuffing; pass nil to run without it.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, limiter echo.MiddlewareFunc) {
    g := e.Group("/api/auth")
    if limiter != nil {
        g.Use(limiter)
    }
    g.POST("/register", a.Register)
    g.POST("/login", a.Login)
}

// RegisterFeed registers the social-feed resource routes.  Protected
// endpoints live under /api behind the JWT middleware; the public profile
// and comment listings are registered directly on the Echo instance.  The
// cache middleware, when non-nil, is applied to the public comment listing
// only — feed responses embed the viewer's own like state and must never be
// shared between users.
func RegisterFeed(e *echo.Echo, a *handler.AuthHandler, p *handler.PostHandler, u *handler.UserHandler, jwtSecret string, cache echo.MiddlewareFunc) {
    // Public reads.
    e.GET("/api/users/:id", u.GetProfile)
    if cache != nil {
        e.GET("/api/posts/:id/comments", p.ListComments, cache)
    } else {
        e.GET("/api/posts/:id/comments", p.ListComments)
    }

    // Everything below requires a verified access token.
    g := e.Group("/api")
    g.Use(mw.JWTAuth(jwtSecret))

    g.GET("/me", a.Me)

    g.POST("/posts", p.Create)
    g.GET("/posts", p.Feed)
    g.GET("/posts/user/:id", p.ListByUser)

    g.POST("/posts/:id/like", p.Like)
    g.DELETE("/posts/:id/like", p.Unlike)
    g.POST("/posts/:id/comments", p.CreateComment)

    g.POST("/users/photo", u.UpdatePhoto)
    g.DELETE("/users/photo", u.DeletePhoto)
}
