package handler

import (
	"context"
	"strconv"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"

	"freightquote/prometheus"
)

// Handler wires the HTTP surface to the persistence layer and session store
type Handler struct {
	Store    Store
	Sessions sessions.Store
}

// New creates a new Handler
func New(store Store, sessionStore sessions.Store) *Handler {
	return &Handler{Store: store, Sessions: sessionStore}
}

// callerID returns the authenticated user id set by the auth middleware
func callerID(c echo.Context) (uint, bool) {
	id, ok := c.Get("user_id").(uint)
	return id, ok
}

// callerRole returns the authenticated role set by the auth middleware
func callerRole(c echo.Context) string {
	role, _ := c.Get("role").(string)
	return role
}

// pathID parses a positive integer path parameter
func pathID(c echo.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// updateOpenQuoteCount refreshes the open-quotes gauge; runs off the request
// path, errors are dropped.
func (h *Handler) updateOpenQuoteCount() {
	count, err := h.Store.CountOpenQuotes(context.Background())
	if err != nil {
		return
	}
	prometheus.UpdateOpenQuotes(int(count))
}
