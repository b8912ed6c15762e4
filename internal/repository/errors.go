// Package repository implements durable storage over MySQL. Sentinel
// errors defined here let handlers distinguish failure scenarios
// without inspecting driver errors: ErrNotFound maps to HTTP 404 and
// ErrSubscriptionExists to HTTP 409.
package repository

import "errors"

// ErrNotFound is returned when a referenced user, subject, post,
// comment or subscription does not exist.
var ErrNotFound = errors.New("not found")

// ErrSubscriptionExists is returned when a (user, subject) pair is
// already present in the subscriptions table, whether caught by the
// application-level existence check or by the composite-key
// constraint under a concurrent duplicate insert.
var ErrSubscriptionExists = errors.New("subscription already exists")
