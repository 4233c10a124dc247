package testutil

import (
	"context"
	"net/http"
	"time"

	id "contacts/pkg/domain"
	"contacts/pkg/requestcontext"
)

// WithUserID adds a principal to the request context.
// This simulates what the auth middleware does for authenticated requests.
func WithUserID(req *http.Request, userID id.UserID) *http.Request {
	return req.WithContext(requestcontext.WithUserID(req.Context(), userID))
}

// WithRequestTime pins the request-scoped clock.
func WithRequestTime(req *http.Request, t time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), t))
}

// WithAuth is WithUserID plus a pinned request time, the typical state of a
// request that has passed the global middleware chain.
func WithAuth(req *http.Request, userID id.UserID, at time.Time) *http.Request {
	ctx := requestcontext.WithUserID(req.Context(), userID)
	return req.WithContext(requestcontext.WithTime(ctx, at))
}

// WithContextValue adds an arbitrary key-value pair to the request context.
func WithContextValue(req *http.Request, key, value any) *http.Request {
	ctx := context.WithValue(req.Context(), key, value)
	return req.WithContext(ctx)
}
