package cart

import "context"

type Kind string

const (
	KindInfo  Kind = "info"
	KindError Kind = "error"
)

// Notification is a blocking, user-facing message (an alert on a page,
// stderr in the CLI).
type Notification struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// Notifier receives the ctx of the operation that raised n so hosts can
// route it to the right request.
type Notifier func(ctx context.Context, n Notification)

// Navigator moves the host to another page.
type Navigator func(ctx context.Context, path string)
