package domain

import "context"

// Transactor runs fn in a single database transaction carried on ctx.
// Repository calls made with the ctx passed to fn join that transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
