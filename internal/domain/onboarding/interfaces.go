package onboarding

import "context"

// Repository provides persistence for boolean flags.
type Repository interface {
	Get(ctx context.Context, key string) (bool, error)
	Set(ctx context.Context, key string, value bool) error
	Delete(ctx context.Context, key string) error
}
