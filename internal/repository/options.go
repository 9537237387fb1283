package repository

// ListSessionsOptions provides filtering options for listing archived sessions
type ListSessionsOptions struct {
	SinceMs  int64
	WorkOnly bool
	Limit    int
	Offset   int
}

// SearchOptions provides filtering options for notes search
type SearchOptions struct {
	WorkOnly bool
	Limit    int
	Offset   int
}
