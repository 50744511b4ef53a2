package official

import "context"

// Repository defines the interface for roster lookups. Implementations
// may fail on network or store errors; callers fall back to static data.
type Repository interface {
	// List retrieves officials matching the filter
	List(ctx context.Context, filter Filter) ([]*Official, error)
}
