package strikes

import "context"

// Store tracks moderation strikes per student key. Implementations must be
// safe for concurrent use. The in-memory store covers the single-instance
// deployment this tool ships as; the Redis store is the extension point for
// running more than one instance.
type Store interface {
	// Increment adds one strike and returns the new count.
	Increment(ctx context.Context, studentKey string) (int, error)

	// Reset clears the student's strikes (good behavior wipes the slate).
	Reset(ctx context.Context, studentKey string) error
}
