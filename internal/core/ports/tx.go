package ports

import "context"

// Tx runs fn inside one storage transaction. Check-then-act invariants
// (one active nomination per nominator, the finalist cap) must run their
// read and their write under the same Run call.
type Tx interface {
	Run(ctx context.Context, fn func(ctx context.Context) error) error
}
