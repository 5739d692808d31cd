package driven

import "context"

// ChangeWatcher reports changes to persisted state made outside this process,
// for example a CLI command run while the TUI is open.
type ChangeWatcher interface {
	// Watch starts watching and returns a channel that receives one value per
	// burst of changes. The channel is closed when ctx is cancelled.
	Watch(ctx context.Context) (<-chan struct{}, error)

	// Close releases resources.
	Close() error
}
