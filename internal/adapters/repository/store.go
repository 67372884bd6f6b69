// Package repository holds the current immutable snapshot.
package repository

import (
	"context"

	"github.com/okian/paceline/internal/domain/model"
)

// Store provides read access to the current snapshot and the swap used by
// the load path. Snapshots themselves are immutable; only the pointer moves.
type Store interface {
	// Current returns the active snapshot, or ErrNoSnapshot before the
	// first successful load.
	Current(ctx context.Context) (*model.Snapshot, error)

	// Swap atomically replaces the active snapshot.
	Swap(ctx context.Context, snap *model.Snapshot)
}
