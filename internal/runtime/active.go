package runtime

import (
	"sync/atomic"

	"github.com/szaher/agentden/internal/authstore"
	"github.com/szaher/agentden/internal/config"
)

// The activation slot is a single guarded pointer set at process start and
// cleared at teardown. Snapshot-aware code should prefer carrying the
// *Snapshot explicitly; these package-level accessors are the compatibility
// shim for ambient call sites. Single-writer discipline applies to
// Activate/Clear; readers need no synchronization.
var active atomic.Pointer[Snapshot]

// Activate installs snap as the sole active snapshot, fully replacing any
// previous one.
func Activate(snap *Snapshot) {
	active.Store(snap)
}

// Clear removes the active snapshot, restoring direct-loading behavior for
// snapshot-aware accessors. Typical use: test teardown.
func Clear() {
	active.Store(nil)
}

// Active returns the active snapshot, or nil when none is installed.
func Active() *Snapshot {
	return active.Load()
}

// ActiveConfig returns the resolved configuration of the active snapshot.
// ok is false when no snapshot is active; callers fall back to loading the
// configuration themselves.
func ActiveConfig() (*config.Config, bool) {
	if snap := active.Load(); snap != nil {
		return snap.Config, true
	}
	return nil, false
}

// ActiveAuthStore returns the resolved credential store for agentDir from
// the active snapshot. ok is false when no snapshot is active or the
// directory is not part of it; callers fall back to their own loader.
func ActiveAuthStore(agentDir string) (*authstore.Store, bool) {
	if snap := active.Load(); snap != nil {
		return snap.AuthStore(agentDir)
	}
	return nil, false
}
