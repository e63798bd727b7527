package clustream

import "sync"

// Guarded makes a MicroCluster safe for concurrent use. Reads run
// concurrently with each other; Absorb excludes every other operation for
// its duration.
type Guarded struct {
	mu sync.RWMutex
	mc *MicroCluster
}

// NewGuarded takes ownership of mc. The caller must not use mc directly
// afterwards.
func NewGuarded(mc *MicroCluster) *Guarded {
	return &Guarded{mc: mc}
}

// Absorb adds featureVector under the write lock. See MicroCluster.Absorb.
func (g *Guarded) Absorb(featureVector []float64, timestamp int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.mc.Absorb(featureVector, timestamp)
}

func (g *Guarded) Centroid() ([]float64, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.mc.Centroid()
}

func (g *Guarded) Distance(point []float64) (float64, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.mc.Distance(point)
}

func (g *Guarded) MaximumBoundary() (Boundary, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.mc.MaximumBoundary()
}

func (g *Guarded) Size() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.mc.Size()
}

// Snapshot returns a deep copy taken under the read lock. The copy is
// detached from g and may be read freely while g keeps absorbing points.
func (g *Guarded) Snapshot() *MicroCluster {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.mc.Clone()
}

// MergeGuarded merges consistent snapshots of a and b. Each operand is
// read under its own lock, one after the other, so the two locks are never
// held together.
func MergeGuarded(a, b *Guarded, index int) (*MicroCluster, error) {
	if a == nil || b == nil {
		return nil, &EmptyClusterError{Op: "merge"}
	}
	return Merge(a.Snapshot(), b.Snapshot(), index)
}
