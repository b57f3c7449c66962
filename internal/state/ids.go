package state

import (
	"sync"
	"time"

	"github.com/jonathan/resume-builder/internal/types"
)

// IDGenerator issues entry ids derived from the wall clock in milliseconds.
// Every id is strictly greater than every id issued or observed before it,
// so two entries added within the same millisecond still get distinct ids.
type IDGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewIDGenerator creates a generator reading time from now (time.Now when nil)
func NewIDGenerator(now func() time.Time) *IDGenerator {
	if now == nil {
		now = time.Now
	}
	return &IDGenerator{now: now}
}

// Next returns a fresh id
func (g *IDGenerator) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}

// Observe raises the floor so later ids are greater than id
func (g *IDGenerator) Observe(id int64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if id > g.last {
		g.last = id
	}
}

// Last returns the most recent id issued or observed
func (g *IDGenerator) Last() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.last
}

// repairIDs gives a fresh id to every entry whose id is missing (<= 0) or
// repeats an earlier id in the same collection. Ids already unique are kept.
func (g *IDGenerator) repairIDs(doc *types.Document) {
	g.Observe(doc.MaxID())
	uniqueIDs(doc.Experience, func(e *types.Experience) *int64 { return &e.ID }, g.Next)
	uniqueIDs(doc.Education, func(e *types.Education) *int64 { return &e.ID }, g.Next)
	uniqueIDs(doc.Projects, func(p *types.Project) *int64 { return &p.ID }, g.Next)
	uniqueIDs(doc.Certifications, func(c *types.Certification) *int64 { return &c.ID }, g.Next)
}

func uniqueIDs[T any](items []T, idOf func(*T) *int64, next func() int64) {
	seen := make(map[int64]bool, len(items))
	for i := range items {
		id := idOf(&items[i])
		if *id <= 0 || seen[*id] {
			*id = next()
		}
		seen[*id] = true
	}
}
