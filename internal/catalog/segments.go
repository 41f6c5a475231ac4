package catalog

import (
	"sort"
	"sync"
)

// builtinSegments is the curated merchandising overlay shipped with the
// service. It maps a segment identifier to explicit product ids of the
// sample catalog.
var builtinSegments = map[string][]string{
	"finance":    {"2007", "2009"},
	"security":   {"2002", "2005"},
	"developers": {"2001", "2008", "2010"},
	"cloud":      {"2003", "2010"},
	"design":     {"2004"},
	"data":       {"2006", "2007"},
	"startups":   {"2001", "2004", "2009"},
	"enterprise": {"2003", "2005", "2010"},
	"education":  {"2001", "2002", "2006", "2008"},
	"trending":   {"2002", "2003", "2006", "2008"},
}

// SegmentTable is a replaceable segment-to-ids table, safe for concurrent
// reads during a reload.
type SegmentTable struct {
	mu       sync.RWMutex
	segments map[string]map[string]struct{}
}

func NewSegmentTable(segments map[string][]string) *SegmentTable {
	t := &SegmentTable{}
	t.Replace(segments)
	return t
}

func DefaultSegmentTable() *SegmentTable {
	return NewSegmentTable(builtinSegments)
}

func (t *SegmentTable) Replace(segments map[string][]string) {
	next := make(map[string]map[string]struct{}, len(segments))
	for name, ids := range segments {
		set := make(map[string]struct{}, len(ids))
		for _, id := range ids {
			set[id] = struct{}{}
		}
		next[name] = set
	}
	t.mu.Lock()
	t.segments = next
	t.mu.Unlock()
}

// Contains reports whether id belongs to segment. Unknown segments are empty.
func (t *SegmentTable) Contains(segment, id string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.segments[segment][id]
	return ok
}

// Names returns the segment identifiers in lexical order.
func (t *SegmentTable) Names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	names := make([]string, 0, len(t.segments))
	for name := range t.segments {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (t *SegmentTable) Members(segment string) []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	ids := make([]string, 0, len(t.segments[segment]))
	for id := range t.segments[segment] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
