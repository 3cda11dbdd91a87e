package transcript

import (
	"sort"

	"github.com/chartlight/chartlight/pkg/events"
)

// ProcessingSet tracks which source items (notes, medications, diagnoses,
// flowsheets) the backend is currently working on, keyed by item category.
// An id is present iff its most recent status was "processing" with no
// "completed" since.
type ProcessingSet struct {
	items map[string]map[string]struct{}
}

func NewProcessingSet() *ProcessingSet {
	return &ProcessingSet{
		items: make(map[string]map[string]struct{}),
	}
}

// Apply updates the set from one dataItem event payload. Statuses other
// than processing/completed are ignored.
func (p *ProcessingSet) Apply(item events.DataItem) {
	switch item.Status {
	case events.StatusProcessing:
		if p.items[item.Type] == nil {
			p.items[item.Type] = make(map[string]struct{})
		}
		p.items[item.Type][item.ID] = struct{}{}
	case events.StatusCompleted:
		delete(p.items[item.Type], item.ID)
		if len(p.items[item.Type]) == 0 {
			delete(p.items, item.Type)
		}
	}
}

// Contains reports whether an item is currently being processed.
func (p *ProcessingSet) Contains(category, id string) bool {
	_, ok := p.items[category][id]
	return ok
}

// IDs returns the in-flight ids for a category, sorted for stable display.
func (p *ProcessingSet) IDs(category string) []string {
	ids := make([]string, 0, len(p.items[category]))
	for id := range p.items[category] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Categories returns the categories that have at least one in-flight item.
func (p *ProcessingSet) Categories() []string {
	cats := make([]string, 0, len(p.items))
	for cat := range p.items {
		cats = append(cats, cat)
	}
	sort.Strings(cats)
	return cats
}

// Size returns the total number of in-flight items across categories.
func (p *ProcessingSet) Size() int {
	n := 0
	for _, ids := range p.items {
		n += len(ids)
	}
	return n
}

// Clear empties the set, used when a session ends or restarts.
func (p *ProcessingSet) Clear() {
	p.items = make(map[string]map[string]struct{})
}
