package workflow

import (
	"sync"

	"github.com/lab-annotate/cataloger-api/internal/bioportal"
)

// SuggestionCache holds the raw results of the most recent ontology search
// per session, between the search request and the accept request. It is an
// explicit value owned by the handler, not process-global state; entries
// are replaced on every search and dropped once a suggestion is accepted.
// Two concurrent searches in the same session overwrite each other, which
// matches the one-form-at-a-time usage the form assumes.
type SuggestionCache struct {
	mu    sync.Mutex
	stash map[string]map[string]bioportal.Term
}

// NewSuggestionCache creates an empty SuggestionCache.
func NewSuggestionCache() *SuggestionCache {
	return &SuggestionCache{
		stash: make(map[string]map[string]bioportal.Term),
	}
}

// Put replaces the stashed suggestions for a session.
func (c *SuggestionCache) Put(sessionKey string, terms map[string]bioportal.Term) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stash[sessionKey] = terms
}

// Get returns one stashed term by identifier.
func (c *SuggestionCache) Get(sessionKey, termID string) (bioportal.Term, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	terms, ok := c.stash[sessionKey]
	if !ok {
		return bioportal.Term{}, false
	}
	term, ok := terms[termID]
	return term, ok
}

// Drop forgets a session's stash.
func (c *SuggestionCache) Drop(sessionKey string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.stash, sessionKey)
}
