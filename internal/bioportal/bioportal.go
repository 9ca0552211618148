// Package bioportal wraps the bioontology.org term-search endpoint.
package bioportal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lab-annotate/cataloger-api/internal/constants"
)

// ErrNoResults is returned when the search collection comes back empty,
// so callers can ask the user to reformulate instead of failing hard.
var ErrNoResults = errors.New("no results found")

// Term is a single record from the bioportal search collection.
type Term struct {
	ID         string   `json:"@id"`
	PrefLabel  string   `json:"prefLabel"`
	Definition []string `json:"definition"`
	Links      struct {
		Ontology string `json:"ontology"`
	} `json:"links"`
}

type searchResponse struct {
	Collection []Term `json:"collection"`
}

type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Search queries bioportal for searchText and returns the collection keyed
// by term identifier.
func (c *Client) Search(ctx context.Context, searchText string) (map[string]Term, error) {
	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("q", searchText)
	params.Set("suggest", "false")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build bioportal request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bioportal request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bioportal returned status %d", resp.StatusCode)
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode bioportal response: %w", err)
	}

	if len(result.Collection) == 0 {
		return nil, ErrNoResults
	}

	terms := make(map[string]Term, len(result.Collection))
	for _, term := range result.Collection {
		terms[term.ID] = term
	}

	return terms, nil
}

// Acronym extracts the ontology acronym from the term's ontology URL
// (its last path segment).
func (t Term) Acronym() string {
	parts := strings.Split(t.Links.Ontology, "/")
	return parts[len(parts)-1]
}

// FormatLabel builds the human-readable suggestion label shown in choice
// lists: the preferred label, a capped slice of the definition when one
// exists, and the ontology acronym.
func FormatLabel(term Term) string {
	acronym := term.Acronym()
	if len(term.Definition) == 0 {
		return fmt.Sprintf("%s \t (%s)", term.PrefLabel, acronym)
	}

	words := strings.Fields(term.Definition[0])
	short := strings.Join(words, " ")
	if len(words) > constants.DefinitionWordLimit {
		short = strings.Join(words[:constants.DefinitionWordLimit], " ") + "..."
	}

	return fmt.Sprintf("%s: %s \t (%s)", term.PrefLabel, short, acronym)
}
