package bioportal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func makeTerm(id, label, ontology string, definition ...string) Term {
	term := Term{ID: id, PrefLabel: label, Definition: definition}
	term.Links.Ontology = ontology
	return term
}

func TestTermAcronym(t *testing.T) {
	term := makeTerm("http://purl.obolibrary.org/obo/NCBITaxon_4932", "Saccharomyces cerevisiae",
		"http://data.bioontology.org/ontologies/NCBITAXON")
	require.Equal(t, "NCBITAXON", term.Acronym())
}

func TestFormatLabelWithoutDefinition(t *testing.T) {
	term := makeTerm("id", "mitosis", "http://data.bioontology.org/ontologies/GO")
	require.Equal(t, "mitosis \t (GO)", FormatLabel(term))
}

func TestFormatLabelShortDefinition(t *testing.T) {
	term := makeTerm("id", "mitosis", "http://data.bioontology.org/ontologies/GO",
		"nuclear division")
	require.Equal(t, "mitosis: nuclear division \t (GO)", FormatLabel(term))
}

func TestFormatLabelTruncatesLongDefinition(t *testing.T) {
	words := make([]string, 30)
	for i := range words {
		words[i] = "word"
	}
	term := makeTerm("id", "mitosis", "http://data.bioontology.org/ontologies/GO",
		strings.Join(words, " "))

	label := FormatLabel(term)
	require.Contains(t, label, "...")
	require.Equal(t, "mitosis: "+strings.Join(words[:20], " ")+"... \t (GO)", label)
}

func TestSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "test-key", r.URL.Query().Get("apikey"))
		require.Equal(t, "yeast", r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"collection":[
			{"@id":"http://example.org/term/1","prefLabel":"Saccharomyces cerevisiae",
			 "definition":["A species of budding yeast"],
			 "links":{"ontology":"http://data.bioontology.org/ontologies/NCBITAXON"}}
		]}`))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL)
	terms, err := client.Search(context.Background(), "yeast")
	require.NoError(t, err)
	require.Len(t, terms, 1)

	term, ok := terms["http://example.org/term/1"]
	require.True(t, ok)
	require.Equal(t, "Saccharomyces cerevisiae", term.PrefLabel)
	require.Equal(t, "NCBITAXON", term.Acronym())
}

func TestSearchNoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"collection":[]}`))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL)
	_, err := client.Search(context.Background(), "zzzzzz")
	require.ErrorIs(t, err, ErrNoResults)
}

func TestSearchUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL)
	_, err := client.Search(context.Background(), "yeast")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNoResults)
}
