package export

import (
	"strings"
	"testing"
	"time"

	"github.com/lab-annotate/cataloger-api/internal/comment"
	"github.com/lab-annotate/cataloger-api/internal/models"
	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/require"
)

func exportCard() *models.Card {
	sections := comment.Sections{
		Observed:   "Division proceeded normally #mitosis",
		Conditions: "30C",
	}

	return &models.Card{
		ID:        1,
		Title:     "Test Experiment 1",
		Comment:   sections.Build(),
		CreatedAt: time.Date(2026, 5, 12, 9, 30, 0, 0, time.UTC),
		User: models.User{
			Username:  "jdoe",
			FirstName: "Jane",
			LastName:  "Doe",
		},
		Project: &models.Project{Name: "yeast genetics"},
		Organism: &models.Organism{
			AnnotationFields: models.AnnotationFields{Label: "Saccharomyces cerevisiae"},
		},
		Method: &models.Method{
			AnnotationFields: models.AnnotationFields{Label: "confocal microscopy"},
		},
		GeneMods: []models.GeneMod{
			{Label: "CDC52-GFP"},
			{Label: "CDC51-"},
		},
	}
}

func TestAuthor(t *testing.T) {
	card := exportCard()
	require.Equal(t, "Jane Doe", Author(card))

	card.User.FirstName = ""
	card.User.LastName = ""
	require.Equal(t, "jdoe", Author(card))
}

func TestAsCSV(t *testing.T) {
	card := exportCard()

	out, err := AsCSV(card)
	require.NoError(t, err)

	require.Contains(t, out, "# title: Test Experiment 1\n")
	require.Contains(t, out, "# created: 2026-05-12T09:30:00Z\n")
	require.Contains(t, out, "# author: Jane Doe\n")
	require.Contains(t, out, "# project: yeast genetics\n")
	require.Contains(t, out, "organism,Saccharomyces cerevisiae\n")
	require.Contains(t, out, "method,confocal microscopy\n")
	require.Contains(t, out, "gene_mod_0,CDC52-GFP\n")
	require.Contains(t, out, "gene_mod_1,CDC51-\n")

	// The comment is flattened onto a single header line.
	require.Contains(t, out, "# comment: "+strings.ReplaceAll(card.Comment, "\n", " ")+"\n")
}

func TestAsTOML(t *testing.T) {
	card := exportCard()

	out, err := AsTOML(card)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "# omero annotation file\n"))

	var decoded map[string]interface{}
	require.NoError(t, toml.Unmarshal([]byte(out), &decoded))
	require.Equal(t, "Test Experiment 1", decoded["title"])
	require.Equal(t, "yeast genetics", decoded["project"])
	require.Equal(t, "Saccharomyces cerevisiae", decoded["organism"])
	require.Equal(t, []interface{}{"mitosis"}, decoded["tags"])
}

func TestAsMarkdown(t *testing.T) {
	card := exportCard()

	out := AsMarkdown(card)

	require.True(t, strings.HasPrefix(out, "# Test Experiment 1\n"))
	require.Contains(t, out, "*by Jane Doe*")
	require.Contains(t, out, "| project | yeast genetics |")
	require.Contains(t, out, "| organism | Saccharomyces cerevisiae |")
	require.Contains(t, out, "| gene_mod_0 | CDC52-GFP |")
	require.Contains(t, out, "**mitosis**")

	// Tag markers are stripped from the comment body.
	require.NotContains(t, out, "#mitosis")
}

func TestAsPDF(t *testing.T) {
	card := exportCard()

	out, err := AsPDF(card)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	require.True(t, strings.HasPrefix(string(out[:5]), "%PDF-"))
}

func TestFilename(t *testing.T) {
	card := exportCard()
	require.Equal(t, "Test_Experiment_1.toml", Filename(card, "toml"))
}
