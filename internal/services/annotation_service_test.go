package services

import (
	"testing"

	"github.com/lab-annotate/cataloger-api/internal/bioportal"
	"github.com/lab-annotate/cataloger-api/internal/models"
	"github.com/lab-annotate/cataloger-api/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type annotationTestEnv struct {
	db      *gorm.DB
	service *AnnotationService
}

func setupAnnotationTest(t *testing.T) annotationTestEnv {
	t.Helper()

	db := setupTestDB(t)
	return annotationTestEnv{
		db:      db,
		service: NewAnnotationService(repository.NewAnnotationRepository(db), repository.NewOntologyRepository(db)),
	}
}

func searchTerm(id, label, ontologyURL string) bioportal.Term {
	term := bioportal.Term{ID: id, PrefLabel: label}
	term.Links.Ontology = ontologyURL
	return term
}

func TestAcceptSuggestionCreatesRowAndOntology(t *testing.T) {
	env := setupAnnotationTest(t)
	actor := createTestUser(t, env.db, "annotator", "yeast lab")

	term := searchTerm("http://example.org/term/1", "Saccharomyces cerevisiae",
		"http://data.bioontology.org/ontologies/NCBITAXON")

	row, err := env.service.AcceptSuggestion(models.KindOrganism, term, actor, nil)
	require.NoError(t, err)
	require.Equal(t, "Saccharomyces cerevisiae", row.Label)
	require.Equal(t, "http://example.org/term/1", row.BioportalID)
	require.Equal(t, actor.GroupID, row.GroupID)
	require.NotNil(t, row.OntologyID)

	var ontology models.Ontology
	require.NoError(t, env.db.First(&ontology, *row.OntologyID).Error)
	require.Equal(t, "NCBITAXON", ontology.Acronym)
}

func TestAcceptSuggestionReusesSameGroupRow(t *testing.T) {
	env := setupAnnotationTest(t)
	actor := createTestUser(t, env.db, "annotator", "yeast lab")

	term := searchTerm("http://example.org/term/1", "mitosis",
		"http://data.bioontology.org/ontologies/GO")

	first, err := env.service.AcceptSuggestion(models.KindProcess, term, actor, nil)
	require.NoError(t, err)
	second, err := env.service.AcceptSuggestion(models.KindProcess, term, actor, nil)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, env.db.Model(&models.Process{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestAcceptSuggestionCopiesAcrossGroups(t *testing.T) {
	env := setupAnnotationTest(t)
	alice := createTestUser(t, env.db, "alice", "yeast lab")
	bob := createTestUser(t, env.db, "bob", "fly lab")

	term := searchTerm("http://example.org/term/1", "mitosis",
		"http://data.bioontology.org/ontologies/GO")

	aliceRow, err := env.service.AcceptSuggestion(models.KindProcess, term, alice, nil)
	require.NoError(t, err)
	bobRow, err := env.service.AcceptSuggestion(models.KindProcess, term, bob, nil)
	require.NoError(t, err)

	// Each group gets its own row sharing the external identifier.
	require.NotEqual(t, aliceRow.ID, bobRow.ID)
	require.Equal(t, aliceRow.BioportalID, bobRow.BioportalID)
	require.Equal(t, bob.GroupID, bobRow.GroupID)
}

func TestAcceptSuggestionSetsOrganismBackRef(t *testing.T) {
	env := setupAnnotationTest(t)
	actor := createTestUser(t, env.db, "annotator", "yeast lab")

	organismTerm := searchTerm("http://example.org/term/org", "Saccharomyces cerevisiae",
		"http://data.bioontology.org/ontologies/NCBITAXON")
	organism, err := env.service.AcceptSuggestion(models.KindOrganism, organismTerm, actor, nil)
	require.NoError(t, err)

	sampleTerm := searchTerm("http://example.org/term/sample", "bud neck",
		"http://data.bioontology.org/ontologies/GO")
	_, err = env.service.AcceptSuggestion(models.KindSample, sampleTerm, actor, &organism.ID)
	require.NoError(t, err)

	var sample models.Sample
	require.NoError(t, env.db.Where("label = ?", "bud neck").Take(&sample).Error)
	require.NotNil(t, sample.OrganismID)
	require.Equal(t, organism.ID, *sample.OrganismID)
}

func TestAcceptSuggestionOrganismIgnoresBackRef(t *testing.T) {
	env := setupAnnotationTest(t)
	actor := createTestUser(t, env.db, "annotator", "yeast lab")

	bogus := uint64(42)
	term := searchTerm("http://example.org/term/org", "Drosophila melanogaster",
		"http://data.bioontology.org/ontologies/NCBITAXON")

	row, err := env.service.AcceptSuggestion(models.KindOrganism, term, actor, &bogus)
	require.NoError(t, err)
	require.Nil(t, row.OrganismID)
}

func TestCreateFromLabel(t *testing.T) {
	env := setupAnnotationTest(t)
	actor := createTestUser(t, env.db, "annotator", "yeast lab")

	row, err := env.service.CreateFromLabel(models.KindGene, "CDC52", actor, nil)
	require.NoError(t, err)
	require.Equal(t, "CDC52", row.Label)
	require.Empty(t, row.BioportalID)
	require.Nil(t, row.OntologyID)
}

func TestCreateFromLabelRejectsEmpty(t *testing.T) {
	env := setupAnnotationTest(t)
	actor := createTestUser(t, env.db, "annotator", "yeast lab")

	_, err := env.service.CreateFromLabel(models.KindGene, "", actor, nil)
	require.ErrorIs(t, err, ErrEmptyLabel)
}

func TestListChoicesScopesToGroup(t *testing.T) {
	env := setupAnnotationTest(t)
	alice := createTestUser(t, env.db, "alice", "yeast lab")
	bob := createTestUser(t, env.db, "bob", "fly lab")

	_, err := env.service.CreateFromLabel(models.KindGene, "CDC52", alice, nil)
	require.NoError(t, err)
	_, err = env.service.CreateFromLabel(models.KindGene, "white", bob, nil)
	require.NoError(t, err)

	rows, err := env.service.ListChoices(models.KindGene, alice.GroupID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "CDC52", rows[0].Label)
}

func TestListChoicesUnknownKind(t *testing.T) {
	env := setupAnnotationTest(t)
	_, err := env.service.ListChoices("plasmids", nil)
	require.ErrorIs(t, err, ErrUnknownAnnotationKind)
}
