package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lab-annotate/cataloger-api/internal/bioportal"
	"github.com/lab-annotate/cataloger-api/internal/comment"
	"github.com/lab-annotate/cataloger-api/internal/database"
	"github.com/lab-annotate/cataloger-api/internal/middleware"
	"github.com/lab-annotate/cataloger-api/internal/models"
	"github.com/lab-annotate/cataloger-api/internal/repository"
	"github.com/lab-annotate/cataloger-api/internal/services"
	"github.com/lab-annotate/cataloger-api/internal/workflow"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type formTestEnv struct {
	db          *gorm.DB
	handler     *CardFormHandler
	cardService *services.CardService
	actor       *models.User
}

func setupFormTestEnv(t *testing.T, bioportalURL string) formTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(database.MigrationModels()...))
	database.SetDB(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	group := &models.Group{GroupName: "yeast lab", Active: true}
	require.NoError(t, db.Create(group).Error)
	groupID := group.ID
	actor := &models.User{Username: "scientist", GroupID: &groupID, Active: true}
	require.NoError(t, db.Create(actor).Error)

	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	annotationRepo := repository.NewAnnotationRepository(db)

	authService := services.NewAuthService(userRepo, groupRepo, services.NewLocalAuthenticator(userRepo))
	projectService := services.NewProjectService(repository.NewProjectRepository(db))
	annotationService := services.NewAnnotationService(annotationRepo, repository.NewOntologyRepository(db))
	geneModService := services.NewGeneModService(repository.NewGeneModRepository(db), annotationRepo)
	cardService := services.NewCardService(
		repository.NewCardRepository(db),
		repository.NewTagRepository(db),
		zerolog.Nop(),
	)

	handler := NewCardFormHandler(
		workflow.NewFormBuilder(annotationService, projectService, geneModService, cardService),
		cardService,
		projectService,
		annotationService,
		geneModService,
		authService,
		bioportal.NewClient("test-key", bioportalURL),
		workflow.NewSuggestionCache(),
		zerolog.Nop(),
	)

	return formTestEnv{db: db, handler: handler, cardService: cardService, actor: actor}
}

func formRouter(env formTestEnv) *gin.Engine {
	r := gin.New()
	cards := r.Group("/api/cards", asUser(env.actor.ID))
	{
		cards.GET("/form", env.handler.NewForm)
		cards.POST("/form", env.handler.SubmitNew)
		cards.GET("/:id/form", middleware.RequireCardAccess(), env.handler.EditForm)
		cards.POST("/:id/form", middleware.RequireCardAccess(), middleware.RequireCardOwner(), env.handler.SubmitEdit)
	}
	return r
}

func postForm(t *testing.T, r *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func bioportalStub(t *testing.T, collection string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"collection":` + collection + `}`))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestCardForm_New(t *testing.T) {
	env := setupFormTestEnv(t, "http://unused")
	r := formRouter(env)

	req := httptest.NewRequest(http.MethodGet, "/api/cards/form", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var state workflow.FormState
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	require.Empty(t, state.GeneModRows)
	require.Nil(t, state.CardID)
}

func TestCardForm_NewListsGeneModAndTagChoices(t *testing.T) {
	env := setupFormTestEnv(t, "http://unused")

	geneMod := &models.GeneMod{Label: "CDC52-GFP", GroupID: env.actor.GroupID}
	require.NoError(t, env.db.Create(geneMod).Error)
	tag := &models.Tag{Label: "mitosis", GroupID: env.actor.GroupID}
	require.NoError(t, env.db.Create(tag).Error)

	r := formRouter(env)
	req := httptest.NewRequest(http.MethodGet, "/api/cards/form", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var state workflow.FormState
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	require.Len(t, state.GeneModChoices, 1)
	require.Equal(t, "CDC52-GFP", state.GeneModChoices[0].Label)
	require.Equal(t, []string{"mitosis"}, state.TagChoices)
}

func TestCardForm_SubmitCreatesCard(t *testing.T) {
	env := setupFormTestEnv(t, "http://unused")
	r := formRouter(env)

	w := postForm(t, r, "/api/cards/form", gin.H{
		"title": "Experiment 1",
		"sections": gin.H{
			"observed":   "cells divided #mitosis",
			"conditions": "30C",
		},
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Card struct {
			ID       uint64           `json:"id"`
			Sections comment.Sections `json:"sections"`
			Tags     []string         `json:"tags"`
		} `json:"card"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "cells divided #mitosis", response.Card.Sections.Observed)
	require.Equal(t, "30C", response.Card.Sections.Conditions)
	require.Equal(t, []string{"mitosis"}, response.Card.Tags)
}

func TestCardForm_SubmitResolvesGeneModRows(t *testing.T) {
	env := setupFormTestEnv(t, "http://unused")
	r := formRouter(env)

	gene := &models.Gene{AnnotationFields: models.AnnotationFields{Label: "CDC52", GroupID: env.actor.GroupID}}
	require.NoError(t, env.db.Create(gene).Error)
	marker := &models.Marker{AnnotationFields: models.AnnotationFields{Label: "GFP", GroupID: env.actor.GroupID}}
	require.NoError(t, env.db.Create(marker).Error)

	w := postForm(t, r, "/api/cards/form", gin.H{
		"title": "Experiment 1",
		"gene_mod_rows": []gin.H{
			{"gene_id": gene.ID, "marker_id": marker.ID},
			{}, // fully empty rows are dropped
		},
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Card struct {
			GeneMods []struct {
				Label string `json:"label"`
			} `json:"gene_mods"`
		} `json:"card"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Card.GeneMods, 1)
	require.Equal(t, "CDC52-GFP", response.Card.GeneMods[0].Label)
}

func TestCardForm_SearchStashesSuggestions(t *testing.T) {
	server := bioportalStub(t, `[
		{"@id":"http://example.org/term/1","prefLabel":"Saccharomyces cerevisiae",
		 "definition":["A budding yeast"],
		 "links":{"ontology":"http://data.bioontology.org/ontologies/NCBITAXON"}}
	]`)
	env := setupFormTestEnv(t, server.URL)
	r := formRouter(env)

	w := postForm(t, r, "/api/cards/form", gin.H{
		"title":  "Experiment 1",
		"search": gin.H{"field": "organism", "term": "yeast"},
	})

	require.Equal(t, http.StatusOK, w.Code)

	var state workflow.FormState
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	require.Equal(t, workflow.FieldOrganism, state.ActiveSearchField)
	require.Len(t, state.Suggestions, 1)
	require.Contains(t, state.Suggestions[0].Label, "Saccharomyces cerevisiae")
	require.Contains(t, state.Suggestions[0].Label, "(NCBITAXON)")

	// Field values from the submission survive the re-render.
	require.Equal(t, "Experiment 1", state.Title)
}

func TestCardForm_SearchNoResults(t *testing.T) {
	server := bioportalStub(t, `[]`)
	env := setupFormTestEnv(t, server.URL)
	r := formRouter(env)

	w := postForm(t, r, "/api/cards/form", gin.H{
		"search": gin.H{"field": "organism", "term": "zzzzzz"},
	})

	require.Equal(t, http.StatusOK, w.Code)

	var state workflow.FormState
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	require.Empty(t, state.Suggestions)
	require.Equal(t, "Nothing found, please reformulate your search.", state.Notice)
}

func TestCardForm_AcceptSuggestion(t *testing.T) {
	server := bioportalStub(t, `[
		{"@id":"http://example.org/term/1","prefLabel":"Saccharomyces cerevisiae",
		 "links":{"ontology":"http://data.bioontology.org/ontologies/NCBITAXON"}}
	]`)
	env := setupFormTestEnv(t, server.URL)
	r := formRouter(env)

	// Search first so the suggestion is stashed.
	w := postForm(t, r, "/api/cards/form", gin.H{
		"search": gin.H{"field": "organism", "term": "yeast"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = postForm(t, r, "/api/cards/form", gin.H{
		"select": gin.H{"field": "organism", "term_id": "http://example.org/term/1"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var state workflow.FormState
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	require.Len(t, state.OrganismChoices, 1)
	require.Equal(t, "Saccharomyces cerevisiae", state.OrganismChoices[0].Label)
	require.NotNil(t, state.SelectedOrganism)
	require.Equal(t, state.OrganismChoices[0].ID, *state.SelectedOrganism)

	var count int64
	require.NoError(t, env.db.Model(&models.Organism{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestCardForm_AcceptWithoutSearchFails(t *testing.T) {
	env := setupFormTestEnv(t, "http://unused")
	r := formRouter(env)

	w := postForm(t, r, "/api/cards/form", gin.H{
		"select": gin.H{"field": "organism", "term_id": "http://example.org/term/1"},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCardForm_AddAndRemoveRow(t *testing.T) {
	env := setupFormTestEnv(t, "http://unused")
	r := formRouter(env)

	w := postForm(t, r, "/api/cards/form", gin.H{
		"add_gene_mod_row": true,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var state workflow.FormState
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	require.Len(t, state.GeneModRows, 1)

	w = postForm(t, r, "/api/cards/form", gin.H{
		"gene_mod_rows":       []gin.H{{}},
		"remove_gene_mod_row": true,
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	require.Empty(t, state.GeneModRows)
}

func TestCardForm_InlineProjectCreate(t *testing.T) {
	env := setupFormTestEnv(t, "http://unused")
	r := formRouter(env)

	w := postForm(t, r, "/api/cards/form", gin.H{
		"title":            "Experiment 1",
		"new_project_name": "yeast genetics",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var state workflow.FormState
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	require.Len(t, state.ProjectChoices, 1)
	require.Equal(t, "yeast genetics", state.ProjectChoices[0].Label)
	require.NotNil(t, state.SelectedProject)

	var project models.Project
	require.NoError(t, env.db.Where("name = ?", "yeast genetics").Take(&project).Error)
	require.Equal(t, env.actor.GroupID, project.GroupID)
}

func TestCardForm_EditLoadsCard(t *testing.T) {
	env := setupFormTestEnv(t, "http://unused")
	r := formRouter(env)

	sections := comment.Sections{Observed: "initial observation"}
	card, err := env.cardService.CreateCard(services.CardInput{
		Title:   "Experiment 1",
		Comment: sections.Build(),
	}, env.actor)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/cards/1/form", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var state workflow.FormState
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	require.NotNil(t, state.CardID)
	require.Equal(t, card.ID, *state.CardID)
	require.Equal(t, "Experiment 1", state.Title)
	require.Equal(t, "initial observation", state.Sections.Observed)
}

func TestCardForm_EditSubmitUpdates(t *testing.T) {
	env := setupFormTestEnv(t, "http://unused")
	r := formRouter(env)

	card, err := env.cardService.CreateCard(services.CardInput{Title: "Experiment 1"}, env.actor)
	require.NoError(t, err)

	w := postForm(t, r, "/api/cards/1/form", gin.H{
		"title": "Experiment 1 revised",
		"sections": gin.H{
			"observed": "revised observation #revision",
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	updated, err := env.cardService.GetCard(card.ID)
	require.NoError(t, err)
	require.Equal(t, "Experiment 1 revised", updated.Title)

	// Edit submissions sync the group tag table.
	var labels []string
	require.NoError(t, env.db.Model(&models.Tag{}).Pluck("label", &labels).Error)
	require.Equal(t, []string{"revision"}, labels)
}
