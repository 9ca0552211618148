package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lab-annotate/cataloger-api/internal/dto"
	apierrors "github.com/lab-annotate/cataloger-api/internal/errors"
	"github.com/lab-annotate/cataloger-api/internal/middleware"
	"github.com/lab-annotate/cataloger-api/internal/models"
	"github.com/lab-annotate/cataloger-api/internal/services"
)

// ProjectHandler coordinates project HTTP handlers.
type ProjectHandler struct {
	projectService *services.ProjectService
	authService    *services.AuthService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService, authService *services.AuthService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		authService:    authService,
	}
}

// CreateProject finds or creates a project for the current user's group.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	type CreateProjectRequest struct {
		Name    string `json:"name" binding:"required"`
		Comment string `json:"comment"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	actor, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	project, err := h.projectService.FindOrCreate(req.Name, req.Comment, actor)
	if err != nil {
		if errors.Is(err, services.ErrInvalidProjectName) {
			apierrors.BadRequest(c, err.Error())
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"project": dto.ToProjectDTO(*project),
		"notice":  fmt.Sprintf("New project %s created", project.Name),
	})
}

// ListProjects returns projects visible to the current user's group.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	actor, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	projects, err := h.projectService.ListForGroup(actor.GroupID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	projectDTOs := make([]dto.ProjectDTO, len(projects))
	for i, project := range projects {
		projectDTOs[i] = dto.ToProjectDTO(project)
	}

	c.JSON(http.StatusOK, gin.H{"projects": projectDTOs})
}

// currentUser loads the session user or writes a 401.
func currentUser(c *gin.Context, authService *services.AuthService) (*models.User, bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return nil, false
	}
	user, err := authService.GetUser(userID)
	if err != nil {
		apierrors.Unauthorized(c, "")
		return nil, false
	}
	return user, true
}
