package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lab-annotate/cataloger-api/internal/dto"
	apierrors "github.com/lab-annotate/cataloger-api/internal/errors"
	"github.com/lab-annotate/cataloger-api/internal/services"
)

// GroupHandler coordinates group HTTP handlers.
type GroupHandler struct {
	groupService *services.GroupService
}

// NewGroupHandler creates a new GroupHandler.
func NewGroupHandler(groupService *services.GroupService) *GroupHandler {
	return &GroupHandler{groupService: groupService}
}

// CreateGroup registers a new group.
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	type CreateGroupRequest struct {
		GroupName string `json:"group_name" binding:"required,min=3,max=25"`
	}

	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	group, err := h.groupService.CreateGroup(req.GroupName)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrGroupNameTaken):
			apierrors.Conflict(c, err.Error())
		case errors.Is(err, services.ErrInvalidGroupName):
			apierrors.BadRequest(c, err.Error())
		default:
			apierrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"group":  dto.ToGroupDTO(*group),
		"notice": "New group created.",
	})
}

// ListGroups returns every group, for the registration form.
func (h *GroupHandler) ListGroups(c *gin.Context) {
	groups, err := h.groupService.ListGroups()
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	groupDTOs := make([]dto.GroupDTO, len(groups))
	for i, group := range groups {
		groupDTOs[i] = dto.ToGroupDTO(group)
	}

	c.JSON(http.StatusOK, gin.H{"groups": groupDTOs})
}
