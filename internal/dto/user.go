package dto

import "github.com/lab-annotate/cataloger-api/internal/models"

// UserDTO represents a user in API responses
type UserDTO struct {
	ID        uint64  `json:"id"`
	Username  string  `json:"username"`
	FirstName string  `json:"first_name,omitempty"`
	LastName  string  `json:"last_name,omitempty"`
	GroupID   *uint64 `json:"group_id,omitempty"`
	GroupName string  `json:"group_name,omitempty"`
	IsAdmin   bool    `json:"is_admin"`
}

// GroupDTO represents a group in API responses
type GroupDTO struct {
	ID        uint64 `json:"id"`
	GroupName string `json:"group_name"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	dto := UserDTO{
		ID:        user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		GroupID:   user.GroupID,
		IsAdmin:   user.IsAdmin,
	}
	if user.Group != nil {
		dto.GroupName = user.Group.GroupName
	}
	return dto
}

// ToGroupDTO converts a Group model to GroupDTO
func ToGroupDTO(group models.Group) GroupDTO {
	return GroupDTO{
		ID:        group.ID,
		GroupName: group.GroupName,
	}
}
