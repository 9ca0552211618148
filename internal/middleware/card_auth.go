package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lab-annotate/cataloger-api/internal/constants"
	"github.com/lab-annotate/cataloger-api/internal/database"
	"github.com/lab-annotate/cataloger-api/internal/models"
)

// RequireCardAccess checks that the card exists and is visible to the
// current user: the user owns it, shares its group, or the card has no
// group. Cards outside the user's view answer 404 rather than 403 to avoid
// leaking their existence.
func RequireCardAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		cardIDStr := c.Param("id")
		cardID, err := strconv.ParseUint(cardIDStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid card ID",
			})
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			c.Abort()
			return
		}

		var user models.User
		if err := database.GetDB().First(&user, userID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			c.Abort()
			return
		}

		var card models.Card
		if err := database.GetDB().First(&card, cardID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Card not found",
			})
			c.Abort()
			return
		}

		if !cardVisibleTo(&card, &user) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Card not found",
			})
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyCard, card)
		c.Set(constants.ContextKeyUser, user)
		c.Next()
	}
}

// RequireCardOwner checks that the current user owns the card loaded by
// RequireCardAccess. Group members who are not the owner get 403 and the
// card stays unmodified.
func RequireCardOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		cardValue, exists := c.Get(constants.ContextKeyCard)
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Card access required",
			})
			c.Abort()
			return
		}

		card, ok := cardValue.(models.Card)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Invalid card data",
			})
			c.Abort()
			return
		}

		userID, _ := GetUserID(c)
		if card.UserID != userID {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Only the card owner can perform this action",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func cardVisibleTo(card *models.Card, user *models.User) bool {
	if card.UserID == user.ID {
		return true
	}
	if card.GroupID == nil {
		return true
	}
	return user.GroupID != nil && *user.GroupID == *card.GroupID
}
