package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stitchworks/sewline-api/config"
	"github.com/stitchworks/sewline-api/models"
)

// CreateSewingLineRequest represents the request body for creating a sewing line
type CreateSewingLineRequest struct {
	Name  string `json:"name" binding:"required"`
	Floor string `json:"floor" binding:"omitempty"`
}

// CreateSewingLine handles POST /api/v1/sewing-lines - creates a sewing line (admin only)
func CreateSewingLine(c *gin.Context) {
	var req CreateSewingLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Sewing line name is required",
				"details": err.Error(),
			},
		})
		return
	}

	line := models.SewingLine{
		Name:  req.Name,
		Floor: req.Floor,
	}

	db := config.GetDB()
	if err := db.Create(&line).Error; err != nil {
		if isDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "SEWING_LINE_EXISTS",
					"message": "A sewing line with this name already exists",
				},
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create sewing line",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    line,
	})
}

// ListSewingLines handles GET /api/v1/sewing-lines - lists all sewing lines
func ListSewingLines(c *gin.Context) {
	db := config.GetDB()

	var lines []models.SewingLine
	if err := db.Order("name").Find(&lines).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch sewing lines",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    lines,
	})
}
