package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stitchworks/sewline-api/config"
	"github.com/stitchworks/sewline-api/models"
)

// CreateProcessesRequest represents the request body for bulk-creating processes
type CreateProcessesRequest struct {
	Names string `json:"names" binding:"required"` // comma-separated process names
}

// CreateProcesses handles POST /api/v1/processes - bulk-creates sewing
// processes from a comma-separated list of names (admin only)
func CreateProcesses(c *gin.Context) {
	var req CreateProcessesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Process names are required",
				"details": err.Error(),
			},
		})
		return
	}

	names := splitNames(req.Names)
	if len(names) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "No valid process names provided",
			},
		})
		return
	}

	processes := make([]models.Process, 0, len(names))
	for _, name := range names {
		processes = append(processes, models.Process{Name: name})
	}

	db := config.GetDB()
	if err := db.Create(&processes).Error; err != nil {
		if isDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "PROCESS_EXISTS",
					"message": "One or more process names already exist",
				},
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create processes",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"count":   len(processes),
		"data":    processes,
	})
}

// ListProcesses handles GET /api/v1/processes - lists all processes
func ListProcesses(c *gin.Context) {
	db := config.GetDB()

	var processes []models.Process
	if err := db.Order("name").Find(&processes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch processes",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    processes,
	})
}
