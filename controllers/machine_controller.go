package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stitchworks/sewline-api/config"
	"github.com/stitchworks/sewline-api/models"
)

// CreateMachinesRequest represents the request body for bulk-creating machines
type CreateMachinesRequest struct {
	Names string `json:"names" binding:"required"` // comma-separated machine names
}

// CreateMachines handles POST /api/v1/machines - bulk-creates machine types
// from a comma-separated list of names (admin only)
func CreateMachines(c *gin.Context) {
	// Parse request body
	var req CreateMachinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Machine names are required",
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
				"message": "No valid machine names provided",
			},
		})
		return
	}

	machines := make([]models.Machine, 0, len(names))
	for _, name := range names {
		machines = append(machines, models.Machine{Name: name})
	}

	db := config.GetDB()
	if err := db.Create(&machines).Error; err != nil {
		if isDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "MACHINE_EXISTS",
					"message": "One or more machine names already exist",
				},
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create machines",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"count":   len(machines),
		"data":    machines,
	})
}

// ListMachines handles GET /api/v1/machines - lists all machine types
func ListMachines(c *gin.Context) {
	db := config.GetDB()

	var machines []models.Machine
	if err := db.Order("name").Find(&machines).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch machines",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    machines,
	})
}
