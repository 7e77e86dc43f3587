package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/stitchworks/sewline-api/config"
	"github.com/stitchworks/sewline-api/models"
)

// CreateUniqueMachineRequest represents the request body for registering a
// physical machine instance
type CreateUniqueMachineRequest struct {
	MachineTypeID uint   `json:"machineTypeId" binding:"required"`
	UniqueID      string `json:"uniqueId" binding:"required"`
	Floor         string `json:"floor" binding:"required"`
	Line          string `json:"line" binding:"required"` // sewing line name
}

// CreateUniqueMachine handles POST /api/v1/unique-machines - registers one
// physical machine instance on a floor/line (admin only)
func CreateUniqueMachine(c *gin.Context) {
	var req CreateUniqueMachineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Machine type, unique ID, floor and line are required",
				"details": err.Error(),
			},
		})
		return
	}

	// Check that the machine type exists
	db := config.GetDB()
	var machineType models.Machine
	if err := db.First(&machineType, req.MachineTypeID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MACHINE_NOT_FOUND",
				"message": "Invalid machine type",
			},
		})
		return
	}

	machine := models.UniqueMachine{
		MachineTypeID: req.MachineTypeID,
		UniqueID:      req.UniqueID,
		Floor:         req.Floor,
		Line:          req.Line,
	}

	if err := db.Create(&machine).Error; err != nil {
		if isDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNIQUE_MACHINE_EXISTS",
					"message": "A machine with this unique ID already exists",
				},
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create unique machine",
			},
		})
		return
	}

	machine.MachineType = machineType
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    machine,
	})
}

// ListUniqueMachines handles GET /api/v1/unique-machines - lists machine
// instances, optionally filtered by machine type and line for the planner's
// instance picker. The line filter matches the stored line *name*, the same
// string join the planner data was captured with.
func ListUniqueMachines(c *gin.Context) {
	db := config.GetDB().Preload("MachineType")

	if raw := c.Query("machineTypeId"); raw != "" {
		machineTypeID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "machineTypeId must be a number",
				},
			})
			return
		}
		db = db.Where("machine_type_id = ?", machineTypeID)
	}

	if line := c.Query("line"); line != "" {
		db = db.Where("line = ?", line)
	}

	var machines []models.UniqueMachine
	if err := db.Order("unique_id").Find(&machines).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch unique machines",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    machines,
	})
}
