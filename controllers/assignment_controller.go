package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stitchworks/sewline-api/config"
	"github.com/stitchworks/sewline-api/models"
	"github.com/stitchworks/sewline-api/utils"
	"gorm.io/gorm"
)

// AssignmentRowRequest is one operator's row in a submitted daily plan
type AssignmentRowRequest struct {
	OperatorID       uint   `json:"operatorId" binding:"required"`
	Status           string `json:"status" binding:"required"`
	MachineID        *uint  `json:"machineId" binding:"omitempty"`
	ProcessID        *uint  `json:"processId" binding:"omitempty"`
	TargetProduction int    `json:"targetProduction" binding:"omitempty,gte=0"`
}

// UpsertDailyAssignmentRequest represents the request body for saving a day's plan
type UpsertDailyAssignmentRequest struct {
	Date         string                 `json:"date" binding:"required"` // ISO calendar date
	SewingLineID uint                   `json:"sewingLineId" binding:"required"`
	Assignments  []AssignmentRowRequest `json:"assignments" binding:"required,min=1,dive"`
}

// UpsertDailyAssignment handles POST /api/v1/daily-assignments - creates or
// replaces the plan for a (date, sewing line) pair. An existing plan's row
// list is replaced wholesale, never merged. Rows for Absent/Leave operators
// are normalized server-side: no machine, no process, zero target.
func UpsertDailyAssignment(c *gin.Context) {
	var req UpsertDailyAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Date, sewing line ID, and assignments array are required",
				"details": err.Error(),
			},
		})
		return
	}

	date, err := utils.ParseDay(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": err.Error(),
			},
		})
		return
	}

	for _, row := range req.Assignments {
		if !models.ValidStatus(row.Status) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "Status must be one of Present, Absent, Leave",
				},
			})
			return
		}
	}

	db := config.GetDB()

	// The plan must reference a real line
	var line models.SewingLine
	if err := db.First(&line, req.SewingLineID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SEWING_LINE_NOT_FOUND",
				"message": "Sewing line not found",
			},
		})
		return
	}

	// Every row must reference a real operator; a typo'd id would otherwise
	// surface later as a broken plan row
	operatorIDs := make([]uint, 0, len(req.Assignments))
	for _, row := range req.Assignments {
		operatorIDs = append(operatorIDs, row.OperatorID)
	}
	var operatorCount int64
	if err := db.Model(&models.Operator{}).Where("id IN ?", operatorIDs).Count(&operatorCount).Error; err != nil || operatorCount != int64(len(uniqueIDs(operatorIDs))) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "OPERATOR_NOT_FOUND",
				"message": "One or more assignment rows reference an unknown operator",
			},
		})
		return
	}

	rows := make([]models.OperatorAssignment, 0, len(req.Assignments))
	for i, row := range req.Assignments {
		assignment := models.OperatorAssignment{
			Position:         i,
			OperatorID:       row.OperatorID,
			Status:           row.Status,
			MachineID:        row.MachineID,
			ProcessID:        row.ProcessID,
			TargetProduction: row.TargetProduction,
		}
		assignment.Normalize()
		rows = append(rows, assignment)
	}

	var plan models.DailyAssignment
	created := false
	err = db.Transaction(func(tx *gorm.DB) error {
		lookupErr := tx.Where("date = ? AND sewing_line_id = ?", date, req.SewingLineID).First(&plan).Error
		switch {
		case lookupErr == nil:
			// Replace the entire row list, not merge
			if err := tx.Where("daily_assignment_id = ?", plan.ID).Delete(&models.OperatorAssignment{}).Error; err != nil {
				return err
			}
			for i := range rows {
				rows[i].DailyAssignmentID = plan.ID
			}
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
			return nil
		case errors.Is(lookupErr, gorm.ErrRecordNotFound):
			created = true
			plan = models.DailyAssignment{
				Date:         date,
				SewingLineID: req.SewingLineID,
				Assignments:  rows,
			}
			return tx.Create(&plan).Error
		default:
			return lookupErr
		}
	})
	if err != nil {
		// A concurrent create for the same (date, line) lost the race on the
		// unique index; the caller should retry as an update
		if isDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ASSIGNMENT_EXISTS",
					"message": "A daily assignment for this line on this date already exists. Please update it instead.",
				},
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to save daily assignment",
			},
		})
		return
	}

	// Reload with rows in submitted order so the caller gets the persisted document
	if err := db.Preload("Assignments", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	}).Preload("SewingLine").First(&plan, plan.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load saved assignment",
			},
		})
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{
		"success": true,
		"data":    plan,
	})
}

// GetDailyAssignment handles GET /api/v1/daily-assignments - fetches the plan
// for a (date, sewing line) pair with operator, machine, process and line
// names resolved. A 404 here is the documented "no plan yet" signal for a
// fresh day, not a failure.
func GetDailyAssignment(c *gin.Context) {
	dateParam := c.Query("date")
	lineParam := c.Query("sewingLineId")
	if dateParam == "" || lineParam == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "date and sewingLineId are required query parameters",
			},
		})
		return
	}

	date, err := utils.ParseDay(dateParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()
	var plan models.DailyAssignment
	err = db.
		Preload("Assignments", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		Preload("Assignments.Operator").
		Preload("Assignments.Machine").
		Preload("Assignments.Process").
		Preload("SewingLine").
		Where("date = ? AND sewing_line_id = ?", date, lineParam).
		First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ASSIGNMENT_NOT_FOUND",
					"message": "No assignment found for this date and line",
				},
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch daily assignment",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    plan,
	})
}

// uniqueIDs returns ids with duplicates removed, preserving order.
func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
