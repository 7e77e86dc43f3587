package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stitchworks/sewline-api/config"
	"github.com/stitchworks/sewline-api/models"
	"github.com/stitchworks/sewline-api/utils"
	"gorm.io/gorm"
)

// RecordProductionRequest represents the request body for recording one
// hour's production count. Hour and Count are pointers so that zero values
// survive required-field validation.
type RecordProductionRequest struct {
	DailyAssignmentID uint `json:"dailyAssignmentId" binding:"required"`
	OperatorID        uint `json:"operatorId" binding:"required"`
	SewingLineID      uint `json:"sewingLineId" binding:"required"`
	MachineID         uint `json:"machineId" binding:"required"`
	ProcessID         uint `json:"processId" binding:"required"`
	Hour              *int `json:"hour" binding:"required,gte=0,lte=23"`
	Count             *int `json:"count" binding:"required,gte=0"`
}

// RecordProduction handles POST /api/v1/production - records one hour's
// count for one operator under one assignment. Submitting the same hour
// again overwrites the count rather than appending; the daily total is
// recomputed from the hourly entries on every mutation.
func RecordProduction(c *gin.Context) {
	var req RecordProductionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Missing or invalid required fields",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()

	// The production date comes from the referenced assignment, never from
	// the wall clock, so late entries land on the planned day
	var assignment models.DailyAssignment
	if err := db.First(&assignment, req.DailyAssignmentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ASSIGNMENT_NOT_FOUND",
				"message": "Daily assignment not found",
			},
		})
		return
	}
	date := utils.NormalizeDay(assignment.Date)

	var record models.Production
	lookupErr := db.Preload("HourlyProduction").
		Where("daily_assignment_id = ? AND operator_id = ? AND date = ?", req.DailyAssignmentID, req.OperatorID, date).
		First(&record).Error

	switch {
	case lookupErr == nil:
		record.SetHour(*req.Hour, *req.Count, time.Now().UTC())
		err := db.Transaction(func(tx *gorm.DB) error {
			for i := range record.HourlyProduction {
				entry := &record.HourlyProduction[i]
				if entry.Hour != *req.Hour {
					continue
				}
				if entry.ID == 0 {
					if err := tx.Create(entry).Error; err != nil {
						return err
					}
				} else if err := tx.Model(entry).Update("count", entry.Count).Error; err != nil {
					return err
				}
			}
			return tx.Model(&record).Update("total_production", record.TotalProduction).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to save production data",
				},
			})
			return
		}

	case errors.Is(lookupErr, gorm.ErrRecordNotFound):
		record = models.Production{
			DailyAssignmentID: req.DailyAssignmentID,
			OperatorID:        req.OperatorID,
			SewingLineID:      req.SewingLineID,
			MachineID:         req.MachineID,
			ProcessID:         req.ProcessID,
			Date:              date,
			HourlyProduction: []models.HourlyEntry{
				{Hour: *req.Hour, Count: *req.Count, Timestamp: time.Now().UTC()},
			},
			TotalProduction: *req.Count,
		}
		if err := db.Create(&record).Error; err != nil {
			// A concurrent first save for the same (assignment, operator,
			// date) won the unique-index race; the caller should retry,
			// which will take the update path
			if isDuplicateKeyError(err) {
				c.JSON(http.StatusConflict, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "PRODUCTION_EXISTS",
						"message": "A production record for this operator and assignment already exists. Please retry.",
					},
				})
				return
			}

			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to save production data",
				},
			})
			return
		}

	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to look up production record",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    record,
	})
}

// GetDailyProduction handles GET /api/v1/daily-production - returns all
// production records for a (date, sewing line), hour-by-hour plus totals
func GetDailyProduction(c *gin.Context) {
	records, ok := loadDailyProduction(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    records,
	})
}

// loadDailyProduction parses the date/sewingLineId query parameters and
// fetches the day's production records, writing the error response itself
// when anything fails. Shared with the xlsx export.
func loadDailyProduction(c *gin.Context) ([]models.Production, bool) {
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
		return nil, false
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
		return nil, false
	}

	db := config.GetDB()
	var records []models.Production
	err = db.
		Preload("HourlyProduction", func(db *gorm.DB) *gorm.DB {
			return db.Order("hour")
		}).
		Preload("Operator").
		Preload("Machine").
		Preload("Process").
		Joins("JOIN operators ON operators.id = productions.operator_id").
		Where("productions.sewing_line_id = ? AND productions.date = ?", lineParam, date).
		Order("operators.name").
		Find(&records).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch daily production data",
			},
		})
		return nil, false
	}

	if len(records) == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PRODUCTION_NOT_FOUND",
				"message": "No production data found for this date and line",
			},
		})
		return nil, false
	}

	return records, true
}
