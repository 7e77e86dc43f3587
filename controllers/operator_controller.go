package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/stitchworks/sewline-api/config"
	"github.com/stitchworks/sewline-api/models"
	"github.com/stitchworks/sewline-api/utils"
)

// CreateOperatorRequest represents the request body for registering an operator
type CreateOperatorRequest struct {
	OperatorID    string  `json:"operatorId" binding:"required"` // business key, e.g. "OP001"
	Name          string  `json:"name" binding:"required"`
	Designation   string  `json:"designation" binding:"required"`
	ContactNumber *string `json:"contactNumber" binding:"omitempty"`
	MachineIDs    []uint  `json:"machineIds" binding:"omitempty"`
	ProcessIDs    []uint  `json:"processIds" binding:"omitempty"`
}

// CreateOperator handles POST /api/v1/operators - registers an operator with
// their machine/process skill sets (admin only)
func CreateOperator(c *gin.Context) {
	var req CreateOperatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()

	// Resolve skill references up front so an unknown id fails the whole
	// request instead of silently shrinking the skill set
	var machines []models.Machine
	if len(req.MachineIDs) > 0 {
		if err := db.Find(&machines, req.MachineIDs).Error; err != nil || len(machines) != len(req.MachineIDs) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "MACHINE_NOT_FOUND",
					"message": "One or more machine skills reference an unknown machine",
				},
			})
			return
		}
	}

	var processes []models.Process
	if len(req.ProcessIDs) > 0 {
		if err := db.Find(&processes, req.ProcessIDs).Error; err != nil || len(processes) != len(req.ProcessIDs) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "PROCESS_NOT_FOUND",
					"message": "One or more process skills reference an unknown process",
				},
			})
			return
		}
	}

	operator := models.Operator{
		OperatorID:    req.OperatorID,
		Name:          req.Name,
		Designation:   req.Designation,
		ContactNumber: req.ContactNumber,
		IsActive:      true,
		MachineSkills: machines,
		ProcessSkills: processes,
	}

	if err := db.Create(&operator).Error; err != nil {
		if isDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "OPERATOR_EXISTS",
					"message": "An operator with this operator ID already exists",
				},
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create operator",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    operator,
	})
}

// ListOperators handles GET /api/v1/operators - lists operators with their
// skills resolved; ?search= substring-matches name or operator ID
func ListOperators(c *gin.Context) {
	db := config.GetDB().
		Preload("MachineSkills").
		Preload("ProcessSkills")

	if term := c.Query("search"); term != "" {
		pattern := "%" + term + "%"
		db = db.Where("LOWER(name) LIKE LOWER(?) OR LOWER(operator_id) LIKE LOWER(?)", pattern, pattern)
	}

	var operators []models.Operator
	if err := db.Order("name").Find(&operators).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch operators",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    operators,
	})
}

// GetOperator handles GET /api/v1/operators/:id - fetches a single operator
// with skills resolved
func GetOperator(c *gin.Context) {
	id := c.Param("id")

	db := config.GetDB()
	var operator models.Operator
	if err := db.Preload("MachineSkills").Preload("ProcessSkills").First(&operator, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "OPERATOR_NOT_FOUND",
				"message": "Operator not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    operator,
	})
}

// OperatorWithAttendance decorates an operator with the attendance status
// recorded on a given day's plan ("N/A" when no plan or no row exists).
type OperatorWithAttendance struct {
	models.Operator
	AttendanceStatus string `json:"attendance_status"`
}

// SearchOperatorsByProcesses handles GET /api/v1/operators/search - returns
// active operators whose process skills are a superset of the requested
// process set. With date and sewingLineId supplied, each result carries the
// attendance status from that day's plan; a missing plan is not an error,
// results simply stay "N/A".
func SearchOperatorsByProcesses(c *gin.Context) {
	rawIDs := c.QueryArray("processIds")
	if len(rawIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "At least one process ID is required for search",
			},
		})
		return
	}

	// Parse and deduplicate so the superset count below stays correct
	seen := make(map[uint]bool, len(rawIDs))
	processIDs := make([]uint, 0, len(rawIDs))
	for _, raw := range rawIDs {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "Invalid process ID format provided",
				},
			})
			return
		}
		if !seen[uint(id)] {
			seen[uint(id)] = true
			processIDs = append(processIDs, uint(id))
		}
	}

	// Superset match: an operator qualifies when their skill rows cover
	// every requested process
	db := config.GetDB()
	var operators []models.Operator
	err := db.
		Joins("JOIN operator_process_skills ops ON ops.operator_id = operators.id").
		Where("ops.process_id IN ?", processIDs).
		Where("operators.is_active = ?", true).
		Group("operators.id").
		Having("COUNT(DISTINCT ops.process_id) = ?", len(processIDs)).
		Preload("MachineSkills").
		Preload("ProcessSkills").
		Order("operators.name").
		Find(&operators).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to search operators",
			},
		})
		return
	}

	results := make([]OperatorWithAttendance, 0, len(operators))
	for _, op := range operators {
		results = append(results, OperatorWithAttendance{Operator: op, AttendanceStatus: "N/A"})
	}

	// Optional attendance overlay from the day's plan
	dateParam := c.Query("date")
	lineParam := c.Query("sewingLineId")
	if dateParam != "" && lineParam != "" {
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

		var assignment models.DailyAssignment
		lookupErr := db.Preload("Assignments").
			Where("date = ? AND sewing_line_id = ?", date, lineParam).
			First(&assignment).Error
		if lookupErr == nil {
			statusByOperator := make(map[uint]string, len(assignment.Assignments))
			for _, row := range assignment.Assignments {
				statusByOperator[row.OperatorID] = row.Status
			}
			for i := range results {
				if status, ok := statusByOperator[results[i].ID]; ok {
					results[i].AttendanceStatus = status
				}
			}
		}
		// No plan for that day/line leaves every result at "N/A"
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    results,
	})
}
