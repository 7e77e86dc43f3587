package controllers

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/stitchworks/sewline-api/models"
	"github.com/xuri/excelize/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportDailyProduction handles GET /api/v1/daily-production/export -
// downloads the daily production report as an .xlsx file: one row per
// operator, one column per recorded hour, plus the daily total.
func ExportDailyProduction(c *gin.Context) {
	records, ok := loadDailyProduction(c)
	if !ok {
		return
	}

	file, err := buildDailyProductionSheet(records)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "REPORT_ERROR",
				"message": "Failed to generate Excel file",
			},
		})
		return
	}

	buffer, err := file.WriteToBuffer()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "REPORT_ERROR",
				"message": "Failed to write Excel file",
			},
		})
		return
	}

	filename := fmt.Sprintf("daily_production_%s.xlsx", c.Query("date"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, xlsxContentType, buffer.Bytes())
}

// buildDailyProductionSheet lays the report out with hours as columns.
// Only hours that actually carry entries get a column.
func buildDailyProductionSheet(records []models.Production) (*excelize.File, error) {
	f := excelize.NewFile()
	const sheet = "Daily Production"

	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	// Collect the distinct hours present across all records
	hourSet := make(map[int]bool)
	for _, record := range records {
		for _, entry := range record.HourlyProduction {
			hourSet[entry.Hour] = true
		}
	}
	hours := make([]int, 0, len(hourSet))
	for hour := range hourSet {
		hours = append(hours, hour)
	}
	sort.Ints(hours)

	headers := []string{"Operator ID", "Operator", "Machine", "Process"}
	for _, hour := range hours {
		headers = append(headers, fmt.Sprintf("%02d:00", hour))
	}
	headers = append(headers, "Total")

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, err
	}

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return nil, err
		}
	}

	for rowIdx, record := range records {
		countByHour := make(map[int]int, len(record.HourlyProduction))
		for _, entry := range record.HourlyProduction {
			countByHour[entry.Hour] = entry.Count
		}

		values := []interface{}{
			record.Operator.OperatorID,
			record.Operator.Name,
			record.Machine.Name,
			record.Process.Name,
		}
		for _, hour := range hours {
			if count, ok := countByHour[hour]; ok {
				values = append(values, count)
			} else {
				values = append(values, "")
			}
		}
		values = append(values, record.TotalProduction)

		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}
