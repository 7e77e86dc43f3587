package controllers

import (
	"net/http"
	"testing"

	"github.com/stitchworks/sewline-api/config"
	"github.com/stretchr/testify/assert"
)

func TestCreateProcesses(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	router := setupTestRouter()
	router.POST("/api/v1/processes", mockAuthMiddleware("auth0|admin", "admin", "token-admin"), CreateProcesses)

	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
		expectedCode   string
		expectedCount  int
	}{
		{
			name:           "Create processes from comma-separated list",
			body:           map[string]string{"names": "Collar Attach, Side Seam"},
			expectedStatus: http.StatusCreated,
			expectedCount:  2,
		},
		{
			name:           "Duplicate process name rejected",
			body:           map[string]string{"names": "Side Seam"},
			expectedStatus: http.StatusConflict,
			expectedCode:   "PROCESS_EXISTS",
		},
		{
			name:           "Missing names field rejected",
			body:           map[string]string{},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performJSON(t, router, http.MethodPost, "/api/v1/processes", tt.body)
			mustStatus(t, w, tt.expectedStatus)

			response := parseResponse(t, w)
			if tt.expectedStatus == http.StatusCreated {
				assert.Equal(t, true, response["success"])
				assert.Equal(t, float64(tt.expectedCount), response["count"])
			} else {
				assert.Equal(t, tt.expectedCode, errorCode(t, w))
			}
		})
	}
}

func TestListProcesses(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	seedProcess(t, db, "Side Seam")
	seedProcess(t, db, "Collar Attach")

	router := setupTestRouter()
	router.GET("/api/v1/processes", ListProcesses)

	w := performJSON(t, router, http.MethodGet, "/api/v1/processes", nil)
	mustStatus(t, w, http.StatusOK)

	response := parseResponse(t, w)
	data := response["data"].([]interface{})
	assert.Len(t, data, 2)
	assert.Equal(t, "Collar Attach", data[0].(map[string]interface{})["name"])
	assert.Equal(t, "Side Seam", data[1].(map[string]interface{})["name"])
}
