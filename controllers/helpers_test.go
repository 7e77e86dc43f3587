package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"
	"github.com/stitchworks/sewline-api/middleware"
	"github.com/stitchworks/sewline-api/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TestMain runs before all tests in the controllers package
// It ensures GO_ENV is set to "test" to prevent accidental data loss
func TestMain(m *testing.M) {
	env := os.Getenv("GO_ENV")
	if env != "test" {
		fmt.Fprintf(os.Stderr, "\n"+
			"╔════════════════════════════════════════════════════════════════╗\n"+
			"║                    SAFETY CHECK FAILED                         ║\n"+
			"║                                                                ║\n"+
			"║  Tests must run with GO_ENV=test to prevent data loss!        ║\n"+
			"║                                                                ║\n"+
			"║  Current GO_ENV: %-45s ║\n"+
			"║                                                                ║\n"+
			"║  To run tests safely:                                          ║\n"+
			"║    GO_ENV=test go test ./...                                   ║\n"+
			"╚════════════════════════════════════════════════════════════════╝\n\n",
			fmt.Sprintf("%q", env))
		os.Exit(1)
	}

	os.Exit(m.Run())
}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Machine{},
		&models.Process{},
		&models.SewingLine{},
		&models.UniqueMachine{},
		&models.Operator{},
		&models.DailyAssignment{},
		&models.OperatorAssignment{},
		&models.Production{},
		&models.HourlyEntry{},
		&models.Post{},
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	return router
}

// mockAuthMiddleware simulates the Auth0 JWT middleware for testing
// It sets up the context exactly as the real EnsureValidToken middleware does
func mockAuthMiddleware(auth0ID, role, accessToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", auth0ID)
		c.Set("access_token", accessToken)

		mockClaims := &validator.ValidatedClaims{
			RegisteredClaims: validator.RegisteredClaims{
				Subject: auth0ID,
			},
			CustomClaims: &middleware.CustomClaims{
				Role: role,
			},
		}
		c.Set("validated_claims", mockClaims)

		c.Next()
	}
}

// performJSON sends a JSON request through the router and returns the recorder
func performJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// parseResponse unmarshals the recorded response body
func parseResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Response should be valid JSON: %v (body: %s)", err, w.Body.String())
	}
	return response
}

// errorCode digs the error code out of a failure envelope
func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	response := parseResponse(t, w)
	errObj, ok := response["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("Response has no error object: %s", w.Body.String())
	}
	code, _ := errObj["code"].(string)
	return code
}

func seedMachine(t *testing.T, db *gorm.DB, name string) models.Machine {
	t.Helper()

	machine := models.Machine{Name: name}
	if err := db.Create(&machine).Error; err != nil {
		t.Fatalf("Failed to seed machine %q: %v", name, err)
	}
	return machine
}

func seedProcess(t *testing.T, db *gorm.DB, name string) models.Process {
	t.Helper()

	process := models.Process{Name: name}
	if err := db.Create(&process).Error; err != nil {
		t.Fatalf("Failed to seed process %q: %v", name, err)
	}
	return process
}

func seedSewingLine(t *testing.T, db *gorm.DB, name, floor string) models.SewingLine {
	t.Helper()

	line := models.SewingLine{Name: name, Floor: floor}
	if err := db.Create(&line).Error; err != nil {
		t.Fatalf("Failed to seed sewing line %q: %v", name, err)
	}
	return line
}

func seedOperator(t *testing.T, db *gorm.DB, operatorID, name string, processes []models.Process) models.Operator {
	t.Helper()

	operator := models.Operator{
		OperatorID:    operatorID,
		Name:          name,
		Designation:   "Operator",
		IsActive:      true,
		ProcessSkills: processes,
	}
	if err := db.Create(&operator).Error; err != nil {
		t.Fatalf("Failed to seed operator %q: %v", operatorID, err)
	}
	return operator
}

// mustStatus fails the test with the response body when the status differs,
// so a broken handler prints its actual error
func mustStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()

	if w.Code != expected {
		t.Fatalf("Expected status %d, got %d (body: %s)", expected, w.Code, w.Body.String())
	}
}
