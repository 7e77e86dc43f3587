package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stitchworks/sewline-api/config"
	"github.com/stitchworks/sewline-api/models"
	"github.com/stitchworks/sewline-api/services"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

// setupMockAuth0Server creates a mock HTTP server that simulates Auth0's /userinfo endpoint
func setupMockAuth0Server(userInfoMap map[string]*services.Auth0UserInfo) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/userinfo" {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || len(authHeader) < 7 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		token := authHeader[7:]

		userInfo, exists := userInfoMap[token]
		if !exists {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(userInfo)
	}))
}

func TestCreatePost(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	mockServer := setupMockAuth0Server(map[string]*services.Auth0UserInfo{
		"token-editor": {Sub: "auth0|editor", Email: "editor@example.com", Name: "Farhan Editor"},
	})
	defer mockServer.Close()
	config.SetConfig(&config.Config{Auth0Domain: mockServer.URL, DatabaseURL: "test"})

	router := setupTestRouter()
	router.POST("/api/v1/posts", mockAuthMiddleware("auth0|editor", "editor", "token-editor"), CreatePost)

	t.Run("Publish resolves slug and author", func(t *testing.T) {
		body := map[string]interface{}{
			"title":    "Line Balancing 101",
			"content":  "How we balance our sewing lines.",
			"category": "operations",
			"tags":     []string{"planning", "efficiency"},
		}
		w := performJSON(t, router, http.MethodPost, "/api/v1/posts", body)
		mustStatus(t, w, http.StatusCreated)

		data := parseResponse(t, w)["data"].(map[string]interface{})
		assert.Equal(t, "line-balancing-101", data["slug"])
		assert.Equal(t, "auth0|editor", data["author_id"])
		assert.Equal(t, "Farhan Editor", data["author_name"])
		assert.Equal(t, float64(0), data["views"])
	})

	t.Run("Colliding title rejected", func(t *testing.T) {
		body := map[string]interface{}{
			"title":    "Line Balancing 101!!!", // slugifies to the same slug
			"content":  "Different content.",
			"category": "operations",
		}
		w := performJSON(t, router, http.MethodPost, "/api/v1/posts", body)
		mustStatus(t, w, http.StatusConflict)
		assert.Equal(t, "POST_EXISTS", errorCode(t, w))
	})

	t.Run("Title without letters or digits rejected", func(t *testing.T) {
		body := map[string]interface{}{
			"title":    "!!!",
			"content":  "Content.",
			"category": "misc",
		}
		w := performJSON(t, router, http.MethodPost, "/api/v1/posts", body)
		mustStatus(t, w, http.StatusBadRequest)
		assert.Equal(t, "VALIDATION_ERROR", errorCode(t, w))
	})

	t.Run("Missing required fields rejected", func(t *testing.T) {
		w := performJSON(t, router, http.MethodPost, "/api/v1/posts", map[string]interface{}{"title": "No content"})
		mustStatus(t, w, http.StatusBadRequest)
	})

	t.Run("Unreachable userinfo falls back to subject id", func(t *testing.T) {
		fallbackRouter := setupTestRouter()
		fallbackRouter.POST("/api/v1/posts", mockAuthMiddleware("auth0|other", "editor", "unknown-token"), CreatePost)

		body := map[string]interface{}{
			"title":    "Fallback Author",
			"content":  "Content.",
			"category": "misc",
		}
		w := performJSON(t, fallbackRouter, http.MethodPost, "/api/v1/posts", body)
		mustStatus(t, w, http.StatusCreated)

		data := parseResponse(t, w)["data"].(map[string]interface{})
		assert.Equal(t, "auth0|other", data["author_name"])
	})
}

func TestListPosts(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	services.SetImageService(nil)

	posts := []models.Post{
		{Title: "Oldest", Slug: "oldest", Content: "c", Category: "operations", Tags: datatypes.NewJSONSlice([]string{"planning"}), AuthorID: "auth0|e", AuthorName: "E"},
		{Title: "Middle", Slug: "middle", Content: "c", Category: "culture", Tags: datatypes.NewJSONSlice([]string{"people", "planning"}), AuthorID: "auth0|e", AuthorName: "E"},
		{Title: "Newest", Slug: "newest", Content: "c", Category: "operations", Tags: datatypes.NewJSONSlice([]string{"people"}), AuthorID: "auth0|e", AuthorName: "E"},
	}
	for i := range posts {
		if err := db.Create(&posts[i]).Error; err != nil {
			t.Fatalf("Failed to seed post: %v", err)
		}
	}
	// Spread creation times so the ordering is deterministic
	for i, slug := range []string{"oldest", "middle", "newest"} {
		created := time.Date(2024, 6, 1+i, 10, 0, 0, 0, time.UTC)
		db.Model(&models.Post{}).Where("slug = ?", slug).Update("created_at", created)
	}

	router := setupTestRouter()
	router.GET("/api/v1/posts", ListPosts)

	t.Run("Lists newest first", func(t *testing.T) {
		w := performJSON(t, router, http.MethodGet, "/api/v1/posts", nil)
		mustStatus(t, w, http.StatusOK)

		data := parseResponse(t, w)["data"].([]interface{})
		assert.Len(t, data, 3)
		assert.Equal(t, "newest", data[0].(map[string]interface{})["slug"])
		assert.Equal(t, "oldest", data[2].(map[string]interface{})["slug"])
	})

	t.Run("Filter by category", func(t *testing.T) {
		w := performJSON(t, router, http.MethodGet, "/api/v1/posts?category=culture", nil)
		mustStatus(t, w, http.StatusOK)

		data := parseResponse(t, w)["data"].([]interface{})
		assert.Len(t, data, 1)
		assert.Equal(t, "middle", data[0].(map[string]interface{})["slug"])
	})

	t.Run("Filter by tag", func(t *testing.T) {
		w := performJSON(t, router, http.MethodGet, "/api/v1/posts?tag=planning", nil)
		mustStatus(t, w, http.StatusOK)

		data := parseResponse(t, w)["data"].([]interface{})
		assert.Len(t, data, 2)
	})

	t.Run("Combined filters", func(t *testing.T) {
		w := performJSON(t, router, http.MethodGet, "/api/v1/posts?tag=planning&category=operations", nil)
		mustStatus(t, w, http.StatusOK)

		data := parseResponse(t, w)["data"].([]interface{})
		assert.Len(t, data, 1)
		assert.Equal(t, "oldest", data[0].(map[string]interface{})["slug"])
	})
}

func TestGetPostBySlug(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	services.SetImageService(nil)

	post := models.Post{Title: "Hello", Slug: "hello", Content: "c", Category: "misc", AuthorID: "auth0|e", AuthorName: "E"}
	if err := db.Create(&post).Error; err != nil {
		t.Fatalf("Failed to seed post: %v", err)
	}

	router := setupTestRouter()
	router.GET("/api/v1/posts/:slug", GetPostBySlug)

	t.Run("Fetch increments the view counter", func(t *testing.T) {
		w := performJSON(t, router, http.MethodGet, "/api/v1/posts/hello", nil)
		mustStatus(t, w, http.StatusOK)
		data := parseResponse(t, w)["data"].(map[string]interface{})
		assert.Equal(t, float64(1), data["views"])

		w = performJSON(t, router, http.MethodGet, "/api/v1/posts/hello", nil)
		mustStatus(t, w, http.StatusOK)
		data = parseResponse(t, w)["data"].(map[string]interface{})
		assert.Equal(t, float64(2), data["views"])
	})

	t.Run("Unknown slug returns 404", func(t *testing.T) {
		w := performJSON(t, router, http.MethodGet, "/api/v1/posts/nope", nil)
		mustStatus(t, w, http.StatusNotFound)
		assert.Equal(t, "POST_NOT_FOUND", errorCode(t, w))
	})
}

// multipartImageRequest builds a multipart request carrying one image file
func multipartImageRequest(t *testing.T, path, filename string, content []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		t.Fatalf("Failed to create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("Failed to write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadPostImage(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	mockS3 := services.NewMockS3Service()
	mockS3.SetAsMockForTesting()
	services.InitImageService(mockS3)
	defer services.SetImageService(nil)

	post := models.Post{Title: "Hello", Slug: "hello", Content: "c", Category: "misc", AuthorID: "auth0|e", AuthorName: "E"}
	if err := db.Create(&post).Error; err != nil {
		t.Fatalf("Failed to seed post: %v", err)
	}

	router := setupTestRouter()
	router.POST("/api/v1/posts/:id/image", mockAuthMiddleware("auth0|editor", "editor", "token-editor"), UploadPostImage)

	uploadPath := fmt.Sprintf("/api/v1/posts/%d/image", post.ID)

	t.Run("Upload stores the image and returns a URL", func(t *testing.T) {
		req := multipartImageRequest(t, uploadPath, "cover.png", []byte("fake png bytes"))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		mustStatus(t, w, http.StatusOK)

		data := parseResponse(t, w)["data"].(map[string]interface{})
		assert.Equal(t, "posts/mock_cover.png", data["image_s3_key"])
		assert.Contains(t, data["image_url"], "posts/mock_cover.png")
		assert.True(t, mockS3.FileExists("posts/mock_cover.png"))
	})

	t.Run("Replacing deletes the previous image", func(t *testing.T) {
		req := multipartImageRequest(t, uploadPath, "cover2.png", []byte("new bytes"))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		mustStatus(t, w, http.StatusOK)

		assert.True(t, mockS3.FileExists("posts/mock_cover2.png"))
		assert.False(t, mockS3.FileExists("posts/mock_cover.png"), "previous image must be deleted")
	})

	t.Run("Disallowed file type rejected", func(t *testing.T) {
		req := multipartImageRequest(t, uploadPath, "notes.txt", []byte("not an image"))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		mustStatus(t, w, http.StatusBadRequest)
	})

	t.Run("Missing file rejected", func(t *testing.T) {
		w := performJSON(t, router, http.MethodPost, uploadPath, map[string]string{})
		mustStatus(t, w, http.StatusBadRequest)
		assert.Equal(t, "VALIDATION_ERROR", errorCode(t, w))
	})

	t.Run("Unknown post returns 404", func(t *testing.T) {
		req := multipartImageRequest(t, "/api/v1/posts/9999/image", "cover.png", []byte("bytes"))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		mustStatus(t, w, http.StatusNotFound)
		assert.Equal(t, "POST_NOT_FOUND", errorCode(t, w))
	})
}
