package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stitchworks/sewline-api/config"
	"github.com/stitchworks/sewline-api/middleware"
	"github.com/stitchworks/sewline-api/models"
	"github.com/stitchworks/sewline-api/services"
	"github.com/stitchworks/sewline-api/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CreatePostRequest represents the request body for publishing a blog post
type CreatePostRequest struct {
	Title    string   `json:"title" binding:"required"`
	Content  string   `json:"content" binding:"required"`
	Excerpt  *string  `json:"excerpt" binding:"omitempty"`
	Category string   `json:"category" binding:"required"`
	Tags     []string `json:"tags" binding:"omitempty"`
}

// CreatePost handles POST /api/v1/posts - publishes a blog article (editors
// only). The slug is derived from the title; the author's display name is
// resolved from the caller's Auth0 profile.
func CreatePost(c *gin.Context) {
	authorID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return
	}

	var req CreatePostRequest
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

	slug := utils.Slugify(req.Title)
	if slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Title must contain at least one letter or digit",
			},
		})
		return
	}

	// Resolve the author's display name from Auth0; fall back to the
	// subject id when the profile lookup is unavailable
	authorName := authorID
	if accessToken, tokenErr := middleware.GetAccessToken(c); tokenErr == nil {
		auth0Service := services.NewAuth0Service(config.GetConfig())
		if userInfo, infoErr := auth0Service.GetUserInfo(accessToken); infoErr == nil && userInfo.Name != "" {
			authorName = userInfo.Name
		}
	}

	post := models.Post{
		Title:      req.Title,
		Slug:       slug,
		Content:    req.Content,
		Excerpt:    req.Excerpt,
		Category:   req.Category,
		Tags:       datatypes.NewJSONSlice(req.Tags),
		AuthorID:   authorID,
		AuthorName: authorName,
	}

	db := config.GetDB()
	if err := db.Create(&post).Error; err != nil {
		if isDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "POST_EXISTS",
					"message": "A post with this title already exists",
				},
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create post",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    post,
	})
}

// ListPosts handles GET /api/v1/posts - lists articles newest first, with
// optional ?category= and ?tag= filters
func ListPosts(c *gin.Context) {
	db := config.GetDB()

	if category := c.Query("category"); category != "" {
		db = db.Where("category = ?", category)
	}
	if tag := c.Query("tag"); tag != "" {
		db = db.Where(datatypes.JSONArrayQuery("tags").Contains(tag))
	}

	var posts []models.Post
	if err := db.Order("created_at DESC").Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch posts",
			},
		})
		return
	}

	for i := range posts {
		attachImageURL(&posts[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    posts,
	})
}

// GetPostBySlug handles GET /api/v1/posts/:slug - fetches one article and
// counts the view
func GetPostBySlug(c *gin.Context) {
	slug := c.Param("slug")

	db := config.GetDB()
	var post models.Post
	if err := db.Where("slug = ?", slug).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "POST_NOT_FOUND",
					"message": "Post not found",
				},
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch post",
			},
		})
		return
	}

	// View counting is best effort; a failed increment never blocks the read
	if err := db.Model(&post).UpdateColumn("views", gorm.Expr("views + 1")).Error; err == nil {
		post.Views++
	}

	attachImageURL(&post)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    post,
	})
}

// UploadPostImage handles POST /api/v1/posts/:id/image - uploads or replaces
// an article's cover image (editors only)
func UploadPostImage(c *gin.Context) {
	id := c.Param("id")

	db := config.GetDB()
	var post models.Post
	if err := db.First(&post, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "POST_NOT_FOUND",
				"message": "Post not found",
			},
		})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "An image file is required",
			},
		})
		return
	}

	imageService := services.GetImageService()
	if imageService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "STORAGE_UNAVAILABLE",
				"message": "Image storage is not configured",
			},
		})
		return
	}

	s3Key, err := imageService.UploadImage(fileHeader)
	if err != nil {
		var uploadErr *utils.FileUploadError
		if errors.As(err, &uploadErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    uploadErr.Code,
					"message": uploadErr.Message,
				},
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_ERROR",
				"message": "Failed to upload image",
			},
		})
		return
	}

	// Replace, then drop the previous image so the bucket doesn't collect
	// orphans
	previousKey := post.ImageS3Key
	if err := db.Model(&post).Update("image_s3_key", s3Key).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to save image reference",
			},
		})
		return
	}
	if previousKey != nil && *previousKey != "" {
		if err := imageService.DeleteImage(*previousKey); err != nil {
			utils.Logger.WithError(err).Warn("failed to delete replaced cover image")
		}
	}

	post.ImageS3Key = &s3Key
	attachImageURL(&post)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    post,
	})
}

// attachImageURL fills the computed ImageURL field from the stored S3 key.
func attachImageURL(post *models.Post) {
	if post.ImageS3Key == nil || *post.ImageS3Key == "" {
		return
	}
	imageService := services.GetImageService()
	if imageService == nil {
		return
	}
	if url, err := imageService.GetImageURL(*post.ImageS3Key); err == nil && url != "" {
		post.ImageURL = &url
	}
}
