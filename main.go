package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/stitchworks/sewline-api/config"
	"github.com/stitchworks/sewline-api/controllers"
	"github.com/stitchworks/sewline-api/middleware"
	"github.com/stitchworks/sewline-api/models"
	"github.com/stitchworks/sewline-api/services"
	"github.com/stitchworks/sewline-api/utils"
)

func main() {
	log.Println("Starting Sewline API server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	utils.InitLogger(cfg.LogLevel)

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
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
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Blog images live in S3; the rest of the API works without it
	if cfg.AWSS3Bucket != "" {
		s3Service, err := services.InitS3Service()
		if err != nil {
			log.Fatalf("Failed to initialize S3 service: %v", err)
		}
		services.InitImageService(s3Service)
	} else {
		log.Println("AWS_S3_BUCKET not set; post image uploads disabled")
	}

	router := setupRouter(cfg)

	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter wires middleware and the /api/v1 route tree. Master data
// writes need the admin role, planner and production writes accept
// supervisors as well, blog writes need the editor role. Reads only need a
// valid token, except the blog which is public.
func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	authRequired := middleware.EnsureValidToken(cfg)
	adminOnly := middleware.RequireRole("admin")
	planners := middleware.RequireRole("admin", "supervisor")
	editors := middleware.RequireRole("admin", "editor")

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.GET("/database/status", databaseStatus)

		// Blog reads are public
		v1.GET("/posts", controllers.ListPosts)
		v1.GET("/posts/:slug", controllers.GetPostBySlug)

		authed := v1.Group("", authRequired)
		{
			// Master data
			authed.GET("/machines", controllers.ListMachines)
			authed.POST("/machines", adminOnly, controllers.CreateMachines)
			authed.GET("/processes", controllers.ListProcesses)
			authed.POST("/processes", adminOnly, controllers.CreateProcesses)
			authed.GET("/sewing-lines", controllers.ListSewingLines)
			authed.POST("/sewing-lines", adminOnly, controllers.CreateSewingLine)
			authed.GET("/unique-machines", controllers.ListUniqueMachines)
			authed.POST("/unique-machines", adminOnly, controllers.CreateUniqueMachine)

			// Operators and skill search
			authed.GET("/operators", controllers.ListOperators)
			authed.GET("/operators/search", controllers.SearchOperatorsByProcesses)
			authed.GET("/operators/:id", controllers.GetOperator)
			authed.POST("/operators", adminOnly, controllers.CreateOperator)

			// Daily planner
			authed.GET("/daily-assignments", controllers.GetDailyAssignment)
			authed.POST("/daily-assignments", planners, controllers.UpsertDailyAssignment)

			// Hourly production
			authed.GET("/daily-production", controllers.GetDailyProduction)
			authed.GET("/daily-production/export", controllers.ExportDailyProduction)
			authed.POST("/production", planners, controllers.RecordProduction)

			// Blog writes
			authed.POST("/posts", editors, controllers.CreatePost)
			authed.POST("/posts/:id/image", editors, controllers.UploadPostImage)
		}
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Sewline API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	var tables []string
	if err := db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public'").Scan(&tables).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_QUERY_ERROR",
				"message": "Failed to query tables",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"tables":  tables,
	})
}
