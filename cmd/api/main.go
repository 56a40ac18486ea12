package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/hibaa8/SmartMeds/internal/auth"
	"github.com/hibaa8/SmartMeds/internal/db"
	"github.com/hibaa8/SmartMeds/internal/llm"
	"github.com/hibaa8/SmartMeds/internal/middleware"
	"github.com/hibaa8/SmartMeds/internal/prescription"
	"github.com/hibaa8/SmartMeds/internal/storage"
	"github.com/hibaa8/SmartMeds/internal/vision"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	required := []string{
		"JWT_SECRET",
		"DATABASE_URL",
		"REDIS_ADDR",
		"VISION_API_KEY",
		"GEMINI_API_KEY",
		"GEMINI_MODEL",
	}

	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatalf("❌ Missing env var: %s", k)
		}
	}

	// ───────────────────────── DB ─────────────────────────
	pgDB := db.ConnectPostgres()
	defer pgDB.Close()

	// ───────────────────────── REDIS ─────────────────────────
	redisClient := redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatal("❌ Redis connection failed:", err)
	}
	revoker := auth.NewRedisRevocationStore(redisClient)

	// ───────────────────────── GIN ─────────────────────────
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// ───────────────────────── STORAGE (optional) ─────────────────────────
	var archive prescription.ScanArchiver
	if storage.Enabled() {
		r2Client, err := storage.NewR2Client(context.Background())
		if err != nil {
			log.Fatal("❌ R2 init failed:", err)
		}
		archive = r2Client
		log.Println("Scan archival enabled")
	}

	// ───────────────────────── AUTH ─────────────────────────
	userRepo := auth.NewPostgresUserRepository(pgDB)
	authService := auth.NewService(userRepo)
	authHandler := auth.NewHandler(authService, revoker)

	r.POST("/signup", authHandler.Signup)
	r.POST("/login", authHandler.Login)
	r.POST("/update_medical_history", authHandler.UpdateMedicalHistory)

	authed := r.Group("/")
	authed.Use(middleware.AuthMiddleware(revoker))
	{
		authed.POST("/logout", authHandler.Logout)
		authed.GET("/is_logged_in", authHandler.IsLoggedIn)
		authed.GET("/dashboard", authHandler.Dashboard)
	}

	// ───────────────────────── PRESCRIPTIONS ─────────────────────────
	visionClient := vision.NewGoogleVisionClient()
	geminiClient := llm.NewGeminiClient()

	prescriptionRepo := prescription.NewPostgresRepository(pgDB)
	prescriptionService := prescription.NewService(
		prescriptionRepo,
		visionClient,
		geminiClient,
		archive,
	)
	prescriptionHandler := prescription.NewHandler(prescriptionService)

	prescriptions := r.Group("/")
	prescriptions.Use(middleware.AuthMiddleware(revoker))
	{
		prescriptions.POST("/scan-prescription", prescriptionHandler.Scan)
		prescriptions.POST("/add-prescription", prescriptionHandler.Add)
		prescriptions.GET("/get-prescriptions", prescriptionHandler.List)
		prescriptions.DELETE("/delete-prescription/:id", prescriptionHandler.Delete)
	}

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy", "service": "SmartMeds API"})
	})

	// ───────────────────────── START ─────────────────────────
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	log.Println("🚀 API running at http://localhost:" + port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
