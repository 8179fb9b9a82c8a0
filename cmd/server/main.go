package main

import (
	"log"

	"clinrec/internal/auth"
	"clinrec/internal/config"
	"clinrec/internal/database"
	"clinrec/internal/handlers"
	"clinrec/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := database.InitDB(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Database connection successfully opened.")

	var sessions auth.SessionStore
	if cfg.RedisAddr != "" {
		sessions, err = auth.NewRedisSessionStore(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		log.Println("Using Redis session store at", cfg.RedisAddr)
	} else {
		sessions = auth.NewMemorySessionStore()
		log.Println("REDIS_ADDR not set, using in-memory session store")
	}

	authService := services.NewAuthService(database.DB, sessions, cfg.JWTSecret, cfg.SessionTTL)
	patientService := services.NewPatientService(database.DB)
	recordService := services.NewRecordService(database.DB)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	handlers.RegisterRoutes(r, &handlers.Handler{
		Auth:     authService,
		Patients: patientService,
		Records:  recordService,
	})

	log.Println("Starting server on port", cfg.ListenPort)
	if err := r.Run(":" + cfg.ListenPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
