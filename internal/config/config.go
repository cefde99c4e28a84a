package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config collects every environment-backed setting the API needs.
// It is loaded once in main and passed down explicitly.
type Config struct {
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	Port string

	// Upload directories and the public URLs they are served under.
	ImageDir     string
	VideoDir     string
	BaseImageURL string
	BaseVideoURL string

	// Default thumbnail shown for videos uploaded without one.
	DefaultThumbURL string

	JWTSecret string
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: no .env file found, relying on system environment variables")
	}

	return Config{
		DBUser:          getenv("DB_USER", "root"),
		DBPassword:      os.Getenv("DB_PASSWORD"),
		DBHost:          getenv("DB_HOST", "127.0.0.1"),
		DBPort:          getenv("DB_PORT", "3306"),
		DBName:          getenv("DB_NAME", "smarthome"),
		Port:            getenv("APP_PORT", ":8080"),
		ImageDir:        getenv("IMAGE_DIR", "./uploads/images"),
		VideoDir:        getenv("VIDEO_DIR", "./uploads/videos"),
		BaseImageURL:    getenv("BASE_IMAGE_URL", "http://localhost:8080/images/"),
		BaseVideoURL:    getenv("BASE_VIDEO_URL", "http://localhost:8080/videos/"),
		DefaultThumbURL: getenv("DEFAULT_THUMB_URL", "http://localhost:8080/videos/default.jpg"),
		JWTSecret:       getenv("JWT_SECRET", "dev-only-secret-change-me"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
