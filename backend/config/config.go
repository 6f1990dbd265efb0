package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	JWTSecret  string
	ServerPort string

	// StoreBackend selects where progress snapshots go: "postgres"
	// (durable) or "memory" (local-ephemeral). Core logic never
	// branches on this.
	StoreBackend string
	// SaveDebounce is the coalescing window for high-frequency
	// progress saves (video position ticks).
	SaveDebounce time.Duration
	// QuizMaxAttempts caps graded submissions per quiz. 0 = unlimited.
	QuizMaxAttempts int
	// SingleLessonUnlock restores the legacy rule where entering a
	// module opens only its first lesson.
	SingleLessonUnlock bool
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	return &Config{
		DBHost:             getEnv("DB_HOST", "localhost"),
		DBPort:             getEnv("DB_PORT", "5432"),
		DBUser:             getEnv("DB_USER", "postgres"),
		DBPassword:         getEnv("DB_PASSWORD", "postgres"),
		DBName:             getEnv("DB_NAME", "learning_portal"),
		JWTSecret:          getEnv("JWT_SECRET", "secret"),
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		StoreBackend:       getEnv("STORE_BACKEND", "postgres"),
		SaveDebounce:       getEnvDuration("SAVE_DEBOUNCE", 2*time.Second),
		QuizMaxAttempts:    getEnvInt("QUIZ_MAX_ATTEMPTS", 0),
		SingleLessonUnlock: getEnvBool("SINGLE_LESSON_UNLOCK", false),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
