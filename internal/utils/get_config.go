package utils

import (
	"os"
	"sync"

	"github.com/gofiber/fiber/v2/log"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	// Database configuration
	DatabaseURL string `yaml:"DATABASE_URL"`
	DBUser      string `yaml:"DB_USER"`
	DBName      string `yaml:"DB_NAME"`
	DBPassword  string `yaml:"DB_PASSWORD"`
	DBPort      string `yaml:"DB_PORT"`
	DBHost      string `yaml:"DB_HOST"`

	// Server
	Port               string `yaml:"PORT"`
	RateLimitPerSecond string `yaml:"RATE_LIMIT_PER_SECOND"`

	// Session and JWT keys
	SessionSecret string `yaml:"SESSION_SECRET"`
	JWTSecret     string `yaml:"JWT_SECRET"`

	// Mailing configuration
	AppURL           string `yaml:"APP_URL"`
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`

	// Gemini API configuration
	GeminiAPIKey  string `yaml:"GEMINI_API_KEY"`
	GeminiModel   string `yaml:"GEMINI_MODEL"`
	GeminiBaseURL string `yaml:"GEMINI_BASE_URL"`
}

var (
	config     Config
	configOnce sync.Once

	defaults = map[string]string{
		"PORT":                  "5000",
		"RATE_LIMIT_PER_SECOND": "10",
		"GEMINI_MODEL":          "gemini-1.5-flash",
		"GEMINI_BASE_URL":       "https://generativelanguage.googleapis.com",
	}
)

// LoadConfig reads .env and config.yaml once. Both files are optional;
// process environment variables always win over file values.
func LoadConfig() {
	configOnce.Do(func() {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			log.Warnf("error reading .env file: %v", err)
		}

		file, err := os.ReadFile("config.yaml")
		if err != nil {
			if !os.IsNotExist(err) {
				log.Warnf("error reading YAML file: %v", err)
			}
			return
		}

		if err := yaml.Unmarshal(file, &config); err != nil {
			log.Warnf("error parsing YAML file: %v", err)
		}
	})
}

func GetConfig(key string) string {
	LoadConfig()
	if v := os.Getenv(key); v != "" {
		return v
	}
	if v := fromFile(key); v != "" {
		return v
	}
	return defaults[key]
}

func fromFile(key string) string {
	switch key {
	case "DATABASE_URL":
		return config.DatabaseURL
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "PORT":
		return config.Port
	case "RATE_LIMIT_PER_SECOND":
		return config.RateLimitPerSecond
	case "SESSION_SECRET":
		return config.SessionSecret
	case "JWT_SECRET":
		return config.JWTSecret
	case "APP_URL":
		return config.AppURL
	case "SMTP_HOST":
		return config.SMTPHost
	case "SMTP_PORT":
		return config.SMTPPort
	case "SMTP_SENDER_NAME":
		return config.SMTPSenderName
	case "SMTP_AUTH_EMAIL":
		return config.SMTPAuthEmail
	case "SMTP_AUTH_PASSWORD":
		return config.SMTPAuthPassword
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	case "GEMINI_API_KEY":
		return config.GeminiAPIKey
	case "GEMINI_MODEL":
		return config.GeminiModel
	case "GEMINI_BASE_URL":
		return config.GeminiBaseURL
	default:
		return ""
	}
}
