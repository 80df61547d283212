package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is the process configuration shared by the CLI and the HTTP server.
type Config struct {
	WorkDir        string
	Port           string
	MaxUploadMB    int
	SectionMapFile string
	LogLevel       string
}

func LoadConfig() *Config {
	// A missing .env file is fine; the environment may already be set
	_ = godotenv.Load()

	return &Config{
		WorkDir:        getEnv("RESUMEDIT_WORK_DIR", "data/sessions"),
		Port:           getEnv("PORT", "8080"),
		MaxUploadMB:    getEnvInt("RESUMEDIT_MAX_UPLOAD_MB", 10),
		SectionMapFile: getEnv("RESUMEDIT_SECTION_MAP", "sections.yaml"),
		LogLevel:       getEnv("RESUMEDIT_LOG_LEVEL", "info"),
	}
}

// MaxUploadBytes returns the upload limit in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
