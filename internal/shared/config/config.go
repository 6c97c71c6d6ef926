package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds application configuration.
type Config struct {
	Port                 string
	Env                  string
	DataFile             string
	UploadDir            string
	ObjectStoreType      string
	AWSRegion            string
	S3Bucket             string
	S3Prefix             string
	SerializeStoreWrites bool
	MaxUploadBytes       int64
	CORSAllowOrigin      []string
	LogLevel             string
}

const defaultMaxUploadBytes = 10 << 20

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	return Config{
		Port:                 getEnv("PORT", "5001"),
		Env:                  normalizeEnv(getEnv("ENV", "dev")),
		DataFile:             getEnv("DATA_FILE", "applicants.csv"),
		UploadDir:            getEnv("UPLOAD_DIR", "uploads"),
		ObjectStoreType:      normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		AWSRegion:            getEnv("AWS_REGION", ""),
		S3Bucket:             getEnv("S3_BUCKET", ""),
		S3Prefix:             getEnv("S3_PREFIX", ""),
		SerializeStoreWrites: parseBool(getEnv("STORE_SERIALIZE_WRITES", "false")),
		MaxUploadBytes:       parseBytes(getEnv("MAX_UPLOAD_BYTES", ""), defaultMaxUploadBytes),
		CORSAllowOrigin:      splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseBool(raw string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	return err == nil && v
}

func parseBytes(raw string, def int64) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}
