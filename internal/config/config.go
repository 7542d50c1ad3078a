package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"moviematrix/internal/logging"

	"github.com/joho/godotenv"
)

// Hardcoded store layout.
const (
	DatabaseName = "movieMatrixDB"

	MoviesCollection    = "movies"
	UsersCollection     = "users"
	WatchlistCollection = "watchlist"
	ReviewsCollection   = "reviews"
)

const atlasHost = "cluster0.cjj6frc.mongodb.net"

type Config struct {
	HTTPPort string

	DBUsername string
	DBPassword string
	MongoURI   string
	MongoDB    string

	RedisAddr string
	RedisPass string

	CORSOrigins  []string
	RateLimitRPM int

	LogLevel  string
	LogFormat string
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:     getEnv("PORT", "3000"),
		DBUsername:   os.Getenv("DB_USERNAME"),
		DBPassword:   os.Getenv("DB_PASSWORD"),
		MongoURI:     os.Getenv("MONGO_URI"),
		MongoDB:      DatabaseName,
		RedisAddr:    os.Getenv("REDIS_ADDR"),
		RedisPass:    os.Getenv("REDIS_PASSWORD"),
		CORSOrigins:  splitList(getEnv("CORS_ORIGINS", "*")),
		RateLimitRPM: getEnvInt("RATE_LIMIT_RPM", 300),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "json"),
	}
	if cfg.MongoURI == "" {
		cfg.MongoURI = AtlasURI(cfg.DBUsername, cfg.DBPassword)
	}
	return cfg
}

// AtlasURI builds the SRV connection string from the DB_USERNAME/DB_PASSWORD credentials.
func AtlasURI(username, password string) string {
	return fmt.Sprintf("mongodb+srv://%s:%s@%s/?appName=Cluster0",
		url.QueryEscape(username), url.QueryEscape(password), atlasHost)
}

func getEnv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		logging.Debug().Str("key", key).Str("default", def).Msg("config: not set, using default")
		return def
	}
	return v
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logging.Warn().Str("key", key).Str("value", v).Msg("config: not an integer, using default")
		return def
	}
	return n
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
