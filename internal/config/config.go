// Package config loads runtime configuration from environment variables.
package config

import (
    "log"
    "os"
    "strconv"
)

// Config holds the core application settings.  Each field maps to one
// environment variable; strings for identifiers and secrets, ints for
// durations and costs.
type Config struct {
    Env            string // application environment (dev, test, prod)
    Port           string // HTTP port to listen on
    DBUser         string // database username
    DBPass         string // database password (optional)
    DBHost         string // database host address
    DBPort         string // database port number
    DBName         string // database name
    JWTSecret      string // secret used to sign JWTs
    AccessTTLMin   int    // access token lifetime in minutes
    RefreshTTLDays int    // refresh token lifetime in days
    BcryptCost     int    // bcrypt cost for password hashing
    ChatAPIURL     string // upstream LLM endpoint for the concierge chat proxy (optional)
    ChatAPIKey     string // bearer key for the chat endpoint (optional)
}

// Load reads configuration from the environment.  Required variables go
// through must() and abort startup when missing; the chat proxy settings
// are optional because the feature degrades to 503 without them.
func Load() Config {
    return Config{
        Env:            must("APP_ENV"),
        Port:           must("APP_PORT"),
        DBUser:         must("DB_USER"),
        DBPass:         os.Getenv("DB_PASS"),
        DBHost:         must("DB_HOST"),
        DBPort:         must("DB_PORT"),
        DBName:         must("DB_NAME"),
        JWTSecret:      must("JWT_SECRET"),
        AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),
        RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"),
        BcryptCost:     mustInt("BCRYPT_COST"),
        ChatAPIURL:     os.Getenv("LLM_API_URL"),
        ChatAPIKey:     os.Getenv("LLM_API_KEY"),
    }
}

// must retrieves a required environment variable or exits with a fatal
// log message.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}

// mustInt is must() plus integer conversion.
func mustInt(key string) int {
    s := must(key)
    n, err := strconv.Atoi(s)
    if err != nil {
        log.Fatalf("invalid int for %s: %q", key, s)
    }
    return n
}
