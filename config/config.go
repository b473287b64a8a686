package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config is the env-backed application configuration. It satisfies the
// finpulse.Config interface consumed by the auth core.
type Config struct {
	ServerPort  int
	DatabaseDSN string
	SeedDemo    bool

	Auth AuthConfig
}

type AuthConfig struct {
	SigningKey            string
	SigningMethod         string
	ContextKey            string
	TokenExpiration       int
	ExtendedTokenDuration int
	TokenLookup           string
	AuthScheme            string
	Issuer                string
	Audience              []string
	RejectedRouteKey      string
	RejectedRouteDefault  string
}

// Load reads the environment, consulting a .env file in dev
func Load() Config {
	if os.Getenv("ENV") == "dev" {
		godotenv.Load()
	}

	return Config{
		ServerPort:  getEnvInt("SERVER_PORT", 8080),
		DatabaseDSN: getEnv("DATABASE_DSN", "file:finpulse.db?cache=shared&_pragma=foreign_keys(1)"),
		SeedDemo:    getEnvBool("SEED_DEMO", false),
		Auth: AuthConfig{
			SigningKey:            getEnv("AUTH_SIGNING_KEY", ""),
			SigningMethod:         getEnv("AUTH_SIGNING_METHOD", "HS256"),
			ContextKey:            getEnv("AUTH_CONTEXT_KEY", "finpulse_session"),
			TokenExpiration:       getEnvInt("AUTH_TOKEN_EXPIRATION_HOURS", 24),
			ExtendedTokenDuration: getEnvInt("AUTH_EXTENDED_TOKEN_HOURS", 24*30),
			TokenLookup:           getEnv("AUTH_TOKEN_LOOKUP", "cookie:finpulse_session,header:Authorization"),
			AuthScheme:            getEnv("AUTH_SCHEME", "Bearer"),
			Issuer:                getEnv("AUTH_ISSUER", "finpulse"),
			Audience:              getEnvList("AUTH_AUDIENCE", []string{"finpulse:web"}),
			RejectedRouteKey:      getEnv("AUTH_REJECTED_ROUTE_KEY", "finpulse_redirect"),
			RejectedRouteDefault:  getEnv("AUTH_REJECTED_ROUTE_DEFAULT", "/dashboard"),
		},
	}
}

func (c Config) GetSigningKey() string           { return c.Auth.SigningKey }
func (c Config) GetSigningMethod() string        { return c.Auth.SigningMethod }
func (c Config) GetContextKey() string           { return c.Auth.ContextKey }
func (c Config) GetTokenExpiration() int         { return c.Auth.TokenExpiration }
func (c Config) GetExtendedTokenDuration() int   { return c.Auth.ExtendedTokenDuration }
func (c Config) GetTokenLookup() string          { return c.Auth.TokenLookup }
func (c Config) GetAuthScheme() string           { return c.Auth.AuthScheme }
func (c Config) GetIssuer() string               { return c.Auth.Issuer }
func (c Config) GetAudience() []string           { return c.Auth.Audience }
func (c Config) GetRejectedRouteKey() string     { return c.Auth.RejectedRouteKey }
func (c Config) GetRejectedRouteDefault() string { return c.Auth.RejectedRouteDefault }

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
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
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return b
}

func getEnvList(key string, fallback []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}

	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	if len(out) == 0 {
		return fallback
	}
	return out
}
