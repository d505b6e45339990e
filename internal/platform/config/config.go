package config

import (
	"fmt"
	"os"
	"strconv"
)

// Server captures process-level configuration.
type Server struct {
	Addr        string
	DatabaseURL string
	// SigningKey signs session tokens. It is mandatory: there is no
	// development fallback, so a misconfigured deployment fails at startup
	// instead of running with a known secret.
	SigningKey  string
	Production  bool
	BcryptCost  int
	AuditBuffer int
}

// FromEnv builds a Server config from environment variables so main stays
// lean. Missing mandatory values are startup errors.
func FromEnv() (Server, error) {
	addr := os.Getenv("HR_GATEWAY_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return Server{}, fmt.Errorf("DATABASE_URL is required")
	}

	signingKey := os.Getenv("SESSION_SIGNING_KEY")
	if signingKey == "" {
		return Server{}, fmt.Errorf("SESSION_SIGNING_KEY is required")
	}

	cfg := Server{
		Addr:        addr,
		DatabaseURL: databaseURL,
		SigningKey:  signingKey,
		Production:  os.Getenv("ENV") == "production",
		AuditBuffer: 256,
	}

	if v := os.Getenv("BCRYPT_COST"); v != "" {
		cost, err := strconv.Atoi(v)
		if err != nil {
			return Server{}, fmt.Errorf("invalid BCRYPT_COST %q: %w", v, err)
		}
		cfg.BcryptCost = cost
	}
	if v := os.Getenv("AUDIT_BUFFER"); v != "" {
		buffer, err := strconv.Atoi(v)
		if err != nil {
			return Server{}, fmt.Errorf("invalid AUDIT_BUFFER %q: %w", v, err)
		}
		cfg.AuditBuffer = buffer
	}

	return cfg, nil
}
