package config

import (
	"fmt"
	"os"
)

// EnvSchemaVersion is the .env layout this build understands
const EnvSchemaVersion = "1.0"

// CheckEnvSchema rejects an .env written for a different layout. An unset
// ENV_SCHEMA_VERSION is accepted since every variable has a default.
func CheckEnvSchema() error {
	v := os.Getenv("ENV_SCHEMA_VERSION")
	if v == "" || v == EnvSchemaVersion {
		return nil
	}
	return fmt.Errorf("ENV_SCHEMA_VERSION mismatch: expected %s, got %s - your .env file may be outdated", EnvSchemaVersion, v)
}

// insecurePasswords are the values shipped in .env.example and the defaults
var insecurePasswords = map[string]bool{
	"postgres":                    true,
	"change_this_secure_password": true,
}

type warningRule struct {
	applies func(*Config) bool
	message string
}

var warningRules = []warningRule{
	{
		applies: func(c *Config) bool { return c.Environment == EnvProd && insecurePasswords[c.DBPassword] },
		message: "DB_PASSWORD is an example value in production - set a real password",
	},
	{
		applies: func(c *Config) bool { return c.Environment == EnvProd && c.CORSAllowedOrigin == "*" },
		message: "CORS_ALLOWED_ORIGIN is '*' in production - restrict it to the game client origin",
	},
	{
		applies: func(c *Config) bool { return c.LogFormat != "text" && c.LogFormat != "json" },
		message: "LOG_FORMAT is neither 'text' nor 'json' - falling back to text",
	},
	{
		applies: func(c *Config) bool { return c.CatalogCacheTTL <= 0 },
		message: "CATALOG_CACHE_TTL is not positive - catalog entries never expire until the next sync",
	},
}

// Warnings lists settings that work but are probably a mistake
func (c *Config) Warnings() []string {
	var out []string
	for _, rule := range warningRules {
		if rule.applies(c) {
			out = append(out, rule.message)
		}
	}
	return out
}
