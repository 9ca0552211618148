package config

import (
	"os"

	"github.com/joho/godotenv"
)

// AuthMethod selects how login credentials are verified.
type AuthMethod string

const (
	AuthLocal   AuthMethod = "local"
	AuthLDAP    AuthMethod = "ldap"
	AuthGateway AuthMethod = "gateway"
)

type Config struct {
	DBDriver    string
	DatabaseURL string

	RedisHost     string
	RedisPort     string
	SessionSecret string
	GinMode       string

	AuthMethod AuthMethod

	BioportalAPIKey string
	BioportalURL    string

	LDAPHost             string
	LDAPPort             string
	LDAPBaseDN           string
	LDAPBindUserDN       string
	LDAPBindUserPassword string
	LDAPUserLoginAttr    string

	AuthGatewayURL string
}

func Load() *Config {
	// A missing .env file is fine; env vars may come from the environment.
	_ = godotenv.Load()

	return &Config{
		DBDriver:    getEnv("DB_DRIVER", "postgres"),
		DatabaseURL: getEnv("DATABASE_URL", "host=localhost user=cataloger password=cataloger dbname=cataloger port=5432 sslmode=disable"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		SessionSecret: getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		GinMode:       getEnv("GIN_MODE", "debug"),

		AuthMethod: AuthMethod(getEnv("AUTH_METHOD", string(AuthLocal))),

		BioportalAPIKey: getEnv("BIOPORTAL_API_KEY", ""),
		BioportalURL:    getEnv("BIOPORTAL_URL", "http://data.bioontology.org/search"),

		LDAPHost:             getEnv("LDAP_HOST", "localhost"),
		LDAPPort:             getEnv("LDAP_PORT", "389"),
		LDAPBaseDN:           getEnv("LDAP_BASE_DN", ""),
		LDAPBindUserDN:       getEnv("LDAP_BIND_USER_DN", ""),
		LDAPBindUserPassword: getEnv("LDAP_BIND_USER_PASSWORD", ""),
		LDAPUserLoginAttr:    getEnv("LDAP_USER_LOGIN_ATTR", "uid"),

		AuthGatewayURL: getEnv("AUTH_GATEWAY_URL", ""),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
