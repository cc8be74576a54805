package config // package config loads application configuration from environment variables

import (
	"log" // log is used to report configuration errors and halt execution
	"os"  // os provides access to environment variables
)

// DefaultStakeAddressFallback is the staking vault address newly created
// spaces point at when DEFAULT_STAKE_ADDRESS is not configured.
const DefaultStakeAddressFallback = "HiTfqcaU6XwKVYcudqCLAZKzCFjCyXQxZ1LQkn2PcEks"

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers and addresses.
type Config struct {
	Env                 string // application environment (e.g. "dev", "prod")
	Port                string // HTTP port to listen on
	DBUser              string // database username
	DBPass              string // database password (optional)
	DBHost              string // database host address
	DBPort              string // database port number
	DBName              string // database name
	JWTSecret           string // optional secret for verifying caller identity tokens
	DefaultStakeAddress string // stake vault address applied to new spaces
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:                 getenv("APP_ENV", "dev"),
		Port:                getenv("PORT", "3000"), // port to bind the HTTP server
		DBUser:              must("DB_USER"),        // database user
		DBPass:              os.Getenv("DB_PASS"),   // database password (empty allowed)
		DBHost:              must("DB_HOST"),        // database host
		DBPort:              getenv("DB_PORT", "3306"),
		DBName:              must("DB_NAME"), // database name
		JWTSecret:           os.Getenv("JWT_SECRET"),
		DefaultStakeAddress: getenv("DEFAULT_STAKE_ADDRESS", DefaultStakeAddressFallback),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}
