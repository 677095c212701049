package config // package config loads application configuration from environment variables

import (
	"log"     // log reports configuration errors and halts execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field maps to
// one environment variable.  Secrets and identifiers stay strings;
// durations are expressed in the unit their variable name states.
type Config struct {
	Env           string // application environment (e.g. "dev", "prod")
	Port          string // HTTP port to listen on
	DBUser        string // database username
	DBPass        string // database password (optional)
	DBHost        string // database host address
	DBPort        string // database port number
	DBName        string // database name
	SessionSecret string // secret used to sign guest session tokens
	SessionTTLMin int    // guest session time-to-live in minutes
	CartTTLMin    int    // idle cart time-to-live in minutes
	AMQPURL       string // RabbitMQ URL for order handoff (optional)
}

// Load reads configuration values from environment variables and
// returns a Config.  Required variables are enforced by must();
// missing values exit with a fatal log message so a misconfigured
// deployment never half-starts.
func Load() Config {
	return Config{
		Env:           must("APP_ENV"),
		Port:          must("APP_PORT"),
		DBUser:        must("DB_USER"),
		DBPass:        os.Getenv("DB_PASS"), // empty allowed
		DBHost:        must("DB_HOST"),
		DBPort:        must("DB_PORT"),
		DBName:        must("DB_NAME"),
		SessionSecret: must("SESSION_SECRET"),
		SessionTTLMin: mustInt("SESSION_TTL_MIN"),
		CartTTLMin:    mustInt("CART_TTL_MIN"),
		AMQPURL:       os.Getenv("RABBITMQ_URL"), // empty disables handoff publishing
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and
// exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an
// integer.  If conversion fails, the application logs a fatal error
// and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
