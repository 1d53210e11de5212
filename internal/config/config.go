package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Database settings cover both backends: the
// embedded store only needs SQLitePath, while the networked store uses the
// DB* fields.  Which backend is active is decided once at startup by the
// store package and never changes for the process lifetime.
type Config struct {
	Env           string // application environment (e.g. "dev", "prod")
	Port          string // HTTP port to listen on
	DBBackend     string // optional backend override ("mysql" forces the networked store in dev)
	SQLitePath    string // path of the embedded database file
	DBUser        string // networked database username
	DBPass        string // networked database password (optional)
	DBHost        string // networked database host address
	DBPort        string // networked database port number
	DBName        string // networked database name
	JWTSecret     string // secret used to sign JWTs
	TokenTTLHours int    // access token time-to-live in hours
	BcryptCost    int    // bcrypt cost for password hashing
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  Database variables
// fall back to development defaults so that the embedded backend works out
// of the box.
func Load() Config {
	return Config{
		Env:           must("APP_ENV"),                       // environment (dev/test/prod)
		Port:          must("APP_PORT"),                      // port to bind the HTTP server
		DBBackend:     os.Getenv("DB_BACKEND"),               // optional "mysql" override for development
		SQLitePath:    getenv("SQLITE_PATH", "./tickets.db"), // embedded database file
		DBUser:        getenv("DB_USER", "root"),             // networked database user
		DBPass:        os.Getenv("DB_PASS"),                  // networked database password (empty allowed)
		DBHost:        getenv("DB_HOST", "localhost"),        // networked database host
		DBPort:        getenv("DB_PORT", "3306"),             // networked database port
		DBName:        getenv("DB_NAME", "tickettango"),      // networked database name
		JWTSecret:     must("JWT_SECRET"),                    // secret used for signing JWTs
		TokenTTLHours: mustInt("TOKEN_TTL_HOURS"),            // TTL for access tokens in hours
		BcryptCost:    mustInt("BCRYPT_COST"),                // bcrypt cost factor
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

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
