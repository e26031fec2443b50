package config // package config loads application configuration from environment variables

import (
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Development defaults are baked in so the server
// can start on a workstation with nothing but a local MySQL; production
// deployments are expected to override every secret.
type Config struct {
	Env        string // application environment (e.g. "dev", "prod")
	Port       string // HTTP port to listen on
	BaseURL    string // public base URL used in email deep links
	DBUser     string // database username
	DBPass     string // database password (optional)
	DBHost     string // database host address
	DBPort     string // database port number
	DBName     string // database name
	JWTSecret  string // secret used to sign JWTs
	BcryptCost int    // bcrypt cost for password hashing
	SMTPHost   string // mail relay host
	SMTPPort   int    // mail relay port
	SMTPUser   string // mail relay username (also the From address fallback)
	SMTPPass   string // mail relay password
	EmailFrom  string // From address on outgoing mail
}

// Load reads configuration values from environment variables and returns a
// Config.  Every value has a development default, mirroring how the server
// has always been deployed; nothing here is fatal at load time.
func Load() Config {
	cfg := Config{
		Env:        getenv("APP_ENV", "dev"),
		Port:       getenv("PORT", "3000"),
		BaseURL:    getenv("BASE_URL", "http://localhost:3000"),
		DBUser:     getenv("DB_USER", "root"),
		DBPass:     os.Getenv("DB_PASSWORD"),
		DBHost:     getenv("DB_HOST", "localhost"),
		DBPort:     getenv("DB_PORT", "3306"),
		DBName:     getenv("DB_NAME", "pesv_db"),
		JWTSecret:  getenv("JWT_SECRET", "pesv-dev-secret"),
		BcryptCost: getenvInt("BCRYPT_COST", 10),
		SMTPHost:   getenv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:   getenvInt("SMTP_PORT", 587),
		SMTPUser:   os.Getenv("EMAIL_USER"),
		SMTPPass:   os.Getenv("EMAIL_PASSWORD"),
	}
	cfg.EmailFrom = getenv("EMAIL_FROM", cfg.SMTPUser)
	return cfg
}

// MailConfigured reports whether outgoing email can be attempted at all.
// When false the notification layer degrades to warnings, never errors.
func (c Config) MailConfigured() bool {
	return c.SMTPUser != "" && c.SMTPPass != ""
}

// getenv retrieves the value of an environment variable, falling back to
// the provided default when it is unset or empty.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getenvInt is like getenv but converts the retrieved string into an
// integer.  Unparseable values fall back to the default.
func getenvInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
