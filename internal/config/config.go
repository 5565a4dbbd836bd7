// Package config loads application configuration from environment
// variables. Required values halt startup when missing; optional ones
// have sensible defaults.
package config

import (
	"log"
	"os"
)

// Config holds all runtime configuration values. Each field corresponds
// to an environment variable. The types reflect how the values are used:
// strings for identifiers and secrets, ints for durations and costs.
type Config struct {
	Env            string // application environment (e.g. "dev", "prod")
	Port           string // HTTP port to listen on
	DBUser         string // database username
	DBPass         string // database password (optional)
	DBHost         string // database host address
	DBPort         string // database port number
	DBName         string // database name
	JWTSecret      string // secret used to sign JWTs
	AccessTTLDays  int    // access token time-to-live in days
	RefreshTTLDays int    // refresh token time-to-live in days
	OTPTTLMin      int    // password reset OTP time-to-live in minutes
	BcryptCost     int    // bcrypt cost for password hashing

	SMTPHost string // SMTP server host (empty disables outgoing mail)
	SMTPPort int    // SMTP server port
	SMTPUser string // SMTP auth username
	SMTPPass string // SMTP auth password
	MailFrom string // From address on outgoing mail

	UploadDir string // directory for uploaded booking images
	SheetPath string // path of the enquiry spreadsheet workbook
}

// Load reads configuration from the environment. Missing required
// variables cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:            must("APP_ENV"),
		Port:           must("APP_PORT"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"), // empty allowed
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLDays:  envInt("ACCESS_TOKEN_TTL_DAYS", 7),
		RefreshTTLDays: envInt("REFRESH_TOKEN_TTL_DAYS", 30),
		OTPTTLMin:      envInt("RESET_OTP_TTL_MIN", 5),
		BcryptCost:     envInt("BCRYPT_COST", 10),
		SMTPHost:       os.Getenv("SMTP_HOST"),
		SMTPPort:       envInt("SMTP_PORT", 587),
		SMTPUser:       os.Getenv("SMTP_USER"),
		SMTPPass:       os.Getenv("SMTP_PASS"),
		MailFrom:       os.Getenv("MAIL_FROM"),
		UploadDir:      envStr("UPLOAD_DIR", "uploads"),
		SheetPath:      envStr("SHEET_PATH", "data/enquiries.xlsx"),
	}
}

// must retrieves a required environment variable; unset or empty is
// fatal.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}
