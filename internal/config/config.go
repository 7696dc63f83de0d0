// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds the application configuration.
type Config struct {
	App        AppConfig
	Logger     LoggerConfig
	Data       DataConfig
	Server     ServerConfig
	Session    SessionConfig
	Signup     SignupConfig
	ISBNdb     ISBNdbConfig
	Cloudinary CloudinaryConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// DataConfig holds data storage configuration.
type DataConfig struct {
	BasePath string
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	Name         string
	PublicURL    string        // Optional; used in absolute links
	Port         string        // Server port (default: 8080)
	ReadTimeout  time.Duration // HTTP read timeout (default: 15s)
	WriteTimeout time.Duration // HTTP write timeout (default: 15s)
	IdleTimeout  time.Duration // HTTP idle timeout (default: 60s)
}

// SessionConfig holds session and login-lockout configuration.
type SessionConfig struct {
	// PASETO v4 symmetric key for session tokens (32 bytes)
	Key []byte
	// CookieName is the name of the session cookie (default: staffpicks_session)
	CookieName string
	// Duration is the session lifetime (default: 2h)
	Duration time.Duration
	// SecureCookie marks the cookie Secure; disabled in development
	SecureCookie bool
	// MaxLoginAttempts before a lockout is applied (default: 5)
	MaxLoginAttempts int
	// LockoutDuration is how long a locked account stays locked (default: 15m)
	LockoutDuration time.Duration
}

// SignupConfig holds signup throttling configuration.
type SignupConfig struct {
	// RatePerMinute is allowed signups per client IP per minute (default: 3)
	RatePerMinute float64
	// Burst is the token-bucket burst size (default: 3)
	Burst int
}

// ISBNdbConfig holds ISBNdb API configuration.
type ISBNdbConfig struct {
	// APIKey authenticates against ISBNdb; lookups are disabled when empty
	APIKey string
	// BaseURL overrides the API endpoint (default: https://api2.isbndb.com)
	BaseURL string
}

// CloudinaryConfig holds image upload proxy configuration.
type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	// UploadFolder namespaces uploaded assets (default: staffpicks)
	UploadFolder string
}

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadConfig() (*Config, error) {
	// Define command-line flags.
	env := flag.String("env", "", "Environment (development, staging, production)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	dataPath := flag.String("data-path", "", "Base path for data storage")
	serverName := flag.String("server-name", "", "Name for the server")
	serverPublicURL := flag.String("public-url", "", "Public server url")

	// Session flags
	cookieName := flag.String("session-cookie-name", "", "Session cookie name")
	sessionDuration := flag.String("session-duration", "", "Session lifetime (e.g., 2h)")
	maxLoginAttempts := flag.String("max-login-attempts", "", "Failed logins before lockout (default: 5)")
	lockoutMinutes := flag.String("lockout-minutes", "", "Lockout duration in minutes (default: 15)")

	// Server flags
	serverPort := flag.String("port", "", "Server port (default: 8080)")
	readTimeout := flag.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := flag.String("write-timeout", "", "HTTP write timeout (default: 15s)")
	idleTimeout := flag.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")

	envFile := flag.String("env-file", ".env", "Path to .env file")

	// Parse flags but don't exit on error - we want to handle it gracefully.
	flag.Parse()

	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(*envFile)

	// Build config with proper precedence.
	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Data: DataConfig{
			BasePath: getConfigValue(*dataPath, "DATA_PATH", ""),
		},

		Server: ServerConfig{
			Name:      getConfigValue(*serverName, "SERVER_NAME", "StaffPicks Server"),
			PublicURL: getConfigValue(*serverPublicURL, "SERVER_PUBLIC_URL", ""),
			Port:      getConfigValue(*serverPort, "SERVER_PORT", "8080"),
		},

		Session: SessionConfig{
			Key:              nil, // Set by auth.LoadOrGenerateKey in main
			CookieName:       getConfigValue(*cookieName, "SESSION_COOKIE_NAME", "staffpicks_session"),
			MaxLoginAttempts: getIntConfigValue(*maxLoginAttempts, "MAX_LOGIN_ATTEMPTS", 5),
		},

		Signup: SignupConfig{
			RatePerMinute: float64(getIntConfigValue("", "SIGNUP_RATE_PER_MINUTE", 3)),
			Burst:         getIntConfigValue("", "SIGNUP_RATE_BURST", 3),
		},

		ISBNdb: ISBNdbConfig{
			APIKey:  getConfigValue("", "ISBNDB_KEY", ""),
			BaseURL: getConfigValue("", "ISBNDB_BASE_URL", "https://api2.isbndb.com"),
		},

		Cloudinary: CloudinaryConfig{
			CloudName:    getConfigValue("", "CLOUDINARY_CLOUD_NAME", ""),
			APIKey:       getConfigValue("", "CLOUDINARY_API_KEY", ""),
			APISecret:    getConfigValue("", "CLOUDINARY_API_SECRET", ""),
			UploadFolder: getConfigValue("", "CLOUDINARY_UPLOAD_FOLDER", "staffpicks"),
		},
	}

	cfg.Session.SecureCookie = cfg.App.Environment == "production"

	// Parse session duration.
	sessionDurationStr := getConfigValue(*sessionDuration, "SESSION_DURATION", "2h")
	sessionDur, err := time.ParseDuration(sessionDurationStr)
	if err != nil {
		return nil, fmt.Errorf("invalid session duration %q: %w", sessionDurationStr, err)
	}
	cfg.Session.Duration = sessionDur

	// Lockout is configured in whole minutes.
	lockoutMins := getIntConfigValue(*lockoutMinutes, "LOCKOUT_DURATION_MINUTES", 15)
	cfg.Session.LockoutDuration = time.Duration(lockoutMins) * time.Minute

	// Parse server timeouts.
	readTimeoutStr := getConfigValue(*readTimeout, "SERVER_READ_TIMEOUT", "15s")
	readTimeoutDuration, err := time.ParseDuration(readTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid read timeout %q: %w", readTimeoutStr, err)
	}
	cfg.Server.ReadTimeout = readTimeoutDuration

	writeTimeoutStr := getConfigValue(*writeTimeout, "SERVER_WRITE_TIMEOUT", "15s")
	writeTimeoutDuration, err := time.ParseDuration(writeTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid write timeout %q: %w", writeTimeoutStr, err)
	}
	cfg.Server.WriteTimeout = writeTimeoutDuration

	idleTimeoutStr := getConfigValue(*idleTimeout, "SERVER_IDLE_TIMEOUT", "60s")
	idleTimeoutDuration, err := time.ParseDuration(idleTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid idle timeout %q: %w", idleTimeoutStr, err)
	}
	cfg.Server.IdleTimeout = idleTimeoutDuration

	// Expand and validate data path.
	if err := cfg.expandDataPath(); err != nil {
		return nil, fmt.Errorf("invalid data path: %w", err)
	}

	// Validate configuration.
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	if c.App.Environment == "" {
		return errors.New("ENV is required")
	}

	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Data.BasePath == "" {
		return errors.New("data base path cannot be empty after expansion")
	}

	if c.Session.CookieName == "" {
		return errors.New("session cookie name cannot be empty")
	}

	if c.Session.MaxLoginAttempts < 1 {
		return fmt.Errorf("max login attempts must be at least 1, got %d", c.Session.MaxLoginAttempts)
	}

	if c.Session.LockoutDuration <= 0 {
		return errors.New("lockout duration must be positive")
	}

	if c.Signup.Burst < 1 {
		return fmt.Errorf("signup burst must be at least 1, got %d", c.Signup.Burst)
	}

	// Session key is set by auth.LoadOrGenerateKey in main.

	return nil
}

// expandPath expands ~ and makes the path absolute.
// If path is empty and defaultPath is provided, uses the default.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	// Expand tilde.
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	// Make absolute if needed.
	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// expandDataPath expands ~ and makes the path absolute.
func (c *Config) expandDataPath() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	defaultPath := filepath.Join(homeDir, "StaffPicks", "data")

	expanded, err := expandPath(c.Data.BasePath, defaultPath)
	if err != nil {
		return err
	}
	c.Data.BasePath = expanded
	return nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	// Priority 1: Command-line flag.
	if flagValue != "" {
		return flagValue
	}

	// Priority 2: Environment variable.
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}

	// Priority 3: Default value.
	return defaultValue
}

// getIntConfigValue returns an int from flag, env var, or default.
func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	var result int
	if _, err := fmt.Sscanf(strValue, "%d", &result); err != nil {
		return defaultValue
	}
	return result
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments.
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=value.
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Remove quotes if present.
		value = strings.Trim(value, `"'`)

		// Only set if not already set (env vars take precedence over .env file).
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
