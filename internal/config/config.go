package config

import (
	"flag"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	// Server-side settings
	DatabaseDSN   string `env:"DATABASE_URI"`
	UploadDir     string `env:"UPLOAD_DIR"`
	UploadMaxMB   int    `env:"UPLOAD_MAX_MB"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL"`

	// Shared settings
	BaseURL     string `env:"BASE_URL"`
	EnableHTTPS bool   `env:"ENABLE_HTTPS"`

	// Client-side settings
	ServerURL     string `env:"-"`
	UserFile      string `env:"USER_FILE"`
	UploadWorkers int    `env:"UPLOAD_WORKERS"`
	SnackbarMS    int    `env:"SNACKBAR_MS"`
	Verbose       bool   `env:"-"` // debug logging of API calls (flag only)
	Version       bool   `env:"-"` // show client version and exit (flag only)
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// Server flags
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN (file path/sqlite DSN or postgres:// URL)")
	flag.StringVar(&cfg.UploadDir, "upload-dir", cfg.UploadDir, "directory for uploaded files")
	flag.IntVar(&cfg.UploadMaxMB, "upload-max-mb", cfg.UploadMaxMB, "maximum upload size in MB")
	flag.StringVar(&cfg.PublicBaseURL, "public-base-url", cfg.PublicBaseURL, "prefix for links returned by make_public")
	// Shared flags
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "server address in host:port form")
	flag.BoolVar(&cfg.EnableHTTPS, "https", cfg.EnableHTTPS, "use https scheme for the server URL")
	// Client flags
	flag.StringVar(&cfg.UserFile, "user-file", cfg.UserFile, "path to the remembered current user (client)")
	flag.IntVar(&cfg.UploadWorkers, "upload-workers", cfg.UploadWorkers, "parallel uploads per submission")
	flag.IntVar(&cfg.SnackbarMS, "snackbar-ms", cfg.SnackbarMS, "notification lifetime in milliseconds")
	flag.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "log API calls")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "show client version and exit")

	flag.Parse()

	cfg.applyDefaults()
	return cfg
}

var hostPortRe = regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)

func (cfg *Config) applyDefaults() {
	// BaseURL must be "address:port" (no scheme, no path)
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = "localhost:8000"
	}
	if cfg.EnableHTTPS {
		cfg.ServerURL = "https://" + cfg.BaseURL
	} else {
		cfg.ServerURL = "http://" + cfg.BaseURL
	}

	if cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = "checklists.db"
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "uploads"
	}
	if cfg.UploadMaxMB <= 0 {
		cfg.UploadMaxMB = 10
	}
	if cfg.PublicBaseURL == "" {
		cfg.PublicBaseURL = cfg.ServerURL
	}
	cfg.PublicBaseURL = strings.TrimRight(cfg.PublicBaseURL, "/")

	if cfg.UploadWorkers <= 0 {
		cfg.UploadWorkers = 4
	}
	if cfg.SnackbarMS <= 0 {
		cfg.SnackbarMS = 2500
	}
	if cfg.UserFile == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			cfg.UserFile = filepath.Join(dir, "Checklister", "current_user.json")
		}
	}
}
