package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvPathEnvVar        = "CHORDCAP_ENV"
	DefaultOutputDir     = "captures"
	DefaultImageShortcut = "Ctrl+Alt+Key1"
	DefaultGifShortcut   = "Ctrl+Alt+Key2"
	DefaultGifFrames     = 10
	DefaultGifDelay      = 100 * time.Millisecond
	DefaultDeadlineSec   = 20
)

// LoadOptions carry command-line overrides; they take precedence over the
// .env file and the process environment.
type LoadOptions struct {
	EnvPathOverride       string
	ShortcutsFileOverride string
	OutputDirOverride     string
}

type Config struct {
	EnvPath           string
	EnableFileLogging bool
	OutputDir         string
	CopyToClipboard   bool
	ImageShortcut     string
	GifShortcut       string
	ShortcutsFile     string
	GifFrames         int
	GifFrameDelay     time.Duration
	ResetOnMismatch   bool
	ChordTimeout      time.Duration
	CaptureDeadline   time.Duration
	Display           int
	CaptureRegion     string
	AbortKey          string
}

func Load() (*Config, error) {
	return LoadWithOptions(LoadOptions{})
}

func LoadWithOptions(opts LoadOptions) (*Config, error) {
	// Load configuration from sources in priority order:
	// 1) explicit --env path
	// 2) .env in the application (executable) directory
	// 3) CHORDCAP_ENV env var as a path to a config file
	envPath := resolveEnvPath(opts)
	if envPath != "" {
		// Variables already set in the process environment win.
		_ = godotenv.Load(envPath)
	}

	cfg := &Config{
		EnvPath:           envPath,
		EnableFileLogging: getEnvBool("ENABLE_FILE_LOGGING"),
		OutputDir:         getEnvWithDefault("OUTPUT_DIR", DefaultOutputDir),
		CopyToClipboard:   getEnvBool("COPY_TO_CLIPBOARD"),
		ImageShortcut:     getEnvWithDefault("IMAGE_SHORTCUT", DefaultImageShortcut),
		GifShortcut:       getEnvWithDefault("GIF_SHORTCUT", DefaultGifShortcut),
		ShortcutsFile:     strings.TrimSpace(os.Getenv("SHORTCUTS_FILE")),
		GifFrames:         getEnvPositiveInt("GIF_FRAMES", DefaultGifFrames),
		GifFrameDelay:     time.Duration(getEnvPositiveInt("GIF_FRAME_DELAY_MS", int(DefaultGifDelay/time.Millisecond))) * time.Millisecond,
		ResetOnMismatch:   getEnvBool("RESET_ON_MISMATCH"),
		ChordTimeout:      time.Duration(getEnvNonNegativeInt("CHORD_TIMEOUT_MS", 0)) * time.Millisecond,
		CaptureDeadline:   time.Duration(getEnvPositiveInt("CAPTURE_DEADLINE_SEC", DefaultDeadlineSec)) * time.Second,
		Display:           getEnvNonNegativeInt("DISPLAY_INDEX", 0),
		CaptureRegion:     strings.TrimSpace(os.Getenv("CAPTURE_REGION")),
		AbortKey:          strings.TrimSpace(os.Getenv("ABORT_KEY")),
	}

	if v := strings.TrimSpace(opts.ShortcutsFileOverride); v != "" {
		cfg.ShortcutsFile = v
	}
	if v := strings.TrimSpace(opts.OutputDirOverride); v != "" {
		cfg.OutputDir = v
	}

	return cfg, nil
}

func resolveEnvPath(opts LoadOptions) string {
	if p := strings.TrimSpace(opts.EnvPathOverride); p != "" {
		return p
	}

	if execPath, err := os.Executable(); err == nil {
		exeEnv := filepath.Join(filepath.Dir(execPath), ".env")
		if _, err := os.Stat(exeEnv); err == nil {
			return exeEnv
		}
	}

	if alt := os.Getenv(EnvPathEnvVar); alt != "" {
		if _, err := os.Stat(alt); err == nil {
			return alt
		}
	}

	return ""
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string) bool {
	return strings.ToLower(strings.TrimSpace(os.Getenv(key))) == "true"
}

func getEnvPositiveInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}

func getEnvNonNegativeInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return defaultValue
}
