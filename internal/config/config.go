package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "ANLAGEV"

	DefaultLogLevel  = "info"
	DefaultPaperSize = "A4"
	DefaultDPI       = 150
	DefaultCopies    = 1

	MinDPI    = 72
	MaxDPI    = 600
	MaxCopies = 99
)

// ErrVersionRequested is returned by Load when --version was passed.
var ErrVersionRequested = errors.New("version requested")

// Config holds the runtime settings of the viewer.
type Config struct {
	LogLevel string
	JSONLogs bool

	// LayoutFile replaces the built-in Anlage V layout when set.
	LayoutFile string

	PaperSize string
	DPI       int
	Copies    int

	// ExportFile prints all pages to this PDF and exits without a window.
	ExportFile string
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		LogLevel:  DefaultLogLevel,
		PaperSize: DefaultPaperSize,
		DPI:       DefaultDPI,
		Copies:    DefaultCopies,
	}
}

// Load parses args (without the program name), merges ANLAGEV_* environment
// variables and validates the result.
func Load(args []string) (*Config, error) {
	cfg := DefaultConfig()
	v := viper.New()
	flags := pflag.NewFlagSet("anlage-v", pflag.ContinueOnError)

	setupViperEnvironment(v, cfg)
	defineCommandLineFlags(flags, cfg)
	setupUsageMessage(flags, os.Stderr)

	if hasVersionFlag(args) {
		return nil, ErrVersionRequested
	}

	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	if err := v.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}

	populateConfigFromViper(v, cfg)

	if cfg.LayoutFile != "" {
		if abs, err := filepath.Abs(cfg.LayoutFile); err == nil {
			cfg.LayoutFile = abs
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setupViperEnvironment(v *viper.Viper, cfg *Config) {
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault("loglevel", cfg.LogLevel)
	v.SetDefault("jsonlogs", cfg.JSONLogs)
	v.SetDefault("layout", cfg.LayoutFile)
	v.SetDefault("papersize", cfg.PaperSize)
	v.SetDefault("dpi", cfg.DPI)
	v.SetDefault("copies", cfg.Copies)
	v.SetDefault("export", cfg.ExportFile)
}

func defineCommandLineFlags(flags *pflag.FlagSet, cfg *Config) {
	flags.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	flags.Bool("jsonlogs", cfg.JSONLogs, "Emit JSON log lines instead of console output")
	flags.String("layout", cfg.LayoutFile, "YAML file replacing the built-in form layout")
	flags.String("papersize", cfg.PaperSize, "Paper size of printed pages (A4, Letter, ...)")
	flags.Int("dpi", cfg.DPI, "Raster resolution of printed pages")
	flags.Int("copies", cfg.Copies, "Number of copies per print job")
	flags.String("export", cfg.ExportFile, "Print all pages to this PDF file and exit")
}

func setupUsageMessage(flags *pflag.FlagSet, out io.Writer) {
	flags.SetOutput(out)
	flags.Usage = func() {
		fmt.Fprintf(out, "Usage of anlage-v:\n")
		fmt.Fprintf(out, "\nAnlage V viewer - shows and prints the rental income schedule\n\n")
		fmt.Fprintf(out, "Options:\n")
		flags.PrintDefaults()
		fmt.Fprintf(out, "\nEnvironment Variables:\n")
		fmt.Fprintf(out, "  %s_LOGLEVEL   Log level\n", EnvPrefix)
		fmt.Fprintf(out, "  %s_JSONLOGS   JSON log output\n", EnvPrefix)
		fmt.Fprintf(out, "  %s_LAYOUT     Layout file\n", EnvPrefix)
		fmt.Fprintf(out, "  %s_PAPERSIZE  Paper size\n", EnvPrefix)
		fmt.Fprintf(out, "  %s_DPI        Raster resolution\n", EnvPrefix)
		fmt.Fprintf(out, "  %s_COPIES     Copies per job\n", EnvPrefix)
	}
}

func hasVersionFlag(args []string) bool {
	for _, arg := range args {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			return true
		}
	}
	return false
}

func populateConfigFromViper(v *viper.Viper, cfg *Config) {
	cfg.LogLevel = v.GetString("loglevel")
	cfg.JSONLogs = v.GetBool("jsonlogs")
	cfg.LayoutFile = v.GetString("layout")
	cfg.PaperSize = v.GetString("papersize")
	cfg.DPI = v.GetInt("dpi")
	cfg.Copies = v.GetInt("copies")
	cfg.ExportFile = v.GetString("export")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	if _, ok := types.PaperSize[c.PaperSize]; !ok {
		return fmt.Errorf("unknown paper size: %s", c.PaperSize)
	}

	if c.DPI < MinDPI || c.DPI > MaxDPI {
		return fmt.Errorf("dpi must be between %d and %d", MinDPI, MaxDPI)
	}

	if c.Copies < 1 || c.Copies > MaxCopies {
		return fmt.Errorf("copies must be between 1 and %d", MaxCopies)
	}

	if c.LayoutFile != "" {
		if _, err := os.Stat(c.LayoutFile); err != nil {
			return fmt.Errorf("cannot access layout file %s: %w", c.LayoutFile, err)
		}
	}

	return nil
}

// IsHeadless reports whether the run only exports a PDF.
func (c *Config) IsHeadless() bool {
	return c.ExportFile != ""
}

func (c *Config) String() string {
	return fmt.Sprintf("Config{LogLevel: %s, Layout: %q, PaperSize: %s, DPI: %d, Copies: %d, Export: %q}",
		c.LogLevel, c.LayoutFile, c.PaperSize, c.DPI, c.Copies, c.ExportFile)
}
