package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// ImportConfig holds settings for the bulk credential importer.
type ImportConfig struct {
	// Separator is the field separator token for import lines.
	Separator string `mapstructure:"separator" yaml:"separator"`
}

// CheckerConfig holds settings for the remote mailbox checker.
type CheckerConfig struct {
	// IMAPHost is the IMAP server host.
	IMAPHost string `mapstructure:"imap_host" yaml:"imap_host"`

	// IMAPPort is the IMAP server port.
	IMAPPort string `mapstructure:"imap_port" yaml:"imap_port"`

	// TokenURL is the OAuth token endpoint used to exchange refresh
	// tokens for access tokens.
	TokenURL string `mapstructure:"token_url" yaml:"token_url"`

	// Scope is the OAuth scope requested with each token exchange.
	Scope string `mapstructure:"scope" yaml:"scope"`

	// FetchLimit caps how many messages a single check pulls per folder.
	FetchLimit int `mapstructure:"fetch_limit" yaml:"fetch_limit"`
}

// DisplayConfig holds UI preferences.
type DisplayConfig struct {
	// PageSize is the number of accounts shown per page.
	PageSize int `mapstructure:"page_size" yaml:"page_size"`

	// JunkTerms are the substrings that classify a raw folder label as
	// junk. Matched case-insensitively.
	JunkTerms []string `mapstructure:"junk_terms" yaml:"junk_terms"`

	// NotifySyncFailure controls whether a failed mailbox sync surfaces
	// a toast, or is only written to the log.
	NotifySyncFailure bool `mapstructure:"notify_sync_failure" yaml:"notify_sync_failure"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	// DatabasePath is the SQLite database file location.
	DatabasePath string `mapstructure:"database_path" yaml:"database_path"`

	// LogPath is the log file location. The TUI owns the terminal, so
	// all logging goes to this file.
	LogPath string `mapstructure:"log_path" yaml:"log_path"`

	Import  ImportConfig  `mapstructure:"import" yaml:"import"`
	Checker CheckerConfig `mapstructure:"checker" yaml:"checker"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/maildeck/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "maildeck", "config.yaml")
}

// defaultDataPath returns a path under ~/.config/maildeck, falling back to
// the working directory when the home directory cannot be resolved.
func defaultDataPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", name)
	}
	return filepath.Join(home, ".config", "maildeck", name)
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		DatabasePath: defaultDataPath("maildeck.db"),
		LogPath:      defaultDataPath("maildeck.log"),
		Import: ImportConfig{
			Separator: "----",
		},
		Checker: CheckerConfig{
			IMAPHost:   "outlook.office365.com",
			IMAPPort:   "993",
			TokenURL:   "https://login.microsoftonline.com/consumers/oauth2/v2.0/token",
			Scope:      "https://outlook.office365.com/.default",
			FetchLimit: 100,
		},
		Display: DisplayConfig{
			PageSize:          10,
			JunkTerms:         []string{"junk", "spam", "垃圾"},
			NotifySyncFailure: true,
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns the default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	defaults := defaultAppConfig()
	v.SetDefault("database_path", defaults.DatabasePath)
	v.SetDefault("log_path", defaults.LogPath)
	v.SetDefault("import.separator", defaults.Import.Separator)
	v.SetDefault("checker.imap_host", defaults.Checker.IMAPHost)
	v.SetDefault("checker.imap_port", defaults.Checker.IMAPPort)
	v.SetDefault("checker.token_url", defaults.Checker.TokenURL)
	v.SetDefault("checker.scope", defaults.Checker.Scope)
	v.SetDefault("checker.fetch_limit", defaults.Checker.FetchLimit)
	v.SetDefault("display.page_size", defaults.Display.PageSize)
	v.SetDefault("display.junk_terms", defaults.Display.JunkTerms)
	v.SetDefault("display.notify_sync_failure", defaults.Display.NotifySyncFailure)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaults, nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("database_path", cfg.DatabasePath)
	v.Set("log_path", cfg.LogPath)
	v.Set("import", cfg.Import)
	v.Set("checker", cfg.Checker)
	v.Set("display", cfg.Display)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
