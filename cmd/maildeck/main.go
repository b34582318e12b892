package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/nvu/maildeck/internal/app"
	"github.com/nvu/maildeck/internal/model"
	"github.com/nvu/maildeck/internal/store"
)

const version = "1.0.0"

func main() {
	configPath := model.DefaultConfigPath()

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version", "-v", "--version":
			fmt.Printf("maildeck v%s\n", version)
			return
		case "help", "-h", "--help":
			printHelp(configPath)
			return
		default:
			fmt.Printf("Unknown command: %s\n", os.Args[1])
			printHelp(configPath)
			os.Exit(1)
		}
	}

	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// The TUI owns the terminal, so logging goes to a file.
	logFile, err := openLogFile(cfg.LogPath)
	if err != nil {
		fmt.Printf("Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logrus.SetOutput(logFile)
	logrus.SetFormatter(&logrus.JSONFormatter{})

	if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0o755); err != nil {
		fmt.Printf("Error creating data directory: %v\n", err)
		os.Exit(1)
	}

	s, err := store.NewSQLiteStore(cfg.DatabasePath)
	if err != nil {
		fmt.Printf("Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	logrus.WithField("version", version).Info("starting maildeck")

	p := tea.NewProgram(app.New(cfg, s), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// openLogFile opens the log file for appending, creating parent
// directories as needed.
func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return f, nil
}

func printHelp(configPath string) {
	help := `maildeck - bulk mailbox checker for OAuth mail accounts

Usage:
  maildeck             Start the terminal UI
  maildeck version     Show version information
  maildeck help        Show this help message

Configuration:
  Settings are read from ` + configPath + `.
  All keys are optional; defaults target Outlook consumer accounts.

  database_path: ~/.config/maildeck/maildeck.db
  log_path: ~/.config/maildeck/maildeck.log
  import:
    separator: "----"
  checker:
    imap_host: outlook.office365.com
    imap_port: "993"
    fetch_limit: 100
  display:
    page_size: 10
    junk_terms: [junk, spam]
    notify_sync_failure: true

Import format:
  One account per line, four fields joined by the separator:
  address----password----client_id----refresh_token
`
	fmt.Print(help)
}
