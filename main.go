package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"noter/internal/cli"
	"noter/internal/config"
	"noter/internal/logs"
	"noter/internal/prefs"
	"noter/internal/storage"
	"noter/internal/tui"
)

func main() {
	// Parse CLI flags
	dataDirFlag := flag.String("data-dir", "", "Directory holding the board and debug.log")
	flag.StringVar(dataDirFlag, "d", "", "Data directory (shorthand)")
	backupDirFlag := flag.String("backup-dir", "", "Directory for backups and exports")
	storageFlag := flag.String("storage", "", "Storage backend: file or sqlite")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(config.CLIFlags{
		DataDir:   *dataDirFlag,
		BackupDir: *backupDirFlag,
		Storage:   *storageFlag,
	})
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Ensure config file exists
	if err := config.EnsureConfigFile(); err != nil {
		log.Printf("Warning: could not create config file: %v", err)
	}

	if err := cfg.EnsureDirs(); err != nil {
		log.Fatalf("Failed to create directories: %v", err)
	}

	if err := logs.Initialize(cfg.DataDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not initialize logger: %v\n", err)
	}
	defer logs.Close()

	store, err := storage.Open(cfg.Storage, cfg.DataDir)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer store.Close()

	// Check for CLI subcommands
	if args := flag.Args(); len(args) > 0 {
		code := cli.Run(args, cli.Env{Store: store, BackupDir: cfg.BackupDir})
		store.Close()
		logs.Close()
		os.Exit(code)
	}

	ctx := context.Background()
	notes, err := storage.LoadNotes(ctx, store, time.Now())
	if err != nil {
		log.Fatalf("Failed to load notes: %v", err)
	}
	prefsMgr, err := prefs.Load(ctx, store)
	if err != nil {
		log.Fatalf("Failed to load preferences: %v", err)
	}

	// TUI mode
	logs.Logger.Printf("Starting app in TUI mode with %d notes (%s storage)", len(notes), cfg.Storage)
	appModel := tui.NewAppModel(cfg, store, prefsMgr, notes)
	p := tea.NewProgram(appModel, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Println("Error running program:", err)
		os.Exit(1)
	}
}
