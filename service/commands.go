package service

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"blog/app/application"
	"blog/app/config"
	"blog/app/database"
	"blog/app/logging"
	"blog/app/sessions"
)

var (
	stdout io.Writer = os.Stdout
	stdin  io.Reader = os.Stdin
)

// HandleCommand runs a blog subcommand and returns its exit code.
func HandleCommand(args []string) int {
	if len(args) < 1 {
		printHelp()
		return 1
	}

	cmd := args[0]
	if cmd == "help" {
		printHelp()
		return 0
	}

	flags := flag.NewFlagSet(cmd, flag.ContinueOnError)
	flags.SetOutput(stdout)
	configPath := flags.String("config", "", "path to a YAML config file")
	if err := flags.Parse(args[1:]); err != nil {
		return 1
	}

	run, ok := commands[cmd]
	if !ok {
		fmt.Fprintf(stdout, "Unknown command: %s\n\n", cmd)
		printHelp()
		return 1
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stdout, "Failed to load config: %v\n", err)
		return 1
	}

	return run(cfg, flags.Args())
}

var commands = map[string]func(config.Config, []string) int{
	"serve":   func(cfg config.Config, _ []string) int { return serve(cfg) },
	"init":    func(cfg config.Config, _ []string) int { return initDb(cfg) },
	"seed":    func(cfg config.Config, _ []string) int { return seed(cfg) },
	"clean":   func(cfg config.Config, _ []string) int { return clean(cfg) },
	"backup":  func(cfg config.Config, _ []string) int { return backup(cfg) },
	"restore": restoreCommand,
}

// printHelp prints help for the blog subcommands.
func printHelp() {
	helpText := `Usage: blog <command> [--config file]

Commands:
  serve                           Run the blog web server
  init                            Create the database schema and seed categories
  seed                            Insert missing categories
  clean                           Remove the session store and SQLite database
  backup                          Create a backup of the session store
  restore <file>                  Restore the session store from a backup
  help                            Display this help message
  version                         Show version information
`
	fmt.Fprintln(stdout, helpText)
}

func confirm(prompt string) bool {
	fmt.Fprintf(stdout, "%s [y/N] ", prompt)
	line, _ := bufio.NewReader(stdin).ReadString('\n')
	response := strings.TrimSpace(line)
	return response == "y" || response == "Y"
}

// initDb migrates the schema and seeds the configured categories.
func initDb(cfg config.Config) int {
	cfg.SessionPath = ""
	app, err := application.New(cfg, logging.New(cfg.LogLevel, cfg.LogFormat))
	if err != nil {
		fmt.Fprintf(stdout, "Failed to initialize database: %v\n", err)
		return 1
	}
	defer app.Close()

	fmt.Fprintln(stdout, "Database initialized successfully")
	return 0
}

// seed inserts categories that are missing from an existing database.
func seed(cfg config.Config) int {
	db, err := database.Open(cfg.DatabaseURL, logging.New(cfg.LogLevel, cfg.LogFormat))
	if err != nil {
		fmt.Fprintf(stdout, "Failed to open database: %v\n", err)
		return 1
	}
	app := &application.Application{Config: cfg, DB: db}
	defer app.Close()

	created, err := app.SeedCategories(context.Background())
	if err != nil {
		fmt.Fprintf(stdout, "Failed to seed categories: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "Seeded %d new categories\n", created)
	return 0
}

// clean removes the session store and, for SQLite, the database file.
func clean(cfg config.Config) int {
	var targets []string
	if cfg.SessionPath != "" {
		if _, err := os.Stat(cfg.SessionPath); err == nil {
			targets = append(targets, cfg.SessionPath)
		}
	}
	if path := database.SQLitePath(cfg.DatabaseURL); path != "" {
		if _, err := os.Stat(path); err == nil {
			targets = append(targets, path)
		}
	}
	if len(targets) == 0 {
		fmt.Fprintln(stdout, "Nothing to clean")
		return 0
	}

	if !confirm("Are you sure you want to remove " + strings.Join(targets, ", ") + "? This cannot be undone.") {
		fmt.Fprintln(stdout, "Operation cancelled")
		return 0
	}

	for _, target := range targets {
		if err := os.RemoveAll(target); err != nil {
			fmt.Fprintf(stdout, "Failed to remove %s: %v\n", target, err)
			return 1
		}
	}
	fmt.Fprintln(stdout, "Cleaned successfully")
	return 0
}

func backupDir(cfg config.Config) string {
	return filepath.Join(filepath.Dir(cfg.SessionPath), "backups")
}

// backup writes a badger backup of the session store.
func backup(cfg config.Config) int {
	if cfg.SessionPath == "" {
		fmt.Fprintln(stdout, "Session store is in memory; nothing to backup")
		return 1
	}
	if _, err := os.Stat(cfg.SessionPath); os.IsNotExist(err) {
		fmt.Fprintln(stdout, "No session store exists to backup")
		return 1
	}

	dir := backupDir(cfg)
	if err := os.MkdirAll(dir, 0755); err != nil {
		fmt.Fprintf(stdout, "Failed to create backup directory: %v\n", err)
		return 1
	}

	store, err := sessions.Open(cfg.SessionPath, sessions.Options{}, nil)
	if err != nil {
		fmt.Fprintf(stdout, "Failed to open session store: %v\n", err)
		return 1
	}
	defer store.Close()

	backupFile := filepath.Join(dir, fmt.Sprintf("sessions_%d.bak", time.Now().Unix()))
	f, err := os.Create(backupFile)
	if err != nil {
		fmt.Fprintf(stdout, "Failed to create backup file: %v\n", err)
		return 1
	}
	defer f.Close()

	if err := store.Backup(f); err != nil {
		fmt.Fprintf(stdout, "Failed to backup session store: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "Session store backed up successfully to %s\n", backupFile)
	return 0
}

func restoreCommand(cfg config.Config, args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(stdout, "Error: backup file path required for restore")
		return 1
	}
	return restore(cfg, args[0])
}

// restore replaces the session store with the contents of backupFile.
func restore(cfg config.Config, backupFile string) int {
	if cfg.SessionPath == "" {
		fmt.Fprintln(stdout, "Session store is in memory; nothing to restore into")
		return 1
	}
	fi, err := os.Stat(backupFile)
	if os.IsNotExist(err) {
		fmt.Fprintf(stdout, "Backup file does not exist: %s\n", backupFile)
		return 1
	}
	if err != nil {
		fmt.Fprintf(stdout, "Failed to stat backup file: %v\n", err)
		return 1
	}
	if fi.Size() == 0 {
		fmt.Fprintf(stdout, "Backup file is empty: %s\n", backupFile)
		return 1
	}

	if _, err := os.Stat(cfg.SessionPath); err == nil {
		if !confirm("Existing session store found. Do you want to replace it?") {
			fmt.Fprintln(stdout, "Operation cancelled")
			return 1
		}
		if err := os.RemoveAll(cfg.SessionPath); err != nil {
			fmt.Fprintf(stdout, "Failed to remove existing session store: %v\n", err)
			return 1
		}
	}

	store, err := sessions.Open(cfg.SessionPath, sessions.Options{}, nil)
	if err != nil {
		fmt.Fprintf(stdout, "Failed to open session store: %v\n", err)
		return 1
	}
	defer store.Close()

	f, err := os.Open(backupFile)
	if err != nil {
		fmt.Fprintf(stdout, "Failed to open backup file: %v\n", err)
		return 1
	}
	defer f.Close()

	if err := store.Restore(f); err != nil {
		fmt.Fprintf(stdout, "Failed to restore session store: %v\n", err)
		return 1
	}

	fmt.Fprintln(stdout, "Session store restored successfully")
	return 0
}
