// cmd/seeder/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ammerola/roadie-bag/internal/adapters/db"
	"github.com/ammerola/roadie-bag/internal/adapters/packinglist"
	"github.com/ammerola/roadie-bag/internal/core/services"
	"github.com/ammerola/roadie-bag/internal/pkg/bootstrap"
	"github.com/ammerola/roadie-bag/internal/pkg/logger"
)

func main() {
	var (
		listsDir  = flag.String("lists", "./packing-lists", "Directory containing .xlsx or .pdf packing lists")
		username  = flag.String("user", "roadie", "Account that owns the seeded items")
		stateFile = flag.String("state", "./.seed_state.json", "State file for tracking progress")
		logLevel  = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
		dryRun    = flag.Bool("dry-run", false, "Preview changes without modifying database")
		force     = flag.Bool("force", false, "Reload lists already recorded in the state file")
	)
	flag.Parse()

	slogger := logger.SetupLogger(*logLevel, "json").Logger
	ctx := context.Background()

	cfg, err := bootstrap.LoadConfig(ctx, slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	files, err := packingLists(*listsDir)
	if err != nil {
		slogger.Error("failed to find packing lists", slog.String("error", err.Error()))
		os.Exit(1)
	}

	state, err := loadState(*stateFile)
	if err != nil {
		slogger.Error("failed to load state", slog.String("error", err.Error()))
		os.Exit(1)
	}

	database, err := bootstrap.OpenDatabase(ctx, cfg, 2, slogger)
	if err != nil {
		slogger.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.Close()

	clock := services.SystemClock()
	s := &seeder{
		reader:     packinglist.NewReader(slogger),
		users:      db.NewUserRepository(database, slogger),
		items:      services.NewItemService(db.NewItemRepository(database, slogger), clock, slogger),
		clock:      clock,
		bcryptCost: cfg.Security.BcryptCost,
		dryRun:     *dryRun,
		force:      *force,
		logger:     slogger,
	}

	owner, err := s.ensureUser(ctx, *username, os.Getenv("SEED_PASSWORD"))
	if err != nil {
		slogger.Error("failed to resolve seed user", slog.String("error", err.Error()))
		os.Exit(1)
	}

	summary := s.run(ctx, owner, files, state)

	if !*dryRun {
		if err := state.save(*stateFile); err != nil {
			slogger.Error("failed to save state", slog.String("error", err.Error()))
		}
	}

	printSummary(summary, *dryRun)

	slogger.Info("seed operation completed",
		slog.Int("lists_processed", len(summary.Lists)),
		slog.Int("items_created", summary.Items),
		slog.Int("failed_lists", len(summary.Failed)))
}

// packingLists returns every readable packing list in dir, sorted by name
func packingLists(dir string) ([]string, error) {
	var files []string
	for _, pattern := range []string{"*.xlsx", "*.pdf"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	slices.Sort(files)
	return files, nil
}

func printSummary(summary *seedSummary, dryRun bool) {
	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Println("SEEDING SUMMARY")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Lists Processed: %d\n", len(summary.Lists))
	fmt.Printf("Items Created: %d\n", summary.Items)

	if len(summary.Lists) > 0 {
		fmt.Printf("\nLoaded (%d lists):\n", len(summary.Lists))
		for _, name := range sortedKeys(summary.Lists) {
			fmt.Printf("  - %s: %d items\n", name, summary.Lists[name])
		}
	}
	if len(summary.Skipped) > 0 {
		fmt.Printf("\nAlready seeded (%d lists)\n", len(summary.Skipped))
	}
	if len(summary.Failed) > 0 {
		fmt.Printf("\nFailed (%d lists):\n", len(summary.Failed))
		for _, name := range sortedKeys(summary.Failed) {
			fmt.Printf("  - %s: %s\n", name, summary.Failed[name])
		}
	}

	if dryRun {
		fmt.Println("\n[DRY RUN] No changes were made to the database")
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
