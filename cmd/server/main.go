/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the lending engine server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Initialize SQLite store
  3. Optionally seed demo agreements
  4. Configure HTTP router
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (default: 8080)
  -db      SQLite database path (default: lendtab.db)
           Use ":memory:" for an in-memory database
  -seed    Seed demo agreements on startup

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

EXAMPLES:
  # Run with file database
  ./server -db="./data/lendtab.db"

  # Run in-memory with demo data
  ./server -db=":memory:" -seed

SEE ALSO:
  - api/server.go: Router configuration
  - store/sqlite/sqlite.go: Database implementation
  - factory/agreements.go: Demo presets
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lendtab/loan-engine/api"
	"github.com/lendtab/loan-engine/factory"
	"github.com/lendtab/loan-engine/lending"
	"github.com/lendtab/loan-engine/schedule"
	"github.com/lendtab/loan-engine/store/sqlite"
)

func main() {
	// Flags
	port := flag.Int("port", 8080, "HTTP server port")
	dbPath := flag.String("db", "lendtab.db", "SQLite database path")
	seed := flag.Bool("seed", false, "seed demo agreements on startup")
	flag.Parse()

	// Initialize store
	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	if *seed {
		if err := seedDemoData(context.Background(), store); err != nil {
			log.Printf("Warning: failed to seed demo data: %v", err)
		}
	}

	// Create router
	handler := api.NewHandler(store)
	router := api.NewRouter(handler)

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on http://localhost:%d", *port)
		log.Printf("API available at http://localhost:%d/api", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// seedDemoData creates the factory presets with their planned totals.
func seedDemoData(ctx context.Context, store lending.AgreementStore) error {
	now := time.Now()
	for _, preset := range factory.Presets() {
		a := preset.Build(now)
		result, err := schedule.Generate(a.Config, a.ScheduleContext(), now)
		if err != nil {
			return fmt.Errorf("preset %s: %w", preset.Name, err)
		}
		if err := store.CreateAgreement(ctx, a, lending.PlannedTotalsOf(result)); err != nil {
			return fmt.Errorf("preset %s: %w", preset.Name, err)
		}
		log.Printf("Seeded %s (%s)", preset.Name, a.ID)
	}
	return nil
}
