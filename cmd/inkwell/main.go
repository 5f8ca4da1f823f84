// Package main provides the entry point for the Inkwell reading engine.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"

	"github.com/inkwellapp/inkwell/internal/config"
	"github.com/inkwellapp/inkwell/internal/di"
	"github.com/inkwellapp/inkwell/internal/di/providers"
	domainerrors "github.com/inkwellapp/inkwell/internal/errors"
	"github.com/inkwellapp/inkwell/internal/events"
	"github.com/inkwellapp/inkwell/internal/library"
	"github.com/inkwellapp/inkwell/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Create DI container
	injector := di.NewContainer()

	// Bootstrap all services
	if err := di.Bootstrap(ctx, injector); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap: %v\n", err)
		os.Exit(1)
	}

	log := do.MustInvoke[*logger.Logger](injector)
	cfg := do.MustInvoke[*config.Config](injector)
	lib := do.MustInvoke[*library.Library](injector)
	bus := do.MustInvoke[*providers.EventBusHandle](injector)

	if sub, err := bus.Subscribe(""); err != nil {
		log.Warn("Event log unavailable", "error", err)
	} else {
		go logEvents(log, sub)
	}

	if cfg.Library.ImportPath != "" {
		importLog := log.WithField("path", cfg.Library.ImportPath)
		book, err := lib.Ingest(ctx, cfg.Library.ImportPath)
		switch {
		case err != nil && !domainerrors.IsWarning(err):
			importLog.WithError(err).Error("Import failed")
		default:
			if err != nil {
				importLog.WithError(err).Warn("Imported book is not persisted yet")
			}
			importLog.Info("Imported book",
				"book_id", book.ID,
				"title", book.Title,
				"pages", book.TotalPages)
		}
	}

	stats := lib.Stats()
	log.Info("Library ready",
		"books", stats.TotalBooks,
		"in_progress", stats.InProgressBooks,
		"completed", stats.CompletedBooks,
		"reading_hours", stats.TotalHours)

	// Wait for shutdown signal
	<-ctx.Done()

	log.Info("Shutting down gracefully...")

	// The DI container shuts services down in reverse dependency order,
	// closing the event bus and the database handle.
	if err := injector.Shutdown(); err != nil {
		log.Error("Shutdown error", "error", err)
	}

	log.Info("Closing the book. Goodnight.")
}

// logEvents traces every engine event at debug level until the bus closes the subscriber.
func logEvents(log *logger.Logger, sub *events.Subscriber) {
	for {
		select {
		case event, ok := <-sub.Events:
			if !ok {
				return
			}
			log.Debug("Event", "type", event.Type, "book_id", event.BookID)
		case <-sub.Done:
			return
		}
	}
}
