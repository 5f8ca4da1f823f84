package providers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/inkwellapp/inkwell/internal/config"
	"github.com/inkwellapp/inkwell/internal/events"
	"github.com/inkwellapp/inkwell/internal/logger"
	"github.com/inkwellapp/inkwell/internal/store"
	"github.com/inkwellapp/inkwell/internal/store/sqlite"
)

// EventBusHandle wraps the event bus with its context for lifecycle management.
type EventBusHandle struct {
	*events.Bus
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable. The bus drains to subscribers before the
// fan-out loop is canceled.
func (h *EventBusHandle) Shutdown() error {
	defer h.cancel()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Bus.Shutdown(ctx)
}

// ProvideEventBus provides the event bus that fans engine events out to subscribers.
func ProvideEventBus(i do.Injector) (*EventBusHandle, error) {
	log := do.MustInvoke[*logger.Logger](i)

	bus := events.NewBus(log.Component("events"))

	// Start in background
	ctx, cancel := context.WithCancel(context.Background())
	go bus.Start(ctx)

	log.Info("Event bus started")

	return &EventBusHandle{
		Bus:    bus,
		cancel: cancel,
	}, nil
}

// StoreHandle wraps the configured KV backend with shutdown capability.
type StoreHandle struct {
	store.KV
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore opens the configured storage backend.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeLog := log.Component("store")

	switch cfg.Storage.Backend {
	case config.BackendMemory:
		log.Info("Using in-memory storage; nothing will survive a restart")
		return &StoreHandle{KV: store.NewMemory()}, nil

	case config.BackendSQLite:
		if err := os.MkdirAll(cfg.Storage.DataPath, 0o750); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
		dbPath := filepath.Join(cfg.Storage.DataPath, "inkwell.db")
		db, err := sqlite.Open(dbPath, storeLog)
		if err != nil {
			return nil, err
		}
		log.Info("Database initialized", "backend", cfg.Storage.Backend, "path", dbPath)
		return &StoreHandle{KV: db}, nil

	default:
		dbPath := filepath.Join(cfg.Storage.DataPath, "db")
		db, err := store.New(dbPath, storeLog)
		if err != nil {
			return nil, err
		}
		log.Info("Database initialized", "backend", cfg.Storage.Backend, "path", dbPath)
		return &StoreHandle{KV: db}, nil
	}
}
