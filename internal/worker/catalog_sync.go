package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/CBillups260/RoweBrosWebsite-sub001/internal/domain/model"
)

// CatalogSyncer exposes the subset of application functionality required by the worker.
type CatalogSyncer interface {
	SyncCatalog(ctx context.Context) ([]model.SyncResult, error)
}

// CatalogSync periodically reconciles the product catalog against the
// payment processor. A zero interval disables the worker entirely;
// reconciliation then only happens on explicit request.
type CatalogSync struct {
	facade   CatalogSyncer
	interval time.Duration
	logger   *slog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewCatalogSync constructs the catalog sync worker.
func NewCatalogSync(facade CatalogSyncer, interval time.Duration, logger *slog.Logger) *CatalogSync {
	return &CatalogSync{facade: facade, interval: interval, logger: logger}
}

// Start launches background reconciliation. The first run happens
// immediately so a fresh deployment mirrors its catalog without waiting a
// full interval.
func (w *CatalogSync) Start(ctx context.Context) {
	if w.interval <= 0 {
		w.logger.Info("catalog sync worker disabled")
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.wg.Add(1)
	go w.loop(runCtx)
}

// Stop waits for the in-flight run to finish.
func (w *CatalogSync) Stop() {
	w.mu.Lock()
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	w.mu.Unlock()

	w.wg.Wait()
}

func (w *CatalogSync) loop(ctx context.Context) {
	defer w.wg.Done()

	w.runOnce(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

func (w *CatalogSync) runOnce(ctx context.Context) {
	results, err := w.facade.SyncCatalog(ctx)
	if err != nil {
		w.logger.Error("catalog sync run failed", slog.String("error", err.Error()))
		return
	}

	var failed int
	for _, r := range results {
		if r.Failed() {
			failed++
		}
	}
	w.logger.Info("catalog sync run finished",
		slog.Int("products", len(results)),
		slog.Int("failed", failed),
	)
}
