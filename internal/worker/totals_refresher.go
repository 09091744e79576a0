package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	domainErrors "github.com/linkmart/linkmart/internal/domain/errors"
	"github.com/linkmart/linkmart/internal/domain/model"
)

// MarketFacade exposes the subset of application functionality required by the worker.
type MarketFacade interface {
	OrdersWithStaleTotals(ctx context.Context, limit int) ([]model.Order, error)
	RefreshOrderTotals(ctx context.Context, orderID int64) error
}

// TotalsRefresher periodically recomputes cached pricing totals for draft
// orders whose line items changed since the totals were last written.
type TotalsRefresher struct {
	facade       MarketFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Order
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewTotalsRefresher constructs the refresher worker pool.
func NewTotalsRefresher(facade MarketFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *TotalsRefresher {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &TotalsRefresher{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Order, batchSize*workers),
	}
}

// Start launches background processing.
func (p *TotalsRefresher) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(runCtx)
	}

	p.wg.Add(1)
	go p.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (p *TotalsRefresher) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *TotalsRefresher) dispatch(ctx context.Context) {
	defer p.wg.Done()
	defer close(p.jobs)
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetchAndDispatch(ctx)
		}
	}
}

func (p *TotalsRefresher) fetchAndDispatch(ctx context.Context) {
	orders, err := p.facade.OrdersWithStaleTotals(ctx, p.batchSize)
	if err != nil {
		p.logger.Error("fetch orders with stale totals failed", slog.String("error", err.Error()))
		return
	}
	for _, order := range orders {
		select {
		case <-ctx.Done():
			return
		case p.jobs <- order:
		}
	}
}

func (p *TotalsRefresher) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case order, ok := <-p.jobs:
			if !ok {
				return
			}
			p.handleOrder(ctx, order)
		}
	}
}

func (p *TotalsRefresher) handleOrder(ctx context.Context, order model.Order) {
	if err := p.facade.RefreshOrderTotals(ctx, order.ID); err != nil {
		// the order may have been submitted between batch selection and
		// refresh; the next batch simply skips it
		if errors.Is(err, domainErrors.ErrNotFound) {
			return
		}
		p.logger.Error("refresh order totals failed",
			slog.Int64("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}
}
