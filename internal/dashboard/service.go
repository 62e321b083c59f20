package dashboard

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bebifresh/bebifresh-backend/pkg/config"
	"github.com/bebifresh/bebifresh-backend/pkg/debounce"
	"github.com/bebifresh/bebifresh-backend/pkg/enums"
	pkgerrors "github.com/bebifresh/bebifresh-backend/pkg/errors"
	"github.com/bebifresh/bebifresh-backend/pkg/i18n"
	"github.com/bebifresh/bebifresh-backend/pkg/logger"
	"github.com/bebifresh/bebifresh-backend/pkg/metrics"
)

const (
	monthlySeriesMonths = 12
	lowStockLimit       = 10
	refreshTimeout      = 30 * time.Second
)

// Service exposes the cached back-office summary. Mutating flows call
// Invalidate; recomputation is debounced so bursts collapse into one query
// pass.
type Service interface {
	Summary(ctx context.Context, mode enums.AgeMode) (*Summary, error)
	Invalidate()
	Close()
}

type service struct {
	repo    Repository
	cfg     config.DashboardConfig
	logg    *logger.Logger
	metrics *metrics.RefreshMetrics
	deb     *debounce.Debouncer
	now     func() time.Time

	mu     sync.RWMutex
	cached *Summary
}

// NewService builds the dashboard service.
func NewService(repo Repository, cfg config.DashboardConfig, logg *logger.Logger, refreshMetrics *metrics.RefreshMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("dashboard repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:    repo,
		cfg:     cfg,
		logg:    logg,
		metrics: refreshMetrics,
		deb:     debounce.New(cfg.RefreshQuiescence),
		now:     time.Now,
	}, nil
}

func (s *service) Summary(ctx context.Context, mode enums.AgeMode) (*Summary, error) {
	s.mu.RLock()
	cached := s.cached
	s.mu.RUnlock()

	if cached == nil {
		fresh, err := s.recompute(ctx)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "compute summary")
		}
		s.mu.Lock()
		s.cached = fresh
		s.mu.Unlock()
		cached = fresh
	}

	out := *cached
	out.Headline = i18n.Select(dashboardCopy, copyHeadline, mode)
	return &out, nil
}

// Invalidate schedules a recomputation once writes go quiet. A new call
// while one is pending restarts the wait.
func (s *service) Invalidate() {
	s.deb.Trigger(func() {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()

		started := s.now()
		fresh, err := s.recompute(ctx)
		if s.metrics != nil {
			s.metrics.ObserveRefresh(s.now().Sub(started), err)
		}
		if err != nil {
			s.logg.Error(ctx, "dashboard summary refresh failed", err)
			return
		}
		s.mu.Lock()
		s.cached = fresh
		s.mu.Unlock()
	})
}

// Close stops any pending refresh.
func (s *service) Close() {
	s.deb.Stop()
}

func (s *service) recompute(ctx context.Context) (*Summary, error) {
	productCount, err := s.repo.ProductCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("product count: %w", err)
	}
	supplierCount, err := s.repo.SupplierCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("supplier count: %w", err)
	}
	userCount, err := s.repo.UserCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("user count: %w", err)
	}

	lowStock, err := s.repo.LowStockProducts(ctx, s.cfg.LowStockThreshold, lowStockLimit)
	if err != nil {
		return nil, fmt.Errorf("low stock: %w", err)
	}
	items := make([]LowStockItem, 0, len(lowStock))
	for i := range lowStock {
		p := &lowStock[i]
		items = append(items, LowStockItem{
			ProductID:  p.ID,
			Name:       p.Name,
			SKU:        p.SKU,
			StockTotal: p.StockTotal,
		})
	}

	spendRows, err := s.repo.SpendByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("spend by status: %w", err)
	}
	spend := make(map[enums.PurchaseOrderStatus]decimal.Decimal, len(spendRows))
	for _, row := range spendRows {
		spend[row.Status] = row.Total
	}

	now := s.now()
	cutoff := now.AddDate(0, -monthlySeriesMonths, 0)
	received, err := s.repo.ReceivedOrdersSince(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("received orders: %w", err)
	}
	monthly := bucketByMonth(received)

	return &Summary{
		ProductCount:    productCount,
		SupplierCount:   supplierCount,
		UserCount:       userCount,
		LowStock:        items,
		SpendByStatus:   spend,
		MonthlyReceived: monthly,
		GeneratedAt:     now,
	}, nil
}

func bucketByMonth(orders []ReceivedOrder) []MonthSpend {
	totals := map[string]decimal.Decimal{}
	for _, order := range orders {
		key := order.ReceivedAt.Format("2006-01")
		totals[key] = totals[key].Add(order.Total)
	}

	months := make([]string, 0, len(totals))
	for month := range totals {
		months = append(months, month)
	}
	sort.Strings(months)

	out := make([]MonthSpend, 0, len(months))
	for _, month := range months {
		out = append(out, MonthSpend{Month: month, Total: totals[month]})
	}
	return out
}
