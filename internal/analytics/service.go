package analytics

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/shantum/COH-ERP2-sub002/pkg/config"
	pkgerrors "github.com/shantum/COH-ERP2-sub002/pkg/errors"
)

const topProductLimit = 6

var decimalHundred = decimal.NewFromInt(100)

// Service produces the dashboard snapshot.
type Service interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
}

type service struct {
	repo Repository
	loc  *time.Location
	now  func() time.Time
}

// NewService builds the analytics service with the configured civil
// timezone for period boundaries.
func NewService(repo Repository, cfg config.AnalyticsConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("analytics repository required")
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading analytics timezone %q: %w", cfg.Timezone, err)
	}
	return &service{repo: repo, loc: loc, now: time.Now}, nil
}

// Snapshot runs the pipeline counts, payment split, six revenue periods
// and the product ranking concurrently. Any query error fails the whole
// snapshot; partial numbers are worse than none.
func (s *service) Snapshot(ctx context.Context) (*Snapshot, error) {
	now := s.now()
	periods := PeriodBoundaries(now, s.loc)
	last30Start := now.AddDate(0, 0, -30)

	var (
		mu       sync.Mutex
		snapshot Snapshot
		statsFor = make(map[PeriodKey]periodStats, len(periods))
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		counts, err := s.repo.PipelineCounts(gctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "pipeline counts")
		}
		mu.Lock()
		snapshot.Pipeline = counts
		mu.Unlock()
		return nil
	})

	g.Go(func() error {
		split, err := s.repo.PaymentSplit(gctx, last30Start)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "payment split")
		}
		mu.Lock()
		snapshot.Payments = split
		mu.Unlock()
		return nil
	})

	g.Go(func() error {
		top, err := s.repo.TopProducts(gctx, last30Start, topProductLimit)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "top products")
		}
		mu.Lock()
		snapshot.TopProducts = top
		mu.Unlock()
		return nil
	})

	for _, period := range periods {
		period := period
		g.Go(func() error {
			stats, err := s.repo.PeriodStats(gctx, period.Start, period.End)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, fmt.Sprintf("period %s", period.Key))
			}
			mu.Lock()
			statsFor[period.Key] = stats
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	snapshot.Periods = make([]PeriodRevenue, 0, len(PeriodKeys))
	for _, key := range PeriodKeys {
		stats := statsFor[key]
		entry := PeriodRevenue{
			Key:                key,
			Label:              key.Label(),
			Revenue:            stats.Revenue,
			OrderCount:         stats.OrderCount,
			NewCustomers:       stats.NewCustomers,
			ReturningCustomers: stats.ReturningCustomers,
		}
		if key == PeriodToday {
			dod := dayOverDayPct(stats, statsFor[PeriodYesterday])
			entry.DayOverDayPct = &dod
		}
		snapshot.Periods = append(snapshot.Periods, entry)
	}
	return &snapshot, nil
}

// dayOverDayPct compares today's revenue against yesterday's. A zero
// yesterday yields 0 for a zero today and 100 otherwise.
func dayOverDayPct(today, yesterday periodStats) float64 {
	if yesterday.Revenue.IsZero() {
		if today.Revenue.IsZero() {
			return 0
		}
		return 100
	}
	delta := today.Revenue.Sub(yesterday.Revenue)
	pct, _ := delta.Div(yesterday.Revenue).Mul(decimalHundred).Float64()
	return pct
}
