// Package pipeline orchestrates one complete report generation: stream the
// dataset CSV, filter rows, deduplicate stations, aggregate cities, publish.
package pipeline

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/lmaidana/surtidor-etl/internal/domain"
	"github.com/lmaidana/surtidor-etl/internal/observability"
)

// Source provides a readable stream of the raw dataset CSV.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}

// Sink publishes the final report rows.
type Sink interface {
	Publish(rows []domain.FinalRow) error
}

// Pipeline runs the filter → dedup → aggregate reduction over the dataset
// and publishes the report. Runs are synchronous and single-threaded;
// refreshes are serialized and rate-limited by the refresh interval.
type Pipeline struct {
	source  Source
	sink    Sink
	rules   domain.Rules
	logger  *slog.Logger
	metrics *observability.Metrics
	clock   clockwork.Clock

	refreshInterval time.Duration
	mu              sync.Mutex
	lastRefresh     time.Time

	ready atomic.Bool
}

// New creates a Pipeline with the given stages and observability.
func New(source Source, sink Sink, rules domain.Rules, refreshInterval time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		source:          source,
		sink:            sink,
		rules:           rules,
		logger:          logger,
		metrics:         metrics,
		clock:           clockwork.NewRealClock(),
		refreshInterval: refreshInterval,
	}
}

// CheckReadiness returns nil once at least one report has been published,
// or an error describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no report generated yet")
	}
	return nil
}

// EnsureFresh regenerates the report when the last successful run is older
// than the refresh interval or no run has succeeded yet. Refreshes are
// serialized: concurrent callers wait and then observe the fresh report.
func (p *Pipeline) EnsureFresh(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.lastRefresh.IsZero() && p.clock.Since(p.lastRefresh) < p.refreshInterval {
		return nil
	}
	if err := p.Run(ctx); err != nil {
		return err
	}
	p.lastRefresh = p.clock.Now()
	return nil
}

// Run executes one complete report generation. A failure leaves the
// previously published report untouched.
func (p *Pipeline) Run(ctx context.Context) error {
	start := p.clock.Now()
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	stream, err := p.source.Open(ctx)
	if err != nil {
		p.metrics.Refreshes.WithLabelValues("error").Inc()
		return fmt.Errorf("open dataset: %w", err)
	}
	defer stream.Close()

	validated, stats, err := p.readAndFilter(stream)
	if err != nil {
		p.metrics.Refreshes.WithLabelValues("error").Inc()
		return fmt.Errorf("read dataset: %w", err)
	}

	stations := domain.DeduplicateStations(validated)
	rows := domain.AggregateCities(stations, p.rules.MaxDeviation)

	if err := p.sink.Publish(rows); err != nil {
		p.metrics.Refreshes.WithLabelValues("error").Inc()
		return fmt.Errorf("publish report: %w", err)
	}

	p.metrics.RowsRead.Add(float64(stats.read))
	for reason, n := range stats.rejected {
		p.metrics.RowsRejected.WithLabelValues(string(reason)).Add(float64(n))
	}
	p.metrics.RowsValidated.Add(float64(len(validated)))
	p.metrics.StationRecords.Set(float64(len(stations)))
	p.metrics.ReportRows.Set(float64(len(rows)))
	p.metrics.RefreshDuration.Observe(p.clock.Since(start).Seconds())
	p.metrics.Refreshes.WithLabelValues("success").Inc()
	p.metrics.LastRefreshTime.Set(float64(p.clock.Now().Unix()))
	p.ready.Store(true)

	p.logger.Info("report generated",
		"rows_read", stats.read,
		"rows_validated", len(validated),
		"stations", len(stations),
		"report_rows", len(rows),
	)
	return nil
}

type runStats struct {
	read     int
	rejected map[domain.RejectReason]int
}

// readAndFilter decodes the CSV stream and applies the row filter. The
// first header name and the first data value may carry a UTF-8 byte-order
// marker, which is stripped before field lookup. Malformed lines are
// dropped; only an unreadable stream is an error.
func (p *Pipeline) readAndFilter(stream io.Reader) ([]domain.ValidatedRecord, *runStats, error) {
	cr := csv.NewReader(stream)
	cr.FieldsPerRecord = -1

	headerRow, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	headerRow[0] = strings.TrimPrefix(headerRow[0], "\ufeff")

	stats := &runStats{rejected: make(map[domain.RejectReason]int)}
	var validated []domain.ValidatedRecord
	first := true

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			p.logger.Debug("skipping malformed line", "error", err)
			continue
		}
		if first {
			rec[0] = strings.TrimPrefix(rec[0], "\ufeff")
			first = false
		}
		stats.read++

		row := make(domain.RawRecord, len(headerRow))
		for i, name := range headerRow {
			if i < len(rec) {
				row[name] = rec[i]
			}
		}

		v, reason, ok := domain.FilterRow(row, p.rules)
		if !ok {
			stats.rejected[reason]++
			continue
		}
		validated = append(validated, v)
	}

	return validated, stats, nil
}
