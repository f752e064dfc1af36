package ledger

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/caixa/backend/internal/domain/ledger"
	"github.com/caixa/backend/internal/infrastructure/cache"
)

// ProjectionService runs the projection engine over the stored record
// snapshot. Every read recomputes from the snapshot; the summary cache only
// memoizes results under a version token that changes on any write, so a
// cached answer is always identical to a fresh one.
type ProjectionService struct {
	snapshots  ledger.SnapshotRepository
	cashRepo   ledger.CashRepository
	classifier *ledger.Classifier
	aggregator *ledger.Aggregator
	calendar   *ledger.CalendarBuilder
	projector  *ledger.CashProjector
	cache      cache.SummaryCache
	logger     *zap.Logger
}

// ProjectionServiceOption is a functional option for configuring the service
type ProjectionServiceOption func(*ProjectionService)

// WithSummaryCache enables memoization of summaries and month grids
func WithSummaryCache(c cache.SummaryCache) ProjectionServiceOption {
	return func(s *ProjectionService) {
		s.cache = c
	}
}

// WithLogger sets the logger for the service
func WithLogger(logger *zap.Logger) ProjectionServiceOption {
	return func(s *ProjectionService) {
		s.logger = logger
	}
}

// WithAmountFallback selects how installments without an explicit value
// are priced
func WithAmountFallback(fallback ledger.AmountFallback) ProjectionServiceOption {
	return func(s *ProjectionService) {
		classifier := ledger.NewClassifierWith(ledger.ExpandOptions{Fallback: fallback})
		s.classifier = classifier
		s.aggregator = ledger.NewAggregator(classifier)
		s.calendar = ledger.NewCalendarBuilder(classifier)
	}
}

// NewProjectionService creates a new ProjectionService
func NewProjectionService(
	snapshots ledger.SnapshotRepository,
	cashRepo ledger.CashRepository,
	opts ...ProjectionServiceOption,
) *ProjectionService {
	classifier := ledger.NewClassifier()
	s := &ProjectionService{
		snapshots:  snapshots,
		cashRepo:   cashRepo,
		classifier: classifier,
		aggregator: ledger.NewAggregator(classifier),
		calendar:   ledger.NewCalendarBuilder(classifier),
		projector:  ledger.NewCashProjector(),
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// GetPeriodSummary aggregates the snapshot over the given range.
// An inverted range yields an empty summary, not an error.
func (s *ProjectionService) GetPeriodSummary(ctx context.Context, r ledger.DateRange) (*ledger.PeriodSummary, error) {
	version := s.version(ctx)

	if s.cache != nil && version != "" {
		key := cache.SummaryKey(version, r)
		if payload, found := s.cachedPayload(ctx, key); found {
			var summary ledger.PeriodSummary
			if err := json.Unmarshal(payload, &summary); err == nil {
				return &summary, nil
			}
			s.logger.Warn("discarding undecodable cached summary", zap.String("key", key))
		}
	}

	set, err := s.snapshots.LoadRecordSet(ctx)
	if err != nil {
		return nil, err
	}

	summary := s.aggregator.Aggregate(set, r)

	if s.cache != nil && version != "" {
		s.storePayload(ctx, cache.SummaryKey(version, r), summary)
	}

	return &summary, nil
}

// MonthGridResponse is a month calendar with its grid cells
type MonthGridResponse struct {
	Month ledger.YearMonth     `json:"month"`
	Days  []ledger.CalendarDay `json:"days"`
}

// GetMonthGrid builds the 42-cell calendar grid for the month
func (s *ProjectionService) GetMonthGrid(ctx context.Context, ym ledger.YearMonth) (*MonthGridResponse, error) {
	version := s.version(ctx)

	if s.cache != nil && version != "" {
		key := cache.CalendarKey(version, ym)
		if payload, found := s.cachedPayload(ctx, key); found {
			var resp MonthGridResponse
			if err := json.Unmarshal(payload, &resp); err == nil {
				return &resp, nil
			}
			s.logger.Warn("discarding undecodable cached calendar", zap.String("key", key))
		}
	}

	set, err := s.snapshots.LoadRecordSet(ctx)
	if err != nil {
		return nil, err
	}

	resp := MonthGridResponse{
		Month: ym,
		Days:  s.calendar.MonthGrid(ym, set),
	}

	if s.cache != nil && version != "" {
		s.storePayload(ctx, cache.CalendarKey(version, ym), resp)
	}

	return &resp, nil
}

// ListReceivables returns the pending schedule entries the business expects
// to collect inside the range
func (s *ProjectionService) ListReceivables(ctx context.Context, r ledger.DateRange) ([]ledger.FinancialEvent, error) {
	return s.listPending(ctx, r, func(ev ledger.FinancialEvent) bool {
		switch ev.Variant {
		case ledger.VariantReceivable, ledger.VariantOverdue:
			return true
		}
		return false
	})
}

// ListPayables returns the schedule entries the business must pay inside
// the range, including pending checks already committed to a debt
func (s *ProjectionService) ListPayables(ctx context.Context, r ledger.DateRange) ([]ledger.FinancialEvent, error) {
	return s.listPending(ctx, r, func(ev ledger.FinancialEvent) bool {
		switch ev.Variant {
		case ledger.VariantPayable, ledger.VariantUsedForDebt:
			return true
		}
		return false
	})
}

func (s *ProjectionService) listPending(ctx context.Context, r ledger.DateRange, keep func(ledger.FinancialEvent) bool) ([]ledger.FinancialEvent, error) {
	set, err := s.snapshots.LoadRecordSet(ctx)
	if err != nil {
		return nil, err
	}

	events := make([]ledger.FinancialEvent, 0)
	for _, ev := range s.classifier.Classify(set, r) {
		if ev.Kind != ledger.EventReceived && ev.Kind != ledger.EventPaid && keep(ev) {
			events = append(events, ev)
		}
	}
	return events, nil
}

// GetCashPosition returns the stored balance as-is. The balance is owned by
// the write path; reads never rederive it from transaction history.
func (s *ProjectionService) GetCashPosition(ctx context.Context) (*ledger.CashBalance, error) {
	balance, err := s.cashRepo.GetBalance(ctx)
	if err != nil {
		return nil, err
	}
	return balance, nil
}

// CashPreviewResponse projects the balance through upcoming schedule entries
type CashPreviewResponse struct {
	CurrentBalance   string                  `json:"current_balance"`
	ProjectedBalance string                  `json:"projected_balance"`
	Events           []ledger.FinancialEvent `json:"events"`
}

// PreviewCash applies the pending schedule inside the range to the current
// balance without writing anything
func (s *ProjectionService) PreviewCash(ctx context.Context, r ledger.DateRange) (*CashPreviewResponse, error) {
	balance, err := s.cashRepo.GetBalance(ctx)
	if err != nil {
		return nil, err
	}

	set, err := s.snapshots.LoadRecordSet(ctx)
	if err != nil {
		return nil, err
	}

	// Project each schedule entry as if it settled on its due date.
	pending := make([]ledger.FinancialEvent, 0)
	settled := make([]ledger.FinancialEvent, 0)
	for _, ev := range s.classifier.Classify(set, r) {
		if ev.Kind != ledger.EventPending {
			continue
		}
		pending = append(pending, ev)

		asSettled := ev
		switch ev.Variant {
		case ledger.VariantPayable, ledger.VariantUsedForDebt:
			asSettled.Kind = ledger.EventPaid
		default:
			asSettled.Kind = ledger.EventReceived
		}
		settled = append(settled, asSettled)
	}

	return &CashPreviewResponse{
		CurrentBalance:   s.projector.CurrentBalance(*balance).String(),
		ProjectedBalance: s.projector.PreviewBalance(*balance, settled).String(),
		Events:           pending,
	}, nil
}

// CountRecords counts the current snapshot per record type
func (s *ProjectionService) CountRecords(ctx context.Context) (ledger.RecordCounts, error) {
	set, err := s.snapshots.LoadRecordSet(ctx)
	if err != nil {
		return ledger.RecordCounts{}, err
	}
	return ledger.CountRecords(set), nil
}

// DiffCounts reports per-type additions since a previous count. Deletions
// clamp to zero; the diff only ever reports growth.
func (s *ProjectionService) DiffCounts(ctx context.Context, previous ledger.RecordCounts) (ledger.RecordCounts, error) {
	current, err := s.CountRecords(ctx)
	if err != nil {
		return ledger.RecordCounts{}, err
	}
	return ledger.DiffCounts(previous, current), nil
}

func (s *ProjectionService) version(ctx context.Context) string {
	version, err := s.snapshots.RecordsVersion(ctx)
	if err != nil {
		s.logger.Warn("records version unavailable, skipping cache", zap.Error(err))
		return ""
	}
	return version
}

func (s *ProjectionService) cachedPayload(ctx context.Context, key string) ([]byte, bool) {
	payload, found, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("summary cache read failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return payload, found
}

func (s *ProjectionService) storePayload(ctx context.Context, key string, value interface{}) {
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, payload); err != nil {
		s.logger.Warn("summary cache write failed", zap.String("key", key), zap.Error(err))
	}
}
