package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/strscout/backend/src/logger"
	"github.com/strscout/backend/src/models"
	"github.com/strscout/backend/src/processors"
	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 8

type calculationServiceImpl struct {
	properties  PropertyService
	processor   processors.MetricsProcessor
	resultCache ResultCache
	concurrency int
}

// NewCalculationService wires the metrics processor to stored properties.
// concurrency bounds how many properties Compare and Dashboard calculate
// at once; resultCache may be nil.
func NewCalculationService(
	properties PropertyService,
	processor processors.MetricsProcessor,
	resultCache ResultCache,
	concurrency int,
) CalculationService {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &calculationServiceImpl{
		properties:  properties,
		processor:   processor,
		resultCache: resultCache,
		concurrency: concurrency,
	}
}

func (s *calculationServiceImpl) Calculate(ctx context.Context, propertyID int64) (*models.CalculationResult, error) {
	if cached, found := s.cached(ctx, propertyID); found {
		return cached, nil
	}
	input, err := s.properties.GetCalculationInput(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	return s.compute(ctx, propertyID, input), nil
}

func (s *calculationServiceImpl) AnalyzeAlos(ctx context.Context, propertyID int64, alosRange models.AlosRange) (*models.AlosAnalysis, error) {
	input, err := s.properties.GetCalculationInput(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	result, found := s.cached(ctx, propertyID)
	if !found {
		result = s.compute(ctx, propertyID, input)
	}
	analysis := s.processor.AnalyzeAlos(*input, *result, alosRange)
	return &analysis, nil
}

func (s *calculationServiceImpl) cached(ctx context.Context, propertyID int64) (*models.CalculationResult, bool) {
	if s.resultCache == nil {
		return nil, false
	}
	result, found := s.resultCache.Get(ctx, calculationCacheKey(propertyID))
	if found {
		logger.FromContext(ctx).Debug("Calculation cache hit", "propertyID", propertyID)
	}
	return result, found
}

// compute calculates input and caches the result. Writes delete the key
// after committing, so a re-read following Set sees any write that the
// delete could have missed; on a mismatch the entry is dropped again.
func (s *calculationServiceImpl) compute(ctx context.Context, propertyID int64, input *models.CalculationInput) *models.CalculationResult {
	result := s.processor.Calculate(*input)
	if s.resultCache == nil {
		return &result
	}
	key := calculationCacheKey(propertyID)
	s.resultCache.Set(ctx, key, &result)
	current, err := s.properties.GetCalculationInput(ctx, propertyID)
	if err != nil || !reflect.DeepEqual(current, input) {
		s.resultCache.Delete(ctx, key)
		logger.FromContext(ctx).Debug("Property changed during calculation, result not cached", "propertyID", propertyID)
	}
	return &result
}

// Compare calculates every requested property. Entries keep the request
// order; unknown properties get an error entry instead of failing the call.
func (s *calculationServiceImpl) Compare(ctx context.Context, propertyIDs []int64) ([]models.ComparisonEntry, error) {
	entries := make([]models.ComparisonEntry, len(propertyIDs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, id := range propertyIDs {
		g.Go(func() error {
			entries[i].PropertyID = id
			result, err := s.Calculate(gctx, id)
			if errors.Is(err, ErrNotFound) {
				entries[i].Error = "Not found"
				return nil
			}
			if err != nil {
				return fmt.Errorf("compare property %d: %w", id, err)
			}
			entries[i].Result = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Dashboard summarizes every property and totals the portfolio.
func (s *calculationServiceImpl) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	properties, err := s.properties.ListProperties(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.PropertySummary, len(properties))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, p := range properties {
		g.Go(func() error {
			summaries[i].Property = p
			result, err := s.Calculate(gctx, p.ID)
			if errors.Is(err, ErrNotFound) {
				// Deleted since the listing; reported without metrics.
				return nil
			}
			if err != nil {
				return fmt.Errorf("dashboard property %d: %w", p.ID, err)
			}
			summaries[i].Metrics = models.NewSummaryMetrics(*result)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &models.Dashboard{
		Portfolio:  portfolioTotals(summaries),
		Properties: summaries,
	}, nil
}

func portfolioTotals(summaries []models.PropertySummary) models.PortfolioTotals {
	var t models.PortfolioTotals
	for _, s := range summaries {
		if s.Metrics == nil {
			continue
		}
		t.TotalRevenue += s.Metrics.MonthlyRevenue * 12
		t.TotalCashFlow += s.Metrics.MonthlyCashFlow * 12
		t.TotalNOI += s.Metrics.NOI
		t.TotalInvested += s.Metrics.TotalCashInvested
		t.PropertyCount++
	}
	if t.TotalInvested > 0 {
		t.CashOnCash = t.TotalCashFlow / t.TotalInvested
	}
	return t
}
