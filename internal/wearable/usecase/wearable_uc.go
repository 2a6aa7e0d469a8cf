package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/zora-digital-fashion/marketplace/internal/platform/logger"
	"github.com/zora-digital-fashion/marketplace/internal/platform/metrics"
	"github.com/zora-digital-fashion/marketplace/internal/wearable/domain"
	"github.com/zora-digital-fashion/marketplace/internal/wearable/engine"
)

var tracer = otel.Tracer("wearable-service/usecase")

// SearchResult is one page of a catalog query plus the owned flag per
// wearable id on that page.
type SearchResult struct {
	Page  domain.Page
	Owned map[string]bool
}

type WearableUsecase struct {
	catalog domain.CatalogRepository
	logger  *logger.Logger
	metrics *metrics.MetricsManager
}

// NewWearableUsecase: m may be nil.
func NewWearableUsecase(catalog domain.CatalogRepository, log *logger.Logger, m *metrics.MetricsManager) *WearableUsecase {
	return &WearableUsecase{
		catalog: catalog,
		logger:  log.Named("WearableUsecase"),
		metrics: m,
	}
}

// SearchWearables validates the filter, runs it over a fresh catalog snapshot
// and returns the requested page. account drives the owned flag and may be empty.
func (uc *WearableUsecase) SearchWearables(ctx context.Context, filter domain.Filter, req domain.PageRequest, account string) (*SearchResult, error) {
	ctx, span := tracer.Start(ctx, "WearableUsecase.SearchWearables")
	defer span.End()

	if err := filter.Validate(); err != nil {
		uc.logger.Debug("Rejected catalog query", zap.Error(err))
		return nil, err
	}

	snapshot, err := uc.catalog.Snapshot(ctx)
	if err != nil {
		uc.logger.Error("Failed to load catalog snapshot", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "snapshot failed")
		return nil, err
	}

	matches := engine.Apply(snapshot, filter)
	page := engine.Paginate(matches, req)

	owned := make(map[string]bool, len(page.Items))
	for _, w := range page.Items {
		owned[w.ID] = w.IsOwnedBy(account)
	}

	uc.metrics.ObserveSearch(string(filter.SortBy), len(matches))
	span.SetAttributes(
		attribute.Int("catalog.size", len(snapshot)),
		attribute.Int("result.total", page.Total),
		attribute.Int("result.page", page.Page),
	)
	uc.logger.Debug("Catalog query served",
		zap.String("sort_by", string(filter.SortBy)),
		zap.Int("total", page.Total),
		zap.Int("page", page.Page),
		zap.Int("limit", page.Limit))

	return &SearchResult{Page: page, Owned: owned}, nil
}

func (uc *WearableUsecase) GetWearable(ctx context.Context, id string) (*domain.Wearable, error) {
	ctx, span := tracer.Start(ctx, "WearableUsecase.GetWearable")
	defer span.End()
	span.SetAttributes(attribute.String("wearable.id", id))

	if id == "" {
		return nil, fmt.Errorf("%w: wearable id is required", domain.ErrInvalidInput)
	}
	w, err := uc.catalog.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrWearableNotFound) {
			uc.logger.Error("Failed to load wearable", zap.String("wearable_id", id), zap.Error(err))
			span.RecordError(err)
		}
		return nil, err
	}
	return w, nil
}

// FilterFacets describes the selectable filter values over the current catalog.
func (uc *WearableUsecase) FilterFacets(ctx context.Context) (*domain.Facets, error) {
	ctx, span := tracer.Start(ctx, "WearableUsecase.FilterFacets")
	defer span.End()

	snapshot, err := uc.catalog.Snapshot(ctx)
	if err != nil {
		uc.logger.Error("Failed to load catalog snapshot for facets", zap.Error(err))
		span.RecordError(err)
		return nil, err
	}
	facets := engine.BuildFacets(snapshot)
	return &facets, nil
}
