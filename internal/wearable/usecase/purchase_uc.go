package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/zora-digital-fashion/marketplace/internal/platform/logger"
	"github.com/zora-digital-fashion/marketplace/internal/platform/metrics"
	"github.com/zora-digital-fashion/marketplace/internal/wearable/domain"
)

// SubjectWearablePurchased is the event subject for recorded purchases.
const SubjectWearablePurchased = "wearable.purchased"

// PurchaseEvent is the payload published on SubjectWearablePurchased.
type PurchaseEvent struct {
	PurchaseID      string    `json:"purchaseId"`
	WearableID      string    `json:"wearableId"`
	Buyer           string    `json:"buyer"`
	Seller          string    `json:"seller"`
	Price           float64   `json:"price"`
	Currency        string    `json:"currency"`
	TransactionHash string    `json:"transactionHash"`
	Timestamp       time.Time `json:"timestamp"`
}

// PurchaseUsecase records simulated purchases. No chain transaction happens.
type PurchaseUsecase struct {
	catalog   domain.CatalogRepository
	purchases domain.PurchaseRepository
	publisher domain.EventPublisher
	mailer    domain.ReceiptMailer
	logger    *logger.Logger
	metrics   *metrics.MetricsManager
	now       func() time.Time

	// serializes the supply check with the insert
	mu sync.Mutex
}

func NewPurchaseUsecase(
	catalog domain.CatalogRepository,
	purchases domain.PurchaseRepository,
	publisher domain.EventPublisher,
	mailer domain.ReceiptMailer,
	log *logger.Logger,
	m *metrics.MetricsManager,
) *PurchaseUsecase {
	return &PurchaseUsecase{
		catalog:   catalog,
		purchases: purchases,
		publisher: publisher,
		mailer:    mailer,
		logger:    log.Named("PurchaseUsecase"),
		metrics:   m,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Purchase records buyer's purchase of wearableID. receiptEmail is optional.
func (uc *PurchaseUsecase) Purchase(ctx context.Context, wearableID, buyer, receiptEmail string) (*domain.Purchase, error) {
	ctx, span := tracer.Start(ctx, "PurchaseUsecase.Purchase")
	defer span.End()
	span.SetAttributes(attribute.String("wearable.id", wearableID))

	p, err := uc.record(ctx, wearableID, strings.TrimSpace(buyer))
	if err != nil {
		uc.metrics.ObservePurchase(purchaseOutcome(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "purchase rejected")
		return nil, err
	}
	uc.metrics.ObservePurchase("success")

	event := PurchaseEvent{
		PurchaseID:      p.ID,
		WearableID:      p.WearableID,
		Buyer:           p.Buyer,
		Seller:          p.Seller,
		Price:           p.Price,
		Currency:        string(p.Currency),
		TransactionHash: p.TransactionHash,
		Timestamp:       p.Timestamp,
	}
	if err := uc.publisher.Publish(ctx, SubjectWearablePurchased, event); err != nil {
		uc.logger.Warn("Failed to publish purchase event", zap.String("purchase_id", p.ID), zap.Error(err))
	}

	if email := strings.TrimSpace(receiptEmail); email != "" {
		if err := uc.mailer.SendPurchaseReceipt(email, uc.wearableName(ctx, p.WearableID), p); err != nil {
			uc.logger.Warn("Failed to send purchase receipt", zap.String("purchase_id", p.ID), zap.Error(err))
		}
	}

	uc.logger.Info("Purchase recorded",
		zap.String("purchase_id", p.ID),
		zap.String("wearable_id", p.WearableID),
		zap.String("buyer", p.Buyer))
	return p, nil
}

func (uc *PurchaseUsecase) record(ctx context.Context, wearableID, buyer string) (*domain.Purchase, error) {
	if buyer == "" {
		return nil, fmt.Errorf("%w: buyer address is required", domain.ErrInvalidInput)
	}
	if wearableID == "" {
		return nil, fmt.Errorf("%w: wearable id is required", domain.ErrInvalidInput)
	}

	w, err := uc.catalog.FindByID(ctx, wearableID)
	if err != nil {
		return nil, err
	}
	if w.IsOwnedBy(buyer) {
		return nil, domain.ErrOwnWearable
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	sold, err := uc.purchases.CountByWearableID(ctx, w.ID)
	if err != nil {
		uc.logger.Error("Failed to count purchases", zap.String("wearable_id", w.ID), zap.Error(err))
		return nil, err
	}
	if sold >= int64(w.Metadata.TotalSupply) {
		return nil, fmt.Errorf("%w: all %d editions of %s are sold", domain.ErrSoldOut, w.Metadata.TotalSupply, w.ID)
	}

	id := uuid.NewString()
	p := &domain.Purchase{
		ID:              id,
		WearableID:      w.ID,
		Buyer:           buyer,
		Seller:          w.Creator.Address,
		Price:           w.Price,
		Currency:        w.Currency,
		TransactionHash: simulatedTxHash(id),
		Timestamp:       uc.now(),
	}
	if err := uc.purchases.Create(ctx, p); err != nil {
		uc.logger.Error("Failed to store purchase", zap.String("wearable_id", w.ID), zap.Error(err))
		return nil, err
	}
	return p, nil
}

func (uc *PurchaseUsecase) wearableName(ctx context.Context, id string) string {
	if w, err := uc.catalog.FindByID(ctx, id); err == nil {
		return w.Name
	}
	return id
}

// ListPurchases returns buyer's purchases newest first.
func (uc *PurchaseUsecase) ListPurchases(ctx context.Context, buyer string) ([]*domain.Purchase, error) {
	buyer = strings.TrimSpace(buyer)
	if buyer == "" {
		return nil, fmt.Errorf("%w: buyer address is required", domain.ErrInvalidInput)
	}
	items, err := uc.purchases.FindByBuyer(ctx, buyer)
	if err != nil {
		uc.logger.Error("Failed to list purchases", zap.String("buyer", buyer), zap.Error(err))
		return nil, err
	}
	return items, nil
}

// simulatedTxHash derives a 0x-prefixed 32-byte hex hash from the purchase id.
func simulatedTxHash(purchaseID string) string {
	sum := sha256.Sum256([]byte(purchaseID))
	return "0x" + hex.EncodeToString(sum[:])
}

func purchaseOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrSoldOut):
		return "sold_out"
	case errors.Is(err, domain.ErrOwnWearable):
		return "own_wearable"
	case errors.Is(err, domain.ErrWearableNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	default:
		return "error"
	}
}
