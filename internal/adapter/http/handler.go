// Package http exposes the wearable catalog and purchase flow as a JSON API.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/zora-digital-fashion/marketplace/internal/adapter/http/middleware"
	"github.com/zora-digital-fashion/marketplace/internal/platform/logger"
	"github.com/zora-digital-fashion/marketplace/internal/platform/metrics"
	"github.com/zora-digital-fashion/marketplace/internal/wearable/domain"
	"github.com/zora-digital-fashion/marketplace/internal/wearable/usecase"
)

// WalletHeader optionally names the caller's account for the owned flag.
const WalletHeader = "X-Wallet-Address"

const maxBodyBytes = 1 << 16

type WearableService interface {
	SearchWearables(ctx context.Context, filter domain.Filter, req domain.PageRequest, account string) (*usecase.SearchResult, error)
	GetWearable(ctx context.Context, id string) (*domain.Wearable, error)
	FilterFacets(ctx context.Context) (*domain.Facets, error)
}

type AssetService interface {
	ModelURL(ctx context.Context, wearableID string) (string, error)
}

type PurchaseService interface {
	Purchase(ctx context.Context, wearableID, buyer, receiptEmail string) (*domain.Purchase, error)
	ListPurchases(ctx context.Context, buyer string) ([]*domain.Purchase, error)
}

// Handler serves the wearable routes.
type Handler struct {
	wearables WearableService
	assets    AssetService
	purchases PurchaseService
	logger    *logger.Logger
	metrics   *metrics.MetricsManager
}

func NewHandler(wearables WearableService, assets AssetService, purchases PurchaseService, log *logger.Logger, m *metrics.MetricsManager) *Handler {
	return &Handler{
		wearables: wearables,
		assets:    assets,
		purchases: purchases,
		logger:    log.Named("HTTPHandler"),
		metrics:   m,
	}
}

// HandleSearchWearables serves GET /api/wearables.
func (h *Handler) HandleSearchWearables(w http.ResponseWriter, r *http.Request) {
	const route = "/api/wearables"

	filter, pageReq, err := ParseSearchQuery(r.URL.Query())
	if err != nil {
		h.logger.Debug("Invalid catalog query", zap.String("query", r.URL.RawQuery), zap.Error(err))
		h.writeError(w, r, route, err, "Failed to fetch wearables")
		return
	}

	account := strings.TrimSpace(r.Header.Get(WalletHeader))
	res, err := h.wearables.SearchWearables(r.Context(), filter, pageReq, account)
	if err != nil {
		h.writeError(w, r, route, err, "Failed to fetch wearables")
		return
	}
	writeJSON(w, http.StatusOK, toSearchResponse(res))
}

// HandleGetFilters serves GET /api/wearables/filters.
func (h *Handler) HandleGetFilters(w http.ResponseWriter, r *http.Request) {
	facets, err := h.wearables.FilterFacets(r.Context())
	if err != nil {
		h.writeError(w, r, "/api/wearables/filters", err, "Failed to fetch filters")
		return
	}
	writeJSON(w, http.StatusOK, toFacetsResponse(facets))
}

// HandleGetWearable serves GET /api/wearables/{id}.
func (h *Handler) HandleGetWearable(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	wearable, err := h.wearables.GetWearable(r.Context(), id)
	if err != nil {
		h.writeError(w, r, "/api/wearables/{id}", err, "Failed to fetch wearable")
		return
	}

	resp := toWearableResponse(wearable)
	if account := strings.TrimSpace(r.Header.Get(WalletHeader)); account != "" {
		owned := wearable.IsOwnedBy(account)
		resp.Owned = &owned
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleGetModelURL serves GET /api/wearables/{id}/model.
func (h *Handler) HandleGetModelURL(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	u, err := h.assets.ModelURL(r.Context(), id)
	if err != nil {
		h.writeError(w, r, "/api/wearables/{id}/model", err, "Failed to resolve model URL")
		return
	}
	writeJSON(w, http.StatusOK, ModelURLResponse{URL: u})
}

// HandlePurchase serves POST /api/wearables/{id}/purchase. Requires JWTAuth.
func (h *Handler) HandlePurchase(w http.ResponseWriter, r *http.Request) {
	const route = "/api/wearables/{id}/purchase"

	buyer, ok := middleware.WalletAddress(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "wallet is not connected"})
		return
	}

	var req PurchaseRequest
	if err := decodeOptionalJSON(w, r, &req); err != nil {
		h.logger.Debug("Invalid purchase request body", zap.Error(err))
		h.writeError(w, r, route, err, "Failed to purchase wearable")
		return
	}

	p, err := h.purchases.Purchase(r.Context(), chi.URLParam(r, "id"), buyer, req.ReceiptEmail)
	if err != nil {
		h.writeError(w, r, route, err, "Failed to purchase wearable")
		return
	}
	writeJSON(w, http.StatusCreated, toPurchaseResponse(p))
}

// HandleListPurchases serves GET /api/purchases for the authenticated wallet.
func (h *Handler) HandleListPurchases(w http.ResponseWriter, r *http.Request) {
	buyer, ok := middleware.WalletAddress(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "wallet is not connected"})
		return
	}

	items, err := h.purchases.ListPurchases(r.Context(), buyer)
	if err != nil {
		h.writeError(w, r, "/api/purchases", err, "Failed to fetch purchases")
		return
	}
	out := PurchaseListResponse{Items: make([]PurchaseResponse, 0, len(items))}
	for _, p := range items {
		out.Items = append(out.Items, toPurchaseResponse(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeOptionalJSON decodes a JSON body into dst. An empty body leaves dst untouched.
func decodeOptionalJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return nil
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: invalid request body: %v", domain.ErrInvalidInput, err)
	}
	return nil
}
