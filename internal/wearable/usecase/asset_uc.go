package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/zora-digital-fashion/marketplace/internal/platform/logger"
	"github.com/zora-digital-fashion/marketplace/internal/wearable/domain"
)

// AssetUsecase resolves 3D model locations.
type AssetUsecase struct {
	catalog domain.CatalogRepository
	storage domain.AssetStorage
	logger  *logger.Logger
}

// NewAssetUsecase: a nil storage serves the stored model path unchanged.
func NewAssetUsecase(catalog domain.CatalogRepository, storage domain.AssetStorage, log *logger.Logger) *AssetUsecase {
	return &AssetUsecase{
		catalog: catalog,
		storage: storage,
		logger:  log.Named("AssetUsecase"),
	}
}

func (uc *AssetUsecase) ModelURL(ctx context.Context, wearableID string) (string, error) {
	ctx, span := tracer.Start(ctx, "AssetUsecase.ModelURL")
	defer span.End()

	w, err := uc.catalog.FindByID(ctx, wearableID)
	if err != nil {
		return "", err
	}
	if w.Images.Model3D == "" {
		return "", domain.ErrAssetNotFound
	}
	if uc.storage == nil {
		return w.Images.Model3D, nil
	}

	u, err := uc.storage.PresignedURL(ctx, w.Images.Model3D)
	if err != nil {
		uc.logger.Error("Failed to presign model URL", zap.String("wearable_id", wearableID), zap.Error(err))
		span.RecordError(err)
		return "", err
	}
	return u, nil
}
