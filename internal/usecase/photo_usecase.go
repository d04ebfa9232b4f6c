package usecase

import (
	"context"
	"errors"
	"net/http"

	"shopapp/internal/domain/model"
	"shopapp/internal/gallery"
)

// PhotoUsecase は /photos の業務ロジック。
type PhotoUsecase struct {
	gallery *gallery.Gallery
}

// DI
func NewPhotoUsecase(g *gallery.Gallery) *PhotoUsecase {
	return &PhotoUsecase{gallery: g}
}

func (u *PhotoUsecase) ListPhotos(ctx context.Context) []model.Photo {
	return u.gallery.Photos()
}

func (u *PhotoUsecase) Capture(ctx context.Context) (model.Photo, error) {
	photo, err := u.gallery.AddFromCamera(ctx)
	if errors.Is(err, gallery.ErrNoSource) {
		return model.Photo{}, NewHTTPError(http.StatusServiceUnavailable, "camera unavailable")
	}
	if err != nil {
		return model.Photo{}, NewHTTPError(http.StatusInternalServerError, "capture failed")
	}
	return photo, nil
}
