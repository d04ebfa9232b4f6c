package handler

import (
	"net/http"

	"shopapp/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /photosのHTTP（ギャラリー機能）
type PhotoHandler struct {
	uc *usecase.PhotoUsecase
}

// DI
func NewPhotoHandler(uc *usecase.PhotoUsecase) *PhotoHandler {
	return &PhotoHandler{uc: uc}
}

func (h *PhotoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/photos", h.list)
	e.POST("/photos", h.capture)
}

func (h *PhotoHandler) list(c echo.Context) error {
	return c.JSON(http.StatusOK, h.uc.ListPhotos(c.Request().Context()))
}

func (h *PhotoHandler) capture(c echo.Context) error {
	photo, err := h.uc.Capture(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, photo)
}
