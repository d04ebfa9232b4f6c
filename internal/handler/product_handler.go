package handler

import (
	"net/http"
	"strconv"

	"shopapp/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// /products の公開API
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// 公開ルートと管理ルート（session必須）を登録
func (h *ProductHandler) RegisterRoutes(e *echo.Echo, session echo.MiddlewareFunc) {
	e.GET("/products", h.list)
	e.GET("/products/featured", h.featured)
	e.GET("/products/stats", h.stats)
	e.GET("/products/:id", h.detail)
	e.GET("/categories", h.categories)
	e.POST("/products/refresh", h.refresh)

	g := e.Group("/products")
	g.Use(session)
	g.POST("", h.adminCreate)
	g.PUT("/:id", h.adminUpdate)
	g.DELETE("/:id", h.adminDelete)
}

func (h *ProductHandler) list(c echo.Context) error {
	in := usecase.ListProductsInput{
		Category: c.QueryParam("category"),
		Q:        c.QueryParam("q"),
		Sort:     c.QueryParam("sort"),
		Order:    c.QueryParam("order"),
	}

	if v := c.QueryParam("min_price"); v != "" {
		x, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid min_price"})
		}
		in.MinPrice = &x
	}
	if v := c.QueryParam("max_price"); v != "" {
		x, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid max_price"})
		}
		in.MaxPrice = &x
	}

	var err error
	if in.InStock, err = boolParam(c, "in_stock"); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid in_stock"})
	}
	if in.Featured, err = boolParam(c, "featured"); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid featured"})
	}
	if in.Discounted, err = boolParam(c, "discounted"); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid discounted"})
	}

	out, err := h.uc.ListProducts(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) detail(c echo.Context) error {
	p, err := h.uc.GetProductDetail(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) categories(c echo.Context) error {
	return c.JSON(http.StatusOK, h.uc.ListCategories(c.Request().Context()))
}

func (h *ProductHandler) featured(c echo.Context) error {
	return c.JSON(http.StatusOK, h.uc.ListFeatured(c.Request().Context()))
}

func (h *ProductHandler) stats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.uc.GetStats(c.Request().Context()))
}

func (h *ProductHandler) refresh(c echo.Context) error {
	items, err := h.uc.Refresh(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

type ProductRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	Image         string   `json:"image"`
	Category      string   `json:"category"`
	Stock         *int64   `json:"stock"`
	Rating        *float64 `json:"rating"`
	Featured      bool     `json:"featured"`
	Discount      *float64 `json:"discount"`
	OriginalPrice *float64 `json:"originalPrice"`
}

func (r ProductRequest) toInput() usecase.AdminProductInput {
	return usecase.AdminProductInput{
		Name:          r.Name,
		Description:   r.Description,
		Price:         r.Price,
		Image:         r.Image,
		Category:      r.Category,
		Stock:         r.Stock,
		Rating:        r.Rating,
		Featured:      r.Featured,
		Discount:      r.Discount,
		OriginalPrice: r.OriginalPrice,
	}
}

func (h *ProductHandler) adminCreate(c echo.Context) error {
	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	p, err := h.uc.AdminCreateProduct(c.Request().Context(), req.toInput())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *ProductHandler) adminUpdate(c echo.Context) error {
	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	p, err := h.uc.AdminUpdateProduct(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) adminDelete(c echo.Context) error {
	if err := h.uc.AdminDeleteProduct(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func boolParam(c echo.Context, name string) (bool, error) {
	v := c.QueryParam(name)
	if v == "" {
		return false, nil
	}
	return strconv.ParseBool(v)
}
