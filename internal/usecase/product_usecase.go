package usecase

import (
	"context"
	"errors"
	"net/http"

	"shopapp/internal/catalog"
	"shopapp/internal/domain/model"
)

// ProductUsecase は /products の業務ロジック。
type ProductUsecase struct {
	catalog *catalog.Store
}

// DI
func NewProductUsecase(c *catalog.Store) *ProductUsecase {
	return &ProductUsecase{catalog: c}
}

// GET /productsの入力DTO
type ListProductsInput struct {
	Category   string
	Q          string
	MinPrice   *float64
	MaxPrice   *float64
	InStock    bool
	Featured   bool
	Discounted bool
	Sort       string // name|price|rating|空
	Order      string // asc|desc|空
}

type ProductListOutput struct {
	Items []model.Product `json:"items"`
	Total int             `json:"total"`
}

func (u *ProductUsecase) ListProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if in.MinPrice != nil && *in.MinPrice < 0 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "min_price must be >= 0")
	}
	if in.MaxPrice != nil && *in.MaxPrice < 0 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "max_price must be >= 0")
	}
	if in.MinPrice != nil && in.MaxPrice != nil && *in.MinPrice > *in.MaxPrice {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "min_price must be <= max_price")
	}
	switch in.Sort {
	case "", string(catalog.SortByName), string(catalog.SortByPrice), string(catalog.SortByRating):
	default:
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid sort")
	}
	switch in.Order {
	case "", string(catalog.SortAsc), string(catalog.SortDesc):
	default:
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid order")
	}

	items := catalog.Apply(u.catalog.ListAll(), catalog.Filter{
		Category:   in.Category,
		Search:     in.Q,
		MinPrice:   in.MinPrice,
		MaxPrice:   in.MaxPrice,
		InStock:    in.InStock,
		Featured:   in.Featured,
		Discounted: in.Discounted,
		SortBy:     catalog.SortKey(in.Sort),
		SortDir:    catalog.SortDir(in.Order),
	})

	return ProductListOutput{Items: items, Total: len(items)}, nil
}

func (u *ProductUsecase) GetProductDetail(ctx context.Context, productID string) (model.Product, error) {
	if productID == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, err := u.catalog.ByID(productID)
	if errors.Is(err, catalog.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return p, nil
}

func (u *ProductUsecase) ListCategories(ctx context.Context) []string {
	return u.catalog.Categories()
}

func (u *ProductUsecase) ListFeatured(ctx context.Context) []model.Product {
	return u.catalog.Featured()
}

func (u *ProductUsecase) GetStats(ctx context.Context) catalog.Stats {
	return u.catalog.Stats()
}

// プル更新。初期カタログの再投入なので通常は失敗しない。
func (u *ProductUsecase) Refresh(ctx context.Context) ([]model.Product, error) {
	if err := u.catalog.Refresh(ctx); err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "refresh failed")
	}
	return u.catalog.ListAll(), nil
}

// 管理用の入力DTO
type AdminProductInput struct {
	Name          string
	Description   string
	Price         float64
	Image         string
	Category      string
	Stock         *int64
	Rating        *float64
	Featured      bool
	Discount      *float64
	OriginalPrice *float64
}

func (in AdminProductInput) toModel(id string) model.Product {
	return model.Product{
		ID:            id,
		Name:          in.Name,
		Description:   in.Description,
		Price:         in.Price,
		Image:         in.Image,
		Category:      in.Category,
		Stock:         in.Stock,
		Rating:        in.Rating,
		Featured:      in.Featured,
		Discount:      in.Discount,
		OriginalPrice: in.OriginalPrice,
	}
}

func (u *ProductUsecase) AdminCreateProduct(ctx context.Context, in AdminProductInput) (model.Product, error) {
	p, err := u.catalog.Add(in.toModel(""))
	if errors.Is(err, catalog.ErrInvalidProduct) {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if errors.Is(err, catalog.ErrDuplicateID) {
		return model.Product{}, NewHTTPError(http.StatusConflict, "duplicate product id")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return p, nil
}

func (u *ProductUsecase) AdminUpdateProduct(ctx context.Context, productID string, in AdminProductInput) (model.Product, error) {
	if productID == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, err := u.catalog.Update(in.toModel(productID))
	if errors.Is(err, catalog.ErrInvalidProduct) {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if errors.Is(err, catalog.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return p, nil
}

func (u *ProductUsecase) AdminDeleteProduct(ctx context.Context, productID string) error {
	if productID == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	err := u.catalog.Delete(productID)
	if errors.Is(err, catalog.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return nil
}
