package usecase

import (
	"context"
	"net/http"
	"testing"

	"shopapp/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func float64p(v float64) *float64 { return &v }

func TestProductUsecase_ListProducts_FilterAndSort(t *testing.T) {
	u := NewProductUsecase(catalog.NewStore())

	out, err := u.ListProducts(context.Background(), ListProductsInput{
		Category: "Electronics",
		Sort:     "price",
		Order:    "desc",
	})

	require.NoError(t, err)
	require.NotEmpty(t, out.Items)
	assert.Equal(t, len(out.Items), out.Total)
	for i := range out.Items {
		assert.Equal(t, "Electronics", out.Items[i].Category)
		if i > 0 {
			assert.GreaterOrEqual(t, out.Items[i-1].Price, out.Items[i].Price)
		}
	}
}

func TestProductUsecase_ListProducts_ValidationErrors(t *testing.T) {
	u := NewProductUsecase(catalog.NewStore())
	ctx := context.Background()

	tests := []struct {
		name string
		in   ListProductsInput
	}{
		{name: "負のmin_price", in: ListProductsInput{MinPrice: float64p(-1)}},
		{name: "負のmax_price", in: ListProductsInput{MaxPrice: float64p(-1)}},
		{name: "min>max", in: ListProductsInput{MinPrice: float64p(100), MaxPrice: float64p(10)}},
		{name: "不正なsort", in: ListProductsInput{Sort: "color"}},
		{name: "不正なorder", in: ListProductsInput{Sort: "price", Order: "sideways"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := u.ListProducts(ctx, tt.in)
			he, ok := AsHTTPError(err)
			require.True(t, ok)
			assert.Equal(t, http.StatusBadRequest, he.Status)
		})
	}
}

func TestProductUsecase_GetProductDetail(t *testing.T) {
	u := NewProductUsecase(catalog.NewStore())
	ctx := context.Background()

	p, err := u.GetProductDetail(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "1", p.ID)

	_, err = u.GetProductDetail(ctx, "no-such")
	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)

	_, err = u.GetProductDetail(ctx, "")
	he, ok = AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

func TestProductUsecase_ListCategories(t *testing.T) {
	u := NewProductUsecase(catalog.NewStore())

	got := u.ListCategories(context.Background())

	assert.NotEmpty(t, got)
	assert.Contains(t, got, "Electronics")
}

func TestProductUsecase_AdminCreateProduct(t *testing.T) {
	u := NewProductUsecase(catalog.NewStore())
	ctx := context.Background()

	p, err := u.AdminCreateProduct(ctx, AdminProductInput{
		Name:     "USB Hub",
		Price:    29.99,
		Category: "Electronics",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)

	got, err := u.GetProductDetail(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "USB Hub", got.Name)
}

func TestProductUsecase_AdminCreateProduct_Invalid(t *testing.T) {
	u := NewProductUsecase(catalog.NewStore())

	// 割引があるのに元値が売値を下回る
	_, err := u.AdminCreateProduct(context.Background(), AdminProductInput{
		Name:          "Broken Deal",
		Price:         100,
		Category:      "Electronics",
		Discount:      float64p(10),
		OriginalPrice: float64p(50),
	})

	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

func TestProductUsecase_AdminUpdateProduct_NotFound(t *testing.T) {
	u := NewProductUsecase(catalog.NewStore())

	_, err := u.AdminUpdateProduct(context.Background(), "no-such", AdminProductInput{
		Name:     "Ghost",
		Price:    1,
		Category: "Electronics",
	})

	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}

func TestProductUsecase_AdminDeleteProduct(t *testing.T) {
	u := NewProductUsecase(catalog.NewStore())
	ctx := context.Background()

	require.NoError(t, u.AdminDeleteProduct(ctx, "1"))

	_, err := u.GetProductDetail(ctx, "1")
	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)

	err = u.AdminDeleteProduct(ctx, "1")
	he, ok = AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}

func TestProductUsecase_Refresh_RestoresCatalog(t *testing.T) {
	u := NewProductUsecase(catalog.NewStore())
	ctx := context.Background()

	require.NoError(t, u.AdminDeleteProduct(ctx, "1"))

	items, err := u.Refresh(ctx)

	require.NoError(t, err)
	assert.Len(t, items, len(catalog.Seed()))
}
