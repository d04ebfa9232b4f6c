package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"shopapp/internal/apiclient"
	"shopapp/internal/cart"
	"shopapp/internal/catalog"
	"shopapp/internal/domain/model"
	"shopapp/internal/orders"

	"github.com/google/uuid"
)

// CartUsecase は /cart の業務ロジック。
// ordersがnilのときcheckoutはローカル完結（注文APIが未設定の構成）。
type CartUsecase struct {
	ledger  *cart.Ledger
	catalog *catalog.Store
	orders  *orders.Client
}

// DI
func NewCartUsecase(ledger *cart.Ledger, c *catalog.Store, oc *orders.Client) *CartUsecase {
	return &CartUsecase{
		ledger:  ledger,
		catalog: c,
		orders:  oc,
	}
}

type CartResponse struct {
	Items     []model.CartItem `json:"items"`
	Total     float64          `json:"total"`
	ItemCount int64            `json:"itemCount"`
}

type AddCartInput struct {
	ProductID string
	Quantity  int64
}

type CheckoutInput struct {
	UserID          string
	ShippingAddress model.Address
	PaymentMethod   model.PaymentMethod
	Notes           string
}

func (u *CartUsecase) GetCart(ctx context.Context) CartResponse {
	return u.buildCartResponse()
}

// カートに追加（同一商品は数量加算）。
func (u *CartUsecase) AddToCart(ctx context.Context, in AddCartInput) (CartResponse, error) {
	if in.ProductID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.Quantity < 1 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	p, err := u.catalog.ByID(in.ProductID)
	if errors.Is(err, catalog.ErrNotFound) {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	if err := u.ledger.Add(p, in.Quantity); err != nil {
		switch {
		case errors.Is(err, cart.ErrInvalidQuantity):
			return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
		case errors.Is(err, cart.ErrStockExceeded):
			return CartResponse{}, NewHTTPError(http.StatusBadRequest, "stock exceeded")
		default:
			return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	return u.buildCartResponse(), nil
}

// 数量変更。0以下は削除と同じ扱い。無いIDは何もしない。
func (u *CartUsecase) UpdateItem(ctx context.Context, productID string, qty int64) (CartResponse, error) {
	if productID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	u.ledger.SetQuantity(productID, qty)
	return u.buildCartResponse(), nil
}

// 明細削除。無いIDは黙ってそのまま。
func (u *CartUsecase) DeleteItem(ctx context.Context, productID string) (CartResponse, error) {
	if productID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	u.ledger.Remove(productID)
	return u.buildCartResponse(), nil
}

func (u *CartUsecase) ClearCart(ctx context.Context) CartResponse {
	u.ledger.Clear()
	return u.buildCartResponse()
}

// Checkout は台帳から注文を作り、成功したらカートを空にする。
func (u *CartUsecase) Checkout(ctx context.Context, in CheckoutInput) (model.Order, error) {
	items := u.ledger.Items()
	if len(items) == 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "cart is empty")
	}

	if u.orders != nil {
		req := orders.CreateRequest{
			ShippingAddress: in.ShippingAddress,
			PaymentMethod:   in.PaymentMethod,
			Notes:           in.Notes,
		}
		for _, it := range items {
			req.Items = append(req.Items, orders.CreateItem{
				ProductID: it.Product.ID,
				Quantity:  it.Quantity,
				Price:     it.Product.Price,
			})
		}

		ord, err := u.orders.Create(ctx, req)
		if err != nil {
			if ae, ok := apiclient.AsAPIError(err); ok {
				return model.Order{}, NewHTTPError(http.StatusBadGateway, ae.Message)
			}
			return model.Order{}, NewHTTPError(http.StatusBadGateway, "order submission failed")
		}

		u.ledger.Clear()
		return ord, nil
	}

	// 注文API未設定：ローカルに注文を組み立てて返す
	ord := model.Order{
		ID:              uuid.NewString(),
		UserID:          in.UserID,
		Total:           u.ledger.Total(),
		Status:          model.OrderStatusPending,
		ShippingAddress: in.ShippingAddress,
		PaymentMethod:   in.PaymentMethod,
		OrderDate:       time.Now().Format(time.RFC3339),
		Notes:           in.Notes,
	}
	for _, it := range items {
		p := it.Product
		ord.Items = append(ord.Items, model.OrderItem{
			ID:        uuid.NewString(),
			ProductID: p.ID,
			Product:   &p,
			Quantity:  it.Quantity,
			Price:     p.Price,
			Subtotal:  it.Subtotal(),
		})
	}

	u.ledger.Clear()
	return ord, nil
}

func (u *CartUsecase) buildCartResponse() CartResponse {
	return CartResponse{
		Items:     u.ledger.Items(),
		Total:     u.ledger.Total(),
		ItemCount: u.ledger.ItemCount(),
	}
}
