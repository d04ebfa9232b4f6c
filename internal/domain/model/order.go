package model

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

type PaymentType string

const (
	PaymentCreditCard PaymentType = "credit_card"
	PaymentDebitCard  PaymentType = "debit_card"
	PaymentPayPal     PaymentType = "paypal"
	PaymentApplePay   PaymentType = "apple_pay"
	PaymentGooglePay  PaymentType = "google_pay"
)

type Address struct {
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
	Country   string `json:"country"`
	IsDefault bool   `json:"isDefault,omitempty"`
}

// CardNumberは下4桁のみ
type PaymentMethod struct {
	Type           PaymentType `json:"type"`
	CardNumber     string      `json:"cardNumber,omitempty"`
	ExpiryMonth    int         `json:"expiryMonth,omitempty"`
	ExpiryYear     int         `json:"expiryYear,omitempty"`
	CardHolderName string      `json:"cardHolderName,omitempty"`
}

type OrderItem struct {
	ID        string   `json:"id"`
	ProductID string   `json:"productId"`
	Product   *Product `json:"product,omitempty"`
	Quantity  int64    `json:"quantity"`
	Price     float64  `json:"price"`
	Subtotal  float64  `json:"subtotal"`
}

// 注文。注文管理はリモートAPI側の責務で、こちらはDTOのみ持つ。
type Order struct {
	ID                string        `json:"id"`
	UserID            string        `json:"userId"`
	Items             []OrderItem   `json:"items"`
	Total             float64       `json:"total"`
	Status            OrderStatus   `json:"status"`
	ShippingAddress   Address       `json:"shippingAddress"`
	PaymentMethod     PaymentMethod `json:"paymentMethod"`
	OrderDate         string        `json:"orderDate"`
	EstimatedDelivery string        `json:"estimatedDelivery,omitempty"`
	DeliveredDate     string        `json:"deliveredDate,omitempty"`
	TrackingNumber    string        `json:"trackingNumber,omitempty"`
	Notes             string        `json:"notes,omitempty"`
}
