package model

// カートの明細。
// 追加時点の商品スナップショットを丸ごと保存する（後からカタログの価格が
// 変わっても合計が変わらないようにするため）。
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int64   `json:"quantity"`
}

// 明細の小計
func (i CartItem) Subtotal() float64 {
	return i.Product.Price * float64(i.Quantity)
}
