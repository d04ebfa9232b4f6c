package model

// 商品。stock等はデータに無い場合があるためポインタで表す。
// stockがnilの商品は在庫無制限として扱う。
type Product struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	Image         string   `json:"image"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	Stock         *int64   `json:"stock,omitempty"`
	Rating        *float64 `json:"rating,omitempty"`
	Featured      bool     `json:"featured,omitempty"`
	Discount      *float64 `json:"discount,omitempty"`
	OriginalPrice *float64 `json:"originalPrice,omitempty"`
}

// 在庫ありか（nil=無制限は常にtrue）
func (p Product) InStock() bool {
	return p.Stock == nil || *p.Stock > 0
}

// 有効な割引が付いているか
func (p Product) HasDiscount() bool {
	return p.Discount != nil && *p.Discount > 0
}

// 未評価は0として扱う
func (p Product) RatingOrZero() float64 {
	if p.Rating == nil {
		return 0
	}
	return *p.Rating
}
