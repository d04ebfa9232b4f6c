package catalog

import (
	"sort"
	"strings"

	"shopapp/internal/domain/model"
)

type SortKey string

const (
	SortByName   SortKey = "name"
	SortByPrice  SortKey = "price"
	SortByRating SortKey = "rating"
)

type SortDir string

const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

// 一覧の絞り込み条件。ゼロ値は「絞り込みなし」。
type Filter struct {
	Category   string   // 完全一致（空=無条件）
	Search     string   // name/description/categoryの部分一致（大文字小文字無視）
	MinPrice   *float64 // 両端含む
	MaxPrice   *float64
	InStock    bool // stockがnilの商品は在庫ありとして通す
	Featured   bool
	Discounted bool
	SortBy     SortKey // 空=並べ替えなし
	SortDir    SortDir // 空=asc
}

// Apply は条件をAND適用し、必要なら安定ソートして返す。
// 入力スライスは変更しない。結果は常に新しいスライス。
func Apply(products []model.Product, f Filter) []model.Product {
	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if matches(p, f) {
			out = append(out, p)
		}
	}

	if f.SortBy != "" {
		desc := f.SortDir == SortDesc
		sort.SliceStable(out, func(i, j int) bool {
			c := compare(out[i], out[j], f.SortBy)
			if desc {
				return c > 0
			}
			return c < 0
		})
	}

	return out
}

func matches(p model.Product, f Filter) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}

	// 空・空白のみの検索語は無条件
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		if !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) &&
			!strings.Contains(strings.ToLower(p.Category), q) {
			return false
		}
	}

	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}

	// stockがnilの商品は在庫ありとみなす
	if f.InStock && p.Stock != nil && *p.Stock <= 0 {
		return false
	}

	if f.Featured && !p.Featured {
		return false
	}

	// discountなし・0以下は割引対象外
	if f.Discounted && !p.HasDiscount() {
		return false
	}

	return true
}

func compare(a, b model.Product, key SortKey) int {
	switch key {
	case SortByName:
		return strings.Compare(a.Name, b.Name)
	case SortByPrice:
		return compareFloat(a.Price, b.Price)
	case SortByRating:
		return compareFloat(a.RatingOrZero(), b.RatingOrZero())
	default:
		return 0
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
