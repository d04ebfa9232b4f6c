// Package catalog は商品カタログの保持と絞り込みを担当する。
package catalog

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"shopapp/internal/domain/model"
	"shopapp/internal/pubsub"

	"github.com/google/uuid"
)

var (
	ErrNotFound       = errors.New("product not found")
	ErrInvalidProduct = errors.New("invalid product")
	ErrDuplicateID    = errors.New("duplicate product id")
)

// Store は全商品とカテゴリ射影を持つ。
// 商品集合が変わるたびにカテゴリを再計算し、購読者へ同期通知する。
type Store struct {
	mu         sync.RWMutex
	products   []model.Product
	categories []string
	subject    *pubsub.Subject[[]model.Product]
}

// 初期カタログ入りで生成
func NewStore() *Store {
	return NewStoreWith(Seed())
}

func NewStoreWith(products []model.Product) *Store {
	s := &Store{
		products: append([]model.Product(nil), products...),
		subject:  pubsub.NewSubject[[]model.Product](),
	}
	s.categories = projectCategories(s.products)
	s.subject.Publish(s.snapshot())
	return s
}

// 全商品（コピー）
func (s *Store) ListAll() []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

func (s *Store) ByID(id string) (model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Product{}, ErrNotFound
}

// 重複を除いたカテゴリ一覧（初出順）
func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.categories...)
}

// Subscribe は現在の商品一覧を即時再生し、以降の変更を通知する。
func (s *Store) Subscribe(fn func([]model.Product)) func() {
	return s.subject.Subscribe(fn)
}

// 管理用：商品追加。IDが空ならUUIDを割り当てる。
func (s *Store) Add(p model.Product) (model.Product, error) {
	if err := validate(p); err != nil {
		return model.Product{}, err
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	s.mu.Lock()
	for _, x := range s.products {
		if x.ID == p.ID {
			s.mu.Unlock()
			return model.Product{}, ErrDuplicateID
		}
	}
	s.products = append(s.products, p)
	s.categories = projectCategories(s.products)
	snap := s.snapshot()
	s.mu.Unlock()

	s.subject.Publish(snap)
	return p, nil
}

// 管理用：商品をIDで差し替える（位置は保持）。
func (s *Store) Update(p model.Product) (model.Product, error) {
	if p.ID == "" {
		return model.Product{}, ErrNotFound
	}
	if err := validate(p); err != nil {
		return model.Product{}, err
	}

	s.mu.Lock()
	idx := -1
	for i, x := range s.products {
		if x.ID == p.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return model.Product{}, ErrNotFound
	}
	s.products[idx] = p
	s.categories = projectCategories(s.products)
	snap := s.snapshot()
	s.mu.Unlock()

	s.subject.Publish(snap)
	return p, nil
}

// 管理用：商品削除。
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	idx := -1
	for i, x := range s.products {
		if x.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return ErrNotFound
	}
	s.products = append(s.products[:idx], s.products[idx+1:]...)
	s.categories = projectCategories(s.products)
	snap := s.snapshot()
	s.mu.Unlock()

	s.subject.Publish(snap)
	return nil
}

// Refresh は初期カタログを再投入する（リモート取得のスタンドイン）。
// 通常条件では失敗しない。
func (s *Store) Refresh(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.products = Seed()
	s.categories = projectCategories(s.products)
	snap := s.snapshot()
	s.mu.Unlock()

	s.subject.Publish(snap)
	return nil
}

// 在庫確認。stockがnilの商品は無制限。
func (s *Store) Available(id string, qty int64) bool {
	p, err := s.ByID(id)
	if err != nil {
		return false
	}
	if p.Stock == nil {
		return true
	}
	return *p.Stock >= qty
}

func (s *Store) Featured() []model.Product {
	return Apply(s.ListAll(), Filter{Featured: true})
}

func (s *Store) Discounted() []model.Product {
	return Apply(s.ListAll(), Filter{Discounted: true})
}

// 評価の高い順にlimit件
func (s *Store) TopRated(limit int) []model.Product {
	all := s.ListAll()
	rated := make([]model.Product, 0, len(all))
	for _, p := range all {
		if p.Rating != nil {
			rated = append(rated, p)
		}
	}
	sorted := Apply(rated, Filter{SortBy: SortByRating, SortDir: SortDesc})
	if limit > 0 && limit < len(sorted) {
		sorted = sorted[:limit]
	}
	return sorted
}

func (s *Store) ByPriceRange(min, max float64) []model.Product {
	return Apply(s.ListAll(), Filter{MinPrice: &min, MaxPrice: &max})
}

type Stats struct {
	Total         int     `json:"total"`
	Categories    int     `json:"categories"`
	InStock       int     `json:"inStock"`
	OutOfStock    int     `json:"outOfStock"`
	Featured      int     `json:"featured"`
	AveragePrice  float64 `json:"averagePrice"`
	AverageRating float64 `json:"averageRating"`
}

// カタログの集計（平均は小数2桁に丸め）
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Stats{
		Total:      len(s.products),
		Categories: len(s.categories),
	}

	var priceSum float64
	var ratingSum float64
	var rated int

	for _, p := range s.products {
		if p.Stock != nil && *p.Stock > 0 {
			st.InStock++
		}
		if p.Stock != nil && *p.Stock == 0 {
			st.OutOfStock++
		}
		if p.Featured {
			st.Featured++
		}
		priceSum += p.Price
		if p.Rating != nil {
			ratingSum += *p.Rating
			rated++
		}
	}

	if st.Total > 0 {
		st.AveragePrice = round2(priceSum / float64(st.Total))
	}
	if rated > 0 {
		st.AverageRating = round2(ratingSum / float64(rated))
	}
	return st
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (s *Store) snapshot() []model.Product {
	return append([]model.Product(nil), s.products...)
}

func projectCategories(products []model.Product) []string {
	seen := make(map[string]bool, len(products))
	out := make([]string, 0, len(products))
	for _, p := range products {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out
}

// 投入時の検証。割引が付く商品はoriginalPrice >= priceを必須とする。
func validate(p model.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name required", ErrInvalidProduct)
	}
	if p.Price < 0 {
		return fmt.Errorf("%w: price must be >= 0", ErrInvalidProduct)
	}
	if p.Stock != nil && *p.Stock < 0 {
		return fmt.Errorf("%w: stock must be >= 0", ErrInvalidProduct)
	}
	if p.Rating != nil && (*p.Rating < 0 || *p.Rating > 5) {
		return fmt.Errorf("%w: rating must be in [0,5]", ErrInvalidProduct)
	}
	if p.Discount != nil && (*p.Discount < 0 || *p.Discount > 100) {
		return fmt.Errorf("%w: discount must be in [0,100]", ErrInvalidProduct)
	}
	if p.HasDiscount() {
		if p.OriginalPrice == nil || *p.OriginalPrice < p.Price {
			return fmt.Errorf("%w: originalPrice must be >= price when discounted", ErrInvalidProduct)
		}
	}
	return nil
}
