// Package events は確定した変更をNATSへ中継する任意機能。
// アプリ本体はブリッジ無しでも完結する。
package events

import (
	"encoding/json"
	"time"

	"shopapp/internal/cart"
	"shopapp/internal/catalog"
	"shopapp/internal/domain/model"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const (
	SubjectCartUpdated    = "shop.cart.updated"
	SubjectCatalogUpdated = "shop.catalog.updated"
)

type CartEvent struct {
	Items     []model.CartItem `json:"items"`
	ItemCount int64            `json:"itemCount"`
	Total     float64          `json:"total"`
}

type CatalogEvent struct {
	Total      int      `json:"total"`
	Categories []string `json:"categories"`
}

type Bridge struct {
	nc      *nats.Conn
	logger  *zap.Logger
	cancels []func()
}

func Connect(url string, logger *zap.Logger) (*Bridge, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	nc, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(10),
		nats.ReconnectWait(time.Second),
	)
	if err != nil {
		return nil, err
	}

	return &Bridge{nc: nc, logger: logger}, nil
}

// BindCart はカートの確定変更をshop.cart.updatedへ流す。
func (b *Bridge) BindCart(l *cart.Ledger) {
	cancel := l.Subscribe(func(items []model.CartItem) {
		ev := CartEvent{Items: items}
		for _, it := range items {
			ev.ItemCount += it.Quantity
			ev.Total += it.Subtotal()
		}
		b.publish(SubjectCartUpdated, ev)
	})
	b.cancels = append(b.cancels, cancel)
}

// BindCatalog は商品集合の変更をshop.catalog.updatedへ流す。
func (b *Bridge) BindCatalog(s *catalog.Store) {
	cancel := s.Subscribe(func(products []model.Product) {
		ev := CatalogEvent{Total: len(products)}
		seen := make(map[string]bool)
		for _, p := range products {
			if !seen[p.Category] {
				seen[p.Category] = true
				ev.Categories = append(ev.Categories, p.Category)
			}
		}
		b.publish(SubjectCatalogUpdated, ev)
	})
	b.cancels = append(b.cancels, cancel)
}

func (b *Bridge) publish(subject string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		b.logger.Error("event marshal failed", zap.String("subject", subject), zap.Error(err))
		return
	}
	if err := b.nc.Publish(subject, raw); err != nil {
		b.logger.Warn("event publish failed", zap.String("subject", subject), zap.Error(err))
	}
}

func (b *Bridge) Close() {
	for _, cancel := range b.cancels {
		cancel()
	}
	if err := b.nc.Drain(); err != nil {
		b.logger.Warn("nats drain failed", zap.Error(err))
	}
}
