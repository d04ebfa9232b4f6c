// Package cart はカート台帳を担当する。
// メモリ上の状態が正で、永続化はベストエフォート（失敗してもロールバックしない）。
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"shopapp/internal/domain/model"
	"shopapp/internal/kvstore"
	"shopapp/internal/pubsub"

	"go.uber.org/zap"
)

// 永続化キー
const StorageKey = "shopping_cart"

var (
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrStockExceeded   = errors.New("stock exceeded")
)

// 在庫ポリシー。EnforceStock=trueのとき、追加後の数量が
// 商品のstockを超える追加を拒否する（stockがnilの商品は常に無制限）。
type Config struct {
	EnforceStock bool
}

// Ledger は商品ID→数量の台帳。挿入順＝初回追加順。
// 変更はmutex下で同期的に確定し、購読者へ登録順に通知した後、
// 専用の書き込みgoroutineへスナップショットを積む。書き込みは直列で、
// 最後の書き込みが常に発行時点の最新状態を反映する。
type Ledger struct {
	mu    sync.Mutex
	items []model.CartItem

	cfg     Config
	store   kvstore.Store
	logger  *zap.Logger
	subject *pubsub.Subject[[]model.CartItem]

	writes    chan writeOp
	writerEnd chan struct{}
	closeOnce sync.Once
}

type writeOp struct {
	snapshot string
	remove   bool
	ack      chan struct{} // Flush用
}

// NewLedger は保存済みスナップショットから台帳を復元する。
// キーが無ければ空で開始。読めないスナップショットはログだけ残して空で開始。
func NewLedger(ctx context.Context, store kvstore.Store, cfg Config, logger *zap.Logger) *Ledger {
	if logger == nil {
		logger = zap.NewNop()
	}

	l := &Ledger{
		cfg:       cfg,
		store:     store,
		logger:    logger,
		subject:   pubsub.NewSubject[[]model.CartItem](),
		writes:    make(chan writeOp, 64),
		writerEnd: make(chan struct{}),
	}

	l.hydrate(ctx)
	l.subject.Publish(l.snapshotLocked())

	go l.runWriter()
	return l
}

func (l *Ledger) hydrate(ctx context.Context) {
	raw, err := l.store.Get(ctx, StorageKey)
	if errors.Is(err, kvstore.ErrNotFound) {
		return
	}
	if err != nil {
		l.logger.Warn("cart snapshot read failed", zap.Error(err))
		return
	}

	var items []model.CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		l.logger.Warn("cart snapshot corrupt, starting empty", zap.Error(err))
		return
	}
	l.items = items
}

// Add は商品を追加する。qty<=0は状態を変えずにErrInvalidQuantity。
// 同じ商品IDの明細があれば数量加算、無ければ末尾に追記。
func (l *Ledger) Add(p model.Product, qty int64) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}

	l.mu.Lock()
	idx := l.indexOfLocked(p.ID)

	newQty := qty
	if idx >= 0 {
		newQty += l.items[idx].Quantity
	}
	if l.cfg.EnforceStock && p.Stock != nil && newQty > *p.Stock {
		l.mu.Unlock()
		return ErrStockExceeded
	}

	if idx >= 0 {
		l.items[idx].Quantity = newQty
	} else {
		l.items = append(l.items, model.CartItem{Product: p, Quantity: qty})
	}
	snap := l.snapshotLocked()
	l.mu.Unlock()

	l.commit(snap)
	return nil
}

// Remove は明細を消す。無いIDは黙って何もしない。
func (l *Ledger) Remove(productID string) {
	l.mu.Lock()
	idx := l.indexOfLocked(productID)
	if idx < 0 {
		l.mu.Unlock()
		return
	}
	l.items = append(l.items[:idx], l.items[idx+1:]...)
	snap := l.snapshotLocked()
	l.mu.Unlock()

	l.commit(snap)
}

// SetQuantity は数量を差し替える。qty<=0はRemoveと同じ。
// 位置は変えない。無いIDは何もしない。
func (l *Ledger) SetQuantity(productID string, qty int64) {
	if qty <= 0 {
		l.Remove(productID)
		return
	}

	l.mu.Lock()
	idx := l.indexOfLocked(productID)
	if idx < 0 {
		l.mu.Unlock()
		return
	}
	l.items[idx].Quantity = qty
	snap := l.snapshotLocked()
	l.mu.Unlock()

	l.commit(snap)
}

// Clear は台帳を空にし、保存済みスナップショットも消す。
func (l *Ledger) Clear() {
	l.mu.Lock()
	l.items = nil
	snap := l.snapshotLocked()
	l.mu.Unlock()

	l.subject.Publish(snap)
	l.enqueue(writeOp{remove: true})
}

// 合計金額（スナップショット価格×数量の総和）
func (l *Ledger) Total() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	var total float64
	for _, it := range l.items {
		total += it.Subtotal()
	}
	return total
}

// 数量の総和（明細数とは別物）
func (l *Ledger) ItemCount() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	var count int64
	for _, it := range l.items {
		count += it.Quantity
	}
	return count
}

// 明細のコピー
func (l *Ledger) Items() []model.CartItem {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotLocked()
}

// Subscribe は現在の明細を即時再生し、以降の確定変更を通知する。
func (l *Ledger) Subscribe(fn func([]model.CartItem)) func() {
	return l.subject.Subscribe(fn)
}

// Flush は積まれた書き込みが全部はけるまで待つ（テスト・シャットダウン用）。
func (l *Ledger) Flush() {
	ack := make(chan struct{})
	l.enqueue(writeOp{ack: ack})
	<-ack
}

// Close は書き込みgoroutineを止める。以降の変更操作は不可。
func (l *Ledger) Close() {
	l.closeOnce.Do(func() {
		close(l.writes)
	})
	<-l.writerEnd
}

// 確定した変更を通知してから書き込みを発行する。
// 通知が先：購読者はメモリ上の状態に即時・一貫して反応する。
func (l *Ledger) commit(snap []model.CartItem) {
	l.subject.Publish(snap)

	raw, err := json.Marshal(snap)
	if err != nil {
		l.logger.Error("cart snapshot marshal failed", zap.Error(err))
		return
	}
	l.enqueue(writeOp{snapshot: string(raw)})
}

func (l *Ledger) enqueue(op writeOp) {
	l.writes <- op
}

// 唯一の書き込みループ。失敗はログのみ（メモリ状態は巻き戻さない）。
func (l *Ledger) runWriter() {
	defer close(l.writerEnd)
	for op := range l.writes {
		switch {
		case op.remove:
			if err := l.store.Remove(context.Background(), StorageKey); err != nil {
				l.logger.Warn("cart snapshot remove failed", zap.Error(err))
			}
		case op.snapshot != "":
			if err := l.store.Set(context.Background(), StorageKey, op.snapshot); err != nil {
				l.logger.Warn("cart snapshot write failed", zap.Error(err))
			}
		}
		if op.ack != nil {
			close(op.ack)
		}
	}
}

func (l *Ledger) indexOfLocked(productID string) int {
	for i, it := range l.items {
		if it.Product.ID == productID {
			return i
		}
	}
	return -1
}

func (l *Ledger) snapshotLocked() []model.CartItem {
	return append([]model.CartItem(nil), l.items...)
}
