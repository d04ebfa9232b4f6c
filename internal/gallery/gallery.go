// Package gallery はカメラで撮った写真の一覧を持つ。
// カメラ本体は境界の向こう側（ImageSource）にある。
package gallery

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"shopapp/internal/domain/model"
	"shopapp/internal/kvstore"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const StorageKey = "photo_gallery"

var ErrNoSource = errors.New("image source not configured")

// カメラ（または端末ギャラリー）への約束。
// 撮影済み画像の参照パスを返す。
type ImageSource interface {
	Capture(ctx context.Context) (string, error)
}

// 関数をそのままImageSourceにするアダプタ
type SourceFunc func(ctx context.Context) (string, error)

func (f SourceFunc) Capture(ctx context.Context) (string, error) { return f(ctx) }

// Gallery は新しい写真を先頭に積む。保存はベストエフォート。
type Gallery struct {
	mu     sync.Mutex
	photos []model.Photo
	source ImageSource
	store  kvstore.Store
	logger *zap.Logger
}

func New(ctx context.Context, source ImageSource, store kvstore.Store, logger *zap.Logger) *Gallery {
	if logger == nil {
		logger = zap.NewNop()
	}

	g := &Gallery{
		source: source,
		store:  store,
		logger: logger,
	}
	g.hydrate(ctx)
	return g
}

func (g *Gallery) hydrate(ctx context.Context) {
	raw, err := g.store.Get(ctx, StorageKey)
	if errors.Is(err, kvstore.ErrNotFound) {
		return
	}
	if err != nil {
		g.logger.Warn("gallery read failed", zap.Error(err))
		return
	}

	var photos []model.Photo
	if err := json.Unmarshal([]byte(raw), &photos); err != nil {
		g.logger.Warn("gallery snapshot corrupt, starting empty", zap.Error(err))
		return
	}
	g.photos = photos
}

// AddFromCamera は1枚撮って先頭に追加する。
func (g *Gallery) AddFromCamera(ctx context.Context) (model.Photo, error) {
	if g.source == nil {
		return model.Photo{}, ErrNoSource
	}

	webPath, err := g.source.Capture(ctx)
	if err != nil {
		return model.Photo{}, err
	}

	photo := model.Photo{
		Filepath:    uuid.NewString() + ".jpeg",
		WebviewPath: webPath,
	}

	g.mu.Lock()
	g.photos = append([]model.Photo{photo}, g.photos...)
	snap := append([]model.Photo(nil), g.photos...)
	g.mu.Unlock()

	if raw, err := json.Marshal(snap); err == nil {
		if err := g.store.Set(ctx, StorageKey, string(raw)); err != nil {
			g.logger.Warn("gallery write failed", zap.Error(err))
		}
	}

	return photo, nil
}

// 新しい順の写真一覧（コピー）
func (g *Gallery) Photos() []model.Photo {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]model.Photo(nil), g.photos...)
}
