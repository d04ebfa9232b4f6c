// Package kvstore はローカル設定・スナップショットを保存する
// 文字列キー/文字列値ストアの境界を定義する。
package kvstore

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// 永続化アダプタの約束。
// Getはキーが無いときErrNotFoundを返す。Removeは無いキーでも成功する。
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Remove(ctx context.Context, key string) error
}
