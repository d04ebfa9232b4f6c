// Package pubsub は最新値を保持するオブザーバレジストリを提供する。
package pubsub

import "sync"

// Subject は購読時に現在値を即時に再生し、以降はPublishごとに
// 登録順・同期で通知する。通知はロックの外で行うため、
// 購読者のコールバック内からSubscribe/Publishを呼んでもデッドロックしない。
type Subject[T any] struct {
	mu    sync.Mutex
	value T
	set   bool
	subs  []*subscriber[T]
}

type subscriber[T any] struct {
	fn func(T)
}

func NewSubject[T any]() *Subject[T] {
	return &Subject[T]{}
}

// 初期値付き
func NewSubjectWith[T any](initial T) *Subject[T] {
	return &Subject[T]{value: initial, set: true}
}

// Subscribe は購読を登録し、解除用の関数を返す。
// 現在値が存在すればその場でfnに渡す。
func (s *Subject[T]) Subscribe(fn func(T)) func() {
	sub := &subscriber[T]{fn: fn}

	s.mu.Lock()
	s.subs = append(s.subs, sub)
	replay := s.set
	v := s.value
	s.mu.Unlock()

	if replay {
		fn(v)
	}

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, x := range s.subs {
			if x == sub {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish は値を確定し、登録順に同期通知する。
func (s *Subject[T]) Publish(v T) {
	s.mu.Lock()
	s.value = v
	s.set = true
	subs := make([]*subscriber[T], len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(v)
	}
}

// Value は現在値を返す（第2戻り値は一度でもPublishされたか）。
func (s *Subject[T]) Value() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, s.set
}
