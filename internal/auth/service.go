// Package auth はローカルスタブの認証を担当する。
// 本物の認可サーバは無く、currentUserスナップショットと
// ローカル発行トークンだけでログイン状態を表す。
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"shopapp/internal/domain/model"
	"shopapp/internal/kvstore"
	"shopapp/internal/pubsub"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// 永続化キー
	UserKey  = "currentUser"
	TokenKey = "auth_token"

	credentialPrefix = "credentials:"
	minPasswordLen   = 6
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
)

// Service はログイン状態を持つ。
// 登録済みメールはbcryptハッシュ照合、未登録はパスワード長だけの
// スタブ判定（6文字以上で通す）。
type Service struct {
	mu       sync.Mutex
	current  *model.User
	store    kvstore.Store
	hasher   PasswordHasher
	verifier PasswordVerifier
	issuer   *TokenIssuer
	logger   *zap.Logger
	subject  *pubsub.Subject[*model.User]
}

// NewService は保存済みのcurrentUserを復元して開始する。
func NewService(ctx context.Context, store kvstore.Store, issuer *TokenIssuer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Service{
		store:    store,
		hasher:   NewBcryptPasswordHasher(12),
		verifier: NewBcryptPasswordVerifier(),
		issuer:   issuer,
		logger:   logger,
		subject:  pubsub.NewSubject[*model.User](),
	}

	s.hydrate(ctx)
	s.subject.Publish(s.current)
	return s
}

func (s *Service) hydrate(ctx context.Context) {
	raw, err := s.store.Get(ctx, UserKey)
	if errors.Is(err, kvstore.ErrNotFound) {
		return
	}
	if err != nil {
		s.logger.Warn("currentUser read failed", zap.Error(err))
		return
	}

	var u model.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		s.logger.Warn("currentUser corrupt, starting logged out", zap.Error(err))
		return
	}
	s.current = &u
}

// Login はスタブ認証。登録済みならハッシュ照合、未登録なら長さだけ見る。
func (s *Service) Login(ctx context.Context, email, password string) (model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return model.User{}, ErrInvalidInput
	}

	hashed, err := s.store.Get(ctx, credentialPrefix+email)
	switch {
	case err == nil:
		if !s.verifier.Verify(hashed, password) {
			return model.User{}, ErrInvalidCredentials
		}
	case errors.Is(err, kvstore.ErrNotFound):
		if len(password) < minPasswordLen {
			return model.User{}, ErrInvalidCredentials
		}
	default:
		s.logger.Warn("credential read failed", zap.Error(err))
		if len(password) < minPasswordLen {
			return model.User{}, ErrInvalidCredentials
		}
	}

	name := email
	if at := strings.Index(email, "@"); at > 0 {
		name = email[:at]
	}

	u := model.User{
		ID:     uuid.NewString(),
		Email:  email,
		Name:   name,
		Avatar: avatarURL(email),
	}

	s.establishSession(ctx, u)
	return u, nil
}

// Register は全項目必須。資格情報をbcryptで保存し、そのままログインする。
func (s *Service) Register(ctx context.Context, email, password, name string) (model.User, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)
	if email == "" || name == "" || len(password) < minPasswordLen {
		return model.User{}, ErrInvalidInput
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return model.User{}, err
	}
	if err := s.store.Set(ctx, credentialPrefix+email, hashed); err != nil {
		s.logger.Warn("credential write failed", zap.Error(err))
	}

	u := model.User{
		ID:     uuid.NewString(),
		Email:  email,
		Name:   name,
		Avatar: avatarURL(name),
	}

	s.establishSession(ctx, u)
	return u, nil
}

// Logout はcurrentUserとトークンを消す。
func (s *Service) Logout(ctx context.Context) {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	if err := s.store.Remove(ctx, UserKey); err != nil {
		s.logger.Warn("currentUser remove failed", zap.Error(err))
	}
	if err := s.store.Remove(ctx, TokenKey); err != nil {
		s.logger.Warn("auth token remove failed", zap.Error(err))
	}
	s.subject.Publish(nil)
}

// ログイン中のユーザー（未ログインはnil）
func (s *Service) CurrentUser() *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	u := *s.current
	return &u
}

func (s *Service) IsAuthenticated() bool {
	return s.CurrentUser() != nil
}

// Subscribe は現在のユーザーを即時再生し、以降のログイン/ログアウトを通知する。
func (s *Service) Subscribe(fn func(*model.User)) func() {
	return s.subject.Subscribe(fn)
}

// メモリ状態を先に確定し、保存はベストエフォート。
func (s *Service) establishSession(ctx context.Context, u model.User) {
	s.mu.Lock()
	s.current = &u
	s.mu.Unlock()

	if raw, err := json.Marshal(u); err == nil {
		if err := s.store.Set(ctx, UserKey, string(raw)); err != nil {
			s.logger.Warn("currentUser write failed", zap.Error(err))
		}
	}

	if s.issuer != nil {
		token, _, err := s.issuer.Issue(u.ID, time.Now())
		if err != nil {
			s.logger.Warn("token issue failed", zap.Error(err))
		} else if err := s.store.Set(ctx, TokenKey, token); err != nil {
			s.logger.Warn("auth token write failed", zap.Error(err))
		}
	}

	s.subject.Publish(&u)
}

func avatarURL(name string) string {
	return fmt.Sprintf("https://ui-avatars.com/api/?name=%s&background=random", url.QueryEscape(name))
}
