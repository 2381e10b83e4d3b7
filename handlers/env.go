package handlers

import (
	"context"
	"time"

	"submitserver/auth"
	"submitserver/middlewares"
	"submitserver/models"

	"go.uber.org/zap"
)

// Store は各ハンドラが使う永続化の操作です。database.Store と memstore.Store が実装します。
type Store interface {
	ListEvents(ctx context.Context, includeHidden bool) ([]models.Event, error)
	GetEvent(ctx context.Context, id uint) (models.Event, error)
	SaveEvent(ctx context.Context, event *models.Event) error
	DeleteEvent(ctx context.Context, id uint) error

	GetSubmission(ctx context.Context, id uint) (models.GameSubmission, error)
	CountSubmissions(ctx context.Context, userID, eventID uint) (int64, error)
	ListSubmissions(ctx context.Context, eventID uint) ([]models.GameSubmission, error)
	ListUserSubmissions(ctx context.Context, eventID, userID uint) ([]models.GameSubmission, error)
	SaveSubmission(ctx context.Context, submission *models.GameSubmission) error
	DeleteSubmission(ctx context.Context, id uint) error

	ListAvailability(ctx context.Context, eventID uint) ([]models.EventAvailability, error)
	FindOrCreateAvailability(ctx context.Context, userID, eventID uint) (models.EventAvailability, error)
	UpsertAvailability(ctx context.Context, record *models.EventAvailability) error

	GetUser(ctx context.Context, id uint) (models.User, error)
	UpsertProviderUser(ctx context.Context, providerID, name string) (models.User, error)
	UpdateProfile(ctx context.Context, userID uint, req models.ProfileRequest) (models.User, error)
}

// TokenIssuer はログイン時にセッショントークンを発行します。
type TokenIssuer interface {
	Generate(session models.Session) (string, error)
	TTL() time.Duration
}

// IdentityProvider はOAuthでのログインとサーバー参加の確認を行います。
type IdentityProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (auth.Identity, error)
	IsMember(ctx context.Context, providerID string) (bool, error)
}

// Env はハンドラが共有する依存関係です。起動時に1度だけ作ります。
type Env struct {
	Store    Store
	Sessions middlewares.SessionStore
	Tokens   TokenIssuer
	Provider IdentityProvider
	Logger   *zap.Logger

	Location      *time.Location // スケジュールの基準タイムゾーン
	Now           func() time.Time
	FrontendURL   string
	SecureCookies bool
}

func (env *Env) now() time.Time {
	if env.Now == nil {
		return time.Now()
	}
	return env.Now()
}

func (env *Env) location() *time.Location {
	if env.Location == nil {
		return time.UTC
	}
	return env.Location
}
