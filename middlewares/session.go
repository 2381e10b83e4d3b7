package middlewares

import (
	"context"
	"net/http"
	"strings"

	"submitserver/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// SessionCookie はセッショントークンを保持するクッキー名です。
	SessionCookie = "session"

	MsgNotLoggedIn = "You must be logged in."
	MsgNotAdmin    = "You are not an administrator."

	contextUser    = "user"
	contextSession = "session"
)

// TokenParser はセッショントークンを検証します。
type TokenParser interface {
	Parse(tokenString string) (*models.SessionClaims, error)
}

// SessionStore はセッションの保存先です。
type SessionStore interface {
	Create(ctx context.Context, userID uint) (models.Session, error)
	Get(ctx context.Context, id string) (models.Session, error)
	Delete(ctx context.Context, id string) error
}

// UserFinder はセッションのユーザーを読み込みます。
type UserFinder interface {
	GetUser(ctx context.Context, id uint) (models.User, error)
}

// Authenticator はリクエストのトークンからセッションとユーザーを解決します。
type Authenticator struct {
	tokens   TokenParser
	sessions SessionStore
	users    UserFinder
	logger   *zap.Logger
}

func NewAuthenticator(tokens TokenParser, sessions SessionStore, users UserFinder, logger *zap.Logger) *Authenticator {
	return &Authenticator{tokens: tokens, sessions: sessions, users: users, logger: logger}
}

// TokenFromRequest は Authorization ヘッダー（Bearer）またはセッションクッキーからトークンを取得します。
func TokenFromRequest(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie
	}
	return ""
}

func (a *Authenticator) resolve(c *gin.Context) (*models.User, *models.Session, bool) {
	tokenString := TokenFromRequest(c)
	if tokenString == "" {
		return nil, nil, false
	}

	claims, err := a.tokens.Parse(tokenString)
	if err != nil {
		a.logger.Warn("トークンのパースに失敗", zap.Error(err))
		return nil, nil, false
	}

	ctx := c.Request.Context()
	session, err := a.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		a.logger.Warn("セッションが存在しない", zap.String("sessionID", claims.SessionID), zap.Error(err))
		return nil, nil, false
	}
	if session.UserID != claims.UserID {
		a.logger.Warn("セッションとトークンのユーザーが一致しない",
			zap.Uint("sessionUserID", session.UserID), zap.Uint("tokenUserID", claims.UserID))
		return nil, nil, false
	}

	user, err := a.users.GetUser(ctx, session.UserID)
	if err != nil {
		a.logger.Warn("ユーザーIDがデータベースに存在しない", zap.Uint("userID", session.UserID), zap.Error(err))
		return nil, nil, false
	}
	return &user, &session, true
}

// OptionalSession はログインしていればユーザーをコンテキストに設定し、していなくても続行します。
func (a *Authenticator) OptionalSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, session, ok := a.resolve(c); ok {
			c.Set(contextUser, user)
			c.Set(contextSession, session)
		}
		c.Next()
	}
}

// RequireSession はログインしていないリクエストを401で拒否します。
func (a *Authenticator) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, session, ok := a.resolve(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": MsgNotLoggedIn})
			return
		}
		c.Set(contextUser, user)
		c.Set(contextSession, session)
		c.Next()
	}
}

// RequireAdmin は RequireSession の後に置き、管理者以外を401で拒否します。
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": MsgNotLoggedIn})
			return
		}
		if !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": MsgNotAdmin})
			return
		}
		c.Next()
	}
}

// CurrentUser はログイン中のユーザーを返します。
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(contextUser)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}

// CurrentSession はログイン中のセッションを返します。
func CurrentSession(c *gin.Context) (*models.Session, bool) {
	v, ok := c.Get(contextSession)
	if !ok {
		return nil, false
	}
	session, ok := v.(*models.Session)
	return session, ok && session != nil
}
