package handlers

import (
	"net/http"
	"strings"

	"submitserver/middlewares"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const stateCookie = "oauth_state"

func (env *Env) frontend(path string) string {
	return strings.TrimRight(env.FrontendURL, "/") + path
}

// Login はDiscordの認可画面へリダイレクトします。
func Login(c *gin.Context, env *Env) {
	state := uuid.New().String()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookie, state, 600, "/", "", env.SecureCookies, true)
	c.Redirect(http.StatusFound, env.Provider.AuthCodeURL(state))
}

// Callback は認可コードを交換し、サーバー参加を確認してからセッションを発行します。
func Callback(c *gin.Context, env *Env) {
	state, err := c.Cookie(stateCookie)
	if err != nil || state == "" || state != c.Query("state") {
		badRequest(c, "The login request has expired; please try again.")
		return
	}
	c.SetCookie(stateCookie, "", -1, "/", "", env.SecureCookies, true)

	code := c.Query("code")
	if code == "" {
		badRequest(c, "The login request has expired; please try again.")
		return
	}

	ctx := c.Request.Context()
	identity, err := env.Provider.Exchange(ctx, code)
	if err != nil {
		internalError(c, env.Logger, "Failed to exchange authorization code", err)
		return
	}

	member, err := env.Provider.IsMember(ctx, identity.ProviderID)
	if err != nil {
		env.Logger.Error("Error checking Discord server membership; is the server ID valid?",
			zap.String("providerID", identity.ProviderID), zap.Error(err))
	}
	if !member {
		c.Redirect(http.StatusFound, env.frontend("/nonmember"))
		return
	}

	user, err := env.Store.UpsertProviderUser(ctx, identity.ProviderID, identity.Name)
	if err != nil {
		internalError(c, env.Logger, "Failed to save user", err, zap.String("providerID", identity.ProviderID))
		return
	}

	session, err := env.Sessions.Create(ctx, user.ID)
	if err != nil {
		internalError(c, env.Logger, "Failed to create session", err, zap.Uint("userID", user.ID))
		return
	}
	token, err := env.Tokens.Generate(session)
	if err != nil {
		internalError(c, env.Logger, "Failed to generate token", err, zap.Uint("userID", user.ID))
		return
	}

	env.Logger.Info("User signed in", zap.Uint("userID", user.ID))
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middlewares.SessionCookie, token, int(env.Tokens.TTL().Seconds()), "/", "", env.SecureCookies, true)

	if env.FrontendURL == "" {
		c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
		return
	}
	c.Redirect(http.StatusFound, env.frontend("/"))
}

// Logout はセッションを削除します。
func Logout(c *gin.Context, env *Env) {
	if session, ok := middlewares.CurrentSession(c); ok {
		if err := env.Sessions.Delete(c.Request.Context(), session.ID); err != nil {
			internalError(c, env.Logger, "Failed to delete session", err)
			return
		}
	}
	c.SetCookie(middlewares.SessionCookie, "", -1, "/", "", env.SecureCookies, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out."})
}
