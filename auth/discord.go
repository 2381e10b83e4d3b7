package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"submitserver/models"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/oauth2"
)

// Identity はIDプロバイダーから得たユーザー情報です。
type Identity struct {
	ProviderID string
	Name       string
}

// Discord はDiscordのOAuth2でログインし、サーバー（ギルド）への参加を確認します。
type Discord struct {
	oauth    *oauth2.Config
	bot      *discordgo.Session
	serverID string
}

// NewDiscord は設定からプロバイダーを作ります。ボットトークンが無い場合は参加確認を行えません。
func NewDiscord(config models.Config) (*Discord, error) {
	d := &Discord{
		oauth: &oauth2.Config{
			ClientID:     config.DiscordClientID,
			ClientSecret: config.DiscordClientSecret,
			RedirectURL:  config.DiscordRedirectURL,
			Scopes:       []string{"identify", "email"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  discordgo.EndpointOauth2 + "authorize",
				TokenURL: discordgo.EndpointOauth2 + "token",
			},
		},
		serverID: config.DiscordServerID,
	}
	if config.DiscordServerID != "" {
		if config.DiscordBotToken == "" {
			return nil, errors.New("DISCORD_SERVER_ID を使うには DISCORD_BOT_TOKEN が必要です")
		}
		bot, err := discordgo.New("Bot " + config.DiscordBotToken)
		if err != nil {
			return nil, err
		}
		d.bot = bot
	}
	return d, nil
}

func (d *Discord) AuthCodeURL(state string) string {
	return d.oauth.AuthCodeURL(state)
}

// Exchange は認可コードをアクセストークンに交換し、ログインしたユーザーを返します。
func (d *Discord) Exchange(ctx context.Context, code string) (Identity, error) {
	token, err := d.oauth.Exchange(ctx, code)
	if err != nil {
		return Identity{}, fmt.Errorf("discord token exchange: %w", err)
	}
	session, err := discordgo.New("Bearer " + token.AccessToken)
	if err != nil {
		return Identity{}, err
	}
	user, err := session.User("@me", discordgo.WithContext(ctx))
	if err != nil {
		return Identity{}, fmt.Errorf("discord current user: %w", err)
	}
	return Identity{ProviderID: user.ID, Name: user.Username}, nil
}

// IsMember はユーザーが設定されたサーバーに参加しているかを返します。サーバー未設定なら常に true です。
func (d *Discord) IsMember(ctx context.Context, providerID string) (bool, error) {
	if d.serverID == "" {
		return true, nil
	}
	_, err := d.bot.GuildMember(d.serverID, providerID, discordgo.WithContext(ctx))
	if err == nil {
		return true, nil
	}
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Response != nil && restErr.Response.StatusCode == http.StatusNotFound {
		return false, nil
	}
	return false, err
}
