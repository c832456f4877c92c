// backend/src/handlers/oauth_handler.go
package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/usgrp/citizen-portal/backend/src/config"
	"github.com/usgrp/citizen-portal/backend/src/logger"
)

var (
	discordOauthConfig *oauth2.Config
	oauthStateString   = "random-string-for-security"
)

// discordEndpoint is not shipped with x/oauth2, unlike the big providers.
var discordEndpoint = oauth2.Endpoint{
	AuthURL:  "https://discord.com/oauth2/authorize",
	TokenURL: "https://discord.com/api/oauth2/token",
}

func InitializeDiscordOAuthConfig() {
	discordOauthConfig = &oauth2.Config{
		RedirectURL:  config.Cfg.DiscordRedirectURL,
		ClientID:     config.Cfg.DiscordClientID,
		ClientSecret: config.Cfg.DiscordClientSecret,
		Scopes:       []string{"identify", "guilds"},
		Endpoint:     discordEndpoint,
	}
}

func (h *AuthHandler) HandleDiscordLogin(w http.ResponseWriter, r *http.Request) {
	url := discordOauthConfig.AuthCodeURL(oauthStateString)
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

// HandleDiscordCallback exchanges the OAuth code, asks Discord who the user
// is, and sends the frontend back a portal session token. The Discord user ID
// becomes the citizen identity for every upstream call.
func (h *AuthHandler) HandleDiscordCallback(w http.ResponseWriter, r *http.Request) {
	if r.FormValue("state") != oauthStateString {
		logger.L.Warn("Invalid OAuth state from Discord callback")
		http.Redirect(w, r, config.Cfg.FrontendBaseURL+"/login?error=invalid_state", http.StatusTemporaryRedirect)
		return
	}

	code := r.FormValue("code")
	token, err := discordOauthConfig.Exchange(context.Background(), code)
	if err != nil {
		logger.L.Error("Failed to exchange code for token", "error", err)
		http.Redirect(w, r, config.Cfg.FrontendBaseURL+"/login?error=token_exchange_failed", http.StatusTemporaryRedirect)
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, "https://discord.com/api/users/@me", nil)
	if err != nil {
		logger.L.Error("Failed to build Discord user info request", "error", err)
		http.Redirect(w, r, config.Cfg.FrontendBaseURL+"/login?error=userinfo_failed", http.StatusTemporaryRedirect)
		return
	}
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	response, err := http.DefaultClient.Do(req)
	if err != nil {
		logger.L.Error("Failed to get user info from Discord", "error", err)
		http.Redirect(w, r, config.Cfg.FrontendBaseURL+"/login?error=userinfo_failed", http.StatusTemporaryRedirect)
		return
	}
	defer response.Body.Close()

	contents, err := io.ReadAll(response.Body)
	if err != nil {
		logger.L.Error("Failed to read user info response body", "error", err)
		http.Redirect(w, r, config.Cfg.FrontendBaseURL+"/login?error=userinfo_read_failed", http.StatusTemporaryRedirect)
		return
	}

	var discordUser struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	}
	if err := json.Unmarshal(contents, &discordUser); err != nil || discordUser.ID == "" {
		logger.L.Error("Failed to unmarshal Discord user info", "error", err)
		http.Redirect(w, r, config.Cfg.FrontendBaseURL+"/login?error=userinfo_parse_failed", http.StatusTemporaryRedirect)
		return
	}

	sessionToken, err := h.authService.GenerateToken(discordUser.ID)
	if err != nil {
		logger.L.Error("Failed to issue session token", "userID", discordUser.ID, "error", err)
		http.Redirect(w, r, config.Cfg.FrontendBaseURL+"/login?error=session_failed", http.StatusTemporaryRedirect)
		return
	}

	logger.L.Info("Discord login completed", "userID", discordUser.ID, "username", discordUser.Username)
	http.Redirect(w, r, config.Cfg.FrontendBaseURL+"/login/callback#token="+sessionToken, http.StatusTemporaryRedirect)
}
