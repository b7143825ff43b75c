package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestGmailConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		errMsg  string
		config  GmailConfig
		wantErr bool
	}{
		{
			name:   "oauth with refresh token",
			config: GmailConfig{ClientID: "id", ClientSecret: "secret", RefreshToken: "rt", User: "me"},
		},
		{
			name:   "oauth with token file",
			config: GmailConfig{ClientID: "id", ClientSecret: "secret", TokenFile: "/tmp/token.json", User: "me"},
		},
		{
			name:   "service account with user",
			config: GmailConfig{ServiceAccountPath: "/path/key.json", User: "buyer@shop.example"},
		},
		{
			name:    "missing auth",
			config:  GmailConfig{User: "me"},
			wantErr: true,
			errMsg:  "no authentication method configured",
		},
		{
			name:    "multiple auth methods",
			config:  GmailConfig{ClientID: "id", ClientSecret: "secret", RefreshToken: "rt", ServiceAccountPath: "/k.json", User: "a@b.co"},
			wantErr: true,
			errMsg:  "multiple authentication methods",
		},
		{
			name:    "service account without user",
			config:  GmailConfig{ServiceAccountPath: "/path/key.json", User: "me"},
			wantErr: true,
			errMsg:  "impersonate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestGmailConfig_LoadFromEnv(t *testing.T) {
	t.Setenv("GOOGLE_GMAIL_CLIENT_ID", "env-id")
	t.Setenv("GOOGLE_GMAIL_CLIENT_SECRET", "env-secret")
	t.Setenv("GOOGLE_GMAIL_REFRESH_TOKEN", "")

	cfg := DefaultGmailConfig()
	cfg.ClientSecret = "flag-secret"
	cfg.LoadFromEnv()

	assert.Equal(t, "env-id", cfg.ClientID)
	assert.Equal(t, "flag-secret", cfg.ClientSecret)
	assert.Equal(t, "me", cfg.User)
}

func TestTokenRoundTrip(t *testing.T) {
	path := t.TempDir() + "/nested/token.json"
	require.NoError(t, SaveToken(path, tokenFixture()))

	got, err := LoadToken(path)
	require.NoError(t, err)
	assert.Equal(t, "refresh", got.RefreshToken)
}

func tokenFixture() *oauth2.Token {
	return &oauth2.Token{AccessToken: "access", RefreshToken: "refresh", TokenType: "Bearer"}
}
