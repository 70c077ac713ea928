package auth

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/polyhub/timetable-back/internal/config"
	"github.com/polyhub/timetable-back/internal/models"
)

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "test-secret"}
}

func TestAuthenticate(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		password string
		role     models.UserRole
		wantErr  bool
	}{
		{name: "lecturer ok", id: "STAFF001", password: "password123", role: models.RoleLecturer},
		{name: "student ok", id: "STD002", password: "password123", role: models.RoleStudent},
		{name: "wrong password", id: "STAFF001", password: "nope", role: models.RoleLecturer, wantErr: true},
		{name: "role mismatch", id: "STAFF001", password: "password123", role: models.RoleStudent, wantErr: true},
		{name: "unknown id", id: "STAFF404", password: "password123", role: models.RoleLecturer, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := Authenticate(tt.id, tt.password, tt.role)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidCredentials)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.id, user.ID)
			require.Equal(t, tt.role, user.Role)
		})
	}
}

func TestTokenRoundTrip(t *testing.T) {
	cfg := testConfig()
	user, err := Authenticate("STD001", "password123", models.RoleStudent)
	require.NoError(t, err)

	tokens, err := IssueTokens(cfg, user)
	require.NoError(t, err)
	require.NotEmpty(t, tokens.AccessToken)
	require.NotEmpty(t, tokens.RefreshToken)

	parsed, err := ParseAccessToken(cfg, tokens.AccessToken)
	require.NoError(t, err)
	require.Equal(t, user, parsed)
	require.Equal(t, models.LevelHND1, parsed.Level)
	require.Equal(t, "Computer Science", parsed.Department)
}

func TestRefreshTokenIsNotAnAccessToken(t *testing.T) {
	cfg := testConfig()
	user, _ := UserByID("STAFF001")
	tokens, err := IssueTokens(cfg, user)
	require.NoError(t, err)

	_, err = ParseAccessToken(cfg, tokens.RefreshToken)
	require.ErrorIs(t, err, ErrInvalidCredentials)

	id, err := ParseRefreshToken(cfg, tokens.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, "STAFF001", id)

	_, err = ParseRefreshToken(cfg, tokens.AccessToken)
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestParseAccessTokenRejectsGarbage(t *testing.T) {
	cfg := testConfig()
	_, err := ParseAccessToken(cfg, "not.a.token")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	// token signed with a different secret
	other := &config.Config{JWTSecret: "other-secret"}
	user, _ := UserByID("STD001")
	tokens, err := IssueTokens(other, user)
	require.NoError(t, err)
	_, err = ParseAccessToken(cfg, tokens.AccessToken)
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
