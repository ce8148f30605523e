package detector

import (
	"context"
	"net/http"
	"testing"

	"github.com/aleister1102/typo3enum/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

const loginURL = testHost + "/typo3/index.php"

func TestLoginProbe_Check(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantState  models.LoginState
		wantStatus string
	}{
		{
			name:       "cms login title",
			status:     http.StatusOK,
			body:       "<html><head><title>example.com: TYPO3 CMS Login</title></head></html>",
			wantState:  models.LoginFound,
			wantStatus: loginURL + ": Found",
		},
		{
			name:       "legacy login title",
			status:     http.StatusOK,
			body:       "<title>TYPO3 Login</title>",
			wantState:  models.LoginFound,
			wantStatus: loginURL + ": Found",
		},
		{
			name:       "forbidden status without title",
			status:     http.StatusForbidden,
			body:       "denied",
			wantState:  models.LoginForbidden,
			wantStatus: loginURL + ": Forbidden (IP Address Restriction)",
		},
		{
			name:       "access denied text",
			status:     http.StatusOK,
			body:       "<title>Error</title>TYPO3 Backend access denied: The IP address of your client (10.0.0.1) does not match",
			wantState:  models.LoginForbidden,
			wantStatus: loginURL + ": Forbidden (IP Address Restriction)",
		},
		{
			name:       "other page",
			status:     http.StatusOK,
			body:       "<title>Welcome</title>",
			wantState:  models.LoginNotFound,
			wantStatus: loginURL + ": Not Found",
		},
		{
			name:       "not found page with title",
			status:     http.StatusNotFound,
			body:       "<title>404 Not Found</title>",
			wantState:  models.LoginNotFound,
			wantStatus: loginURL + ": Not Found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := newFakeFetcher().respond(loginURL, tt.status, tt.body, nil)
			target := models.NewTarget("example.com", testHost)

			result := NewLoginProbe(fetcher, "", zerolog.Nop()).Check(context.Background(), target)

			assert.True(t, result.OK())
			assert.Equal(t, tt.wantState, target.LoginState)
			assert.Equal(t, tt.wantStatus, target.LoginStatus)
		})
	}
}

func TestLoginProbe_MissingTitle(t *testing.T) {
	fetcher := newFakeFetcher().respond(loginURL, http.StatusOK, "<html><body>plain</body></html>", nil)
	target := models.NewTarget("example.com", testHost)

	result := NewLoginProbe(fetcher, "", zerolog.Nop()).Check(context.Background(), target)

	assert.Equal(t, models.StatusParseError, result.Status)
	assert.ErrorIs(t, result.Err, ErrNoTitle)
	assert.False(t, target.HasLoginStatus())
	assert.Empty(t, target.LoginStatus)
}

func TestLoginProbe_TransportError(t *testing.T) {
	fetcher := newFakeFetcher().fail(loginURL)
	target := models.NewTarget("example.com", testHost)

	result := NewLoginProbe(fetcher, "", zerolog.Nop()).Check(context.Background(), target)

	assert.Equal(t, models.StatusTransportError, result.Status)
	assert.False(t, target.HasLoginStatus())
}

func TestLoginProbe_FollowsInstallPath(t *testing.T) {
	fetcher := newFakeFetcher().respond(testHost+"/cms/typo3/index.php", http.StatusOK, "<title>TYPO3 CMS Login</title>", nil)
	target := models.NewTarget("example.com", testHost)
	target.SetInstallPath(testHost+"/cms", "/cms")

	NewLoginProbe(fetcher, "", zerolog.Nop()).Check(context.Background(), target)

	assert.Equal(t, models.LoginFound, target.LoginState)
	assert.Equal(t, testHost+"/cms/typo3/index.php: Found", target.LoginStatus)
}

func TestLoginProbe_KeepsEarlierOutcome(t *testing.T) {
	fetcher := newFakeFetcher().respond(loginURL, http.StatusOK, "<title>TYPO3 CMS Login</title>", nil)
	target := models.NewTarget("example.com", testHost)
	target.SetLoginStatus(models.LoginForbidden, loginURL+": Forbidden (IP Address Restriction)")

	result := NewLoginProbe(fetcher, "", zerolog.Nop()).Check(context.Background(), target)

	assert.True(t, result.OK())
	assert.Equal(t, models.LoginForbidden, target.LoginState)
	assert.Empty(t, fetcher.calls)
}
