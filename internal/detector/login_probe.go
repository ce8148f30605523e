package detector

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/aleister1102/typo3enum/internal/config"
	"github.com/aleister1102/typo3enum/internal/models"
	"github.com/aleister1102/typo3enum/internal/signature"
	"github.com/rs/zerolog"
)

const accessDeniedText = "TYPO3 Backend access denied: The IP address of your client"

var loginTitles = []string{"TYPO3 Login", "TYPO3 CMS Login"}

// LoginProbe classifies the backend login page as reachable, IP restricted or
// absent. It runs against the current target name, so a discovered install
// path is honored.
type LoginProbe struct {
	fetcher Fetcher
	path    string
	logger  zerolog.Logger
}

// NewLoginProbe creates the probe. An empty path uses the default.
func NewLoginProbe(fetcher Fetcher, path string, logger zerolog.Logger) *LoginProbe {
	if path == "" {
		path = config.DefaultDetectionLoginPath
	}
	return &LoginProbe{
		fetcher: fetcher,
		path:    path,
		logger:  logger.With().Str("component", "LoginProbe").Logger(),
	}
}

func (p *LoginProbe) Name() string { return LoginProbeName }

// Check implements Probe. A decided outcome is a hit even when the login page
// is missing; only failures leave the target's login status unset.
func (p *LoginProbe) Check(ctx context.Context, target *models.Target) models.ProbeResult {
	url := target.Name + p.path

	if target.HasLoginStatus() {
		return models.Hit(p.Name(), url)
	}

	resp, err := p.fetcher.Fetch(ctx, target.Name, p.path)
	if err != nil {
		return models.TransportError(p.Name(), url, err)
	}

	state, err := classifyLogin(resp.StatusCode, resp.BodyString())
	if err != nil {
		return models.ParseError(p.Name(), url, err)
	}

	target.SetLoginStatus(state, fmt.Sprintf("%s: %s", url, state))
	p.logger.Debug().Str("url", url).Str("state", state.String()).Msg("Login page classified")
	return models.Hit(p.Name(), url)
}

func classifyLogin(status int, body string) (models.LoginState, error) {
	if status == http.StatusForbidden || strings.Contains(body, accessDeniedText) {
		return models.LoginForbidden, nil
	}

	title, err := signature.Title(body)
	if err != nil {
		if errors.Is(err, signature.ErrNoTitle) {
			return models.LoginUnknown, ErrNoTitle
		}
		return models.LoginUnknown, err
	}

	for _, candidate := range loginTitles {
		if strings.Contains(title, candidate) {
			return models.LoginFound, nil
		}
	}
	return models.LoginNotFound, nil
}
