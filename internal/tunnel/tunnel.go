// Package tunnel manages the local tor + privoxy chain that scan traffic can
// be routed through.
package tunnel

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/aleister1102/typo3enum/internal/common"
	"github.com/aleister1102/typo3enum/internal/config"
	"github.com/aleister1102/typo3enum/internal/httpclient"
	"github.com/rs/zerolog"
)

var (
	// ErrUnreachable means the check page could not be fetched through the proxy.
	ErrUnreachable = errors.New("tunnel check page unreachable through proxy")
	// ErrNotAnonymized means the check page answered without the confirmation text.
	ErrNotAnonymized = errors.New("traffic is not routed through tor")
	// ErrNoExitAddress means the confirmation page carried no IPv4 address.
	ErrNoExitAddress = errors.New("no exit address on check page")
)

var ipv4Pattern = regexp.MustCompile(`(\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})`)

// Tunnel is an anonymizing proxy whose lifetime the scanner controls.
type Tunnel interface {
	Start(ctx context.Context) error
	// Validate confirms traffic leaves through the tunnel and returns the exit IP.
	Validate(ctx context.Context) (string, error)
	Stop(ctx context.Context) error
}

// ServiceTunnel drives system services ("service <name> start|stop") and
// validates the chain against a check page fetched through the HTTP proxy.
type ServiceTunnel struct {
	cfg    config.TunnelConfig
	runner CommandRunner
	client *httpclient.HTTPClient
	logger zerolog.Logger
}

// NewServiceTunnel creates a tunnel. A nil runner uses ExecRunner.
func NewServiceTunnel(cfg config.TunnelConfig, runner CommandRunner, logger zerolog.Logger) (*ServiceTunnel, error) {
	if runner == nil {
		runner = ExecRunner{}
	}

	client, err := httpclient.NewHTTPClientBuilder(logger).
		WithProxy(cfg.ProxyURL()).
		WithTimeout(cfg.Timeout()).
		WithHTTP2(false).
		Build()
	if err != nil {
		return nil, common.WrapError(err, "failed to create tunnel check client")
	}

	return &ServiceTunnel{
		cfg:    cfg,
		runner: runner,
		client: client,
		logger: logger.With().Str("component", "Tunnel").Logger(),
	}, nil
}

// Start starts every configured service in order. If one fails, services
// already started are stopped again and any stop failure is joined into the
// returned error.
func (t *ServiceTunnel) Start(ctx context.Context) error {
	for i, service := range t.cfg.Services {
		t.logger.Info().Str("service", service).Msg("Starting service")
		if err := t.runner.Run(ctx, "service", service, "start"); err != nil {
			return errors.Join(
				common.WrapErrorf(err, "failed to start %s", service),
				t.stopServices(ctx, t.cfg.Services[:i]),
			)
		}
	}
	return nil
}

// Validate fetches the check page through the proxy.
func (t *ServiceTunnel) Validate(ctx context.Context) (string, error) {
	t.logger.Info().Str("proxy", t.cfg.ProxyURL()).Str("check_url", t.cfg.CheckURL).Msg("Checking connection")

	resp, err := t.client.Do(&httpclient.HTTPRequest{URL: t.cfg.CheckURL, Context: ctx})
	if err != nil {
		return "", errors.Join(ErrUnreachable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", errors.Join(ErrUnreachable,
			common.NewHTTPErrorWithURL(resp.StatusCode, http.StatusText(resp.StatusCode), t.cfg.CheckURL))
	}

	body := resp.BodyString()
	if !strings.Contains(body, t.cfg.ConfirmationText) {
		return "", ErrNotAnonymized
	}

	ip := ipv4Pattern.FindString(body)
	if ip == "" {
		return "", ErrNoExitAddress
	}

	t.logger.Info().Str("exit_ip", ip).Msg("Connection to tor established")
	return ip, nil
}

// Stop stops every configured service in reverse order, attempting all of
// them even if some fail.
func (t *ServiceTunnel) Stop(ctx context.Context) error {
	return t.stopServices(ctx, t.cfg.Services)
}

func (t *ServiceTunnel) stopServices(ctx context.Context, services []string) error {
	var errs []error
	for i := len(services) - 1; i >= 0; i-- {
		service := services[i]
		t.logger.Info().Str("service", service).Msg("Stopping service")
		if err := t.runner.Run(ctx, "service", service, "stop"); err != nil {
			t.logger.Warn().Err(err).Str("service", service).Msg("Failed to stop service")
			errs = append(errs, common.WrapErrorf(err, "failed to stop %s", service))
		}
	}
	return errors.Join(errs...)
}
