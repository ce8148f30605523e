package scanner

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/aleister1102/typo3enum/internal/config"
	"github.com/aleister1102/typo3enum/internal/httpclient"
	"github.com/aleister1102/typo3enum/internal/models"
	"github.com/aleister1102/typo3enum/internal/reporter"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingReporter struct {
	targets []*models.Target
}

func (r *recordingReporter) Report(target *models.Target) error {
	r.targets = append(r.targets, target)
	return nil
}

// newTYPO3Server fakes a TYPO3 site installed under /cms with an IP-restricted backend.
func newTYPO3Server(t *testing.T) (*httptest.Server, *int32) {
	t.Helper()
	var loginHits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			w.Header().Set("Server", "Apache/2.4")
			fmt.Fprint(w, `<html><head><!-- This website is powered by TYPO3 --><link href="/cms/typo3temp/assets/css/a.css"></head></html>`)
		case "/cms/typo3/index.php":
			atomic.AddInt32(&loginHits, 1)
			w.WriteHeader(http.StatusForbidden)
			fmt.Fprint(w, "TYPO3 Backend access denied: The IP address of your client (127.0.0.1) does not match")
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server, &loginHits
}

func newPlainServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/typo3/index.php" {
			fmt.Fprint(w, "<html><head><title>Blog</title></head></html>")
			return
		}
		fmt.Fprint(w, "<html><head><title>Blog</title></head><body>WordPress</body></html>")
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestScanner(t *testing.T, cfg config.DetectionConfig, rep Reporter) *Scanner {
	t.Helper()
	client, err := httpclient.NewHTTPClientBuilder(zerolog.Nop()).Build()
	require.NoError(t, err)
	s, err := NewScanner(cfg, client, rep, zerolog.Nop())
	require.NoError(t, err)
	return s
}

func TestScanner_EndToEnd(t *testing.T) {
	typo3, loginHits := newTYPO3Server(t)
	plain := newPlainServer(t)
	rec := &recordingReporter{}
	s := newTestScanner(t, config.NewDefaultDetectionConfig(), rec)

	input := strings.TrimPrefix(typo3.URL, "http://")
	summary, err := s.Scan(context.Background(), []string{input, plain.URL, "  ", typo3.URL + "/"})
	require.NoError(t, err)

	assert.Equal(t, 4, summary.Preprocess.Input)
	assert.Equal(t, 1, summary.Preprocess.Invalid)
	assert.Equal(t, 1, summary.Preprocess.Duplicates)
	assert.Equal(t, 2, summary.Scanned)
	assert.Equal(t, 1, summary.Detected)
	require.Len(t, rec.targets, 2)

	found := rec.targets[0]
	assert.True(t, found.Detected)
	assert.Equal(t, input, found.OriginalName)
	assert.Equal(t, typo3.URL+"/cms", found.Name)
	assert.Equal(t, "/cms", found.InstallPath)
	assert.Equal(t, "Apache/2.4", found.InterestingHeaders["Server"])
	assert.Equal(t, models.LoginForbidden, found.LoginState)
	assert.Equal(t, typo3.URL+"/cms/typo3/index.php: Forbidden (IP Address Restriction)", found.LoginStatus)
	assert.Equal(t, int32(1), atomic.LoadInt32(loginHits))

	missed := rec.targets[1]
	assert.False(t, missed.Detected)
	assert.False(t, missed.HasLoginStatus(), "login is only checked on detected targets")
}

func TestScanner_AlwaysCheckLogin(t *testing.T) {
	plain := newPlainServer(t)
	cfg := config.NewDefaultDetectionConfig()
	cfg.AlwaysCheckLogin = true
	s := newTestScanner(t, cfg, nil)

	summary, err := s.Scan(context.Background(), []string{plain.URL})
	require.NoError(t, err)

	require.Len(t, summary.Targets, 1)
	assert.False(t, summary.Targets[0].Detected)
	assert.Equal(t, models.LoginNotFound, summary.Targets[0].LoginState)
}

func TestScanner_AlwaysCheckLoginIsReported(t *testing.T) {
	plain := newPlainServer(t)
	cfg := config.NewDefaultDetectionConfig()
	cfg.AlwaysCheckLogin = true
	var buf bytes.Buffer
	console := reporter.NewConsoleReporter(&buf, config.ReporterConfig{NoColor: true, ShowHeaders: true})
	s := newTestScanner(t, cfg, console)

	_, err := s.Scan(context.Background(), []string{plain.URL})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "TYPO3 not detected")
	assert.Contains(t, out, plain.URL+"/typo3/index.php: Not Found")
}

func TestScanner_LogsComponent(t *testing.T) {
	plain := newPlainServer(t)
	client, err := httpclient.NewHTTPClientBuilder(zerolog.Nop()).Build()
	require.NoError(t, err)
	var logs bytes.Buffer
	s, err := NewScanner(config.NewDefaultDetectionConfig(), client, nil, zerolog.New(&logs))
	require.NoError(t, err)

	_, err = s.Scan(context.Background(), []string{plain.URL})
	require.NoError(t, err)

	assert.Contains(t, logs.String(), `"component":"Scanner"`)
	assert.NotContains(t, logs.String(), `"module"`)
}

func TestScanner_NoTargets(t *testing.T) {
	s := newTestScanner(t, config.NewDefaultDetectionConfig(), nil)

	_, err := s.Scan(context.Background(), []string{"", "ftp://example.com"})
	assert.ErrorIs(t, err, ErrNoTargets)
}

func TestScanner_Canceled(t *testing.T) {
	plain := newPlainServer(t)
	s := newTestScanner(t, config.NewDefaultDetectionConfig(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := s.Scan(ctx, []string{plain.URL})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, summary.Scanned)
}

func TestTargetPreprocessor_Prepare(t *testing.T) {
	prepared, stats := NewTargetPreprocessor(zerolog.Nop()).Prepare([]string{
		"Example.com",
		"http://example.com/",
		"https://example.com",
		"not a host://",
	})

	assert.Equal(t, []PreparedTarget{
		{Original: "Example.com", Name: "http://example.com"},
		{Original: "https://example.com", Name: "https://example.com"},
	}, prepared)
	assert.Equal(t, PreprocessStats{Input: 4, Invalid: 1, Duplicates: 1, Accepted: 2}, stats)
}
