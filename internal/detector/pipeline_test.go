package detector

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aleister1102/typo3enum/internal/config"
	"github.com/aleister1102/typo3enum/internal/httpclient"
	"github.com/aleister1102/typo3enum/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingProbe struct {
	name   string
	status models.ProbeStatus
	calls  int
}

func (p *countingProbe) Name() string { return p.name }

func (p *countingProbe) Check(_ context.Context, target *models.Target) models.ProbeResult {
	p.calls++
	if p.status == models.StatusHit {
		target.MarkDetected()
	}
	return models.ProbeResult{Probe: p.name, Status: p.status, Err: errorFor(p.status)}
}

func errorFor(status models.ProbeStatus) error {
	if status == models.StatusHit {
		return nil
	}
	return errors.New(status.String())
}

func TestPipeline_ShortCircuits(t *testing.T) {
	tests := []struct {
		name      string
		statuses  []models.ProbeStatus
		want      bool
		wantCalls []int
	}{
		{
			name:      "first probe hits",
			statuses:  []models.ProbeStatus{models.StatusHit, models.StatusHit, models.StatusHit},
			want:      true,
			wantCalls: []int{1, 0, 0},
		},
		{
			name:      "second probe hits",
			statuses:  []models.ProbeStatus{models.StatusNoMatch, models.StatusHit, models.StatusHit},
			want:      true,
			wantCalls: []int{1, 1, 0},
		},
		{
			name:      "errors count as misses",
			statuses:  []models.ProbeStatus{models.StatusTransportError, models.StatusParseError, models.StatusHit},
			want:      true,
			wantCalls: []int{1, 1, 1},
		},
		{
			name:      "all miss",
			statuses:  []models.ProbeStatus{models.StatusNoMatch, models.StatusTransportError, models.StatusNoMatch},
			want:      false,
			wantCalls: []int{1, 1, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			probes := make([]Probe, len(tt.statuses))
			counters := make([]*countingProbe, len(tt.statuses))
			for i, status := range tt.statuses {
				counters[i] = &countingProbe{name: fmt.Sprintf("probe-%d", i), status: status}
				probes[i] = counters[i]
			}
			target := models.NewTarget("example.com", testHost)

			got := NewPipeline(zerolog.Nop(), probes...).Run(context.Background(), target)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, target.Detected)
			for i, counter := range counters {
				assert.Equal(t, tt.wantCalls[i], counter.calls, "calls to %s", counter.name)
			}
		})
	}
}

func TestPipeline_EmptyIsNegative(t *testing.T) {
	target := models.NewTarget("example.com", testHost)
	assert.False(t, NewPipeline(zerolog.Nop()).Run(context.Background(), target))
}

func TestPipeline_Evaluate(t *testing.T) {
	fetcher := newFakeFetcher().respond(testHost+"/typo3_src/README.md", http.StatusOK, "TYPO3 CMS", nil)
	pipeline, err := NewDefaultPipeline(fetcher, config.NewDefaultDetectionConfig(), zerolog.Nop())
	require.NoError(t, err)
	target := models.NewTarget("example.com", testHost)

	results := pipeline.Evaluate(context.Background(), target)

	require.Len(t, results, 2)
	assert.Equal(t, RootProbeName, results[0].Probe)
	assert.Equal(t, models.StatusNoMatch, results[0].Status)
	assert.Equal(t, DefaultFileProbeName, results[1].Probe)
	assert.True(t, results[1].OK())
	assert.NotContains(t, fetcher.calls, testHost+"/idontexist")
}

func TestDefaultPipeline_AllMiss(t *testing.T) {
	fetcher := newFakeFetcher().respond(testHost+"/", http.StatusOK, "<html>Joomla!</html>", nil)
	pipeline, err := NewDefaultPipeline(fetcher, config.NewDefaultDetectionConfig(), zerolog.Nop())
	require.NoError(t, err)
	target := models.NewTarget("example.com", testHost)

	assert.False(t, pipeline.Run(context.Background(), target))
	assert.False(t, target.Detected)
	assert.Len(t, fetcher.calls, 1+len(DefaultFiles)+1)
	assert.Equal(t, testHost+"/idontexist", fetcher.calls[len(fetcher.calls)-1])
}

func TestDefaultPipeline_RootHitStopsEarly(t *testing.T) {
	fetcher := newFakeFetcher().respond(testHost+"/", http.StatusOK, "<!-- TYPO3 -->", nil)
	pipeline, err := NewDefaultPipeline(fetcher, config.NewDefaultDetectionConfig(), zerolog.Nop())
	require.NoError(t, err)
	target := models.NewTarget("example.com", testHost)

	assert.True(t, pipeline.Run(context.Background(), target))
	assert.Equal(t, []string{testHost + "/"}, fetcher.calls)
	assert.Equal(t, testHost, target.Name, "no install path reference, no rewrite")
}

func TestDefaultPipeline_TransportFailures(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.failAll = true
	pipeline, err := NewDefaultPipeline(fetcher, config.NewDefaultDetectionConfig(), zerolog.Nop())
	require.NoError(t, err)
	target := models.NewTarget("example.com", testHost)

	results := pipeline.Evaluate(context.Background(), target)

	require.Len(t, results, 3)
	for _, result := range results {
		assert.Equal(t, models.StatusTransportError, result.Status, result.Probe)
	}
	assert.False(t, target.Detected)
}

func TestDefaultPipeline_Idempotent(t *testing.T) {
	body := `<html><head><link href="/cms/typo3conf/ext/site/main.css"></head><!-- TYPO3 --></html>`
	fetcher := newFakeFetcher().
		respond(testHost+"/", http.StatusOK, body, map[string]string{"Server": "Apache"}).
		respond(testHost+"/cms/", http.StatusOK, body, map[string]string{"X-Powered-By": "PHP"})
	pipeline, err := NewDefaultPipeline(fetcher, config.NewDefaultDetectionConfig(), zerolog.Nop())
	require.NoError(t, err)
	target := models.NewTarget("example.com", testHost)

	require.True(t, pipeline.Run(context.Background(), target))
	require.True(t, pipeline.Run(context.Background(), target))

	assert.True(t, target.Detected)
	assert.Equal(t, testHost+"/cms", target.Name)
	assert.Equal(t, "/cms", target.InstallPath)
	assert.Equal(t, map[string]string{"Server": "Apache", "X-Powered-By": "PHP"}, target.InterestingHeaders)
}

func TestDefaultPipeline_OverHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			w.Header().Set("X-Generator", "TYPO3 CMS")
			fmt.Fprint(w, `<html><head><link rel="stylesheet" href="/portal/typo3temp/assets/css/a.css"></head></html>`)
		case "/portal/typo3/index.php":
			fmt.Fprint(w, `<html><head><title>Portal: TYPO3 CMS Login</title></head></html>`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client, err := httpclient.NewHTTPClientBuilder(zerolog.Nop()).Build()
	require.NoError(t, err)
	pipeline, err := NewDefaultPipeline(client, config.NewDefaultDetectionConfig(), zerolog.Nop())
	require.NoError(t, err)
	target := models.NewTarget(server.URL, server.URL)

	require.True(t, pipeline.Run(context.Background(), target))
	assert.Equal(t, server.URL+"/portal", target.Name)
	assert.Equal(t, "/portal", target.InstallPath)
	assert.Equal(t, "TYPO3 CMS", target.InterestingHeaders["X-Generator"])

	result := NewLoginProbe(client, "", zerolog.Nop()).Check(context.Background(), target)
	require.True(t, result.OK())
	assert.Equal(t, models.LoginFound, target.LoginState)
	assert.Equal(t, server.URL+"/portal/typo3/index.php: Found", target.LoginStatus)
}
