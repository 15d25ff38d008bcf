package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/kaizen-academy/kaizen-admin/jobs"
)

type ruleFile struct {
	Groups []struct {
		Name  string `yaml:"name"`
		Rules []struct {
			Alert       string            `yaml:"alert"`
			Expr        string            `yaml:"expr"`
			For         string            `yaml:"for"`
			Labels      map[string]string `yaml:"labels"`
			Annotations map[string]string `yaml:"annotations"`
		} `yaml:"rules"`
	} `yaml:"groups"`
}

var (
	selectorPattern = regexp.MustCompile(`(kaizen_[a-z_]+)(?:\{([^}]*)\})?`)
	matcherPattern  = regexp.MustCompile(`([a-z_]+)\s*(?:=~|!~|!=|=)\s*"([^"]*)"`)
)

// exportedSeries returns the label names of every kaizen_ family after one
// request and one failed credentials job have been recorded.
func exportedSeries(t *testing.T) map[string]map[string]bool {
	t.Helper()
	m := NewMetrics()

	routeCtx := chi.NewRouteContext()
	routeCtx.RoutePatterns = append(routeCtx.RoutePatterns, "/coaches")
	req := httptest.NewRequest(http.MethodGet, "/coaches", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
	m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})).ServeHTTP(httptest.NewRecorder(), req)
	_ = m.Jobs().Track(jobs.TaskSendCoachCredentials).End(errors.New("smtp unavailable"))

	families, err := m.registry.Gather()
	require.NoError(t, err)
	out := make(map[string]map[string]bool)
	for _, family := range families {
		if !strings.HasPrefix(family.GetName(), "kaizen_") {
			continue
		}
		labels := make(map[string]bool)
		for _, metric := range family.GetMetric() {
			for _, pair := range metric.GetLabel() {
				labels[pair.GetName()] = true
			}
		}
		out[family.GetName()] = labels
	}
	return out
}

func baseName(series string) string {
	for _, suffix := range []string{"_bucket", "_sum", "_count"} {
		if trimmed, ok := strings.CutSuffix(series, suffix); ok {
			return trimmed
		}
	}
	return series
}

func TestDashboardAlertRules(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "..", "deploy", "prometheus", "alerts", "dashboard.yml"))
	require.NoError(t, err)
	var file ruleFile
	require.NoError(t, yaml.Unmarshal(data, &file))
	require.Len(t, file.Groups, 1)
	require.Equal(t, "dashboard", file.Groups[0].Name)

	expected := map[string]struct {
		severity string
		runbook  string
	}{
		"HighErrorRate":             {"critical", "docs/runbook-dashboard.md#high-error-rate"},
		"HighLatency":               {"warning", "docs/runbook-dashboard.md#high-latency"},
		"CredentialDispatchFailing": {"warning", "docs/runbook-dashboard.md#credential-dispatch"},
	}
	series := exportedSeries(t)

	rules := file.Groups[0].Rules
	require.Len(t, rules, len(expected))
	for _, rule := range rules {
		want, ok := expected[rule.Alert]
		require.True(t, ok, "unexpected rule %q", rule.Alert)
		assert.Equal(t, want.severity, rule.Labels["severity"], rule.Alert)
		assert.Equal(t, want.runbook, rule.Annotations["runbook"], rule.Alert)
		assert.NotEmpty(t, rule.Annotations["summary"], rule.Alert)
		assert.NotEmpty(t, rule.Annotations["description"], rule.Alert)
		assert.NotEmpty(t, rule.For, rule.Alert)

		selectors := selectorPattern.FindAllStringSubmatch(rule.Expr, -1)
		require.NotEmpty(t, selectors, "%s queries no dashboard metric", rule.Alert)
		for _, sel := range selectors {
			labels, exported := series[baseName(sel[1])]
			if !assert.True(t, exported, "%s references unknown metric %s", rule.Alert, sel[1]) {
				continue
			}
			for _, matcher := range matcherPattern.FindAllStringSubmatch(sel[2], -1) {
				assert.True(t, labels[matcher[1]], "%s filters %s on missing label %q", rule.Alert, sel[1], matcher[1])
				if matcher[1] == "job" {
					assert.Equal(t, jobs.TaskSendCoachCredentials, matcher[2], "%s watches a job the worker never runs", rule.Alert)
				}
			}
		}
	}
}

func TestBaseNameStripsHistogramSuffixes(t *testing.T) {
	assert.Equal(t, "kaizen_http_request_duration_seconds", baseName("kaizen_http_request_duration_seconds_bucket"))
	assert.Equal(t, "kaizen_job_duration_seconds", baseName("kaizen_job_duration_seconds_count"))
	assert.Equal(t, "kaizen_http_requests_total", baseName("kaizen_http_requests_total"))
}
