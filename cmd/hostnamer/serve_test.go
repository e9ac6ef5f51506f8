package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Control-D-Inc/hostnamer"
)

func newTestComposeServer(t *testing.T) *httptest.Server {
	t.Helper()
	s := newComposeServer("", func() (*hostnamer.Validator, error) {
		return hostnamer.NewValidator(nil)
	}, "test")
	ts := httptest.NewServer(s.mux)
	t.Cleanup(ts.Close)
	return ts
}

func TestComposeHandler(t *testing.T) {
	ts := newTestComposeServer(t)

	tests := []struct {
		name       string
		method     string
		body       string
		wantStatus int
		wantResp   *composeResponse
	}{
		{
			name:       "valid",
			method:     http.MethodPost,
			body:       `{"organization":"org","tier":"prod","role":"web","sequence":"1","provider":"aws","region":"us-east-1","domain":"example.com"}`,
			wantStatus: http.StatusOK,
			wantResp: &composeResponse{
				Hostname: "org-prod-web-1.aws-us-east-1.example.com",
				Valid:    true,
				Errors:   []string{},
			},
		},
		{
			name:       "empty",
			method:     http.MethodPost,
			body:       `{}`,
			wantStatus: http.StatusOK,
			wantResp: &composeResponse{
				Hostname: "localhost",
				Errors:   []string{"some required fields are blank"},
			},
		},
		{
			name:       "unknown field",
			method:     http.MethodPost,
			body:       `{"purpose":"x"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed",
			method:     http.MethodPost,
			body:       `{"organization":`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "wrong method",
			method:     http.MethodGet,
			wantStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req, err := http.NewRequest(tc.method, ts.URL+"/v1/compose", strings.NewReader(tc.body))
			require.NoError(t, err)
			res, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer res.Body.Close()

			assert.Equal(t, tc.wantStatus, res.StatusCode)
			assert.Equal(t, contentTypeJson, res.Header.Get("Content-Type"))
			if tc.wantResp == nil {
				return
			}
			var resp composeResponse
			require.NoError(t, json.NewDecoder(res.Body).Decode(&resp))
			assert.Equal(t, *tc.wantResp, resp)
		})
	}
}

func TestMetricsHandler(t *testing.T) {
	ts := newTestComposeServer(t)

	res, err := http.Post(ts.URL+"/v1/compose", contentTypeJson, strings.NewReader(`{"sequence":"0"}`))
	require.NoError(t, err)
	res.Body.Close()

	res, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "hostnamer_validations_count")
	assert.Contains(t, string(body), `kind="ZeroSequence"`)

	res, err = http.Get(ts.URL + "/metrics/json")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, contentTypeJson, res.Header.Get("Content-Type"))
	var families []map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&families))
	assert.NotEmpty(t, families)
}
