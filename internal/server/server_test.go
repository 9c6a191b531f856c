package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/RenatoCabral2022/WhatsWebService/soundforge/internal/catalog"
	"github.com/RenatoCabral2022/WhatsWebService/soundforge/internal/config"
	"github.com/RenatoCabral2022/WhatsWebService/soundforge/internal/generate"
	"github.com/RenatoCabral2022/WhatsWebService/soundforge/internal/wav"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	cfg := &config.Config{
		OutputDir:  filepath.Join(t.TempDir(), "out"),
		SampleRate: 44100,
		Workers:    2,
		LogLevel:   "info",
	}
	rn, err := generate.New(cfg, catalog.Default(), zap.NewNop())
	require.NoError(t, err)
	s := New(rn, zap.NewNop())
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func get(t *testing.T, url string, header http.Header) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	for k, v := range header {
		req.Header[k] = v
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func TestHealth(t *testing.T) {
	_, ts := newTestServer(t)
	resp, body := get(t, ts.URL+"/healthz", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.NotEmpty(t, resp.Header.Get(RequestIDHeader))

	var got map[string]any
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "ok", got["status"])
	assert.Equal(t, float64(11), got["assets"])
}

func TestListSounds(t *testing.T) {
	_, ts := newTestServer(t)
	resp, body := get(t, ts.URL+"/v1/sounds", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got soundsResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, 44100, got.SampleRate)
	require.Len(t, got.Sounds, 11)

	enable := got.Sounds[7]
	assert.Equal(t, "sound-enable-confirm.wav", enable.Name)
	assert.Equal(t, "/v1/sounds/sound-enable-confirm.wav", enable.URL)
	assert.Equal(t, []layerInfo{
		{Instrument: "glass_tick"},
		{Instrument: "glass_tick", OffsetMs: 30},
	}, enable.Layers)
}

func TestGetSoundRendersAndCaches(t *testing.T) {
	s, ts := newTestServer(t)
	url := ts.URL + "/v1/sounds/glass-hover-soft.wav"

	resp, first := get(t, url, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "audio/wav", resp.Header.Get("Content-Type"))

	clip, err := wav.Decode(bytes.NewReader(first))
	require.NoError(t, err)
	assert.Len(t, clip.Samples, 2426)
	assert.Equal(t, 1, s.CachedCount())

	_, second := get(t, url, nil)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, s.CachedCount())
}

func TestGetSoundConcurrentRequestsShareRender(t *testing.T) {
	s, ts := newTestServer(t)
	url := ts.URL + "/v1/sounds/terminal-open-soft.wav"

	bodies := make([][]byte, 6)
	var wg sync.WaitGroup
	for i := range bodies {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := http.Get(url)
			if !assert.NoError(t, err) {
				return
			}
			defer resp.Body.Close()
			bodies[i], _ = io.ReadAll(resp.Body)
		}(i)
	}
	wg.Wait()

	for _, b := range bodies[1:] {
		assert.Equal(t, bodies[0], b)
	}
	assert.Equal(t, 1, s.CachedCount())
}

func TestGetSoundRange(t *testing.T) {
	_, ts := newTestServer(t)
	resp, body := get(t, ts.URL+"/v1/sounds/glass-tick-open.wav", http.Header{"Range": {"bytes=0-43"}})
	assert.Equal(t, http.StatusPartialContent, resp.StatusCode)
	require.Len(t, body, wav.HeaderSize)
	assert.Equal(t, "RIFF", string(body[:4]))
}

func TestHeadSound(t *testing.T) {
	_, ts := newTestServer(t)
	url := ts.URL + "/v1/sounds/glass-hover-soft.wav"

	resp, err := http.Head(url)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "audio/wav", resp.Header.Get("Content-Type"))

	_, body := get(t, url, nil)
	assert.Equal(t, int64(len(body)), resp.ContentLength)
}

func TestGetSoundUnknown(t *testing.T) {
	s, ts := newTestServer(t)
	resp, body := get(t, ts.URL+"/v1/sounds/kazoo.wav", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(body), "unknown sound")
	assert.Equal(t, 0, s.CachedCount())
}

func TestListEvents(t *testing.T) {
	_, ts := newTestServer(t)
	resp, body := get(t, ts.URL+"/v1/events", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var m catalog.Manifest
	require.NoError(t, json.Unmarshal(body, &m))
	require.Len(t, m.Events, 11)
	assert.Equal(t, "ui.sound.disabled", m.Events[10].Name)
	assert.Equal(t, "sound-disable-soft.wav", m.Events[10].Asset)
}

func TestRequestIDPassthrough(t *testing.T) {
	_, ts := newTestServer(t)
	resp, _ := get(t, ts.URL+"/healthz", http.Header{RequestIDHeader: {"req-123"}})
	assert.Equal(t, "req-123", resp.Header.Get(RequestIDHeader))
}

func TestCORS(t *testing.T) {
	_, ts := newTestServer(t)
	resp, _ := get(t, ts.URL+"/v1/sounds", http.Header{"Origin": {"http://localhost:5173"}})
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	_, ts := newTestServer(t)
	get(t, ts.URL+"/healthz", nil)

	resp, body := get(t, ts.URL+"/metrics", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `soundforge_http_requests_total{code="200",route="/healthz"}`)
}
