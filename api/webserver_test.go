package api

import (
	"bytes"
	"encoding/json"
	"image"
	"image/jpeg"
	"net/http"
	"net/http/httptest"
	"os"
	"path"
	"strconv"
	"testing"
	"time"

	v1 "github.com/julender/julender/api/v1"
	"github.com/julender/julender/common/config"
	"github.com/julender/julender/common/runtime"
	"github.com/julender/julender/controllers/calendar_controller"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testApiKey = "letmein"

type testServer struct {
	handler  http.Handler
	cfg      *config.MainRepoConfig
	mediaDir string
}

func newTestServer(t *testing.T, mutate func(cfg *config.MainRepoConfig)) *testServer {
	root := t.TempDir()
	mediaDir := path.Join(root, "media")
	require.NoError(t, os.MkdirAll(mediaDir, 0755))

	cfg := config.NewDefaultMainConfig()
	cfg.Images.Source.Options["path"] = mediaDir
	cfg.Images.NumWorkers = 2
	cfg.Caches = config.CachesConfig{
		ImagePath:     path.Join(root, "tmp", "image_cache"),
		FrontendPath:  path.Join(root, "tmp", "twig_cache"),
		ContainerPath: path.Join(root, "tmp", "container_cache"),
	}
	cfg.RateLimit.Enabled = false
	cfg.Admin.ApiKey = testApiKey
	if mutate != nil {
		mutate(&cfg)
	}

	services, err := runtime.Build(&cfg)
	require.NoError(t, err)
	t.Cleanup(services.Close)

	now := func() time.Time {
		return time.Date(2025, 12, 10, 12, 0, 0, 0, services.Clock.Location())
	}
	services.Downloads.SetNow(now)
	services.Calendar.SetNow(now)

	handler := BuildHandler(&cfg, &v1.Handlers{
		Downloads:   services.Downloads,
		Thumbnails:  services.Thumbnails,
		Calendar:    services.Calendar,
		Maintenance: services.Maintenance,
	})
	return &testServer{handler: handler, cfg: &cfg, mediaDir: mediaDir}
}

func (s *testServer) writeSource(t *testing.T, name string, w int, h int) {
	buf := &bytes.Buffer{}
	require.NoError(t, jpeg.Encode(buf, image.NewRGBA(image.Rect(0, 0, w, h)), nil))
	require.NoError(t, os.WriteFile(path.Join(s.mediaDir, name), buf.Bytes(), 0644))
}

func (s *testServer) do(method string, target string, apiKey string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if apiKey != "" {
		req.Header.Set("X-API-KEY", apiKey)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func errcode(t *testing.T, rec *httptest.ResponseRecorder) string {
	body := make(map[string]string)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["errcode"]
}

func TestGetImageInline(t *testing.T) {
	s := newTestServer(t, nil)
	s.writeSource(t, "03", 40, 30)

	rec := s.do("GET", "/image/03", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/jpeg", rec.Header().Get("Content-Type"))
	assert.Equal(t, "", rec.Header().Get("Content-Disposition"))
	assert.Equal(t, rec.Body.Len(), mustAtoi(t, rec.Header().Get("Content-Length")))
	assert.Equal(t, "julender", rec.Header().Get("Server"))
}

func TestGetImageDownload(t *testing.T) {
	s := newTestServer(t, nil)
	s.writeSource(t, "03", 40, 30)

	rec := s.do("GET", "/image/03?disposition=download", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/octet-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="day_03.jpeg"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, rec.Body.Len(), mustAtoi(t, rec.Header().Get("Content-Length")))
}

func TestGetImagePreview(t *testing.T) {
	s := newTestServer(t, nil)
	s.writeSource(t, "03", 2000, 1500)

	rec := s.do("GET", "/image/03?size=preview", "")
	require.Equal(t, http.StatusOK, rec.Code)

	cfg, _, err := image.DecodeConfig(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 250, cfg.Width)
	assert.Equal(t, 188, cfg.Height)
}

func TestGetImageErrors(t *testing.T) {
	s := newTestServer(t, nil)
	s.writeSource(t, "24", 40, 30)

	rec := s.do("GET", "/image/24", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "J_UNAUTHORIZED", errcode(t, rec))

	for _, day := range []string{"00", "25", "abc"} {
		rec = s.do("GET", "/image/"+day, "")
		assert.Equal(t, http.StatusNotFound, rec.Code, day)
		assert.Equal(t, "J_NOT_FOUND", errcode(t, rec), day)
	}

	rec = s.do("GET", "/image/05", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "file not found")
}

func TestClearCacheRequiresApiKey(t *testing.T) {
	s := newTestServer(t, nil)

	assert.Equal(t, http.StatusUnauthorized, s.do("DELETE", "/v1/cache", "").Code)
	assert.Equal(t, http.StatusUnauthorized, s.do("DELETE", "/v1/cache", "wrong").Code)
}

func TestClearCacheFailsClosedWithoutConfiguredKey(t *testing.T) {
	s := newTestServer(t, func(cfg *config.MainRepoConfig) {
		cfg.Admin.ApiKey = ""
	})

	assert.Equal(t, http.StatusUnauthorized, s.do("DELETE", "/v1/cache", "").Code)
	assert.Equal(t, http.StatusUnauthorized, s.do("DELETE", "/v1/cache", "anything").Code)
}

func TestClearCacheUnknownDomain(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do("DELETE", "/v1/cache/sessions", testApiKey)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClearImageCacheThenRegenerate(t *testing.T) {
	s := newTestServer(t, nil)
	s.writeSource(t, "03", 400, 300)

	require.Equal(t, http.StatusOK, s.do("GET", "/image/03?size=preview", "").Code)
	assert.DirExists(t, s.cfg.Caches.ImagePath)

	rec := s.do("DELETE", "/v1/cache/image", testApiKey)
	require.Equal(t, http.StatusOK, rec.Code)
	result := make(map[string]string)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, map[string]string{"image": "success"}, result)
	assert.NoDirExists(t, s.cfg.Caches.ImagePath)

	require.Equal(t, http.StatusOK, s.do("GET", "/image/03?size=preview", "").Code)
	assert.FileExists(t, path.Join(s.cfg.Caches.ImagePath, "03_t_250x188.jpg"))
}

func TestClearAllCaches(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do("DELETE", "/v1/cache", testApiKey)
	require.Equal(t, http.StatusOK, rec.Code)
	result := make(map[string]string)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, map[string]string{"image": "success", "frontend": "success", "container": "success"}, result)
}

func TestBuildAndDeleteThumbnail(t *testing.T) {
	s := newTestServer(t, nil)
	// Not yet released, admins can still prepare it
	s.writeSource(t, "20", 400, 300)
	cached := path.Join(s.cfg.Caches.ImagePath, "20_t_250x188.jpg")

	assert.Equal(t, http.StatusUnauthorized, s.do("PUT", "/v1/images/20/preview", "").Code)

	require.Equal(t, http.StatusOK, s.do("PUT", "/v1/images/20/preview", testApiKey).Code)
	assert.FileExists(t, cached)

	assert.Equal(t, http.StatusOK, s.do("DELETE", "/v1/images/20/preview", testApiKey).Code)
	assert.NoFileExists(t, cached)

	assert.Equal(t, http.StatusNoContent, s.do("DELETE", "/v1/images/20/preview", testApiKey).Code)

	assert.Equal(t, http.StatusNotFound, s.do("PUT", "/v1/images/21/preview", testApiKey).Code)
	assert.Equal(t, http.StatusNotFound, s.do("PUT", "/v1/images/20/huge", testApiKey).Code)
}

func TestCalendarTracksOpenedDays(t *testing.T) {
	s := newTestServer(t, nil)
	s.writeSource(t, "03", 40, 30)

	rec := s.do("GET", "/image/03", "")
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "julender_session", cookies[0].Name)

	rec = s.do("GET", "/v1/calendar", "", cookies[0])
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Result().Cookies())

	calendar := &calendar_controller.Calendar{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), calendar))
	require.Len(t, calendar.Days, 24)
	assert.True(t, calendar.Days[2].Opened)
	assert.False(t, calendar.Days[3].Opened)
	assert.True(t, calendar.Days[9].Released)
	assert.False(t, calendar.Days[10].Released)
	assert.Equal(t, 1, calendar.Days[10].DaysRemaining)
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do("GET", "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true,"status":"Probably not dead"}`, rec.Body.String())
}

func TestUnknownRoutes(t *testing.T) {
	s := newTestServer(t, nil)

	assert.Equal(t, http.StatusNotFound, s.do("GET", "/nope", "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, s.do("POST", "/image/03", "").Code)
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, func(cfg *config.MainRepoConfig) {
		cfg.RateLimit.Enabled = true
		cfg.RateLimit.RequestsPerSecond = 1
		cfg.RateLimit.BurstCount = 1
	})

	assert.Equal(t, http.StatusOK, s.do("GET", "/healthz", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, s.do("GET", "/healthz", "").Code)
}

func mustAtoi(t *testing.T, s string) int {
	i, err := strconv.Atoi(s)
	require.NoError(t, err)
	return i
}

func TestCorsPreflight(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do("OPTIONS", "/v1/cache", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
