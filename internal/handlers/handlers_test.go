package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jjenkins/boardsite/internal/config"
	"github.com/jjenkins/boardsite/internal/content"
	"github.com/jjenkins/boardsite/internal/content/contenttest"
	"github.com/jjenkins/boardsite/internal/model"
	"github.com/jjenkins/boardsite/internal/service"
	"github.com/jjenkins/boardsite/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVisits struct {
	mu      sync.Mutex
	ids     []uuid.UUID
	err     error
	summary *service.VisitorSummary
}

func (f *fakeVisits) Record(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ids = append(f.ids, id)
	return f.err
}

func (f *fakeVisits) Summary(context.Context) (*service.VisitorSummary, error) {
	if f.summary == nil {
		return nil, errors.New("no summary")
	}
	return f.summary, nil
}

type echoAssistant struct{}

func (echoAssistant) GetResponse(_ context.Context, message string) string {
	return "you asked: " + message
}

type testSite struct {
	app       *fiber.App
	backend   *contenttest.Backend
	container *content.Container
	visits    *fakeVisits
}

func newTestSite(t *testing.T, admin config.AdminConfig) *testSite {
	t.Helper()
	quiet := log.New(io.Discard, "", 0)

	backend := contenttest.NewBackend()
	container := content.NewContainer(content.Defaults())
	visits := &fakeVisits{summary: &service.VisitorSummary{Today: 3, Total: 40}}

	app := fiber.New()
	Register(app, Site{
		Container: container,
		Refresher: content.NewAggregator(backend.Content(), container, content.WithLoggers(quiet, quiet)),
		Mutator:   content.NewMutator(backend.Content(), container, nil),
		Renderer:  service.NewRenderer(),
		Visits:    visits,
		Stats:     visits,
		Assistant: echoAssistant{},
		Admin:     admin,
	})

	return &testSite{app: app, backend: backend, container: container, visits: visits}
}

func (s *testSite) do(t *testing.T, method, path, body string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestHomePageSetsVisitorCookie(t *testing.T) {
	s := newTestSite(t, config.AdminConfig{})

	resp := s.do(t, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, readBody(t, resp), "Latest Notices")

	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == visitorCookie {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	require.Len(t, s.visits.ids, 1)
	assert.Equal(t, cookie.Value, s.visits.ids[0].String())
}

func TestReturningVisitorKeepsID(t *testing.T) {
	s := newTestSite(t, config.AdminConfig{})
	id := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/notices", nil)
	req.AddCookie(&http.Cookie{Name: visitorCookie, Value: id.String()})
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Cookies())
	assert.Equal(t, []uuid.UUID{id}, s.visits.ids)
}

func TestVisitFailureStillServesPage(t *testing.T) {
	s := newTestSite(t, config.AdminConfig{})
	s.visits.err = errors.New("database is down")

	resp := s.do(t, http.MethodGet, "/news", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPageBySlug(t *testing.T) {
	s := newTestSite(t, config.AdminConfig{})

	resp := s.do(t, http.MethodGet, "/pages/about", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "About the Board")

	resp = s.do(t, http.MethodGet, "/pages/no-such-page", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Page not found")
}

func TestContentAPI(t *testing.T) {
	s := newTestSite(t, config.AdminConfig{})

	resp := s.do(t, http.MethodGet, "/api/content", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Notices   []model.Notice         `json:"notices"`
		Sidebar   []model.SidebarSection `json:"sidebarSections"`
		IsLoading bool                   `json:"isLoading"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, s.container.Snapshot().Notices, body.Notices)
	assert.Len(t, body.Sidebar, len(s.container.Snapshot().Sidebar))
	assert.False(t, body.IsLoading)
}

func TestCreateNotice(t *testing.T) {
	s := newTestSite(t, config.AdminConfig{})

	resp := s.do(t, http.MethodPost, "/admin/api/notices", `{"title":"Revised date sheet","date":"2024-05-02","category":"exams"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var saved model.Notice
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&saved))
	assert.NotZero(t, saved.ID)
	assert.Equal(t, saved, s.container.Snapshot().Notices[0])
	assert.Len(t, s.backend.Notices.Rows, 1)
}

func TestMutationStatusCodes(t *testing.T) {
	s := newTestSite(t, config.AdminConfig{})
	before := s.container.Snapshot()

	resp := s.do(t, http.MethodPost, "/admin/api/notices", `{"date":"2024-05-02"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "missing title")

	resp = s.do(t, http.MethodPost, "/admin/api/notices", `{not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "malformed body")

	resp = s.do(t, http.MethodPut, "/admin/api/notices/999", `{"title":"x","date":"2024-05-02"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "missing row")

	resp = s.do(t, http.MethodDelete, "/admin/api/pages/abc", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "bad id")

	s.backend.News.Err = errors.New("connection refused")
	resp = s.do(t, http.MethodPost, "/admin/api/news", `{"content":"Results announced"}`)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode, "backend failure")

	assert.Equal(t, before, s.container.Snapshot())
}

func TestStatusForConflict(t *testing.T) {
	err := &content.MutationError{
		Category: content.CategoryPages,
		Op:       content.OpCreate,
		Err:      fmt.Errorf("failed to create page about: %w", store.ErrConflict),
	}
	assert.Equal(t, http.StatusConflict, statusFor(err))
}

func TestUpdateAndDeleteNotice(t *testing.T) {
	s := newTestSite(t, config.AdminConfig{})
	resp := s.do(t, http.MethodPost, "/admin/api/notices", `{"title":"Draft","date":"2024-05-02"}`)
	var saved model.Notice
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&saved))

	resp = s.do(t, http.MethodPut, fmt.Sprintf("/admin/api/notices/%d", saved.ID), `{"id":1,"title":"Final","date":"2024-05-02"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Final", s.container.Snapshot().Notices[0].Title)
	assert.Equal(t, saved.ID, s.container.Snapshot().Notices[0].ID)

	n := len(s.container.Snapshot().Notices)
	resp = s.do(t, http.MethodDelete, fmt.Sprintf("/admin/api/notices/%d", saved.ID), "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Len(t, s.container.Snapshot().Notices, n-1)
}

func TestReplaceSidebar(t *testing.T) {
	s := newTestSite(t, config.AdminConfig{})
	body := `[
		{"title":"Chairman","type":"message","payload":{"message":"Welcome"}},
		{"title":"Links","type":"list","payload":{"items":[{"label":"Results","url":"/pages/results"}]}}
	]`

	resp := s.do(t, http.MethodPut, "/admin/api/sidebar", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	got := s.container.Snapshot().Sidebar
	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].OrderIndex)
	assert.Equal(t, 1, got[1].OrderIndex)
	assert.Equal(t, model.SectionList, got[1].Kind())

	resp = s.do(t, http.MethodPut, "/admin/api/sidebar", `[{"title":"Video","type":"video","payload":{}}]`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateSettings(t *testing.T) {
	s := newTestSite(t, config.AdminConfig{})

	resp := s.do(t, http.MethodPut, "/admin/api/settings/topBarConfig", `{"phone":"+92-61-111","email":"desk@board.test","showDateTime":false}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, model.TopBarConfig{Phone: "+92-61-111", Email: "desk@board.test"}, s.container.Snapshot().TopBar)

	resp = s.do(t, http.MethodPut, "/admin/api/settings/themeColor", `{"primary":"green"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = s.do(t, http.MethodPut, "/admin/api/settings/footerConfig", `{oops`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRefreshReport(t *testing.T) {
	s := newTestSite(t, config.AdminConfig{})
	s.backend.Notices.Rows = []model.Notice{{ID: 7, Title: "From the store", Date: model.MustDate("2024-06-01")}}
	s.backend.Pages.Err = errors.New("timeout")

	resp := s.do(t, http.MethodPost, "/admin/api/refresh", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body refreshResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Results, len(content.Categories))
	assert.Equal(t, 1, body.Failed)
	assert.Equal(t, "From the store", s.container.Snapshot().Notices[0].Title)
}

func TestAdminRequiresCredentialsWhenConfigured(t *testing.T) {
	s := newTestSite(t, config.AdminConfig{User: "editor", Password: "secret"})

	resp := s.do(t, http.MethodPost, "/admin/api/refresh", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest(http.MethodPost, "/admin/api/refresh", nil)
	req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte("editor:secret")))
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = s.do(t, http.MethodGet, "/api/content", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode, "public API stays open")
}

func TestChat(t *testing.T) {
	s := newTestSite(t, config.AdminConfig{})

	resp := s.do(t, http.MethodPost, "/api/chat", `{"message":"  When are results out?  "}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"reply":"you asked: When are results out?"}`, readBody(t, resp))

	resp = s.do(t, http.MethodPost, "/api/chat", fmt.Sprintf(`{"message":%q}`, strings.Repeat("a", maxChatMessage+1)))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStats(t *testing.T) {
	s := newTestSite(t, config.AdminConfig{})

	resp := s.do(t, http.MethodGet, "/api/stats", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body statsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 3, body.Visitors.Today)
	assert.Equal(t, len(s.container.Snapshot().Notices), body.Notices)

	s.visits.summary = nil
	resp = s.do(t, http.MethodGet, "/api/stats", "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestPageWithUrduTitle(t *testing.T) {
	s := newTestSite(t, config.AdminConfig{})

	resp := s.do(t, http.MethodPost, "/admin/api/pages", `{"title":"نتائج میٹرک 2024","date":"2024-07-01","content":"Results are out."}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var saved model.Page
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&saved))
	assert.Equal(t, "نتائج-میٹرک-2024", saved.Slug)

	resp = s.do(t, http.MethodGet, "/pages/"+url.PathEscape(saved.Slug), "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Results are out.")

	resp = s.do(t, http.MethodPost, "/admin/api/pages", `{"title":"???","date":"2024-07-01"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "enter one")
}
