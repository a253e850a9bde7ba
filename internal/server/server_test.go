package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/bryan-buckman/mvphub/internal/action"
	"github.com/bryan-buckman/mvphub/internal/app"
	"github.com/bryan-buckman/mvphub/internal/database"
	"github.com/bryan-buckman/mvphub/internal/hub"
	"github.com/bryan-buckman/mvphub/internal/logging"
	"github.com/bryan-buckman/mvphub/internal/metrics"
	"github.com/bryan-buckman/mvphub/internal/storage"
)

var fixedNow = time.Date(2025, 9, 2, 12, 0, 0, 0, time.UTC)

type testServer struct {
	*Server
	hub     *hub.Hub
	pending []func()
}

func newTestServer(t *testing.T, reg *prometheus.Registry) *testServer {
	t.Helper()
	now := func() time.Time { return fixedNow }
	var rec metrics.Recorder = metrics.Nop{}
	var gatherer prometheus.Gatherer
	if reg != nil {
		rec = metrics.NewCollector(reg)
		gatherer = reg
	}
	adapter := storage.New(database.NewMemory(), logging.Discard(), rec)
	h := hub.Load(adapter, hub.Options{Now: now, Logger: logging.Discard()})

	ts := &testServer{hub: h}
	srv, err := New(h, Options{
		Logger:   logging.Discard(),
		Metrics:  rec,
		Gatherer: gatherer,
		Controller: app.Options{
			Now:      now,
			Schedule: func(_ time.Duration, fn func()) { ts.pending = append(ts.pending, fn) },
		},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ts.Server = srv
	return ts
}

func (ts *testServer) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	ts.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func (ts *testServer) post(t *testing.T, ev action.Event) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(ev)
	if err != nil {
		t.Fatal(err)
	}
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/events", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	ts.ServeHTTP(rr, req)
	return rr
}

func decodeView(t *testing.T, rr *httptest.ResponseRecorder) (viewResponse, *goquery.Document) {
	t.Helper()
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body.String())
	}
	var v viewResponse
	if err := json.NewDecoder(rr.Body).Decode(&v); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(v.Body))
	if err != nil {
		t.Fatalf("parse body: %v", err)
	}
	return v, doc
}

func clickID(id string) action.Event {
	return action.Event{Type: action.EventClick, Path: []action.Element{{ID: id}}}
}

func TestHome(t *testing.T) {
	ts := newTestServer(t, nil)
	rr := ts.get(t, "/")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q", ct)
	}
	doc, err := goquery.NewDocumentFromReader(rr.Body)
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := doc.Find("html").Attr("data-color-scheme"); got != "light" {
		t.Errorf("data-color-scheme = %q, want light", got)
	}
	if !doc.Find("#dashboard-section").HasClass("active") {
		t.Error("dashboard section not active")
	}
	if doc.Find("script[src='/static/app.js']").Length() != 1 {
		t.Error("page script missing")
	}
}

func TestSectionRoute(t *testing.T) {
	ts := newTestServer(t, nil)
	rr := ts.get(t, "/section/events")
	doc, err := goquery.NewDocumentFromReader(rr.Body)
	if err != nil {
		t.Fatal(err)
	}
	if !doc.Find("#events-section").HasClass("active") {
		t.Error("events section not active")
	}

	if rr := ts.get(t, "/section/nope"); rr.Code != http.StatusNotFound {
		t.Errorf("unknown section status = %d, want 404", rr.Code)
	}
}

func TestStatic(t *testing.T) {
	ts := newTestServer(t, nil)
	for _, path := range []string{"/static/app.js", "/static/style.css"} {
		if rr := ts.get(t, path); rr.Code != http.StatusOK {
			t.Errorf("GET %s = %d", path, rr.Code)
		}
	}
}

func TestEvent_ToggleTheme(t *testing.T) {
	ts := newTestServer(t, nil)
	v, doc := decodeView(t, ts.post(t, action.Event{
		Type: action.EventClick,
		Path: []action.Element{{Classes: []string{"theme-icon"}}, {ID: "themeToggle"}},
	}))
	if v.Theme != "dark" {
		t.Errorf("theme = %q, want dark", v.Theme)
	}
	if doc.Find("#dashboard-section").Length() != 1 {
		t.Error("body is missing the section containers")
	}
}

func TestEvent_Navigate(t *testing.T) {
	ts := newTestServer(t, nil)
	v, doc := decodeView(t, ts.post(t, action.Event{
		Type: action.EventClick,
		Path: []action.Element{{Classes: []string{"nav-item"}, Data: map[string]string{"section": "bookmarks"}}},
	}))
	if v.Section != "bookmarks" {
		t.Errorf("section = %q", v.Section)
	}
	if !doc.Find("#bookmarks-section").HasClass("active") {
		t.Error("bookmarks section not active")
	}
}

func TestEvent_UnknownSectionKeepsView(t *testing.T) {
	ts := newTestServer(t, nil)
	v, _ := decodeView(t, ts.post(t, action.Event{
		Type: action.EventClick,
		Path: []action.Element{{Data: map[string]string{"section": "nowhere"}}},
	}))
	if v.Section != "dashboard" {
		t.Errorf("section = %q, want dashboard", v.Section)
	}
}

func TestEvent_NoMatch(t *testing.T) {
	ts := newTestServer(t, nil)
	rr := ts.post(t, action.Event{Type: action.EventClick, Path: []action.Element{{Classes: []string{"card"}}}})
	if rr.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rr.Code)
	}
}

func TestEvent_Malformed(t *testing.T) {
	ts := newTestServer(t, nil)
	rr := httptest.NewRecorder()
	ts.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/events", strings.NewReader("{")))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}

func TestEvent_ShareAndNotice(t *testing.T) {
	ts := newTestServer(t, nil)
	v, doc := decodeView(t, ts.post(t, action.Event{
		Type: action.EventClick,
		Path: []action.Element{{Classes: []string{"action-btn", "share-btn"}, Data: map[string]string{"articleId": "1"}}},
	}))
	a, _ := ts.hub.Article(1)
	if !strings.HasPrefix(v.Clipboard, a.Title+"\n") {
		t.Errorf("clipboard = %q", v.Clipboard)
	}
	if got := doc.Find(".toast.success .toast-message").Text(); got != "Article link copied to clipboard!" {
		t.Errorf("toast = %q", got)
	}
	if v.RefreshAfter != app.DefaultNoticeTTL.Milliseconds() {
		t.Errorf("refreshAfter = %d, want %d", v.RefreshAfter, app.DefaultNoticeTTL.Milliseconds())
	}
}

func TestExport(t *testing.T) {
	ts := newTestServer(t, nil)
	v, _ := decodeView(t, ts.post(t, clickID("exportDataBtn")))
	if v.Download != "/api/export" {
		t.Fatalf("download = %q", v.Download)
	}

	rr := ts.get(t, v.Download)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if got := rr.Header().Get("Content-Disposition"); got != "attachment; filename=mvp-hub-data-2025-09-02.json" {
		t.Errorf("Content-Disposition = %q", got)
	}
	var doc hub.ExportDocument
	if err := json.Unmarshal(rr.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if doc.Profile.Name != "MVP Candidate" || len(doc.Goals) != 3 {
		t.Errorf("export = %+v", doc)
	}
}

func TestFindEventsFlow(t *testing.T) {
	ts := newTestServer(t, nil)
	decodeView(t, ts.post(t, clickID("findEventsBtn")))

	ev := clickID("searchEventsBtn")
	ev.Values = map[string]string{"searchLocation": "Vienna"}
	v, doc := decodeView(t, ts.post(t, ev))
	if v.RefreshAfter != app.DefaultSearchDelay.Milliseconds() {
		t.Errorf("refreshAfter = %d, want %d", v.RefreshAfter, app.DefaultSearchDelay.Milliseconds())
	}
	if doc.Find("#loadingIndicator").HasClass("hidden") {
		t.Error("loading indicator hidden while searching")
	}
	if len(ts.pending) != 1 {
		t.Fatalf("pending = %d, want 1", len(ts.pending))
	}

	ts.pending[0]()
	_, doc = decodeView(t, ts.get(t, "/api/view"))
	if n := doc.Find("#eventSearchResults .search-result-item").Length(); n != 3 {
		t.Errorf("results = %d, want 3", n)
	}
}

func TestOPMLExportAndImport(t *testing.T) {
	ts := newTestServer(t, nil)

	rr := ts.get(t, "/api/export-opml")
	if rr.Code != http.StatusOK {
		t.Fatalf("export status = %d", rr.Code)
	}
	exported := rr.Body.Bytes()
	for _, f := range ts.hub.Feeds() {
		if !bytes.Contains(exported, []byte(f.URL)) {
			t.Errorf("export is missing %s", f.URL)
		}
	}

	doc := `<opml version="2.0"><body><outline text="Community">` +
		`<outline text="Dev Blog" xmlUrl="https://devblogs.example/feed"/></outline></body></opml>`
	imported, total := ts.importOPML(t, doc)
	if imported != 1 || total != 1 {
		t.Errorf("imported %d of %d, want 1 of 1", imported, total)
	}
	imported, _ = ts.importOPML(t, string(exported))
	if imported != 0 {
		t.Errorf("re-import of existing feeds imported %d", imported)
	}
	feeds := ts.hub.Feeds()
	if last := feeds[len(feeds)-1]; last.Category != "Community" || last.Status != "pending" {
		t.Errorf("imported feed = %+v", last)
	}
}

func (ts *testServer) importOPML(t *testing.T, doc string) (imported, total int) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("opml", "feeds.opml")
	if err != nil {
		t.Fatal(err)
	}
	fw.Write([]byte(doc))
	mw.Close()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/import-opml", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	ts.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("import status = %d: %s", rr.Code, rr.Body.String())
	}
	var resp struct {
		Imported int `json:"imported"`
		Total    int `json:"total"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	return resp.Imported, resp.Total
}

func TestImportOPML_NoFile(t *testing.T) {
	ts := newTestServer(t, nil)
	rr := httptest.NewRecorder()
	ts.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/import-opml", nil))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t, prometheus.NewRegistry())
	ts.post(t, clickID("addFeedBtn"))

	rr := ts.get(t, "/metrics")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `mvphub_actions_total{kind="show-add-feed"} 1`) {
		t.Errorf("metrics missing action counter:\n%s", rr.Body.String())
	}
}

func TestMetricsEndpoint_DisabledWithoutGatherer(t *testing.T) {
	ts := newTestServer(t, nil)
	if rr := ts.get(t, "/metrics"); rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rr.Code)
	}
}
