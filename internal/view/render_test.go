package view

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/bryan-buckman/mvphub/internal/filter"
	"github.com/bryan-buckman/mvphub/internal/model"
)

func seedSnapshot() Snapshot {
	var id int64 = 100
	next := func() int64 { id++; return id }
	return Snapshot{
		Now:         testNow,
		Theme:       model.ThemeLight,
		Section:     SectionDashboard,
		Articles:    model.SeedArticles(),
		Bookmarks:   []model.Bookmark{},
		Feeds:       model.SeedFeeds(),
		Conferences: model.SeedConferences(next),
		Ideas:       model.SeedContentIdeas(next),
		Goals:       model.SeedGoals(next),
		Profile:     model.DefaultProfile(),
		Settings:    model.DefaultSettings(),
		Stats:       model.DefaultStats(),
	}
}

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func renderApp(t *testing.T, s Snapshot) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	if err := newRenderer(t).App(&buf, s); err != nil {
		t.Fatalf("App: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func renderSection(t *testing.T, name string, s Snapshot) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	if err := newRenderer(t).Section(&buf, name, s); err != nil {
		t.Fatalf("Section(%q): %v", name, err)
	}
	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func text(sel *goquery.Selection) string { return strings.TrimSpace(sel.Text()) }

func TestPage_ThemeAttribute(t *testing.T) {
	s := seedSnapshot()
	s.Theme = model.ThemeDark

	var buf bytes.Buffer
	if err := newRenderer(t).Page(&buf, s); err != nil {
		t.Fatalf("Page: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got, _ := doc.Find("html").Attr("data-color-scheme"); got != "dark" {
		t.Errorf("data-color-scheme = %q, want dark", got)
	}
	if got := text(doc.Find("#themeToggle .theme-icon")); got != "☀️" {
		t.Errorf("theme icon = %q", got)
	}
}

func TestApp_OnlyActiveSectionRendered(t *testing.T) {
	s := seedSnapshot()
	s.Section = SectionEvents
	doc := renderApp(t, s)

	if doc.Find(".section").Length() != len(Sections) {
		t.Errorf("section containers = %d, want %d", doc.Find(".section").Length(), len(Sections))
	}
	active := doc.Find(".section.active")
	if active.Length() != 1 {
		t.Fatalf("active sections = %d, want 1", active.Length())
	}
	if id, _ := active.Attr("id"); id != "events-section" {
		t.Errorf("active section = %q, want events-section", id)
	}
	if doc.Find("#dashboard-section").Children().Length() != 0 {
		t.Error("inactive section has content")
	}
	if got := text(doc.Find(`.nav-item.active`)); got != "Events" {
		t.Errorf("active nav item = %q, want Events", got)
	}
}

func TestDashboard_Widgets(t *testing.T) {
	doc := renderSection(t, SectionDashboard, seedSnapshot())

	if got := text(doc.Find("#blogPostCount")); got != "23" {
		t.Errorf("blogPostCount = %q, want 23", got)
	}
	if got := doc.Find("#latestNews .list-item").Length(); got != 2 {
		t.Errorf("latest news items = %d, want 2", got)
	}
	if got := text(doc.Find("#upcomingEvents .list-item-title")); got != "Microsoft Ignite 2025" {
		t.Errorf("upcoming event = %q", got)
	}
	if got := text(doc.Find("#recentBookmarks .empty-state")); got != "No bookmarks yet. Save articles to see them here." {
		t.Errorf("recent bookmarks empty state = %q", got)
	}
}

func TestDashboard_NoUpcomingEvents(t *testing.T) {
	s := seedSnapshot()
	s.Conferences = nil
	doc := renderSection(t, SectionDashboard, s)

	empty := doc.Find("#upcomingEvents .empty-state")
	if empty.Length() != 1 {
		t.Fatal("missing upcoming events empty state")
	}
	if got, _ := empty.Find("a").Attr("data-section"); got != SectionEvents {
		t.Errorf("empty state link = %q, want events", got)
	}
}

func TestNews_BookmarkStarReflectsMembership(t *testing.T) {
	s := seedSnapshot()
	s.Section = SectionNews
	s.Bookmarks = []model.Bookmark{model.NewBookmark(s.Articles[1])}
	doc := renderSection(t, SectionNews, s)

	stars := map[string]string{}
	doc.Find("#articlesList .bookmark-btn").Each(func(_ int, sel *goquery.Selection) {
		id, _ := sel.Attr("data-article-id")
		stars[id] = text(sel)
	})
	if stars["1"] != "☆" || stars["2"] != "★" {
		t.Errorf("stars = %v, want 1:☆ 2:★", stars)
	}
}

func TestNews_FilteredAndEmpty(t *testing.T) {
	s := seedSnapshot()
	s.News = filter.Criteria{Category: "Azure AI"}
	doc := renderSection(t, SectionNews, s)

	cards := doc.Find("#articlesList .article-card")
	if cards.Length() != 1 {
		t.Fatalf("cards = %d, want 1", cards.Length())
	}
	if id, _ := cards.Attr("data-article-id"); id != "2" {
		t.Errorf("card id = %q, want 2", id)
	}
	if got := text(doc.Find(".tab-btn.active")); got != "Azure AI" {
		t.Errorf("active tab = %q", got)
	}

	s.News = filter.Criteria{Query: "no such words"}
	doc = renderSection(t, SectionNews, s)
	if got := text(doc.Find("#articlesList .empty-state h3")); got != "No articles found" {
		t.Errorf("empty state = %q", got)
	}
}

func TestBookmarks_EmptyState(t *testing.T) {
	s := seedSnapshot()
	s.Bookmarks = nil
	doc := renderSection(t, SectionBookmarks, s)

	if got := text(doc.Find("#bookmarksList .empty-state h3")); got != "No bookmarks yet" {
		t.Errorf("empty state = %q, want %q", got, "No bookmarks yet")
	}
	if doc.Find("#bookmarksList .article-card").Length() != 0 {
		t.Error("empty bookmarks rendered cards")
	}
}

func TestBookmarks_CategoryFilter(t *testing.T) {
	s := seedSnapshot()
	s.Bookmarks = []model.Bookmark{model.NewBookmark(s.Articles[0])}
	s.BookmarkCategory = "Azure AI"
	doc := renderSection(t, SectionBookmarks, s)
	if got := text(doc.Find("#bookmarksList .empty-state h3")); got != "No bookmarks in this category" {
		t.Errorf("filtered empty state = %q", got)
	}

	s.BookmarkCategory = ""
	doc = renderSection(t, SectionBookmarks, s)
	if doc.Find("#bookmarksList .remove-bookmark-btn").Length() != 1 {
		t.Error("missing remove bookmark button")
	}
}

func TestEvents_Card(t *testing.T) {
	s := seedSnapshot()
	s.Conferences = append(s.Conferences, model.Conference{
		ID: 7, Name: "Local Meetup", StartDate: "2025-10-01", EndDate: "2025-10-01",
		Location: "Brno", Type: "Meetup", Topics: []string{}, Involvement: "volunteering",
	})
	doc := renderSection(t, SectionEvents, s)

	cards := doc.Find("#eventsList .event-card")
	if cards.Length() != 2 {
		t.Fatalf("event cards = %d, want 2", cards.Length())
	}
	ignite := cards.First()
	if got := text(ignite.Find(".event-detail span").First()); got != "Nov 17 - Nov 21, 2025" {
		t.Errorf("date range = %q", got)
	}
	if got := text(ignite.Find(".event-badge")); got != "Attending" {
		t.Errorf("badge = %q", got)
	}
	meetup := cards.Last()
	if got := text(meetup.Find(".event-topics")); got != "Not specified" {
		t.Errorf("topics = %q, want Not specified", got)
	}
	if got := text(meetup.Find(".event-badge")); got != "Unknown" {
		t.Errorf("badge = %q, want Unknown", got)
	}
	if meetup.Find(".event-notes").Length() != 0 {
		t.Error("nil notes rendered")
	}
}

func TestEvents_EmptyState(t *testing.T) {
	s := seedSnapshot()
	s.Conferences = nil
	doc := renderSection(t, SectionEvents, s)
	if got := text(doc.Find("#eventsList .empty-state h3")); got != "No events yet" {
		t.Errorf("empty state = %q", got)
	}
}

func TestJourney_GoalProgress(t *testing.T) {
	doc := renderSection(t, SectionJourney, seedSnapshot())
	if got := text(doc.Find(".goal-count").First()); got != "23/24 (96%)" {
		t.Errorf("goal progress = %q", got)
	}
}

func TestContent_Counts(t *testing.T) {
	doc := renderSection(t, SectionContent, seedSnapshot())
	want := map[string]string{
		"#blogIdeasCount":        "1 ideas",
		"#speakingTopicsCount":   "1 topics",
		"#contributionOppsCount": "0 tracked",
	}
	for sel, w := range want {
		if got := text(doc.Find(sel)); got != w {
			t.Errorf("%s = %q, want %q", sel, got, w)
		}
	}
}

func TestProfile_Settings(t *testing.T) {
	s := seedSnapshot()
	s.Settings.ConferenceNotifications = false
	doc := renderSection(t, SectionProfile, s)

	if _, ok := doc.Find("#newsNotifications").Attr("checked"); !ok {
		t.Error("newsNotifications not checked")
	}
	if _, ok := doc.Find("#conferenceNotifications").Attr("checked"); ok {
		t.Error("conferenceNotifications checked")
	}
	if doc.Find(".specialty-tags .tag").Length() != 3 {
		t.Error("specialties not rendered")
	}
}

func TestModals_HiddenUnlessOpen(t *testing.T) {
	s := seedSnapshot()
	a := s.Articles[0]
	a.FullContent = "Intro\n\n• one\n• two\n• three"
	s.Article = &a
	s.Modals = []string{ModalArticle}
	doc := renderApp(t, s)

	if doc.Find(".modal").Length() != 7 {
		t.Errorf("modals = %d, want 7", doc.Find(".modal").Length())
	}
	if doc.Find("#articleModal").HasClass("hidden") {
		t.Error("article modal hidden")
	}
	if doc.Find(".modal:not(.hidden)").Length() != 1 {
		t.Error("more than one modal visible")
	}
	if got := text(doc.Find("#articleModalTitle")); got != a.Title {
		t.Errorf("modal title = %q", got)
	}
	if got := doc.Find("#articleModalContent .article-full-content li").Length(); got != 3 {
		t.Errorf("bullet items = %d, want 3", got)
	}
}

func TestModals_FormPrefill(t *testing.T) {
	s := seedSnapshot()
	s.Modals = []string{ModalAddEvent}
	s.EventModalTitle = "Edit Event"
	s.Form = map[string]string{
		"eventName":        "Summit",
		"eventInvolvement": "speaking",
		"eventType":        "User Group",
		"eventNotes":       "bring <slides>",
	}
	doc := renderApp(t, s)

	if got, _ := doc.Find("#eventName").Attr("value"); got != "Summit" {
		t.Errorf("eventName = %q", got)
	}
	if got, _ := doc.Find("#eventInvolvement option[selected]").Attr("value"); got != "speaking" {
		t.Errorf("selected involvement = %q", got)
	}
	if got, _ := doc.Find("#eventType option[selected]").Attr("value"); got != "User Group" {
		t.Errorf("selected type = %q", got)
	}
	if got := doc.Find("#eventNotes").Text(); got != "bring <slides>" {
		t.Errorf("notes = %q", got)
	}
	if got := text(doc.Find("#eventModalTitle")); got != "Edit Event" {
		t.Errorf("title = %q", got)
	}
}

func TestModals_ContentIdeas(t *testing.T) {
	s := seedSnapshot()
	s.Modals = []string{ModalContentIdeas}
	s.ContentType = "blog"
	doc := renderApp(t, s)

	cards := doc.Find("#contentIdeasList .content-idea-card")
	if cards.Length() != 1 {
		t.Fatalf("idea cards = %d, want 1", cards.Length())
	}
	if got := text(cards.Find(".content-idea-priority")); got != "HIGH" {
		t.Errorf("priority = %q", got)
	}
	if got := text(doc.Find("#contentIdeasModal .tab-btn.active")); got != "Blog Post" {
		t.Errorf("active tab = %q", got)
	}

	s.ContentType = "contribution"
	doc = renderApp(t, s)
	if got := text(doc.Find("#contentIdeasList .empty-state h4")); got != "No content ideas yet" {
		t.Errorf("empty state = %q", got)
	}
}

func TestModals_EventSearchResults(t *testing.T) {
	s := seedSnapshot()
	s.Modals = []string{ModalFindEvents}
	s.Search = SearchState{Loading: true, Topics: []string{"AI"}}
	doc := renderApp(t, s)
	if doc.Find("#loadingIndicator").HasClass("hidden") {
		t.Error("loading indicator hidden while loading")
	}
	if doc.Find("#eventSearchResults").Children().Length() != 0 {
		t.Error("results shown while loading")
	}
	if _, ok := doc.Find(`input[name="searchTopics"][value="AI"]`).Attr("checked"); !ok {
		t.Error("selected topic not checked")
	}

	s.Search = SearchState{Done: true, Results: []model.EventListing{
		{Name: "A", Date: "2026-03-15", Topics: []string{"AI"}, Website: "https://a.example.com"},
		{Name: "B", Date: "2026-04-08", Topics: []string{"AI"}},
	}}
	doc = renderApp(t, s)
	if got := doc.Find(".search-result-item").Length(); got != 2 {
		t.Errorf("results = %d, want 2", got)
	}
	if got, _ := doc.Find(".add-search-result-btn").Last().Attr("data-result-index"); got != "1" {
		t.Errorf("result index = %q, want 1", got)
	}

	s.Search = SearchState{Done: true}
	doc = renderApp(t, s)
	if got := text(doc.Find("#eventSearchResults .empty-state h4")); got != "No events found" {
		t.Errorf("empty state = %q", got)
	}
}

func TestNotices(t *testing.T) {
	s := seedSnapshot()
	s.Notices = []Notice{{ID: "n1", Severity: SeverityError, Message: "Please enter a title"}}
	doc := renderApp(t, s)

	toast := doc.Find("#toastContainer .toast.error")
	if toast.Length() != 1 {
		t.Fatal("missing error toast")
	}
	if id, _ := toast.Attr("data-notice-id"); id != "n1" {
		t.Errorf("notice id = %q", id)
	}
	if got := text(toast.Find(".toast-title")); got != "Error" {
		t.Errorf("toast title = %q", got)
	}
}

func TestSection_Unknown(t *testing.T) {
	var buf bytes.Buffer
	err := newRenderer(t).Section(&buf, "settings", seedSnapshot())
	if !errors.Is(err, ErrUnknownSection) {
		t.Errorf("err = %v, want ErrUnknownSection", err)
	}
}
