// Package view renders dashboard snapshots to HTML.
//
// Rendering is a pure function of a Snapshot: templates read the snapshot and
// the helpers defined on it, and never change the domain model. Every list has a
// defined empty-state fragment.
package view

import (
	"fmt"
	"html"
	"html/template"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/bryan-buckman/mvphub/internal/filter"
	"github.com/bryan-buckman/mvphub/internal/model"
)

// Section names, in navigation order.
const (
	SectionDashboard = "dashboard"
	SectionNews      = "news"
	SectionRSS       = "rss"
	SectionEvents    = "events"
	SectionJourney   = "journey"
	SectionContent   = "content"
	SectionBookmarks = "bookmarks"
	SectionProfile   = "profile"
)

// Sections lists every section that has a container in the page.
var Sections = []string{
	SectionDashboard, SectionNews, SectionRSS, SectionEvents,
	SectionJourney, SectionContent, SectionBookmarks, SectionProfile,
}

// HasSection reports whether name is a known section.
func HasSection(name string) bool { return slices.Contains(Sections, name) }

// Modal element ids.
const (
	ModalArticle        = "articleModal"
	ModalAddFeed        = "addFeedModal"
	ModalEditProfile    = "editProfileModal"
	ModalAddEvent       = "addEventModal"
	ModalFindEvents     = "findEventsModal"
	ModalContentIdeas   = "contentIdeasModal"
	ModalAddContentIdea = "addContentIdeaModal"
)

// Severity of a notice.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notice is a transient toast message.
type Notice struct {
	ID       string
	Severity Severity
	Message  string
}

// Title is the capitalized severity shown as the toast heading.
func (n Notice) Title() string {
	s := string(n.Severity)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// SearchState is the result pane of the event finder.
type SearchState struct {
	Topics  []string
	Loading bool
	Done    bool
	Results []model.EventListing
}

// Snapshot is everything the renderer needs to draw the page.
type Snapshot struct {
	Now     time.Time
	Theme   model.Theme
	Section string

	Articles    []model.Article
	Bookmarks   []model.Bookmark
	Feeds       []model.RssFeed
	Conferences []model.Conference
	Ideas       []model.ContentIdea
	Goals       []model.Goal
	Profile     model.UserProfile
	Settings    model.Settings
	Stats       model.Stats

	News             filter.Criteria
	BookmarkCategory string
	ContentType      string

	// Modals holds the ids of the open modals, bottom first.
	Modals          []string
	Form            map[string]string
	Article         *model.Article
	EventModalTitle string
	IdeaModalTitle  string
	Search          SearchState
	Notices         []Notice
}

// SectionActive reports whether name is the current section.
func (s Snapshot) SectionActive(name string) bool { return s.Section == name }

// ModalOpen reports whether the modal with id is visible.
func (s Snapshot) ModalOpen(id string) bool { return slices.Contains(s.Modals, id) }

// FormValue returns the prefilled value of the form control with id.
func (s Snapshot) FormValue(id string) string { return s.Form[id] }

// IsBookmarked reports whether the article id is bookmarked.
func (s Snapshot) IsBookmarked(id int64) bool {
	return slices.ContainsFunc(s.Bookmarks, func(b model.Bookmark) bool { return b.ID == id })
}

// Date formats a stored date relative to Now.
func (s Snapshot) Date(date string) string { return FormatDate(date, s.Now) }

// DateRange formats an event's start and end date.
func (s Snapshot) DateRange(start, end string) string { return FormatDateRange(start, end) }

// LatestNews is the dashboard news widget: the first three articles.
func (s Snapshot) LatestNews() []model.Article { return firstN(s.Articles, 3) }

// UpcomingEvents returns at most three conferences starting strictly after Now,
// in insertion order.
func (s Snapshot) UpcomingEvents() []model.Conference {
	var out []model.Conference
	for _, c := range s.Conferences {
		start, err := model.ParseDate(c.StartDate)
		if err != nil || !start.After(s.Now) {
			continue
		}
		out = append(out, c)
		if len(out) == 3 {
			break
		}
	}
	return out
}

// RecentBookmarks returns the last three bookmarks, newest first.
func (s Snapshot) RecentBookmarks() []model.Bookmark {
	n := len(s.Bookmarks)
	out := slices.Clone(s.Bookmarks[max(0, n-3):])
	slices.Reverse(out)
	return out
}

// FilteredArticles applies the news criteria.
func (s Snapshot) FilteredArticles() []model.Article {
	return filter.Articles(s.Articles, s.News, s.Now)
}

// ArticleCard is an article as drawn in the news list.
type ArticleCard struct {
	model.Article
	Bookmarked bool
	When       string
}

// ArticleCards decorates the filtered articles with their bookmark state.
func (s Snapshot) ArticleCards() []ArticleCard {
	articles := s.FilteredArticles()
	out := make([]ArticleCard, 0, len(articles))
	for _, a := range articles {
		out = append(out, ArticleCard{Article: a, Bookmarked: s.IsBookmarked(a.ID), When: s.Date(a.Date)})
	}
	return out
}

// NewsTabs returns the category tabs: All followed by every article category.
func (s Snapshot) NewsTabs() []string {
	return append([]string{filter.All}, filter.Categories(s.Articles)...)
}

// NewsCategory is the active tab value.
func (s Snapshot) NewsCategory() string {
	if s.News.Category == "" {
		return filter.All
	}
	return s.News.Category
}

// Sources lists the distinct article sources for the source selector.
func (s Snapshot) Sources() []string { return filter.Sources(s.Articles) }

// BookmarkCategories lists the categories offered by the bookmarks selector.
func (s Snapshot) BookmarkCategories() []string { return filter.Categories(s.Articles) }

// FilteredBookmarks applies the bookmark category selector.
func (s Snapshot) FilteredBookmarks() []model.Bookmark {
	return filter.Bookmarks(s.Bookmarks, s.BookmarkCategory)
}

// ActiveContentType is the content ideas tab value.
func (s Snapshot) ActiveContentType() string {
	if s.ContentType == "" {
		return filter.All
	}
	return s.ContentType
}

// ContentTabs returns All followed by every content type.
func (s Snapshot) ContentTabs() []string {
	out := []string{filter.All}
	for _, t := range model.ContentTypes {
		out = append(out, string(t))
	}
	return out
}

// FilteredIdeas applies the content type tab.
func (s Snapshot) FilteredIdeas() []model.ContentIdea {
	return filter.ContentIdeas(s.Ideas, s.ContentType)
}

// IdeaCount counts the content ideas of type t.
func (s Snapshot) IdeaCount(t string) int {
	return len(filter.ContentIdeas(s.Ideas, t))
}

// FullContent renders an article body for the detail modal.
func (s Snapshot) FullContent(a model.Article) template.HTML {
	if a.FullContent != "" {
		return FormatFullContent(a.FullContent)
	}
	return FormatFullContent(a.Excerpt)
}

// Checked reports whether the settings checkbox name is on.
func (s Snapshot) Checked(name string) bool {
	switch model.Setting(name) {
	case model.SettingNews:
		return s.Settings.NewsNotifications
	case model.SettingConference:
		return s.Settings.ConferenceNotifications
	case model.SettingMVP:
		return s.Settings.MVPNotifications
	}
	return false
}

// NavItem is one entry of the navigation bar.
type NavItem struct {
	Section string
	Label   string
}

var navItems = []NavItem{
	{SectionDashboard, "Dashboard"},
	{SectionNews, "News"},
	{SectionRSS, "RSS Feeds"},
	{SectionEvents, "Events"},
	{SectionJourney, "MVP Journey"},
	{SectionContent, "Content Hub"},
	{SectionBookmarks, "Bookmarks"},
	{SectionProfile, "Profile"},
}

// NavItems returns the navigation bar entries.
func (Snapshot) NavItems() []NavItem { return navItems }

// DateWindows are the news date selector options, in days.
func (Snapshot) DateWindows() []int { return []int{1, 7, 30, 90} }

// EventTopics are the topic checkboxes of the event finder.
func (Snapshot) EventTopics() []string {
	return []string{"AI", "Azure", "Business Central", "Business Applications", "Automation"}
}

// TopicChecked reports whether topic was selected in the last event search.
func (s Snapshot) TopicChecked(topic string) bool { return slices.Contains(s.Search.Topics, topic) }

// EventTypes are the event type selector options.
func (Snapshot) EventTypes() []string {
	return []string{"Conference", "Premier Conference", "Regional Conference", "User Group", "Meetup", "Webinar"}
}

func (Snapshot) Involvements() []model.Involvement {
	return []model.Involvement{
		model.InvolvementConsidering, model.InvolvementAttending,
		model.InvolvementSpeaking, model.InvolvementOrganizing,
	}
}

func (Snapshot) ContentTypes() []model.ContentType { return model.ContentTypes }

func (Snapshot) Priorities() []model.Priority {
	return []model.Priority{model.PriorityLow, model.PriorityMedium, model.PriorityHigh}
}

func (Snapshot) Statuses() []model.IdeaStatus {
	return []model.IdeaStatus{model.StatusIdea, model.StatusDraft, model.StatusInProgress, model.StatusPublished}
}

// TabLabel is the caption of a category or content type tab.
func (Snapshot) TabLabel(v string) string {
	if v == filter.All {
		return "All"
	}
	return model.ContentType(v).Label()
}

func firstN[T any](s []T, n int) []T {
	return s[:min(n, len(s))]
}

const day = 24 * time.Hour

// FormatDate renders date relative to now: "Yesterday", "N days ago" within a
// week, "N weeks ago" within a month, otherwise "Jan 2, 2006". The distance is
// absolute and rounded up to whole days, so dates in the future read the same
// way. Unparsable input is returned unchanged.
func FormatDate(date string, now time.Time) string {
	t, err := model.ParseDate(date)
	if err != nil {
		return date
	}
	diff := now.Sub(t)
	if diff < 0 {
		diff = -diff
	}
	days := int(math.Ceil(float64(diff) / float64(day)))
	switch {
	case days == 1:
		return "Yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	case days < 30:
		return fmt.Sprintf("%d weeks ago", (days+6)/7)
	}
	return t.UTC().Format("Jan 2, 2006")
}

// FormatDateRange renders "Jan 2 - Jan 5, 2006", or a single date when start
// and end fall on the same day.
func FormatDateRange(start, end string) string {
	s, err := model.ParseDate(start)
	if err != nil {
		return start
	}
	e, err := model.ParseDate(end)
	if err != nil {
		e = s
	}
	s, e = s.UTC(), e.UTC()
	if s.Format(model.DateLayout) == e.Format(model.DateLayout) {
		return s.Format("Jan 2, 2006")
	}
	return s.Format("Jan 2") + " - " + e.Format("Jan 2, 2006")
}

var contentPolicy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("p", "ul", "li")
	return p
}()

// FormatFullContent turns plain article text into paragraphs. Paragraphs are
// separated by a blank line; a paragraph starting with a bullet becomes a list
// of its bulleted lines.
func FormatFullContent(content string) template.HTML {
	if content == "" {
		return template.HTML("<p>Content not available.</p>")
	}
	var b strings.Builder
	for _, para := range strings.Split(content, "\n\n") {
		if !strings.HasPrefix(para, "•") {
			b.WriteString("<p>" + html.EscapeString(para) + "</p>")
			continue
		}
		b.WriteString("<ul>")
		for _, line := range strings.Split(para, "\n") {
			line = strings.TrimSpace(line)
			if item, ok := strings.CutPrefix(line, "•"); ok {
				b.WriteString("<li>" + html.EscapeString(strings.TrimSpace(item)) + "</li>")
			}
		}
		b.WriteString("</ul>")
	}
	return template.HTML(contentPolicy.Sanitize(b.String()))
}
