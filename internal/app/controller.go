// Package app is the application controller: it owns the navigation state,
// the open modals and edit sub-state, and turns actions into domain changes
// and notices.
//
// A Controller is not safe for concurrent use. The server serializes every
// call, including deferred search callbacks, behind one lock.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/bryan-buckman/mvphub/internal/action"
	"github.com/bryan-buckman/mvphub/internal/filter"
	"github.com/bryan-buckman/mvphub/internal/hub"
	"github.com/bryan-buckman/mvphub/internal/metrics"
	"github.com/bryan-buckman/mvphub/internal/model"
	"github.com/bryan-buckman/mvphub/internal/view"
)

// Default timings.
const (
	DefaultSearchDelay = 1500 * time.Millisecond
	DefaultNoticeTTL   = 5 * time.Second
)

// ExportPath is where the browser downloads the JSON export from.
const ExportPath = "/api/export"

// ErrUnknownSection is wrapped by NavigationError.
var ErrUnknownSection = view.ErrUnknownSection

// NavigationError reports a request to show a section that does not exist.
type NavigationError struct {
	Section string
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("show section %q: %v", e.Section, ErrUnknownSection)
}

func (e *NavigationError) Unwrap() error { return ErrUnknownSection }

// Options configures New. Zero values select the defaults.
type Options struct {
	Now         func() time.Time
	Logger      *slog.Logger
	Metrics     metrics.Recorder
	SearchDelay time.Duration
	NoticeTTL   time.Duration
	// Schedule runs fn once after d. The default uses time.AfterFunc, which
	// runs fn on its own goroutine; callers sharing a Controller across
	// goroutines must supply a Schedule that takes their lock.
	Schedule func(d time.Duration, fn func())
	// NewID names notices.
	NewID func() string
}

// Outcome carries the side effects of an action that the browser performs.
type Outcome struct {
	Clipboard string
	Download  string
}

type notice struct {
	view.Notice
	expires time.Time
}

// Controller holds the UI state around a hub.
type Controller struct {
	hub         *hub.Hub
	now         func() time.Time
	logger      *slog.Logger
	metrics     metrics.Recorder
	searchDelay time.Duration
	noticeTTL   time.Duration
	schedule    func(time.Duration, func())
	newID       func() string

	section          string
	news             filter.Criteria
	bookmarkCategory string
	contentType      string

	modals  []string
	forms   map[string]map[string]string
	article *model.Article

	editingEventID   int64
	editingContentID int64

	search    view.SearchState
	searchDue time.Time
	searchSeq int
	notices   []notice

	outcome Outcome
}

var _ action.Handlers = (*Controller)(nil)

// New creates a Controller showing the dashboard.
func New(h *hub.Hub, opts Options) *Controller {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.Nop{}
	}
	if opts.SearchDelay <= 0 {
		opts.SearchDelay = DefaultSearchDelay
	}
	if opts.NoticeTTL <= 0 {
		opts.NoticeTTL = DefaultNoticeTTL
	}
	if opts.Schedule == nil {
		opts.Schedule = func(d time.Duration, fn func()) { time.AfterFunc(d, fn) }
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	return &Controller{
		hub:         h,
		now:         opts.Now,
		logger:      opts.Logger.With("component", "controller"),
		metrics:     opts.Metrics,
		searchDelay: opts.SearchDelay,
		noticeTTL:   opts.NoticeTTL,
		schedule:    opts.Schedule,
		newID:       opts.NewID,
		section:     view.SectionDashboard,
		contentType: filter.All,
		forms:       make(map[string]map[string]string),
	}
}

// Handle dispatches a to the controller and returns the browser side effects
// it produced. A NavigationError leaves the current section in place.
func (c *Controller) Handle(a action.Action) (Outcome, error) {
	c.outcome = Outcome{}
	if a == nil {
		return c.outcome, action.ErrUnhandled
	}
	c.metrics.RecordAction(a.Kind())
	c.logger.Debug("dispatch", "action", a.Kind())
	err := action.Dispatch(c, a)
	var navErr *NavigationError
	if errors.As(err, &navErr) {
		c.logger.Error("navigation failed", "section", navErr.Section, "error", err)
	}
	return c.outcome, err
}

// Section returns the active section.
func (c *Controller) Section() string { return c.section }

// EditingEventID returns the conference being edited, or 0.
func (c *Controller) EditingEventID() int64 { return c.editingEventID }

// EditingContentID returns the content idea being edited, or 0.
func (c *Controller) EditingContentID() int64 { return c.editingContentID }

// Snapshot captures everything the renderer needs. Expired notices are dropped.
func (c *Controller) Snapshot() view.Snapshot {
	c.prune()
	form := make(map[string]string)
	for _, m := range c.modals {
		maps.Copy(form, c.forms[m])
	}
	notices := make([]view.Notice, 0, len(c.notices))
	for _, n := range c.notices {
		notices = append(notices, n.Notice)
	}
	search := c.search
	search.Topics = slices.Clone(search.Topics)
	search.Results = slices.Clone(search.Results)

	eventTitle, ideaTitle := "Add Event", "Add Content Idea"
	if c.editingEventID != 0 {
		eventTitle = "Edit Event"
	}
	if c.editingContentID != 0 {
		ideaTitle = "Edit Content Idea"
	}
	return view.Snapshot{
		Now:              c.now(),
		Theme:            c.hub.Theme(),
		Section:          c.section,
		Articles:         c.hub.Articles(),
		Bookmarks:        c.hub.Bookmarks(),
		Feeds:            c.hub.Feeds(),
		Conferences:      c.hub.Conferences(),
		Ideas:            c.hub.ContentIdeas(),
		Goals:            c.hub.Goals(),
		Profile:          c.hub.Profile(),
		Settings:         c.hub.Settings(),
		Stats:            c.hub.Stats(),
		News:             c.news,
		BookmarkCategory: c.bookmarkCategory,
		ContentType:      c.contentType,
		Modals:           slices.Clone(c.modals),
		Form:             form,
		Article:          c.article,
		EventModalTitle:  eventTitle,
		IdeaModalTitle:   ideaTitle,
		Search:           search,
		Notices:          notices,
	}
}

// NextRefresh returns how long the browser should wait before fetching the
// view again, or 0 when nothing is pending.
func (c *Controller) NextRefresh() time.Duration {
	now := c.now()
	var next time.Duration
	consider := func(at time.Time) {
		d := max(at.Sub(now), 50*time.Millisecond)
		if next == 0 || d < next {
			next = d
		}
	}
	if c.search.Loading {
		consider(c.searchDue)
	}
	for _, n := range c.notices {
		consider(n.expires)
	}
	return next
}

// --- Navigation ---

// ShowSection activates the named section.
func (c *Controller) ShowSection(name string) error {
	if !view.HasSection(name) {
		return &NavigationError{Section: name}
	}
	c.logger.Debug("show section", "section", name)
	c.section = name
	return nil
}

// ToggleTheme flips the color scheme.
func (c *Controller) ToggleTheme() {
	theme := c.hub.ToggleTheme()
	c.logger.Debug("theme switched", "theme", theme)
}

// Search applies the header search box and shows the news section.
func (c *Controller) Search(query string) {
	c.news.Query = query
	if c.section != view.SectionNews {
		_ = c.ShowSection(view.SectionNews)
	}
}

// SwitchNewsCategory selects a news tab.
func (c *Controller) SwitchNewsCategory(category string) { c.news.Category = category }

// SetSourceFilter selects a news source; "" shows every source.
func (c *Controller) SetSourceFilter(source string) { c.news.Source = source }

// SetDateFilter limits news to the last days; 0 disables the window.
func (c *Controller) SetDateFilter(days int) { c.news.MaxAgeDays = days }

// SetBookmarkCategory selects the bookmark category filter.
func (c *Controller) SetBookmarkCategory(category string) { c.bookmarkCategory = category }

// SwitchContentType selects a content ideas tab.
func (c *Controller) SwitchContentType(contentType string) { c.contentType = contentType }

// --- Modals ---

func (c *Controller) openModal(id string, form map[string]string) {
	if !slices.Contains(c.modals, id) {
		c.modals = append(c.modals, id)
	}
	if form != nil {
		c.forms[id] = form
	} else {
		delete(c.forms, id)
	}
}

func (c *Controller) closeModal(id string) {
	c.modals = slices.DeleteFunc(c.modals, func(m string) bool { return m == id })
	delete(c.forms, id)
	switch id {
	case view.ModalAddEvent:
		c.editingEventID = 0
	case view.ModalAddContentIdea:
		c.editingContentID = 0
	case view.ModalArticle:
		c.article = nil
	}
}

// keepForm holds on to submitted values so a rejected form renders as typed.
func (c *Controller) keepForm(modal string, f action.Form) {
	c.forms[modal] = maps.Clone(f)
}

// CloseModals hides every modal and abandons any pending edit.
func (c *Controller) CloseModals() {
	for _, m := range slices.Clone(c.modals) {
		c.closeModal(m)
	}
}

// CancelModal closes one form modal without saving it.
func (c *Controller) CancelModal(modal string) { c.closeModal(modal) }

// ShowAddFeed opens the add-feed form.
func (c *Controller) ShowAddFeed() { c.openModal(view.ModalAddFeed, nil) }

// ShowEditProfile opens the profile form filled with the current profile.
func (c *Controller) ShowEditProfile() {
	c.openModal(view.ModalEditProfile, profileForm(c.hub.Profile()))
}

// ShowAddEvent opens an empty event form, dropping any abandoned edit.
func (c *Controller) ShowAddEvent() {
	c.editingEventID = 0
	c.openModal(view.ModalAddEvent, emptyEventForm())
}

// ShowContentIdeas opens the idea list on the given type tab.
func (c *Controller) ShowContentIdeas(contentType string) {
	if contentType == "" {
		contentType = filter.All
	}
	c.contentType = contentType
	c.openModal(view.ModalContentIdeas, nil)
}

// ShowAddContentIdea opens an empty idea form over the idea list.
func (c *Controller) ShowAddContentIdea() {
	c.editingContentID = 0
	c.openModal(view.ModalAddContentIdea, emptyIdeaForm())
}

// OpenArticle shows the detail modal for an article or bookmark.
func (c *Controller) OpenArticle(articleID int64) {
	a, ok := c.hub.ArticleOrBookmark(articleID)
	if !ok {
		c.logger.Warn("article not found", "id", articleID)
		return
	}
	c.article = &a
	c.openModal(view.ModalArticle, nil)
}

// --- Notices ---

func (c *Controller) notify(sev view.Severity, message string) {
	c.notices = append(c.notices, notice{
		Notice:  view.Notice{ID: c.newID(), Severity: sev, Message: message},
		expires: c.now().Add(c.noticeTTL),
	})
	c.metrics.RecordNotice(string(sev))
}

// notifyError reports a validation failure; other errors are only logged.
func (c *Controller) notifyError(op string, err error) {
	var vErr *hub.ValidationError
	if errors.As(err, &vErr) {
		c.notify(view.SeverityError, vErr.Message)
		return
	}
	c.logger.Warn(op+" failed", "error", err)
}

func (c *Controller) prune() {
	now := c.now()
	c.notices = slices.DeleteFunc(c.notices, func(n notice) bool { return !now.Before(n.expires) })
}

// DismissNotice removes a notice before it expires.
func (c *Controller) DismissNotice(id string) {
	c.notices = slices.DeleteFunc(c.notices, func(n notice) bool { return n.ID == id })
}
