// Package action turns delegated UI events into typed actions and dispatches
// them to a handler.
//
// The browser reports every click, keypress and change as an Event carrying
// the path from the target element up to the document root. Classify maps an
// Event to at most one Action by trying a fixed, ordered list of matchers, and
// Dispatch calls the matching Handlers method. Neither touches application
// state.
package action

import (
	"slices"
	"strings"

	"github.com/bryan-buckman/mvphub/internal/model"
)

// Event types reported by the page script.
const (
	EventClick    = "click"
	EventKeyPress = "keypress"
	EventChange   = "change"
)

// Element describes one DOM element on an event path. Data holds the element's
// data attributes keyed the way the DOM dataset does ("articleId" for
// data-article-id).
type Element struct {
	ID      string            `json:"id,omitempty"`
	Classes []string          `json:"classes,omitempty"`
	Data    map[string]string `json:"data,omitempty"`
	Value   string            `json:"value,omitempty"`
	Checked bool              `json:"checked,omitempty"`
}

// HasClass reports whether the element carries class c.
func (e Element) HasClass(c string) bool { return slices.Contains(e.Classes, c) }

// HasData reports whether the element has the data attribute key.
func (e Element) HasData(key string) bool {
	_, ok := e.Data[key]
	return ok
}

// Event is a serialized delegated UI event.
type Event struct {
	Type string `json:"type"`
	Key  string `json:"key,omitempty"`
	// Path starts at the event target and walks up through its ancestors.
	Path []Element `json:"path"`
	// Values holds the current value of every form control in the page, by id.
	Values map[string]string `json:"values,omitempty"`
	// Lists holds the values of the checked checkboxes, by input name.
	Lists map[string][]string `json:"lists,omitempty"`
}

// Target is the element the event was fired on.
func (ev Event) Target() Element {
	if len(ev.Path) == 0 {
		return Element{}
	}
	return ev.Path[0]
}

// closest returns the nearest element on the path, starting at the target,
// that satisfies match.
func (ev Event) closest(match func(Element) bool) (Element, bool) {
	for _, el := range ev.Path {
		if match(el) {
			return el, true
		}
	}
	return Element{}, false
}

// Form is a snapshot of form control values keyed by element id.
type Form map[string]string

// Get returns the trimmed value of the control with id.
func (f Form) Get(id string) string { return strings.TrimSpace(f[id]) }

// Action is a classified UI interaction. The set of implementations is closed.
type Action interface {
	// Kind names the action for logs and metrics.
	Kind() string
	isAction()
}

// Actions. Cancel closes a form modal without saving it.
type (
	Navigate            struct{ Section string }
	ToggleTheme         struct{}
	Search              struct{ Query string }
	CloseModals         struct{}
	ShowEditProfile     struct{}
	ShowAddEvent        struct{}
	ShowFindEvents      struct{}
	ShowContentIdeas    struct{ Type string }
	ShowAddFeed         struct{}
	ShowAddContentIdea  struct{}
	ExportData          struct{}
	Cancel              struct{ Modal string }
	SaveFeed            struct{ Form Form }
	SaveProfile         struct{ Form Form }
	SaveEvent           struct{ Form Form }
	SaveContentIdea     struct{ Form Form }
	ToggleBookmark      struct{ ArticleID int64 }
	RemoveBookmark      struct{ ArticleID int64 }
	EditEvent           struct{ ID int64 }
	DeleteEvent         struct{ ID int64 }
	EditContentIdea     struct{ ID int64 }
	DeleteContentIdea   struct{ ID int64 }
	Share               struct{ ArticleID int64 }
	OpenArticle         struct{ ArticleID int64 }
	SwitchNewsCategory  struct{ Category string }
	SwitchContentType   struct{ Type string }
	AddSearchResult     struct{ Index int }
	DismissNotice       struct{ ID string }
	SetSourceFilter     struct{ Source string }
	SetDateFilter       struct{ Days int }
	SetBookmarkCategory struct{ Category string }
)

// SearchEvents runs the simulated event finder.
type SearchEvents struct {
	Location string
	Topics   []string
}

// SetSetting flips one notification setting.
type SetSetting struct {
	Name model.Setting
	On   bool
}

func (Navigate) Kind() string            { return "navigate" }
func (ToggleTheme) Kind() string         { return "toggle-theme" }
func (Search) Kind() string              { return "search" }
func (CloseModals) Kind() string         { return "close-modals" }
func (ShowEditProfile) Kind() string     { return "show-edit-profile" }
func (ShowAddEvent) Kind() string        { return "show-add-event" }
func (ShowFindEvents) Kind() string      { return "show-find-events" }
func (ShowContentIdeas) Kind() string    { return "show-content-ideas" }
func (ShowAddFeed) Kind() string         { return "show-add-feed" }
func (ShowAddContentIdea) Kind() string  { return "show-add-content-idea" }
func (ExportData) Kind() string          { return "export-data" }
func (Cancel) Kind() string              { return "cancel" }
func (SaveFeed) Kind() string            { return "save-feed" }
func (SaveProfile) Kind() string         { return "save-profile" }
func (SaveEvent) Kind() string           { return "save-event" }
func (SaveContentIdea) Kind() string     { return "save-content-idea" }
func (SearchEvents) Kind() string        { return "search-events" }
func (ToggleBookmark) Kind() string      { return "toggle-bookmark" }
func (RemoveBookmark) Kind() string      { return "remove-bookmark" }
func (EditEvent) Kind() string           { return "edit-event" }
func (DeleteEvent) Kind() string         { return "delete-event" }
func (EditContentIdea) Kind() string     { return "edit-content-idea" }
func (DeleteContentIdea) Kind() string   { return "delete-content-idea" }
func (Share) Kind() string               { return "share" }
func (OpenArticle) Kind() string         { return "open-article" }
func (SwitchNewsCategory) Kind() string  { return "switch-news-category" }
func (SwitchContentType) Kind() string   { return "switch-content-type" }
func (AddSearchResult) Kind() string     { return "add-search-result" }
func (DismissNotice) Kind() string       { return "dismiss-notice" }
func (SetSourceFilter) Kind() string     { return "set-source-filter" }
func (SetDateFilter) Kind() string       { return "set-date-filter" }
func (SetBookmarkCategory) Kind() string { return "set-bookmark-category" }
func (SetSetting) Kind() string          { return "set-setting" }

func (Navigate) isAction()            {}
func (ToggleTheme) isAction()         {}
func (Search) isAction()              {}
func (CloseModals) isAction()         {}
func (ShowEditProfile) isAction()     {}
func (ShowAddEvent) isAction()        {}
func (ShowFindEvents) isAction()      {}
func (ShowContentIdeas) isAction()    {}
func (ShowAddFeed) isAction()         {}
func (ShowAddContentIdea) isAction()  {}
func (ExportData) isAction()          {}
func (Cancel) isAction()              {}
func (SaveFeed) isAction()            {}
func (SaveProfile) isAction()         {}
func (SaveEvent) isAction()           {}
func (SaveContentIdea) isAction()     {}
func (SearchEvents) isAction()        {}
func (ToggleBookmark) isAction()      {}
func (RemoveBookmark) isAction()      {}
func (EditEvent) isAction()           {}
func (DeleteEvent) isAction()         {}
func (EditContentIdea) isAction()     {}
func (DeleteContentIdea) isAction()   {}
func (Share) isAction()               {}
func (OpenArticle) isAction()         {}
func (SwitchNewsCategory) isAction()  {}
func (SwitchContentType) isAction()   {}
func (AddSearchResult) isAction()     {}
func (DismissNotice) isAction()       {}
func (SetSourceFilter) isAction()     {}
func (SetDateFilter) isAction()       {}
func (SetBookmarkCategory) isAction() {}
func (SetSetting) isAction()          {}
