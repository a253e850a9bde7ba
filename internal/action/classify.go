package action

import (
	"maps"
	"strconv"
	"strings"

	"github.com/bryan-buckman/mvphub/internal/model"
	"github.com/bryan-buckman/mvphub/internal/view"
)

// buttons maps named button ids to their actions, in match order.
var buttons = []struct {
	id    string
	build func(Event) Action
}{
	{"editProfileBtn", func(Event) Action { return ShowEditProfile{} }},
	{"addEventBtn", func(Event) Action { return ShowAddEvent{} }},
	{"findEventsBtn", func(Event) Action { return ShowFindEvents{} }},
	{"manageBlogIdeasBtn", func(Event) Action { return ShowContentIdeas{Type: string(model.ContentBlog)} }},
	{"manageSpeakingTopicsBtn", func(Event) Action { return ShowContentIdeas{Type: string(model.ContentSpeaking)} }},
	{"exploreContributionsBtn", func(Event) Action { return ShowContentIdeas{Type: string(model.ContentContribution)} }},
	{"addFeedBtn", func(Event) Action { return ShowAddFeed{} }},
	{"exportDataBtn", func(Event) Action { return ExportData{} }},
	{"cancelFeed", func(Event) Action { return Cancel{Modal: view.ModalAddFeed} }},
	{"saveFeed", func(ev Event) Action { return SaveFeed{Form: ev.form()} }},
	{"cancelProfile", func(Event) Action { return Cancel{Modal: view.ModalEditProfile} }},
	{"saveProfile", func(ev Event) Action { return SaveProfile{Form: ev.form()} }},
	{"cancelEvent", func(Event) Action { return Cancel{Modal: view.ModalAddEvent} }},
	{"saveEvent", func(ev Event) Action { return SaveEvent{Form: ev.form()} }},
	{"searchEventsBtn", func(ev Event) Action {
		return SearchEvents{Location: ev.form().Get("searchLocation"), Topics: ev.Lists["searchTopics"]}
	}},
	{"addContentIdeaBtn", func(Event) Action { return ShowAddContentIdea{} }},
	{"cancelContentIdea", func(Event) Action { return Cancel{Modal: view.ModalAddContentIdea} }},
	{"saveContentIdea", func(ev Event) Action { return SaveContentIdea{Form: ev.form()} }},
}

// idButtons are class-tagged buttons that act on the id in one data attribute.
var idButtons = []struct {
	class string
	key   string
	build func(int64) Action
}{
	{"bookmark-btn", "articleId", func(id int64) Action { return ToggleBookmark{ArticleID: id} }},
	{"remove-bookmark-btn", "articleId", func(id int64) Action { return RemoveBookmark{ArticleID: id} }},
	{"edit-event-btn", "eventId", func(id int64) Action { return EditEvent{ID: id} }},
	{"delete-event-btn", "eventId", func(id int64) Action { return DeleteEvent{ID: id} }},
	{"edit-idea-btn", "ideaId", func(id int64) Action { return EditContentIdea{ID: id} }},
	{"delete-idea-btn", "ideaId", func(id int64) Action { return DeleteContentIdea{ID: id} }},
	{"share-btn", "articleId", func(id int64) Action { return Share{ArticleID: id} }},
}

var settingInputs = map[string]model.Setting{
	string(model.SettingNews):       model.SettingNews,
	string(model.SettingConference): model.SettingConference,
	string(model.SettingMVP):        model.SettingMVP,
}

// Classify maps a UI event to the action it triggers. The second result is
// false when the event matches nothing, or matches an element that carries no
// usable target (a bookmark button without an article id, say); either way the
// event is a no-op.
func Classify(ev Event) (Action, bool) {
	switch ev.Type {
	case EventClick:
		return classifyClick(ev)
	case EventKeyPress:
		if ev.Key == "Enter" && ev.Target().ID == "searchInput" {
			return Search{Query: ev.searchQuery()}, true
		}
	case EventChange:
		return classifyChange(ev)
	}
	return nil, false
}

func classifyClick(ev Event) (Action, bool) {
	if el, ok := ev.closest(hasClass("nav-item")); ok {
		return navigate(el)
	}
	if el, ok := ev.closest(hasData("section")); ok {
		return navigate(el)
	}
	if _, ok := ev.closest(hasID("themeToggle")); ok {
		return ToggleTheme{}, true
	}
	if _, ok := ev.closest(hasID("searchBtn")); ok {
		return Search{Query: ev.searchQuery()}, true
	}
	// Only a direct hit dismisses, so clicks inside the dialog stay put.
	if t := ev.Target(); t.HasClass("modal-close") || t.HasClass("modal-backdrop") {
		return CloseModals{}, true
	}
	for _, b := range buttons {
		if _, ok := ev.closest(hasID(b.id)); ok {
			return b.build(ev), true
		}
	}
	for _, b := range idButtons {
		if el, ok := ev.closest(hasClass(b.class)); ok {
			id, ok := parseID(el.Data[b.key])
			if !ok {
				return nil, false
			}
			return b.build(id), true
		}
	}
	if el, ok := ev.closest(hasClass("article-card")); ok {
		if _, inButton := ev.closest(hasClass("action-btn")); inButton {
			return nil, false
		}
		return openArticle(el)
	}
	if el, ok := ev.closest(hasClass("list-item")); ok {
		return openArticle(el)
	}
	if el, ok := ev.closest(hasClass("tab-btn")); ok {
		switch {
		case el.Data["category"] != "":
			return SwitchNewsCategory{Category: el.Data["category"]}, true
		case el.Data["contentType"] != "":
			return SwitchContentType{Type: el.Data["contentType"]}, true
		}
		return nil, false
	}
	if el, ok := ev.closest(hasClass("add-search-result-btn")); ok {
		i, err := strconv.Atoi(el.Data["resultIndex"])
		if err != nil || i < 0 {
			return nil, false
		}
		return AddSearchResult{Index: i}, true
	}
	if _, ok := ev.closest(hasClass("toast-close")); ok {
		if toast, ok := ev.closest(hasData("noticeId")); ok {
			return DismissNotice{ID: toast.Data["noticeId"]}, true
		}
	}
	return nil, false
}

func classifyChange(ev Event) (Action, bool) {
	t := ev.Target()
	switch t.ID {
	case "sourceFilter":
		return SetSourceFilter{Source: t.Value}, true
	case "dateFilter":
		days, err := strconv.Atoi(t.Value)
		if err != nil || days < 0 {
			days = 0
		}
		return SetDateFilter{Days: days}, true
	case "bookmarksCategory":
		return SetBookmarkCategory{Category: t.Value}, true
	}
	if name, ok := settingInputs[t.ID]; ok {
		return SetSetting{Name: name, On: t.Checked}, true
	}
	return nil, false
}

func navigate(el Element) (Action, bool) {
	if el.Data["section"] == "" {
		return nil, false
	}
	return Navigate{Section: el.Data["section"]}, true
}

func openArticle(el Element) (Action, bool) {
	id, ok := parseID(el.Data["articleId"])
	if !ok {
		return nil, false
	}
	return OpenArticle{ArticleID: id}, true
}

func (ev Event) form() Form {
	return Form(maps.Clone(ev.Values))
}

func (ev Event) searchQuery() string {
	q, ok := ev.Values["searchInput"]
	if !ok {
		q = ev.Target().Value
	}
	return strings.TrimSpace(q)
}

// parseID accepts positive integer ids only.
func parseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func hasClass(c string) func(Element) bool {
	return func(e Element) bool { return e.HasClass(c) }
}

func hasID(id string) func(Element) bool {
	return func(e Element) bool { return e.ID == id }
}

func hasData(key string) func(Element) bool {
	return func(e Element) bool { return e.HasData(key) }
}
