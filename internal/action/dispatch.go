package action

import (
	"errors"
	"fmt"

	"github.com/bryan-buckman/mvphub/internal/model"
)

// ErrUnhandled is returned by Dispatch for a nil action.
var ErrUnhandled = errors.New("unhandled action")

// Handlers receives dispatched actions. Only ShowSection reports an error:
// every other failure is surfaced to the user by the handler itself.
type Handlers interface {
	ShowSection(name string) error
	ToggleTheme()
	Search(query string)
	CloseModals()
	ShowEditProfile()
	ShowAddEvent()
	ShowFindEvents()
	ShowContentIdeas(contentType string)
	ShowAddFeed()
	ShowAddContentIdea()
	ExportData()
	CancelModal(modal string)
	SaveFeed(f Form)
	SaveProfile(f Form)
	SaveEvent(f Form)
	SaveContentIdea(f Form)
	SearchEvents(location string, topics []string)
	ToggleBookmark(articleID int64)
	RemoveBookmark(articleID int64)
	EditEvent(id int64)
	DeleteEvent(id int64)
	EditContentIdea(id int64)
	DeleteContentIdea(id int64)
	Share(articleID int64)
	OpenArticle(articleID int64)
	SwitchNewsCategory(category string)
	SwitchContentType(contentType string)
	AddSearchResult(index int)
	DismissNotice(id string)
	SetSourceFilter(source string)
	SetDateFilter(days int)
	SetBookmarkCategory(category string)
	SetSetting(name model.Setting, on bool)
}

// Dispatch invokes the handler for a. The switch covers every Action type.
func Dispatch(h Handlers, a Action) error {
	switch a := a.(type) {
	case Navigate:
		return h.ShowSection(a.Section)
	case ToggleTheme:
		h.ToggleTheme()
	case Search:
		h.Search(a.Query)
	case CloseModals:
		h.CloseModals()
	case ShowEditProfile:
		h.ShowEditProfile()
	case ShowAddEvent:
		h.ShowAddEvent()
	case ShowFindEvents:
		h.ShowFindEvents()
	case ShowContentIdeas:
		h.ShowContentIdeas(a.Type)
	case ShowAddFeed:
		h.ShowAddFeed()
	case ShowAddContentIdea:
		h.ShowAddContentIdea()
	case ExportData:
		h.ExportData()
	case Cancel:
		h.CancelModal(a.Modal)
	case SaveFeed:
		h.SaveFeed(a.Form)
	case SaveProfile:
		h.SaveProfile(a.Form)
	case SaveEvent:
		h.SaveEvent(a.Form)
	case SaveContentIdea:
		h.SaveContentIdea(a.Form)
	case SearchEvents:
		h.SearchEvents(a.Location, a.Topics)
	case ToggleBookmark:
		h.ToggleBookmark(a.ArticleID)
	case RemoveBookmark:
		h.RemoveBookmark(a.ArticleID)
	case EditEvent:
		h.EditEvent(a.ID)
	case DeleteEvent:
		h.DeleteEvent(a.ID)
	case EditContentIdea:
		h.EditContentIdea(a.ID)
	case DeleteContentIdea:
		h.DeleteContentIdea(a.ID)
	case Share:
		h.Share(a.ArticleID)
	case OpenArticle:
		h.OpenArticle(a.ArticleID)
	case SwitchNewsCategory:
		h.SwitchNewsCategory(a.Category)
	case SwitchContentType:
		h.SwitchContentType(a.Type)
	case AddSearchResult:
		h.AddSearchResult(a.Index)
	case DismissNotice:
		h.DismissNotice(a.ID)
	case SetSourceFilter:
		h.SetSourceFilter(a.Source)
	case SetDateFilter:
		h.SetDateFilter(a.Days)
	case SetBookmarkCategory:
		h.SetBookmarkCategory(a.Category)
	case SetSetting:
		h.SetSetting(a.Name, a.On)
	default:
		return fmt.Errorf("%w: %T", ErrUnhandled, a)
	}
	return nil
}
