package hub

import (
	"time"

	"github.com/bryan-buckman/mvphub/internal/model"
)

// ExportDocument aggregates every user-owned collection for download.
type ExportDocument struct {
	Profile      model.UserProfile   `json:"profile"`
	Bookmarks    []model.Bookmark    `json:"bookmarks"`
	Conferences  []model.Conference  `json:"conferences"`
	ContentIdeas []model.ContentIdea `json:"contentIdeas"`
	Goals        []model.Goal        `json:"goals"`
	RssFeeds     []model.RssFeed     `json:"rssFeeds"`
	Settings     model.Settings      `json:"settings"`
	Stats        model.Stats         `json:"stats"`
	ExportDate   string              `json:"exportDate"`
}

// Export snapshots the hub at the current time.
func (h *Hub) Export() ExportDocument {
	return ExportDocument{
		Profile:      h.Profile(),
		Bookmarks:    h.Bookmarks(),
		Conferences:  h.Conferences(),
		ContentIdeas: h.ContentIdeas(),
		Goals:        h.Goals(),
		RssFeeds:     h.Feeds(),
		Settings:     h.settings,
		Stats:        h.stats,
		ExportDate:   h.timestamp(),
	}
}

// ExportFilename is the download name for an export taken at t.
func ExportFilename(t time.Time) string {
	return "mvp-hub-data-" + t.UTC().Format(model.DateLayout) + ".json"
}
