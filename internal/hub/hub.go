// Package hub holds the in-memory dashboard collections and keeps them persisted.
//
// Every mutating method writes the affected collection through the storage
// adapter before returning. A failed write is logged by the adapter and does
// not undo the in-memory change.
package hub

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/bryan-buckman/mvphub/internal/model"
	"github.com/bryan-buckman/mvphub/internal/storage"
)

// TimestampLayout matches the millisecond ISO-8601 form used for created/updated stamps.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Options configures Load.
type Options struct {
	Now    func() time.Time
	Logger *slog.Logger
}

// Hub is the Domain Model.
type Hub struct {
	store  *storage.Adapter
	ids    *model.IDGenerator
	now    func() time.Time
	logger *slog.Logger

	theme       model.Theme
	articles    []model.Article
	bookmarks   []model.Bookmark
	feeds       []model.RssFeed
	conferences []model.Conference
	ideas       []model.ContentIdea
	goals       []model.Goal
	profile     model.UserProfile
	settings    model.Settings
	stats       model.Stats
}

// Load reads every collection from store, seeding and persisting defaults for
// empty feed, conference, content idea and goal collections.
func Load(store *storage.Adapter, opts Options) *Hub {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	h := &Hub{
		store:    store,
		ids:      model.NewIDGenerator(opts.Now),
		now:      opts.Now,
		logger:   opts.Logger,
		theme:    model.ThemeLight,
		articles: model.SeedArticles(),
		profile:  model.DefaultProfile(),
		settings: model.DefaultSettings(),
		stats:    model.DefaultStats(),
	}

	store.Load(model.KeyTheme, &h.theme)
	if h.theme != model.ThemeDark {
		h.theme = model.ThemeLight
	}
	store.Load(model.KeyBookmarks, &h.bookmarks)
	store.Load(model.KeyRssFeeds, &h.feeds)
	store.Load(model.KeyConferences, &h.conferences)
	store.Load(model.KeyContentIdeas, &h.ideas)
	store.Load(model.KeyGoals, &h.goals)
	store.Load(model.KeyUserProfile, &h.profile)
	store.Load(model.KeySettings, &h.settings)
	store.Load(model.KeyStats, &h.stats)

	for _, c := range h.conferences {
		h.ids.Observe(c.ID)
	}
	for _, i := range h.ideas {
		h.ids.Observe(i.ID)
	}
	for _, g := range h.goals {
		h.ids.Observe(g.ID)
	}

	if h.bookmarks == nil {
		h.bookmarks = []model.Bookmark{}
	}
	if len(h.feeds) == 0 {
		h.feeds = model.SeedFeeds()
		h.seeded(model.KeyRssFeeds, h.feeds)
	}
	if len(h.conferences) == 0 {
		h.conferences = model.SeedConferences(h.ids.Next)
		h.seeded(model.KeyConferences, h.conferences)
	}
	if len(h.ideas) == 0 {
		h.ideas = model.SeedContentIdeas(h.ids.Next)
		h.seeded(model.KeyContentIdeas, h.ideas)
	}
	if len(h.goals) == 0 {
		h.goals = model.SeedGoals(h.ids.Next)
		h.seeded(model.KeyGoals, h.goals)
	}
	return h
}

func (h *Hub) seeded(key string, v any) {
	h.logger.Info("seeding default collection", "key", key)
	h.persist(key, v)
}

func (h *Hub) persist(key string, v any) {
	// The adapter logs and counts failures; in-memory state stays authoritative.
	_ = h.store.Save(key, v)
}

func (h *Hub) timestamp() string {
	return h.now().UTC().Format(TimestampLayout)
}

// --- Theme ---

// Theme returns the current color scheme.
func (h *Hub) Theme() model.Theme { return h.theme }

// ToggleTheme flips the color scheme and returns the new one.
func (h *Hub) ToggleTheme() model.Theme {
	h.theme = h.theme.Toggle()
	h.persist(model.KeyTheme, h.theme)
	return h.theme
}

// --- Articles & bookmarks ---

// Articles returns the fixed article list.
func (h *Hub) Articles() []model.Article { return slices.Clone(h.articles) }

// Article looks up an article by id.
func (h *Hub) Article(id int64) (model.Article, bool) {
	for _, a := range h.articles {
		if a.ID == id {
			return a, true
		}
	}
	return model.Article{}, false
}

// ArticleOrBookmark looks up id among articles first, then bookmarks.
func (h *Hub) ArticleOrBookmark(id int64) (model.Article, bool) {
	if a, ok := h.Article(id); ok {
		return a, true
	}
	for _, b := range h.bookmarks {
		if b.ID == id {
			return model.Article(b), true
		}
	}
	return model.Article{}, false
}

// Bookmarks returns the bookmarks in the order they were added.
func (h *Hub) Bookmarks() []model.Bookmark { return slices.Clone(h.bookmarks) }

// IsBookmarked reports whether an article id is bookmarked.
func (h *Hub) IsBookmarked(id int64) bool {
	return slices.ContainsFunc(h.bookmarks, func(b model.Bookmark) bool { return b.ID == id })
}

// ToggleBookmark bookmarks the article if it is not bookmarked, otherwise removes it.
// It returns the resulting membership, or ErrNotFound for unknown articles.
func (h *Hub) ToggleBookmark(articleID int64) (bool, error) {
	if h.IsBookmarked(articleID) {
		h.RemoveBookmark(articleID)
		return false, nil
	}
	a, ok := h.Article(articleID)
	if !ok {
		return false, fmt.Errorf("article %d: %w", articleID, ErrNotFound)
	}
	h.bookmarks = append(h.bookmarks, model.NewBookmark(a))
	h.persist(model.KeyBookmarks, h.bookmarks)
	return true, nil
}

// RemoveBookmark deletes the bookmark with id and reports whether one existed.
func (h *Hub) RemoveBookmark(id int64) bool {
	n := len(h.bookmarks)
	h.bookmarks = slices.DeleteFunc(h.bookmarks, func(b model.Bookmark) bool { return b.ID == id })
	if len(h.bookmarks) == n {
		return false
	}
	h.persist(model.KeyBookmarks, h.bookmarks)
	return true
}

// --- Feeds ---

// Feeds returns the feed subscriptions.
func (h *Hub) Feeds() []model.RssFeed { return slices.Clone(h.feeds) }

// AddFeed appends a pending feed. Name and URL are required.
func (h *Hub) AddFeed(in FeedInput) (model.RssFeed, error) {
	name := strings.TrimSpace(in.Name)
	url := strings.TrimSpace(in.URL)
	if name == "" || url == "" {
		return model.RssFeed{}, required("feed", "Please fill in all required fields")
	}
	feed := model.RssFeed{
		Name:        name,
		URL:         url,
		Category:    strings.TrimSpace(in.Category),
		Status:      model.FeedPending,
		LastUpdated: h.timestamp(),
	}
	h.feeds = append(h.feeds, feed)
	h.persist(model.KeyRssFeeds, h.feeds)
	return feed, nil
}

// ImportFeeds appends every feed not already subscribed (by name and URL) as pending
// and returns how many were added.
func (h *Hub) ImportFeeds(in []FeedInput) int {
	added := 0
	for _, f := range in {
		name := strings.TrimSpace(f.Name)
		url := strings.TrimSpace(f.URL)
		if name == "" || url == "" {
			continue
		}
		feed := model.RssFeed{
			Name:        name,
			URL:         url,
			Category:    strings.TrimSpace(f.Category),
			Status:      model.FeedPending,
			LastUpdated: h.timestamp(),
		}
		if slices.ContainsFunc(h.feeds, feed.SameFeed) {
			continue
		}
		h.feeds = append(h.feeds, feed)
		added++
	}
	if added > 0 {
		h.persist(model.KeyRssFeeds, h.feeds)
	}
	return added
}

// --- Conferences ---

// Conferences returns the conferences in insertion order.
func (h *Hub) Conferences() []model.Conference { return slices.Clone(h.conferences) }

// Conference looks up a conference by id.
func (h *Hub) Conference(id int64) (model.Conference, bool) {
	i := slices.IndexFunc(h.conferences, func(x model.Conference) bool { return x.ID == id })
	if i < 0 {
		return model.Conference{}, false
	}
	return h.conferences[i], true
}

// CreateConference validates in and appends it with a fresh id.
func (h *Hub) CreateConference(in ConferenceInput) (model.Conference, error) {
	c, err := in.build()
	if err != nil {
		return model.Conference{}, err
	}
	c.ID = h.ids.Next()
	h.conferences = append(h.conferences, c)
	h.persist(model.KeyConferences, h.conferences)
	return c, nil
}

// AddConference appends an already-built conference, assigning it a fresh id.
func (h *Hub) AddConference(c model.Conference) model.Conference {
	c.ID = h.ids.Next()
	h.conferences = append(h.conferences, c)
	h.persist(model.KeyConferences, h.conferences)
	return c
}

// UpdateConference replaces the conference with id. Validation runs first, so an
// invalid form never reaches the not-found check.
func (h *Hub) UpdateConference(id int64, in ConferenceInput) (model.Conference, error) {
	c, err := in.build()
	if err != nil {
		return model.Conference{}, err
	}
	i := slices.IndexFunc(h.conferences, func(x model.Conference) bool { return x.ID == id })
	if i < 0 {
		return model.Conference{}, fmt.Errorf("conference %d: %w", id, ErrNotFound)
	}
	c.ID = id
	h.conferences[i] = c
	h.persist(model.KeyConferences, h.conferences)
	return c, nil
}

// DeleteConference removes the conference with id.
func (h *Hub) DeleteConference(id int64) error {
	n := len(h.conferences)
	h.conferences = slices.DeleteFunc(h.conferences, func(x model.Conference) bool { return x.ID == id })
	if len(h.conferences) == n {
		return fmt.Errorf("conference %d: %w", id, ErrNotFound)
	}
	h.persist(model.KeyConferences, h.conferences)
	return nil
}

// --- Content ideas ---

// ContentIdeas returns the content ideas in insertion order.
func (h *Hub) ContentIdeas() []model.ContentIdea { return slices.Clone(h.ideas) }

// ContentIdea looks up a content idea by id.
func (h *Hub) ContentIdea(id int64) (model.ContentIdea, bool) {
	i := slices.IndexFunc(h.ideas, func(x model.ContentIdea) bool { return x.ID == id })
	if i < 0 {
		return model.ContentIdea{}, false
	}
	return h.ideas[i], true
}

// CreateContentIdea validates in and appends it with a fresh id and creation stamp.
func (h *Hub) CreateContentIdea(in ContentIdeaInput) (model.ContentIdea, error) {
	idea, err := in.build()
	if err != nil {
		return model.ContentIdea{}, err
	}
	idea.ID = h.ids.Next()
	idea.DateCreated = h.timestamp()
	h.ideas = append(h.ideas, idea)
	h.persist(model.KeyContentIdeas, h.ideas)
	return idea, nil
}

// UpdateContentIdea replaces the idea with id, keeping its original creation stamp.
func (h *Hub) UpdateContentIdea(id int64, in ContentIdeaInput) (model.ContentIdea, error) {
	idea, err := in.build()
	if err != nil {
		return model.ContentIdea{}, err
	}
	i := slices.IndexFunc(h.ideas, func(x model.ContentIdea) bool { return x.ID == id })
	if i < 0 {
		return model.ContentIdea{}, fmt.Errorf("content idea %d: %w", id, ErrNotFound)
	}
	idea.ID = id
	idea.DateCreated = h.ideas[i].DateCreated
	h.ideas[i] = idea
	h.persist(model.KeyContentIdeas, h.ideas)
	return idea, nil
}

// DeleteContentIdea removes the idea with id.
func (h *Hub) DeleteContentIdea(id int64) error {
	n := len(h.ideas)
	h.ideas = slices.DeleteFunc(h.ideas, func(x model.ContentIdea) bool { return x.ID == id })
	if len(h.ideas) == n {
		return fmt.Errorf("content idea %d: %w", id, ErrNotFound)
	}
	h.persist(model.KeyContentIdeas, h.ideas)
	return nil
}

// --- Goals, profile, settings, stats ---

// Goals returns the goals.
func (h *Hub) Goals() []model.Goal { return slices.Clone(h.goals) }

// Profile returns the user profile.
func (h *Hub) Profile() model.UserProfile {
	p := h.profile
	p.Specialties = slices.Clone(p.Specialties)
	return p
}

// SaveProfile replaces the profile wholesale. Name is required.
func (h *Hub) SaveProfile(in ProfileInput) (model.UserProfile, error) {
	p, err := in.build()
	if err != nil {
		return model.UserProfile{}, err
	}
	h.profile = p
	h.persist(model.KeyUserProfile, h.profile)
	return h.Profile(), nil
}

// Settings returns the notification settings.
func (h *Hub) Settings() model.Settings { return h.settings }

// SetSetting updates one notification flag.
func (h *Hub) SetSetting(name model.Setting, on bool) error {
	if !h.settings.Set(name, on) {
		return fmt.Errorf("setting %q: %w", name, ErrNotFound)
	}
	h.persist(model.KeySettings, h.settings)
	return nil
}

// Stats returns the dashboard counters.
func (h *Hub) Stats() model.Stats { return h.stats }
