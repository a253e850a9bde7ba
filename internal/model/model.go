// Package model defines shared data structures.
package model

import (
	"fmt"
	"time"
)

// Article is a read-only news entry from the fixed seed list.
type Article struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Source      string   `json:"source"`
	Category    string   `json:"category"`
	Date        string   `json:"date"`
	Excerpt     string   `json:"excerpt"`
	FullContent string   `json:"fullContent,omitempty"`
	URL         string   `json:"url,omitempty"`
	Tags        []string `json:"tags"`
	ReadTime    string   `json:"readTime,omitempty"`
}

// Bookmark is a snapshot of an Article taken when it was bookmarked.
// It keeps the source article's id but is not updated if the article changes.
type Bookmark Article

// NewBookmark copies a into a Bookmark, including its tag list.
func NewBookmark(a Article) Bookmark {
	b := Bookmark(a)
	b.Tags = append([]string(nil), a.Tags...)
	return b
}

// FeedStatus is the sync state shown for an RSS feed.
type FeedStatus string

const (
	FeedActive   FeedStatus = "active"
	FeedPending  FeedStatus = "pending"
	FeedInactive FeedStatus = "inactive"
)

// RssFeed is a feed subscription. Identity is the Name+URL pair.
type RssFeed struct {
	Name        string     `json:"name"`
	URL         string     `json:"url"`
	Category    string     `json:"category"`
	Status      FeedStatus `json:"status"`
	LastUpdated string     `json:"lastUpdated"`
}

// SameFeed reports whether f and o identify the same subscription.
func (f RssFeed) SameFeed(o RssFeed) bool {
	return f.Name == o.Name && f.URL == o.URL
}

// Involvement describes how the user takes part in a conference.
type Involvement string

const (
	InvolvementConsidering Involvement = "considering"
	InvolvementAttending   Involvement = "attending"
	InvolvementSpeaking    Involvement = "speaking"
	InvolvementOrganizing  Involvement = "organizing"
)

// Label returns the display label, or "Unknown" for unrecognized values.
func (i Involvement) Label() string {
	switch i {
	case InvolvementConsidering:
		return "Considering"
	case InvolvementAttending:
		return "Attending"
	case InvolvementSpeaking:
		return "Speaking"
	case InvolvementOrganizing:
		return "Organizing"
	}
	return "Unknown"
}

// Conference is a planned event.
type Conference struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	StartDate   string      `json:"startDate"`
	EndDate     string      `json:"endDate"`
	Location    string      `json:"location"`
	Type        string      `json:"type"`
	CFPDeadline *string     `json:"cfpDeadline"`
	Website     *string     `json:"website"`
	Topics      []string    `json:"topics"`
	Involvement Involvement `json:"involvement"`
	Notes       *string     `json:"notes"`
}

// ContentType classifies a content idea.
type ContentType string

const (
	ContentBlog         ContentType = "blog"
	ContentSpeaking     ContentType = "speaking"
	ContentContribution ContentType = "contribution"
)

// ContentTypes lists every content type in display order.
var ContentTypes = []ContentType{ContentBlog, ContentSpeaking, ContentContribution}

// Label returns the display label; unknown types are shown as-is.
func (c ContentType) Label() string {
	switch c {
	case ContentBlog:
		return "Blog Post"
	case ContentSpeaking:
		return "Speaking"
	case ContentContribution:
		return "Contribution"
	}
	return string(c)
}

// IdeaStatus is the progress of a content idea.
type IdeaStatus string

const (
	StatusIdea       IdeaStatus = "idea"
	StatusDraft      IdeaStatus = "draft"
	StatusInProgress IdeaStatus = "in-progress"
	StatusPublished  IdeaStatus = "published"
)

// Priority of a content idea.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ContentIdea is a planned blog post, talk or contribution.
type ContentIdea struct {
	ID          int64       `json:"id"`
	Type        ContentType `json:"type"`
	Title       string      `json:"title"`
	Status      IdeaStatus  `json:"status"`
	Priority    Priority    `json:"priority"`
	Notes       *string     `json:"notes"`
	DateCreated string      `json:"dateCreated"`
}

// Goal tracks progress towards a numeric target.
type Goal struct {
	ID       int64   `json:"id"`
	Title    string  `json:"title"`
	Current  float64 `json:"current"`
	Target   float64 `json:"target"`
	Deadline string  `json:"deadline"`
	Category string  `json:"category"`
}

// Percent returns the rounded completion percentage. A zero target yields 0.
func (g Goal) Percent() int {
	if g.Target == 0 {
		return 0
	}
	p := g.Current / g.Target * 100
	if p < 0 {
		return int(p - 0.5)
	}
	return int(p + 0.5)
}

// UserProfile is the singleton user profile.
type UserProfile struct {
	Name        string   `json:"name"`
	LinkedIn    string   `json:"linkedIn"`
	Blog        string   `json:"blog"`
	GitHub      string   `json:"gitHub"`
	Twitter     string   `json:"twitter"`
	Location    string   `json:"location"`
	Specialties []string `json:"specialties"`
}

// Settings holds notification preferences.
type Settings struct {
	NewsNotifications       bool `json:"newsNotifications"`
	ConferenceNotifications bool `json:"conferenceNotifications"`
	MVPNotifications        bool `json:"mvpNotifications"`
}

// Setting names a single notification flag.
type Setting string

const (
	SettingNews       Setting = "newsNotifications"
	SettingConference Setting = "conferenceNotifications"
	SettingMVP        Setting = "mvpNotifications"
)

// Set updates the flag named by s. It returns false for unknown names.
func (s *Settings) Set(name Setting, on bool) bool {
	switch name {
	case SettingNews:
		s.NewsNotifications = on
	case SettingConference:
		s.ConferenceNotifications = on
	case SettingMVP:
		s.MVPNotifications = on
	default:
		return false
	}
	return true
}

// Stats are the community contribution counters shown on the dashboard.
type Stats struct {
	BlogPosts     int `json:"blogPosts"`
	ForumAnswers  int `json:"forumAnswers"`
	Conferences   int `json:"conferences"`
	Contributions int `json:"contributions"`
}

// Theme is the color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Toggle returns the opposite theme. Unknown values toggle to dark.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Storage key constants.
const (
	KeyTheme        = "theme"
	KeyBookmarks    = "bookmarks"
	KeyRssFeeds     = "rssFeeds"
	KeyConferences  = "conferences"
	KeyContentIdeas = "contentIdeas"
	KeyGoals        = "goals"
	KeyUserProfile  = "userProfile"
	KeySettings     = "settings"
	KeyStats        = "stats"
)

// DateLayout is the calendar-date form used by event and goal dates.
const DateLayout = "2006-01-02"

// ParseDate accepts an RFC 3339 timestamp or a bare calendar date (UTC).
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// EventListing is a conference returned by the event finder. It is not persisted
// until the user adds it to their own events.
type EventListing struct {
	Name         string
	Date         string
	Location     string
	Type         string
	Distance     string
	Topics       []string
	CFPOpen      bool
	CFPDeadline  string
	Website      string
	Registration string
}
