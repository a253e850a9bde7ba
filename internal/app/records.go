package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bryan-buckman/mvphub/internal/action"
	"github.com/bryan-buckman/mvphub/internal/hub"
	"github.com/bryan-buckman/mvphub/internal/model"
	"github.com/bryan-buckman/mvphub/internal/view"
)

// --- Bookmarks & sharing ---

// ToggleBookmark bookmarks or unbookmarks an article.
func (c *Controller) ToggleBookmark(articleID int64) {
	on, err := c.hub.ToggleBookmark(articleID)
	if err != nil {
		c.logger.Warn("toggle bookmark failed", "id", articleID, "error", err)
		return
	}
	if on {
		c.notify(view.SeveritySuccess, "Article bookmarked!")
	} else {
		c.notify(view.SeverityInfo, "Bookmark removed!")
	}
}

// RemoveBookmark deletes a bookmark from the bookmarks section.
func (c *Controller) RemoveBookmark(articleID int64) {
	if !c.hub.RemoveBookmark(articleID) {
		c.logger.Warn("bookmark not found", "id", articleID)
		return
	}
	c.notify(view.SeverityInfo, "Bookmark removed!")
}

// Share hands the article's share text to the browser clipboard.
func (c *Controller) Share(articleID int64) {
	a, ok := c.hub.Article(articleID)
	if !ok {
		c.logger.Warn("article not found", "id", articleID)
		return
	}
	c.outcome.Clipboard = ShareText(a)
	c.notify(view.SeveritySuccess, "Article link copied to clipboard!")
}

// ShareText is the plain-text form of an article used for sharing.
func ShareText(a model.Article) string {
	return a.Title + "\n" + a.Excerpt + "\n" + a.URL
}

// ExportData starts the JSON export download.
func (c *Controller) ExportData() {
	c.outcome.Download = ExportPath
	c.notify(view.SeveritySuccess, "Data exported successfully!")
}

// SetSetting flips a notification setting.
func (c *Controller) SetSetting(name model.Setting, on bool) {
	if err := c.hub.SetSetting(name, on); err != nil {
		c.logger.Warn("set setting failed", "setting", name, "error", err)
	}
}

// --- Feeds & profile ---

// SaveFeed subscribes to a new feed.
func (c *Controller) SaveFeed(f action.Form) {
	_, err := c.hub.AddFeed(hub.FeedInput{
		Name:     f.Get("feedName"),
		URL:      f.Get("feedUrl"),
		Category: f.Get("feedCategory"),
	})
	if err != nil {
		c.keepForm(view.ModalAddFeed, f)
		c.notifyError("add feed", err)
		return
	}
	c.closeModal(view.ModalAddFeed)
	c.notify(view.SeveritySuccess, "RSS feed added successfully!")
}

// SaveProfile replaces the profile.
func (c *Controller) SaveProfile(f action.Form) {
	_, err := c.hub.SaveProfile(hub.ProfileInput{
		Name:        f.Get("profileName"),
		LinkedIn:    f.Get("profileLinkedIn"),
		Blog:        f.Get("profileBlog"),
		GitHub:      f.Get("profileGitHub"),
		Twitter:     f.Get("profileTwitter"),
		Location:    f.Get("profileLocation"),
		Specialties: f.Get("profileSpecialties"),
	})
	if err != nil {
		c.keepForm(view.ModalEditProfile, f)
		c.notifyError("save profile", err)
		return
	}
	c.closeModal(view.ModalEditProfile)
	c.notify(view.SeveritySuccess, "Profile updated successfully!")
}

func profileForm(p model.UserProfile) map[string]string {
	return map[string]string{
		"profileName":        p.Name,
		"profileLocation":    p.Location,
		"profileLinkedIn":    p.LinkedIn,
		"profileBlog":        p.Blog,
		"profileGitHub":      p.GitHub,
		"profileTwitter":     p.Twitter,
		"profileSpecialties": strings.Join(p.Specialties, ", "),
	}
}

// --- Events ---

// EditEvent opens the event form filled from an existing conference.
func (c *Controller) EditEvent(id int64) {
	conf, ok := c.hub.Conference(id)
	if !ok {
		c.logger.Warn("edit of missing conference", "id", id)
		return
	}
	c.editingEventID = id
	c.openModal(view.ModalAddEvent, eventForm(conf))
}

// SaveEvent creates a conference, or updates the one being edited.
func (c *Controller) SaveEvent(f action.Form) {
	in := hub.ConferenceInput{
		Name:        f.Get("eventName"),
		StartDate:   f.Get("eventStartDate"),
		EndDate:     f.Get("eventEndDate"),
		Location:    f.Get("eventLocation"),
		Type:        f.Get("eventType"),
		Website:     f.Get("eventWebsite"),
		CFPDeadline: f.Get("eventCfpDeadline"),
		Topics:      f.Get("eventTopics"),
		Involvement: f.Get("eventInvolvement"),
		Notes:       f.Get("eventNotes"),
	}

	var err error
	editing := c.editingEventID
	if editing != 0 {
		_, err = c.hub.UpdateConference(editing, in)
	} else {
		_, err = c.hub.CreateConference(in)
	}
	switch {
	case errors.Is(err, hub.ErrNotFound):
		c.logger.Warn("update of missing conference", "id", editing)
		c.closeModal(view.ModalAddEvent)
	case err != nil:
		c.keepForm(view.ModalAddEvent, f)
		c.notifyError("save event", err)
	case editing != 0:
		c.closeModal(view.ModalAddEvent)
		c.notify(view.SeveritySuccess, "Event updated successfully!")
	default:
		c.closeModal(view.ModalAddEvent)
		c.notify(view.SeveritySuccess, "Event added successfully!")
	}
}

// DeleteEvent removes a conference.
func (c *Controller) DeleteEvent(id int64) {
	if err := c.hub.DeleteConference(id); err != nil {
		c.logger.Warn("delete conference failed", "id", id, "error", err)
		return
	}
	c.notify(view.SeverityInfo, "Event deleted!")
}

func emptyEventForm() map[string]string {
	return map[string]string{
		"eventType":        hub.DefaultEventType,
		"eventInvolvement": string(hub.DefaultInvolvement),
	}
}

func eventForm(conf model.Conference) map[string]string {
	return map[string]string{
		"eventName":        conf.Name,
		"eventStartDate":   conf.StartDate,
		"eventEndDate":     conf.EndDate,
		"eventLocation":    conf.Location,
		"eventType":        conf.Type,
		"eventWebsite":     deref(conf.Website),
		"eventCfpDeadline": deref(conf.CFPDeadline),
		"eventTopics":      strings.Join(conf.Topics, ", "),
		"eventInvolvement": string(conf.Involvement),
		"eventNotes":       deref(conf.Notes),
	}
}

// --- Content ideas ---

// EditContentIdea opens the idea form filled from an existing idea.
func (c *Controller) EditContentIdea(id int64) {
	idea, ok := c.hub.ContentIdea(id)
	if !ok {
		c.logger.Warn("edit of missing content idea", "id", id)
		return
	}
	c.editingContentID = id
	c.openModal(view.ModalAddContentIdea, ideaForm(idea))
}

// SaveContentIdea creates an idea, or updates the one being edited.
func (c *Controller) SaveContentIdea(f action.Form) {
	in := hub.ContentIdeaInput{
		Type:     f.Get("contentIdeaType"),
		Title:    f.Get("contentIdeaTitle"),
		Priority: f.Get("contentIdeaPriority"),
		Status:   f.Get("contentIdeaStatus"),
		Notes:    f.Get("contentIdeaNotes"),
	}

	var err error
	editing := c.editingContentID
	if editing != 0 {
		_, err = c.hub.UpdateContentIdea(editing, in)
	} else {
		_, err = c.hub.CreateContentIdea(in)
	}
	switch {
	case errors.Is(err, hub.ErrNotFound):
		c.logger.Warn("update of missing content idea", "id", editing)
		c.closeModal(view.ModalAddContentIdea)
	case err != nil:
		c.keepForm(view.ModalAddContentIdea, f)
		c.notifyError("save content idea", err)
	case editing != 0:
		c.closeModal(view.ModalAddContentIdea)
		c.notify(view.SeveritySuccess, "Content idea updated!")
	default:
		c.closeModal(view.ModalAddContentIdea)
		c.notify(view.SeveritySuccess, "Content idea added!")
	}
}

// DeleteContentIdea removes an idea.
func (c *Controller) DeleteContentIdea(id int64) {
	if err := c.hub.DeleteContentIdea(id); err != nil {
		c.logger.Warn("delete content idea failed", "id", id, "error", err)
		return
	}
	c.notify(view.SeverityInfo, "Content idea deleted!")
}

func emptyIdeaForm() map[string]string {
	return map[string]string{
		"contentIdeaType":     string(hub.DefaultIdeaType),
		"contentIdeaPriority": string(hub.DefaultPriority),
		"contentIdeaStatus":   string(hub.DefaultIdeaStatus),
	}
}

func ideaForm(idea model.ContentIdea) map[string]string {
	return map[string]string{
		"contentIdeaType":     string(idea.Type),
		"contentIdeaTitle":    idea.Title,
		"contentIdeaPriority": string(idea.Priority),
		"contentIdeaStatus":   string(idea.Status),
		"contentIdeaNotes":    deref(idea.Notes),
	}
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// ImportFeeds subscribes to every feed not already present and reports how
// many were added.
func (c *Controller) ImportFeeds(in []hub.FeedInput) int {
	added := c.hub.ImportFeeds(in)
	c.notify(view.SeveritySuccess, fmt.Sprintf("Imported %d of %d feeds", added, len(in)))
	return added
}
