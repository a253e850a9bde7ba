package app

import (
	"slices"

	"github.com/bryan-buckman/mvphub/internal/model"
	"github.com/bryan-buckman/mvphub/internal/view"
)

var listings = []model.EventListing{
	{
		Name:        "Microsoft Tech Summit Vienna 2026",
		Date:        "2026-03-15",
		Location:    "Vienna, Austria",
		Type:        "Regional Conference",
		Distance:    "250 km",
		Topics:      []string{"Azure", "AI", "Business Applications"},
		CFPOpen:     true,
		CFPDeadline: "2025-12-15",
		Website:     "https://techsummit.microsoft.com",
	},
	{
		Name:         "European Business Central User Group",
		Date:         "2025-11-20",
		Location:     "Munich, Germany",
		Type:         "User Group",
		Distance:     "400 km",
		Topics:       []string{"Business Central", "Best Practices"},
		Registration: "Open",
	},
	{
		Name:        "AI & Automation Conference Prague",
		Date:        "2026-04-08",
		Location:    "Prague, Czech Republic",
		Type:        "AI Conference",
		Distance:    "300 km",
		Topics:      []string{"AI", "Automation", "Enterprise"},
		CFPOpen:     true,
		CFPDeadline: "2026-01-30",
	},
}

// FindListings returns the known events sharing a topic with topics, or every
// event when topics is empty. The location does not narrow the result.
func FindListings(topics []string) []model.EventListing {
	out := []model.EventListing{}
	for _, l := range listings {
		if len(topics) == 0 || slices.ContainsFunc(l.Topics, func(t string) bool { return slices.Contains(topics, t) }) {
			l.Topics = slices.Clone(l.Topics)
			out = append(out, l)
		}
	}
	return out
}

// ShowFindEvents opens the event finder with a fresh result pane. The location
// is prefilled from the profile unless it is still the placeholder.
func (c *Controller) ShowFindEvents() {
	c.search = view.SearchState{}
	form := map[string]string{}
	if loc := c.hub.Profile().Location; loc != model.DefaultProfileLocation {
		form["searchLocation"] = loc
	}
	c.openModal(view.ModalFindEvents, form)
}

// SearchEvents starts a simulated search. Results arrive after the search
// delay. Starting another search supersedes the pending one, whose results
// are then dropped.
func (c *Controller) SearchEvents(location string, topics []string) {
	c.forms[view.ModalFindEvents] = map[string]string{"searchLocation": location}
	topics = slices.Clone(topics)
	if location == "" {
		c.search.Topics = topics
		c.notify(view.SeverityError, "Please enter your location")
		return
	}
	c.search = view.SearchState{Topics: topics, Loading: true}
	c.searchDue = c.now().Add(c.searchDelay)
	c.searchSeq++
	seq := c.searchSeq
	c.logger.Debug("event search started", "location", location, "topics", topics)
	c.schedule(c.searchDelay, func() {
		// A newer search owns the pane until its own callback runs.
		if seq != c.searchSeq {
			return
		}
		c.search.Loading = false
		c.search.Done = true
		c.search.Results = FindListings(topics)
	})
}

// AddSearchResult copies a search result into the conference list.
func (c *Controller) AddSearchResult(index int) {
	if index < 0 || index >= len(c.search.Results) {
		c.logger.Warn("search result out of range", "index", index, "results", len(c.search.Results))
		return
	}
	l := c.search.Results[index]
	notes := "Added from event search"
	c.hub.AddConference(model.Conference{
		Name:        l.Name,
		StartDate:   l.Date,
		EndDate:     l.Date,
		Location:    l.Location,
		Type:        l.Type,
		Topics:      slices.Clone(l.Topics),
		Involvement: model.InvolvementConsidering,
		Notes:       &notes,
	})
	c.notify(view.SeveritySuccess, "Event added to your calendar!")
}
