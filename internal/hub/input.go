package hub

import (
	"strings"

	"github.com/bryan-buckman/mvphub/internal/model"
)

// Field defaults applied when a form leaves them blank.
const (
	DefaultEventType   = "Conference"
	DefaultInvolvement = model.InvolvementConsidering
	DefaultIdeaType    = model.ContentBlog
	DefaultPriority    = model.PriorityMedium
	DefaultIdeaStatus  = model.StatusIdea
)

// ConferenceInput is the raw content of the event form.
type ConferenceInput struct {
	Name        string
	StartDate   string
	EndDate     string
	Location    string
	Type        string
	Website     string
	CFPDeadline string
	Topics      string // comma separated
	Involvement string
	Notes       string
}

func (in ConferenceInput) build() (model.Conference, error) {
	name := strings.TrimSpace(in.Name)
	start := strings.TrimSpace(in.StartDate)
	location := strings.TrimSpace(in.Location)
	if name == "" || start == "" || location == "" {
		return model.Conference{}, required("event", "Please fill in all required fields")
	}
	return model.Conference{
		Name:        name,
		StartDate:   start,
		EndDate:     orDefault(in.EndDate, start),
		Location:    location,
		Type:        orDefault(in.Type, DefaultEventType),
		Website:     optional(in.Website),
		CFPDeadline: optional(in.CFPDeadline),
		Topics:      SplitList(in.Topics),
		Involvement: model.Involvement(orDefault(in.Involvement, string(DefaultInvolvement))),
		Notes:       optional(in.Notes),
	}, nil
}

// ContentIdeaInput is the raw content of the content idea form.
type ContentIdeaInput struct {
	Type     string
	Title    string
	Priority string
	Status   string
	Notes    string
}

func (in ContentIdeaInput) build() (model.ContentIdea, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return model.ContentIdea{}, required("title", "Please enter a title")
	}
	return model.ContentIdea{
		Type:     model.ContentType(orDefault(in.Type, string(DefaultIdeaType))),
		Title:    title,
		Priority: model.Priority(orDefault(in.Priority, string(DefaultPriority))),
		Status:   model.IdeaStatus(orDefault(in.Status, string(DefaultIdeaStatus))),
		Notes:    optional(in.Notes),
	}, nil
}

// ProfileInput is the raw content of the profile form.
type ProfileInput struct {
	Name        string
	LinkedIn    string
	Blog        string
	GitHub      string
	Twitter     string
	Location    string
	Specialties string // comma separated
}

func (in ProfileInput) build() (model.UserProfile, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.UserProfile{}, required("name", "Please enter your name")
	}
	return model.UserProfile{
		Name:        name,
		LinkedIn:    strings.TrimSpace(in.LinkedIn),
		Blog:        strings.TrimSpace(in.Blog),
		GitHub:      strings.TrimSpace(in.GitHub),
		Twitter:     strings.TrimSpace(in.Twitter),
		Location:    strings.TrimSpace(in.Location),
		Specialties: SplitList(in.Specialties),
	}, nil
}

// FeedInput is the raw content of the add-feed form.
type FeedInput struct {
	Name     string
	URL      string
	Category string
}

// SplitList splits a comma separated list, trimming entries and dropping empty ones.
// The result is never nil.
func SplitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}

func optional(v string) *string {
	if v = strings.TrimSpace(v); v == "" {
		return nil
	}
	return &v
}
