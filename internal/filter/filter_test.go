package filter

import (
	"reflect"
	"testing"
	"time"

	"github.com/bryan-buckman/mvphub/internal/model"
)

var now = time.Date(2025, 9, 2, 12, 0, 0, 0, time.UTC)

func sampleArticles() []model.Article {
	return []model.Article{
		{ID: 1, Title: "Wave 2 agents", Source: "Dynamics Blog", Category: "Business Central", Date: "2025-08-31T14:30:00Z", Excerpt: "Sales Order Agent", Tags: []string{"AI", "Copilot"}},
		{ID: 2, Title: "Fine-tuning", Source: "Foundry Blog", Category: "Azure AI", Date: "2025-08-28T16:00:00Z", Excerpt: "Pause and resume", Tags: []string{"GPT"}},
		{ID: 3, Title: "Old news", Source: "Dynamics Blog", Category: "Business Central", Date: "2025-06-01T00:00:00Z", Excerpt: "Archive", Tags: nil},
		{ID: 4, Title: "Copilot Studio", Source: "Foundry Blog", Category: "Azure AI", Date: "2025-09-01", Excerpt: "Low code", Tags: []string{"copilot"}},
	}
}

func ids(articles []model.Article) []int64 {
	out := make([]int64, len(articles))
	for i, a := range articles {
		out[i] = a.ID
	}
	return out
}

func TestArticles(t *testing.T) {
	tests := []struct {
		name string
		c    Criteria
		want []int64
	}{
		{"no criteria", Criteria{}, []int64{1, 2, 3, 4}},
		{"all category", Criteria{Category: All}, []int64{1, 2, 3, 4}},
		{"category", Criteria{Category: "Azure AI"}, []int64{2, 4}},
		{"source", Criteria{Source: "Dynamics Blog"}, []int64{1, 3}},
		{"date window", Criteria{MaxAgeDays: 7}, []int64{1, 2, 4}},
		{"query title", Criteria{Query: "fine"}, []int64{2}},
		{"query excerpt case-insensitive", Criteria{Query: "SALES"}, []int64{1}},
		{"query tag", Criteria{Query: "copilot"}, []int64{1, 4}},
		{"conjunctive", Criteria{Category: "Azure AI", Query: "copilot"}, []int64{4}},
		{"empty result", Criteria{Category: "Nope"}, []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Articles(sampleArticles(), tt.c, now))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Articles() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestArticles_SeedCategoryScenario(t *testing.T) {
	in := []model.Article{
		{ID: 1, Category: "Business Central"},
		{ID: 2, Category: "Azure AI"},
	}
	got := Articles(in, Criteria{Category: "Azure AI"}, now)
	if len(got) != 1 || got[0].ID != 2 {
		t.Errorf("Articles() = %v, want [id 2]", ids(got))
	}
}

func TestArticles_Idempotent(t *testing.T) {
	criteria := []Criteria{
		{Category: "Business Central"},
		{Query: "copilot"},
		{MaxAgeDays: 30, Source: "Foundry Blog"},
	}
	for _, c := range criteria {
		once := Articles(sampleArticles(), c, now)
		twice := Articles(once, c, now)
		if !reflect.DeepEqual(ids(once), ids(twice)) {
			t.Errorf("filter not idempotent for %+v: %v vs %v", c, ids(once), ids(twice))
		}
	}
}

func TestArticles_OrderPreserved(t *testing.T) {
	in := sampleArticles()
	// reverse the input
	for i, j := 0, len(in)-1; i < j; i, j = i+1, j-1 {
		in[i], in[j] = in[j], in[i]
	}
	got := ids(Articles(in, Criteria{Category: "Business Central"}, now))
	if !reflect.DeepEqual(got, []int64{3, 1}) {
		t.Errorf("Articles() = %v, want [3 1]", got)
	}
}

func TestArticles_EmptyIsNotNil(t *testing.T) {
	got := Articles(nil, Criteria{}, now)
	if got == nil {
		t.Error("Articles(nil) returned nil, want empty slice")
	}
}

func TestCriteriaIsDefault(t *testing.T) {
	if !(Criteria{Category: All}).IsDefault() {
		t.Error("Category all should be default")
	}
	if (Criteria{Query: "x"}).IsDefault() {
		t.Error("query should not be default")
	}
}

func TestBookmarks(t *testing.T) {
	bs := []model.Bookmark{
		{ID: 1, Category: "Azure AI"},
		{ID: 2, Category: "Business Central"},
		{ID: 3, Category: "Azure AI"},
	}
	got := Bookmarks(bs, "Azure AI")
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Errorf("Bookmarks(Azure AI) = %+v", got)
	}
	if len(Bookmarks(bs, "")) != 3 {
		t.Error("empty category should pass all bookmarks")
	}
}

func TestContentIdeas(t *testing.T) {
	ideas := []model.ContentIdea{
		{ID: 1, Type: model.ContentBlog},
		{ID: 2, Type: model.ContentSpeaking},
		{ID: 3, Type: model.ContentBlog},
	}
	if got := ContentIdeas(ideas, "blog"); len(got) != 2 {
		t.Errorf("ContentIdeas(blog) len = %d, want 2", len(got))
	}
	if got := ContentIdeas(ideas, All); len(got) != 3 {
		t.Errorf("ContentIdeas(all) len = %d, want 3", len(got))
	}
	if got := ContentIdeas(ideas, "contribution"); len(got) != 0 {
		t.Errorf("ContentIdeas(contribution) len = %d, want 0", len(got))
	}
}

func TestSourcesAndCategories(t *testing.T) {
	if got := Sources(sampleArticles()); !reflect.DeepEqual(got, []string{"Dynamics Blog", "Foundry Blog"}) {
		t.Errorf("Sources() = %v", got)
	}
	if got := Categories(sampleArticles()); !reflect.DeepEqual(got, []string{"Business Central", "Azure AI"}) {
		t.Errorf("Categories() = %v", got)
	}
}
