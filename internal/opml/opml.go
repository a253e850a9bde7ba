// Package opml converts feed subscriptions to and from OPML 2.0.
package opml

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bryan-buckman/mvphub/internal/hub"
	"github.com/bryan-buckman/mvphub/internal/model"
)

// OPML represents the root of an OPML document.
type OPML struct {
	XMLName xml.Name `xml:"opml"`
	Version string   `xml:"version,attr"`
	Head    Head     `xml:"head"`
	Body    Body     `xml:"body"`
}

// Head contains OPML metadata.
type Head struct {
	Title       string `xml:"title,omitempty"`
	DateCreated string `xml:"dateCreated,omitempty"`
}

// Body contains the outlines.
type Body struct {
	Outlines []Outline `xml:"outline"`
}

// Outline is a folder when it has children and a feed when it has an xmlUrl.
type Outline struct {
	Text     string    `xml:"text,attr"`
	Title    string    `xml:"title,attr,omitempty"`
	Type     string    `xml:"type,attr,omitempty"`
	XMLURL   string    `xml:"xmlUrl,attr,omitempty"`
	HTMLURL  string    `xml:"htmlUrl,attr,omitempty"`
	Outlines []Outline `xml:"outline,omitempty"`
}

// Parse reads an OPML document and returns its feeds in document order. The
// enclosing folder names, joined with "/", become the feed category.
func Parse(r io.Reader) ([]hub.FeedInput, error) {
	var doc OPML
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode opml: %w", err)
	}
	feeds := []hub.FeedInput{}
	var walk func(outlines []Outline, path []string)
	walk = func(outlines []Outline, path []string) {
		for _, o := range outlines {
			switch {
			case o.XMLURL != "":
				feeds = append(feeds, hub.FeedInput{
					Name:     firstNonEmpty(o.Title, o.Text, o.XMLURL),
					URL:      o.XMLURL,
					Category: strings.Join(path, "/"),
				})
			case len(o.Outlines) > 0:
				walk(o.Outlines, append(path[:len(path):len(path)], firstNonEmpty(o.Text, o.Title)))
			}
		}
	}
	walk(doc.Body.Outlines, nil)
	return feeds, nil
}

// Export renders feeds as an OPML document. Feeds are grouped into one folder
// per category, in order of first appearance; uncategorized feeds stay at the
// top level.
func Export(title string, feeds []model.RssFeed, now time.Time) ([]byte, error) {
	doc := OPML{
		Version: "2.0",
		Head: Head{
			Title:       title,
			DateCreated: now.Format(time.RFC1123Z),
		},
	}

	folders := make(map[string]int)
	for _, f := range feeds {
		feed := Outline{Text: f.Name, Title: f.Name, Type: "rss", XMLURL: f.URL}
		if f.Category == "" {
			doc.Body.Outlines = append(doc.Body.Outlines, feed)
			continue
		}
		i, ok := folders[f.Category]
		if !ok {
			i = len(doc.Body.Outlines)
			folders[f.Category] = i
			doc.Body.Outlines = append(doc.Body.Outlines, Outline{Text: f.Category, Title: f.Category})
		}
		doc.Body.Outlines[i].Outlines = append(doc.Body.Outlines[i].Outlines, feed)
	}

	output, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode opml: %w", err)
	}
	return append([]byte(xml.Header), output...), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
