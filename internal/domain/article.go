package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Source identifies the publisher of an article.
type Source struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// Article is a single upstream news record. JSON names follow the upstream
// provider so proxied envelopes keep their shape.
type Article struct {
	Source      Source     `json:"source"`
	Author      string     `json:"author,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	URL         string     `json:"url"`
	URLToImage  string     `json:"urlToImage"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	Content     string     `json:"content,omitempty"`
}

// publishedLayouts are tried in order; the provider normally sends RFC 3339.
var publishedLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// UnmarshalJSON decodes an article. A publishedAt that is null, empty or not
// a recognizable timestamp leaves the article undated instead of failing
// the whole page.
func (a *Article) UnmarshalJSON(data []byte) error {
	type plain Article
	var raw struct {
		plain
		PublishedAt json.RawMessage `json:"publishedAt"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*a = Article(raw.plain)
	a.PublishedAt = parsePublishedAt(raw.PublishedAt)
	return nil
}

func parsePublishedAt(raw json.RawMessage) *time.Time {
	var s string
	if len(bytes.TrimSpace(raw)) == 0 || json.Unmarshal(raw, &s) != nil {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range publishedLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return &ts
		}
	}
	return nil
}

const wordsPerMinute = 200

// ReadingMinutes estimates reading time from title, description and content.
// It never returns less than one minute.
func (a Article) ReadingMinutes() int {
	words := len(strings.Fields(a.Title)) +
		len(strings.Fields(a.Description)) +
		len(strings.Fields(a.Content))

	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}

// NewsEnvelope is an upstream headlines/search response. Fields the proxy
// does not model are kept in Extra and written back out unchanged.
type NewsEnvelope struct {
	Status       string
	TotalResults int
	Articles     []Article
	Extra        map[string]json.RawMessage
}

// WithArticles returns a copy of the envelope carrying articles instead.
func (e *NewsEnvelope) WithArticles(articles []Article) *NewsEnvelope {
	out := *e
	out.Articles = articles
	return &out
}

// MarshalJSON writes the envelope with articles always encoded as an array.
func (e NewsEnvelope) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(e.Extra)+3)
	for k, v := range e.Extra {
		out[k] = v
	}

	articles := e.Articles
	if articles == nil {
		articles = []Article{}
	}
	if e.Status != "" {
		out["status"] = e.Status
	}
	out["totalResults"] = e.TotalResults
	out["articles"] = articles

	return json.Marshal(out)
}

// UnmarshalJSON validates the envelope schema: it must be an object whose
// articles member is an array of article objects.
func (e *NewsEnvelope) UnmarshalJSON(data []byte) error {
	env, err := DecodeEnvelope(data)
	if err != nil {
		return err
	}
	*e = *env
	return nil
}

// DecodeEnvelope parses and validates an envelope body.
func DecodeEnvelope(data []byte) (*NewsEnvelope, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("envelope is not a JSON object: %w", err)
	}
	if fields == nil {
		return nil, fmt.Errorf("envelope is null")
	}

	env := &NewsEnvelope{Extra: make(map[string]json.RawMessage)}

	rawArticles, ok := fields["articles"]
	if !ok {
		return nil, fmt.Errorf("envelope has no articles field")
	}
	if t := bytes.TrimSpace(rawArticles); len(t) == 0 || t[0] != '[' {
		return nil, fmt.Errorf("articles field is not an array")
	}
	if err := json.Unmarshal(rawArticles, &env.Articles); err != nil {
		return nil, fmt.Errorf("invalid article record: %w", err)
	}
	if env.Articles == nil {
		env.Articles = []Article{}
	}

	if raw, ok := fields["status"]; ok {
		if err := json.Unmarshal(raw, &env.Status); err != nil {
			return nil, fmt.Errorf("status field is not a string: %w", err)
		}
	}
	if raw, ok := fields["totalResults"]; ok {
		if err := json.Unmarshal(raw, &env.TotalResults); err != nil {
			return nil, fmt.Errorf("totalResults field is not an integer: %w", err)
		}
	}

	for k, v := range fields {
		switch k {
		case "articles", "status", "totalResults":
		default:
			env.Extra[k] = v
		}
	}

	return env, nil
}
