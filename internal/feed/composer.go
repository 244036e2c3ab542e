// Package feed derives the browsable view of saved posts: a filtered subset
// in source order plus a wrapping carousel cursor over it.
package feed

import (
	"strings"

	"github.com/jyleerahman/fav-nycday-app/internal/post"
)

// State labels the two distinct empty conditions apart from the normal one.
type State string

const (
	StateOK        State = "ok"
	StateNoPosts   State = "no_posts"
	StateNoMatches State = "no_matches"
)

// Filter is the active predicate set. Zero values mean "unset".
type Filter struct {
	Query      string
	WeatherTag string
	MoodTag    string
}

// ApplyFilter returns the posts satisfying every active predicate, keeping
// their relative order. The query matches case-insensitively against title,
// content, creator name, or any waypoint name.
func ApplyFilter(posts []post.Post, f Filter) []post.Post {
	matched := []post.Post{}
	for _, p := range posts {
		if !matchesQuery(p, f.Query) {
			continue
		}
		if f.WeatherTag != "" && !contains(p.WeatherTags, f.WeatherTag) {
			continue
		}
		if f.MoodTag != "" && !contains(p.MoodTags, f.MoodTag) {
			continue
		}
		matched = append(matched, p)
	}
	return matched
}

func matchesQuery(p post.Post, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Content), q) ||
		strings.Contains(strings.ToLower(p.CreatedBy), q) {
		return true
	}
	for _, wp := range p.Waypoints {
		if strings.Contains(strings.ToLower(wp.Name), q) {
			return true
		}
	}
	return false
}

func contains(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

// View is the carousel over a filtered post collection. Construct it with
// NewView whenever the source posts or the filter change; the cursor always
// restarts at zero.
type View struct {
	Posts  []post.Post
	Index  int
	source int
}

func NewView(source []post.Post, f Filter) View {
	return View{
		Posts:  ApplyFilter(source, f),
		source: len(source),
	}
}

// Current returns the post under the cursor, if any.
func (v View) Current() (post.Post, bool) {
	if len(v.Posts) == 0 {
		return post.Post{}, false
	}
	return v.Posts[v.Index], true
}

// Next advances the cursor, wrapping from the last post to the first.
func (v View) Next() View {
	if len(v.Posts) == 0 {
		return v
	}
	v.Index = (v.Index + 1) % len(v.Posts)
	return v
}

// Previous retreats the cursor, wrapping from the first post to the last.
func (v View) Previous() View {
	if len(v.Posts) == 0 {
		return v
	}
	v.Index = (v.Index - 1 + len(v.Posts)) % len(v.Posts)
	return v
}

// State reports whether the view is browsable, empty because nothing was
// saved, or empty because nothing matched the active filter.
func (v View) State() State {
	if len(v.Posts) > 0 {
		return StateOK
	}
	if v.source == 0 {
		return StateNoPosts
	}
	return StateNoMatches
}
