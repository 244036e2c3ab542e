package post

import (
	"context"
	"encoding/json"

	"github.com/jyleerahman/fav-nycday-app/internal/db"
	"github.com/jyleerahman/fav-nycday-app/internal/session"

	"github.com/google/uuid"
)

type Repository struct {
	db db.Querier
}

func NewRepository(db db.Querier) *Repository {
	return &Repository{db: db}
}

// Save inserts a new post. The draft is stored as provided; tag and title
// policy lives at the handler boundary.
func (r *Repository) Save(ctx context.Context, draft Draft) (Post, error) {
	p := Post{
		ID:            uuid.NewString(),
		Title:         draft.Title,
		Content:       draft.Content,
		RouteGeometry: draft.RouteGeometry,
		Waypoints:     draft.Waypoints,
		WeatherTags:   draft.WeatherTags,
		MoodTags:      draft.MoodTags,
		CreatedBy:     draft.CreatedBy,
	}
	if p.Waypoints == nil {
		p.Waypoints = []session.Waypoint{}
	}
	if p.WeatherTags == nil {
		p.WeatherTags = []string{}
	}
	if p.MoodTags == nil {
		p.MoodTags = []string{}
	}

	waypoints, err := json.Marshal(p.Waypoints)
	if err != nil {
		return Post{}, err
	}
	weather, err := json.Marshal(p.WeatherTags)
	if err != nil {
		return Post{}, err
	}
	mood, err := json.Marshal(p.MoodTags)
	if err != nil {
		return Post{}, err
	}

	row := r.db.QueryRow(ctx, `
		INSERT INTO posts (id, title, content, route_geometry, waypoints, weather_tags, mood_tags, created_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING created_at
	`, p.ID, p.Title, p.Content, p.RouteGeometry, waypoints, weather, mood, p.CreatedBy)
	if err := row.Scan(&p.CreatedAt); err != nil {
		return Post{}, err
	}
	return p, nil
}

// ListAll fetches the complete collection, newest first. Browsing and
// filtering happen in memory on top of this result.
func (r *Repository) ListAll(ctx context.Context) ([]Post, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, title, content, COALESCE(route_geometry, ''), waypoints, weather_tags, mood_tags, created_by, created_at
		FROM posts
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []Post{}
	for rows.Next() {
		var p Post
		var waypoints, weather, mood []byte
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.RouteGeometry, &waypoints, &weather, &mood, &p.CreatedBy, &p.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(waypoints, &p.Waypoints); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(weather, &p.WeatherTags); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(mood, &p.MoodTags); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}
