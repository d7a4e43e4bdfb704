package model

import "time"

// TimeLayout is the timestamp format of createdAt and updatedAt.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

type Category string

const (
	CategoryCompetition Category = "competition"
	CategoryResource    Category = "resource"
	CategoryTeam        Category = "team"
)

type Tag string

const (
	TagMath     Tag = "math"
	TagComputer Tag = "computer"
	TagEco      Tag = "eco"
)

type Author struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// Post is the record sent to the forum API. It only exists between the
// snapshot of a form and the end of the request that carries it.
type Post struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	Category    Category `json:"category"`
	Author      Author   `json:"author"`
	Tags        []Tag    `json:"tags"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

// Stamp sets the id and both timestamps of the p from t.
func (p *Post) Stamp(t time.Time) {
	p.ID = FormatID(t)
	p.CreatedAt = t.UTC().Format(TimeLayout)
	p.UpdatedAt = p.CreatedAt
}
