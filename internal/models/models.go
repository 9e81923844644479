package models

import (
	"time"

	"github.com/google/uuid"
)

// Run records one sitemap document written by the generator.
type Run struct {
	ID         uuid.UUID `json:"id"`
	RouterFile string    `json:"routerFile"`
	Hostname   string    `json:"hostname"`
	OutputPath string    `json:"outputPath"`
	URLCount   int       `json:"urlCount"`
	Routes     []string  `json:"routes"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NewRun creates a new run with a generated UUID and timestamp
func NewRun() *Run {
	return &Run{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
	}
}
