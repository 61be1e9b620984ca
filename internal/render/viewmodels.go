package render

import (
	"html/template"

	"github.com/UnitVectorY-Labs/releasereadiness/internal/models"
)

// PageViewModel is used for the standalone HTML report page.
type PageViewModel struct {
	Title       string
	Owner       string
	Repository  string // empty for the multi repository table
	Versions    []string
	Body        template.HTML
	BadgeCount  int
	GeneratedAt string
}

// Document is the JSON form of a report.
type Document struct {
	Owner      string         `json:"owner"`
	Repository string         `json:"repository,omitempty"`
	Versions   []string       `json:"versions"`
	Entries    []models.Entry `json:"entries,omitempty"`
	Table      *models.Table  `json:"table,omitempty"`
	Markdown   string         `json:"markdown"`
}
