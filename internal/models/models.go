package models

import (
	"fmt"
	"net/url"
)

// Badge represents a single badge rendered into a report.
type Badge struct {
	AltText    string `json:"alt_text"`
	ImageURL   string `json:"image_url"`
	TargetURL  string `json:"target_url"`
	HostImage  string `json:"host_image,omitempty"`
	HostTarget string `json:"host_target,omitempty"`
}

// Markdown renders the badge as a linked Markdown image.
func (b Badge) Markdown() string {
	return fmt.Sprintf("[![%s](%s)](%s)", b.AltText, b.ImageURL, b.TargetURL)
}

// FillHosts sets HostImage and HostTarget from the badge URLs.
func (b *Badge) FillHosts() {
	if u, err := url.Parse(b.ImageURL); err == nil {
		b.HostImage = u.Host
	}
	if u, err := url.Parse(b.TargetURL); err == nil {
		b.HostTarget = u.Host
	}
}

// Entry is a labelled badge in a single repository report. The label only
// documents the badge; it is not rendered.
type Entry struct {
	Label string `json:"label"`
	Badge Badge  `json:"badge"`
}

// Cell is one table cell made of one or more badges.
type Cell struct {
	Badges []Badge `json:"badges"`
}

// Row is one repository line in the multi repository table.
type Row struct {
	Repository string `json:"repository"`
	Triage     Cell   `json:"triage"`
	Releases   []Cell `json:"releases"`
}

// Table is the multi repository release readiness table.
type Table struct {
	Title    string   `json:"title"`
	Versions []string `json:"versions"`
	Rows     []Row    `json:"rows"`
}

// Columns returns the column count shared by the header, divider and rows.
func (t Table) Columns() int {
	return 2 + len(t.Versions)
}
