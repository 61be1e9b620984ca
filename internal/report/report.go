// Package report builds the release readiness Markdown for one repository or
// a table covering many.
package report

import (
	"fmt"
	"strings"

	"github.com/UnitVectorY-Labs/releasereadiness/internal/models"
	"github.com/UnitVectorY-Labs/releasereadiness/internal/shield"
	"github.com/UnitVectorY-Labs/releasereadiness/internal/version"
)

const DefaultTitle = "Release Readiness"

// DefaultRepositories is the set of repositories covered by the multi
// repository table, in row order.
var DefaultRepositories = []string{
	"OpenSearch",
	"OpenSearch-Dashboards",
	"alerting",
	"anomaly-detection",
	"asynchronous-search",
	"common-utils",
	"cross-cluster-replication",
	"dashboards-reports",
	"geospatial",
	"index-management",
	"job-scheduler",
	"k-NN",
	"ml-commons",
	"notifications",
	"observability",
	"performance-analyzer",
	"performance-analyzer-rca",
	"security",
	"sql",
}

// Builder renders reports. It holds no state between calls.
type Builder struct {
	Shields      *shield.Composer
	Repositories []string
	Title        string
}

// New returns a Builder over the default repositories.
func New(shields *shield.Composer) *Builder {
	repos := make([]string, len(DefaultRepositories))
	copy(repos, DefaultRepositories)
	return &Builder{
		Shields:      shields,
		Repositories: repos,
		Title:        DefaultTitle,
	}
}

// Entries lists the badges of a single repository report in output order.
func (b *Builder) Entries(repo string, versions []string) ([]models.Entry, error) {
	normalized, err := version.NormalizeAll(versions)
	if err != nil {
		return nil, err
	}

	s := b.Shields
	entries := []models.Entry{
		{Label: "Untriaged", Badge: s.Untriaged(repo)},
		{Label: "Security Issues", Badge: s.Security(repo)},
		{Label: "Open Issues", Badge: s.OpenIssues(repo)},
		{Label: "Open Pull Requests", Badge: s.OpenPullRequests(repo)},
		{Label: "Code Coverage", Badge: s.Coverage(repo)},
	}
	for i, v := range versions {
		entries = append(entries, models.Entry{
			Label: fmt.Sprintf("Upcoming %s Release Issues", v),
			Badge: s.ReleaseOpen(repo, normalized[i]),
		})
	}
	return entries, nil
}

// SingleRepo renders the badges of one repository on a single line.
func (b *Builder) SingleRepo(repo string, versions []string) (string, error) {
	entries, err := b.Entries(repo, versions)
	if err != nil {
		return "", err
	}

	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, e.Badge.Markdown())
	}
	return strings.Join(parts, " "), nil
}

// Table builds the multi repository view: an untriaged cell and an
// open/closed pair per version for every configured repository.
func (b *Builder) Table(versions []string) (models.Table, error) {
	normalized, err := version.NormalizeAll(versions)
	if err != nil {
		return models.Table{}, err
	}

	title := b.Title
	if title == "" {
		title = DefaultTitle
	}
	t := models.Table{
		Title:    title,
		Versions: append([]string(nil), versions...),
	}

	s := b.Shields
	for _, repo := range b.Repositories {
		row := models.Row{
			Repository: repo,
			Triage:     models.Cell{Badges: []models.Badge{s.Untriaged(repo)}},
		}
		for _, v := range normalized {
			row.Releases = append(row.Releases, models.Cell{Badges: []models.Badge{
				s.ReleaseOpen(repo, v),
				s.ReleaseClosed(repo, v),
			}})
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// MultiRepo renders the multi repository table. Lines end with CRLF.
func (b *Builder) MultiRepo(versions []string) (string, error) {
	t, err := b.Table(versions)
	if err != nil {
		return "", err
	}
	return RenderTable(t), nil
}

// RenderTable writes t as a Markdown table under a level two heading.
func RenderTable(t models.Table) string {
	lines := []string{"## " + t.Title}

	header := append([]string{"Repo", "Triage"}, t.Versions...)
	lines = append(lines, strings.Join(header, " | "))

	divider := make([]string, t.Columns())
	for i := range divider {
		divider[i] = "---"
	}
	lines = append(lines, strings.Join(divider, "|"))

	for _, row := range t.Rows {
		cells := []string{row.Repository, renderCell(row.Triage)}
		for _, c := range row.Releases {
			cells = append(cells, renderCell(c))
		}
		lines = append(lines, strings.Join(cells, " | "))
	}
	return strings.Join(lines, "\r\n")
}

func renderCell(c models.Cell) string {
	parts := make([]string, 0, len(c.Badges))
	for _, b := range c.Badges {
		parts = append(parts, b.Markdown())
	}
	return strings.Join(parts, " ")
}
