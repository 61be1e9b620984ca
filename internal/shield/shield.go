// Package shield composes shields.io badge URLs and GitHub issue search
// links for the repositories of a single owner.
package shield

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/google/go-querystring/query"

	"github.com/UnitVectorY-Labs/releasereadiness/internal/models"
)

const (
	DefaultOwner      = "opensearch-project"
	DefaultShieldsURL = "https://img.shields.io"
	DefaultGitHubURL  = "https://github.com"
	DefaultCodecovURL = "https://app.codecov.io"

	UntriagedLabel = "untriaged"
	SecurityLabel  = "security vulnerability"
)

// Composer builds badge image URLs and their click-through links.
type Composer struct {
	Owner      string
	ShieldsURL string
	GitHubURL  string
	CodecovURL string

	UntriagedColor string
	SecurityColor  string
}

// New returns a Composer for the default hosts and owner.
func New() *Composer {
	return &Composer{
		Owner:          DefaultOwner,
		ShieldsURL:     DefaultShieldsURL,
		GitHubURL:      DefaultGitHubURL,
		CodecovURL:     DefaultCodecovURL,
		UntriagedColor: "red",
		SecurityColor:  "red",
	}
}

// imageOptions are the query parameters shields.io accepts on an image URL.
type imageOptions struct {
	LabelColor string `url:"labelColor,omitempty"`
}

// Shield returns the shields.io URL for a GitHub metric of repo.
func (c *Composer) Shield(metric, repo string) string {
	return fmt.Sprintf("%s/github/%s/%s/%s", trim(c.ShieldsURL), metric, c.Owner, repo)
}

// LabeledShield returns the shields.io URL for a metric filtered by label.
func (c *Composer) LabeledShield(metric, repo, label string) string {
	return c.Shield(metric, repo) + "/" + url.PathEscape(label)
}

// LabeledLink returns the GitHub issue search for issues of the given state
// carrying label.
func (c *Composer) LabeledLink(state, repo, label string) string {
	return fmt.Sprintf(`%s/issues?q=is%%3Aissue+is%%3A%s+label%%3A"%s"`, c.repoURL(repo), state, queryEscaper.Replace(url.PathEscape(label)))
}

// queryEscaper escapes what PathEscape leaves intact but a query string
// treats as a separator.
var queryEscaper = strings.NewReplacer("+", "%2B", "&", "%26")

// ImageWithLink pairs an image with its link. A non-empty color is added to
// the image URL only.
func (c *Composer) ImageWithLink(img, link, color string) models.Badge {
	v, err := query.Values(imageOptions{LabelColor: color})
	if err == nil {
		if q := v.Encode(); q != "" {
			img += "?" + q
		}
	}

	b := models.Badge{ImageURL: img, TargetURL: link}
	b.FillHosts()
	return b
}

// Untriaged counts open issues labelled untriaged.
func (c *Composer) Untriaged(repo string) models.Badge {
	return c.ImageWithLink(
		c.LabeledShield("issues", repo, UntriagedLabel),
		c.LabeledLink("open", repo, UntriagedLabel),
		c.UntriagedColor,
	)
}

// Security counts open security vulnerability issues.
func (c *Composer) Security(repo string) models.Badge {
	return c.ImageWithLink(
		c.LabeledShield("issues", repo, SecurityLabel),
		c.LabeledLink("open", repo, SecurityLabel),
		c.SecurityColor,
	)
}

func (c *Composer) OpenIssues(repo string) models.Badge {
	return c.ImageWithLink(c.Shield("issues", repo), c.repoURL(repo)+"/issues", "")
}

func (c *Composer) OpenPullRequests(repo string) models.Badge {
	return c.ImageWithLink(c.Shield("issues-pr", repo), c.repoURL(repo)+"/pulls", "")
}

// Coverage links the codecov coverage percentage of repo.
func (c *Composer) Coverage(repo string) models.Badge {
	return c.ImageWithLink(
		fmt.Sprintf("%s/codecov/c/gh/%s/%s", trim(c.ShieldsURL), c.Owner, repo),
		fmt.Sprintf("%s/gh/%s/%s", trim(c.CodecovURL), c.Owner, repo),
		"",
	)
}

// ReleaseOpen counts open issues labelled with a normalized version.
func (c *Composer) ReleaseOpen(repo, version string) models.Badge {
	return c.ImageWithLink(c.LabeledShield("issues", repo, version), c.LabeledLink("open", repo, version), "")
}

// ReleaseClosed counts closed issues labelled with a normalized version.
func (c *Composer) ReleaseClosed(repo, version string) models.Badge {
	return c.ImageWithLink(c.LabeledShield("issues-closed", repo, version), c.LabeledLink("closed", repo, version), "")
}

func (c *Composer) repoURL(repo string) string {
	return fmt.Sprintf("%s/%s/%s", trim(c.GitHubURL), c.Owner, repo)
}

func trim(base string) string {
	return strings.TrimRight(base, "/")
}
