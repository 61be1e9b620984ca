package action

import (
	"fmt"
	"strings"

	"github.com/UnitVectorY-Labs/releasereadiness/internal/report"
)

const (
	InputVersions   = "versions"
	InputRepository = "repository"
)

// Repository is an optional repository name. A present but empty name is
// distinct from an absent one; neither selects the single repository report.
type Repository struct {
	name string
	set  bool
}

func SomeRepository(name string) Repository { return Repository{name: name, set: true} }

func NoRepository() Repository { return Repository{} }

// Get returns the name and whether it was provided.
func (r Repository) Get() (string, bool) { return r.name, r.set }

// Single returns the name when it selects the single repository report.
func (r Repository) Single() (string, bool) {
	if !r.set || r.name == "" {
		return "", false
	}
	return r.name, true
}

// Request is a parsed report request.
type Request struct {
	Versions   []string
	Repository Repository
}

// ParseRequest reads the versions and repository inputs. Versions are
// comma-separated and trimmed individually.
func ParseRequest(in Inputs) (Request, error) {
	raw, ok := in.Input(InputVersions)
	if !ok || raw == "" {
		return Request{}, fmt.Errorf("input required and not supplied: %s", InputVersions)
	}

	var req Request
	for _, v := range strings.Split(raw, ",") {
		req.Versions = append(req.Versions, strings.TrimSpace(v))
	}

	if repo, ok := in.Input(InputRepository); ok {
		req.Repository = SomeRepository(repo)
	}
	return req, nil
}

// Dispatch builds the report selected by req.
func Dispatch(b *report.Builder, req Request) (string, error) {
	if repo, ok := req.Repository.Single(); ok {
		return b.SingleRepo(repo, req.Versions)
	}
	return b.MultiRepo(req.Versions)
}
