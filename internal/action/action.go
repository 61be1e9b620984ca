// Package action runs a report request the way a workflow step does: it reads
// the step inputs, builds the report and hands either the result or the
// failure back to the host.
package action

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/UnitVectorY-Labs/releasereadiness/internal/render"
	"github.com/UnitVectorY-Labs/releasereadiness/internal/report"
)

// FailurePrefix precedes every message sent to the failure sink.
const FailurePrefix = "Workflow failed! "

// Runner executes one report request.
type Runner struct {
	Builder   *report.Builder
	Inputs    Inputs
	Output    io.Writer
	Failures  FailureSink
	Log       logrus.FieldLogger
	Format    string
	Templates *template.Template

	// SetOutput publishes the report as a step output. Nil skips it.
	SetOutput func(name, value string) error
	// Now stamps HTML pages; nil leaves them unstamped.
	Now func() time.Time
}

// Run builds the report and returns its Markdown. Any error is also sent to
// the failure sink.
func (r *Runner) Run() (string, error) {
	markdown, err := r.run()
	if err != nil {
		r.Failures.Fail(FailurePrefix + err.Error())
		return "", err
	}
	return markdown, nil
}

func (r *Runner) run() (string, error) {
	log := r.logger()

	req, err := ParseRequest(r.Inputs)
	if err != nil {
		return "", err
	}

	if repo, ok := req.Repository.Single(); ok {
		log = log.WithField("repository", repo)
	}
	log.WithField("versions", req.Versions).Debug("building release readiness report")

	markdown, err := Dispatch(r.Builder, req)
	if err != nil {
		return "", err
	}

	log.WithField("badges", len(report.ExtractBadges([]byte(markdown)))).Info(markdown)

	if err := r.write(req, markdown); err != nil {
		return "", err
	}

	if r.SetOutput != nil {
		if err := r.SetOutput(OutputName, markdown); err != nil {
			return "", err
		}
	}
	return markdown, nil
}

func (r *Runner) write(req Request, markdown string) error {
	switch r.Format {
	case "", render.FormatMarkdown:
		_, err := fmt.Fprintln(r.Output, markdown)
		return err
	case render.FormatHTML:
		if r.Templates == nil {
			return fmt.Errorf("html output requires templates")
		}
		repo, _ := req.Repository.Single()
		vm := render.PageViewModel{
			Title:      r.title(),
			Owner:      r.Builder.Shields.Owner,
			Repository: repo,
			Versions:   req.Versions,
			BadgeCount: len(report.ExtractBadges([]byte(markdown))),
		}
		if r.Now != nil {
			vm.GeneratedAt = r.Now().UTC().Format("January 2, 2006 15:04 MST")
		}
		return render.HTML(r.Output, r.Templates, markdown, vm)
	case render.FormatJSON:
		doc, err := r.document(req, markdown)
		if err != nil {
			return err
		}
		return render.JSON(r.Output, doc)
	default:
		return fmt.Errorf("unknown output format %q", r.Format)
	}
}

func (r *Runner) document(req Request, markdown string) (render.Document, error) {
	doc := render.Document{
		Owner:    r.Builder.Shields.Owner,
		Versions: req.Versions,
		Markdown: markdown,
	}
	if repo, ok := req.Repository.Single(); ok {
		entries, err := r.Builder.Entries(repo, req.Versions)
		if err != nil {
			return render.Document{}, err
		}
		doc.Repository = repo
		doc.Entries = entries
		return doc, nil
	}
	table, err := r.Builder.Table(req.Versions)
	if err != nil {
		return render.Document{}, err
	}
	doc.Table = &table
	return doc, nil
}

func (r *Runner) title() string {
	if r.Builder.Title != "" {
		return r.Builder.Title
	}
	return report.DefaultTitle
}

func (r *Runner) logger() logrus.FieldLogger {
	if r.Log != nil {
		return r.Log
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
