package action

import (
	"bytes"
	"encoding/json"
	"errors"
	"html/template"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/UnitVectorY-Labs/releasereadiness/internal/render"
	"github.com/UnitVectorY-Labs/releasereadiness/internal/report"
	"github.com/UnitVectorY-Labs/releasereadiness/internal/shield"
	"github.com/UnitVectorY-Labs/releasereadiness/internal/version"
)

type recordingSink struct {
	messages []string
}

func (s *recordingSink) Fail(message string) {
	s.messages = append(s.messages, message)
}

func newRunner(inputs Inputs) (*Runner, *bytes.Buffer, *recordingSink) {
	var out bytes.Buffer
	sink := &recordingSink{}
	return &Runner{
		Builder:  report.New(shield.New()),
		Inputs:   inputs,
		Output:   &out,
		Failures: sink,
	}, &out, sink
}

func TestEnvInputs(t *testing.T) {
	env := map[string]string{
		"INPUT_VERSIONS":      " 3.0, 2.4 ",
		"INPUT_REPOSITORY":    "",
		"INPUT_RELEASE_TRAIN": "x",
	}
	in := EnvInputs{Lookup: func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}}

	if v, ok := in.Input("versions"); !ok || v != "3.0, 2.4" {
		t.Errorf("versions = %q, %v", v, ok)
	}
	if v, ok := in.Input("repository"); !ok || v != "" {
		t.Errorf("repository = %q, %v; want present and empty", v, ok)
	}
	if _, ok := in.Input("release train"); !ok {
		t.Error("release train should map to INPUT_RELEASE_TRAIN")
	}
	if _, ok := in.Input("missing"); ok {
		t.Error("missing input reported as present")
	}
}

func TestChain(t *testing.T) {
	in := Chain{
		MapInputs{"repository": "sql"},
		nil,
		MapInputs{"repository": "k-NN", "versions": "2.4"},
	}

	if v, _ := in.Input("repository"); v != "sql" {
		t.Errorf("repository = %q, want first provider to win", v)
	}
	if v, _ := in.Input("versions"); v != "2.4" {
		t.Errorf("versions = %q, want fallback", v)
	}
	if _, ok := in.Input("other"); ok {
		t.Error("other reported as present")
	}
}

func TestParseRequest(t *testing.T) {
	tests := []struct {
		name     string
		inputs   MapInputs
		versions []string
		repo     string
		repoSet  bool
		wantErr  bool
	}{
		{
			name:     "trimmed versions",
			inputs:   MapInputs{"versions": "1.3.6 , 2.4,3.0"},
			versions: []string{"1.3.6", "2.4", "3.0"},
		},
		{
			name:     "repository present",
			inputs:   MapInputs{"versions": "2.4", "repository": "security"},
			versions: []string{"2.4"},
			repo:     "security",
			repoSet:  true,
		},
		{
			name:     "repository present but empty",
			inputs:   MapInputs{"versions": "2.4", "repository": ""},
			versions: []string{"2.4"},
			repoSet:  true,
		},
		{name: "versions missing", inputs: MapInputs{}, wantErr: true},
		{name: "versions blank", inputs: MapInputs{"versions": "  "}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := ParseRequest(tt.inputs)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRequest: %v", err)
			}
			if strings.Join(req.Versions, "|") != strings.Join(tt.versions, "|") {
				t.Errorf("Versions = %v, want %v", req.Versions, tt.versions)
			}
			repo, set := req.Repository.Get()
			if repo != tt.repo || set != tt.repoSet {
				t.Errorf("Repository = %q, %v; want %q, %v", repo, set, tt.repo, tt.repoSet)
			}
		})
	}
}

func TestRepository_Single(t *testing.T) {
	if _, ok := NoRepository().Single(); ok {
		t.Error("absent repository selected single report")
	}
	if _, ok := SomeRepository("").Single(); ok {
		t.Error("empty repository selected single report")
	}
	if name, ok := SomeRepository("sql").Single(); !ok || name != "sql" {
		t.Errorf("Single() = %q, %v", name, ok)
	}
}

func TestDispatch(t *testing.T) {
	b := report.New(shield.New())

	single, err := Dispatch(b, Request{Versions: []string{"2.4"}, Repository: SomeRepository("sql")})
	if err != nil {
		t.Fatal(err)
	}
	want, _ := b.SingleRepo("sql", []string{"2.4"})
	if single != want {
		t.Error("repository present did not dispatch to SingleRepo")
	}

	for _, repo := range []Repository{NoRepository(), SomeRepository("")} {
		multi, err := Dispatch(b, Request{Versions: []string{"2.4"}, Repository: repo})
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(multi, "## Release Readiness") {
			t.Errorf("repository %+v did not dispatch to MultiRepo", repo)
		}
	}
}

func TestRunner_Run(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	r, out, sink := newRunner(MapInputs{"versions": "3.0, 2.4", "repository": "security"})
	r.Log = logger

	var published string
	r.SetOutput = func(name, value string) error {
		if name != OutputName {
			t.Errorf("output name = %s", name)
		}
		published = value
		return nil
	}

	got, err := r.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(sink.messages) != 0 {
		t.Errorf("unexpected failures: %v", sink.messages)
	}
	if out.String() != got+"\n" {
		t.Errorf("output = %q, want report", out.String())
	}
	if published != got {
		t.Error("step output does not match report")
	}

	entry := hook.LastEntry()
	if entry == nil || entry.Message != got {
		t.Fatal("report was not logged")
	}
	if entry.Data["badges"] != 7 {
		t.Errorf("badges field = %v, want 7", entry.Data["badges"])
	}
	if entry.Data["repository"] != "security" {
		t.Errorf("repository field = %v", entry.Data["repository"])
	}
}

func TestRunner_InvalidVersion(t *testing.T) {
	r, out, sink := newRunner(MapInputs{"versions": "1.3.6.2"})

	_, err := r.Run()
	if !errors.Is(err, version.ErrInvalidVersionFormat) {
		t.Fatalf("err = %v, want ErrInvalidVersionFormat", err)
	}
	if len(sink.messages) != 1 {
		t.Fatalf("failures = %v, want one", sink.messages)
	}
	want := "Workflow failed! unable to understand version string, 1.3.6.2"
	if !strings.HasPrefix(sink.messages[0], want) {
		t.Errorf("failure = %q, want prefix %q", sink.messages[0], want)
	}
	if out.Len() != 0 {
		t.Errorf("partial output written: %q", out.String())
	}
}

func TestRunner_MissingVersions(t *testing.T) {
	r, _, sink := newRunner(MapInputs{})
	if _, err := r.Run(); err == nil {
		t.Fatal("expected error")
	}
	if len(sink.messages) != 1 || !strings.Contains(sink.messages[0], "versions") {
		t.Errorf("failures = %v", sink.messages)
	}
}

func TestRunner_JSON(t *testing.T) {
	r, out, _ := newRunner(MapInputs{"versions": "2.4"})
	r.Format = render.FormatJSON

	if _, err := r.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	var doc render.Document
	if err := json.Unmarshal(out.Bytes(), &doc); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if doc.Table == nil || len(doc.Table.Rows) != len(report.DefaultRepositories) {
		t.Fatalf("table = %+v", doc.Table)
	}
	if doc.Owner != "opensearch-project" {
		t.Errorf("Owner = %s", doc.Owner)
	}
}

func TestRunner_HTML(t *testing.T) {
	tmpl := template.Must(template.New("").Parse(`{{define "report.html"}}<h1>{{.Title}}</h1>{{.GeneratedAt}}|{{.BadgeCount}}{{.Body}}{{end}}`))

	r, out, _ := newRunner(MapInputs{"versions": "2.4", "repository": "sql"})
	r.Format = render.FormatHTML
	r.Templates = tmpl
	r.Now = func() time.Time { return time.Date(2026, 1, 2, 15, 4, 0, 0, time.UTC) }

	if _, err := r.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, want := range []string{"<h1>Release Readiness</h1>", "January 2, 2026 15:04 UTC|6", "<img"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestRunner_UnknownFormat(t *testing.T) {
	r, _, sink := newRunner(MapInputs{"versions": "2.4"})
	r.Format = "pdf"
	if _, err := r.Run(); err == nil {
		t.Fatal("expected error")
	}
	if len(sink.messages) != 1 {
		t.Errorf("failures = %v", sink.messages)
	}
}

func TestActionsFailure(t *testing.T) {
	var buf bytes.Buffer
	f := NewActionsFailure(&buf)
	if f.Failed() {
		t.Fatal("Failed() before Fail")
	}

	f.Fail("Workflow failed! 100% broken\nsecond line")
	if !f.Failed() {
		t.Error("Failed() = false")
	}
	if got, want := buf.String(), "::error::Workflow failed! 100%25 broken%0Asecond line\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
	if f.Message() != "Workflow failed! 100% broken\nsecond line" {
		t.Errorf("Message() = %q", f.Message())
	}
}

func TestWriteOutput(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, "report", "line one\r\nline two"); err != nil {
		t.Fatalf("WriteOutput: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("lines = %q", lines)
	}
	delimiter := strings.TrimPrefix(lines[0], "report<<")
	if !strings.HasPrefix(delimiter, "ghadelimiter_") {
		t.Errorf("header = %q", lines[0])
	}
	if lines[3] != delimiter {
		t.Errorf("closing delimiter = %q, want %q", lines[3], delimiter)
	}
}

func TestSetOutput(t *testing.T) {
	path := t.TempDir() + "/output"
	t.Setenv("GITHUB_OUTPUT", path)

	if err := SetOutput("report", "value"); err != nil {
		t.Fatalf("SetOutput: %v", err)
	}

	t.Setenv("GITHUB_OUTPUT", "")
	if err := SetOutput("report", "value"); err != nil {
		t.Errorf("SetOutput without GITHUB_OUTPUT: %v", err)
	}
}
