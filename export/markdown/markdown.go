package markdown

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/atotto/clipboard"
	"github.com/getsavvyinc/webtoapk/details"
	"github.com/getsavvyinc/webtoapk/guide"
	"github.com/getsavvyinc/webtoapk/model"
)

const MdTemplate = `# Turn your web project into an Android APK

- Repository: {{ .Request.RepositoryURL }}
- Target: **{{ .Request.PlatformVersion }}**
{{- if .Request.OS }}
- Operating system: {{ .Request.OS.Label }}
{{- end }}
{{ range $i, $step := .Steps }}
## {{ add $i 1 }}. {{ $step.Title }}
{{ range $step.Pages }}
{{- if .Heading }}
### {{ .Heading }}
{{ end }}
{{- with .Page.Explanation }}
{{ . }}
{{ end }}
{{- with .Page.Command }}
~~~sh
{{ . }}
~~~
{{ end }}
{{- range .Page.Details }}
{{ detail . }}
{{- end }}
{{- range .Page.Groups }}
{{ with .Stage.Title }}
**{{ . }}**
{{ end }}
{{- range .Actions }}
{{ action . }}
{{- end }}
{{- end }}
{{ end }}
{{- else }}
_No steps were generated for this repository._
{{- end -}}
`

var mdTemplate *template.Template

func init() {
	mdTemplate = template.Must(template.New("md").Funcs(template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"detail": renderBlock,
		"action": renderAction,
	}).Parse(MdTemplate))
}

type section struct {
	Heading string
	Page    guide.Page
}

type stepData struct {
	Title string
	Pages []section
}

// pages resolves s for os. An OS specific step without a chosen OS is
// rendered once per supported OS.
func pages(s guide.Step, os guide.OS) []section {
	p := s.Page(os)
	if !p.NeedsOS {
		return []section{{Page: p}}
	}
	var res []section
	for _, o := range guide.SupportedOS {
		res = append(res, section{Heading: o.Label(), Page: s.Page(o)})
	}
	return res
}

func renderBlock(b details.Block) string {
	switch b.Kind {
	case details.Header:
		return "\n**" + b.Text + "**\n"
	case details.NumberedItem:
		return b.Marker + ". " + b.Text
	case details.LetteredItem:
		return "    - " + b.Marker + ". " + b.Text
	default:
		return "\n" + b.Text + "\n"
	}
}

func renderAction(a guide.Action) string {
	if a.Kind == guide.ActionLink {
		return fmt.Sprintf("- [%s](%s)", a.Label, a.Value)
	}
	return fmt.Sprintf("- %s\n\n~~~sh\n%s\n~~~\n", a.Label, strings.TrimSpace(a.Value))
}

// Render returns the guide as markdown.
func Render(req model.GenerationRequest, steps []guide.Step) (string, error) {
	data := struct {
		Request model.GenerationRequest
		Steps   []stepData
	}{Request: req}
	for _, s := range steps {
		data.Steps = append(data.Steps, stepData{Title: s.Title, Pages: pages(s, req.OS)})
	}

	var buf bytes.Buffer
	if err := mdTemplate.Execute(&buf, data); err != nil {
		err = fmt.Errorf("error executing markdown template: %w", err)
		return "", err
	}
	return buf.String(), nil
}

// Result describes a written markdown file.
type Result struct {
	Path   string
	Copied bool
}

type Service interface {
	ToMarkdownFile(req model.GenerationRequest, steps []guide.Step) (Result, error)
}

type svc struct {
	dir       string
	now       func() time.Time
	clipboard func(string) error
}

type Option func(*svc)

func WithDir(dir string) Option {
	return func(s *svc) {
		s.dir = dir
	}
}

func WithClipboard(f func(string) error) Option {
	return func(s *svc) {
		s.clipboard = f
	}
}

func NewService(opts ...Option) Service {
	s := &svc{
		dir:       ".",
		now:       time.Now,
		clipboard: clipboard.WriteAll,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ToMarkdownFile writes the markdown to webtoapk_<time>.md and copies it to
// the clipboard. A clipboard failure is not an error.
func (s *svc) ToMarkdownFile(req model.GenerationRequest, steps []guide.Step) (Result, error) {
	mdContent, err := Render(req, steps)
	if err != nil {
		return Result{}, err
	}

	humanReadableTime := s.now().Format("2006_01_02_15_04_05")
	fileName := filepath.Join(s.dir, fmt.Sprintf("webtoapk_%s.md", humanReadableTime))
	if err := os.WriteFile(fileName, []byte(mdContent), 0644); err != nil {
		err = fmt.Errorf("failed to write md to file: %w", err)
		return Result{}, err
	}

	res := Result{Path: fileName}
	if cerr := s.clipboard(mdContent); cerr == nil {
		res.Copied = true
	}
	return res, nil
}
