// Package export writes generated guides to disk and reads them back.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/getsavvyinc/webtoapk/export/markdown"
	"github.com/getsavvyinc/webtoapk/guide"
	"github.com/getsavvyinc/webtoapk/model"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	MarkdownFile Format = "md"
	JSONFile     Format = "json"
	YAMLFile     Format = "yaml"
)

var Formats = []Format{MarkdownFile, JSONFile, YAMLFile}

var (
	ErrUnknownFormat = errors.New("unknown export format")
	ErrNoSteps       = errors.New("guide has no steps")
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "md", "markdown":
		return MarkdownFile, nil
	case "json":
		return JSONFile, nil
	case "yaml", "yml":
		return YAMLFile, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Guide is a generated guide together with the request that produced it.
type Guide struct {
	Request     model.GenerationRequest `json:"request" yaml:"request"`
	GeneratedAt time.Time               `json:"generated_at" yaml:"generated_at"`
	Steps       []guide.Step            `json:"steps" yaml:"steps"`
}

func New(req model.GenerationRequest, steps []guide.Step) *Guide {
	return &Guide{
		Request:     req,
		GeneratedAt: time.Now().UTC().Truncate(time.Second),
		Steps:       steps,
	}
}

func (g *Guide) Encode(format Format) ([]byte, error) {
	switch format {
	case MarkdownFile:
		md, err := markdown.Render(g.Request, g.Steps)
		return []byte(md), err
	case JSONFile:
		return json.MarshalIndent(g, "", "  ")
	case YAMLFile:
		return yaml.Marshal(g)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// ToFile writes the guide to dir as webtoapk_<time>.<format> and returns the
// file path.
func (g *Guide) ToFile(format Format, dir string) (string, error) {
	bs, err := g.Encode(format)
	if err != nil {
		return "", err
	}
	fileName := filepath.Join(dir, fmt.Sprintf("webtoapk_%s.%s", g.GeneratedAt.Local().Format("2006_01_02_15_04_05"), format))
	if err := os.WriteFile(fileName, bs, 0644); err != nil {
		return "", fmt.Errorf("failed to write guide: %w", err)
	}
	return fileName, nil
}

// SelectFormat asks for an export format.
func SelectFormat() (Format, error) {
	var format Format
	if err := huh.NewSelect[Format]().
		Title("Export guide").
		Description("Select an export format").
		Options(
			huh.NewOption("Markdown file (also copied to the clipboard)", MarkdownFile),
			huh.NewOption("JSON guide (replay with `webtoapk view`)", JSONFile),
			huh.NewOption("YAML guide (replay with `webtoapk view`)", YAMLFile),
		).Value(&format).Run(); err != nil {
		return "", err
	}
	return format, nil
}

// LoadFile reads a guide written by ToFile. A bare JSON array of steps, as
// returned by the generation service, is accepted as well.
func LoadFile(path string) (*Guide, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	format, err := ParseFormat(filepath.Ext(path))
	if err != nil {
		return nil, err
	}

	var g Guide
	switch format {
	case JSONFile:
		if steps, derr := guide.DecodeSteps(bs); derr == nil {
			g.Steps = steps
			break
		}
		if err := json.Unmarshal(bs, &g); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	case YAMLFile:
		if err := yaml.Unmarshal(bs, &g); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: cannot load %s files", ErrUnknownFormat, format)
	}

	if len(g.Steps) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoSteps)
	}
	return &g, nil
}
