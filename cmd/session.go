package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/getsavvyinc/webtoapk/client"
	"github.com/getsavvyinc/webtoapk/cmd/component/wizard"
	"github.com/getsavvyinc/webtoapk/display"
	"github.com/getsavvyinc/webtoapk/export"
	"github.com/getsavvyinc/webtoapk/guide"
	"github.com/getsavvyinc/webtoapk/lifecycle"
	"github.com/getsavvyinc/webtoapk/model"
	"github.com/getsavvyinc/webtoapk/storage"
	"github.com/getsavvyinc/webtoapk/theme"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// guideInput is what the user provides before a request is submitted.
type guideInput struct {
	RepositoryURL   string
	PlatformVersion string
	OS              guide.OS
}

// session runs requests through one controller until the user quits.
type session struct {
	ctrl     *lifecycle.Controller
	cl       client.Client
	logger   *slog.Logger
	interval time.Duration
	plain    bool
	format   string
	// remember keeps ready guides for `view --last`.
	remember bool
	// collect asks for input. A nil collect means the input is fixed and
	// starting over ends the session.
	collect func(*guideInput) error
}

func isInteractive() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stdin.Fd()))
}

func inputForm(in *guideInput) *huh.Form {
	platformOptions := huh.NewOptions(model.PlatformVersions...)
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[guide.OS]().
				Title("First, pick your development environment").
				Options(
					huh.NewOption("macOS / Linux (ZSH, Bash or another Unix shell)", guide.OSMacOSLinux),
					huh.NewOption("Windows (CMD, PowerShell and system settings)", guide.OSWindows),
					huh.NewOption("Decide later", guide.OSUnspecified),
				).
				Value(&in.OS),
			huh.NewInput().
				Title("GitHub repository URL").
				Description("A public GitHub repository with an HTML/JS project.").
				Placeholder("https://github.com/user/my-web-app").
				Value(&in.RepositoryURL),
			huh.NewSelect[string]().
				Title("Target Android version").
				Options(platformOptions...).
				Value(&in.PlatformVersion),
		),
	).WithTheme(theme.New())
}

func collectInput(in *guideInput) error {
	if in.PlatformVersion == "" {
		in.PlatformVersion = model.DefaultPlatformVersion
	}
	return inputForm(in).Run()
}

func (s *session) run(ctx context.Context, in guideInput) error {
	for {
		if in.RepositoryURL == "" {
			if s.collect == nil {
				return client.ErrInvalidInput
			}
			if err := s.collect(&in); err != nil {
				return err
			}
		}

		if err := s.ctrl.SelectOS(in.OS); err != nil {
			return err
		}
		id, err := s.ctrl.Submit(in.RepositoryURL, in.PlatformVersion)
		if errors.Is(err, client.ErrInvalidInput) {
			display.Error(err)
			if s.collect == nil {
				return err
			}
			in.RepositoryURL = ""
			continue
		}
		if err != nil {
			return err
		}

		if s.plain {
			if err := newPlainRunner(os.Stdout, s.interval, s.logger).run(ctx, s.ctrl, s.cl, id); err != nil {
				return s.failure(id, err)
			}
			return s.save()
		}

		restart, err := s.runWizard(ctx, id)
		if err != nil {
			return s.failure(id, err)
		}
		if !restart {
			return s.save()
		}
		if s.collect == nil {
			return nil
		}
		s.logger.Debug("starting over")
		in = guideInput{PlatformVersion: in.PlatformVersion}
	}
}

func (s *session) runWizard(ctx context.Context, id string) (bool, error) {
	m := wizard.New(ctx, s.ctrl, s.cl, id,
		wizard.WithPhaseInterval(s.interval),
		wizard.WithLogger(s.logger),
	)

	var programOutput = termenv.NewOutput(os.Stdout, termenv.WithColorCache(true))
	p := tea.NewProgram(m, tea.WithOutput(programOutput), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("could not display the guide: %w", err)
	}

	return s.outcome(final)
}

// outcome reports whether the user asked to start over, or the error of a
// request the user quit from after it failed.
func (s *session) outcome(final tea.Model) (bool, error) {
	fm, ok := final.(wizard.Model)
	if !ok {
		return false, nil
	}
	if s.ctrl.State() == lifecycle.Failed {
		if fm.Err() != nil {
			return false, fm.Err()
		}
		return false, errors.New(s.ctrl.Error())
	}
	return fm.Restart(), nil
}

// requestFailure ties a failed generation to its request id so the id can
// be shown next to the message.
type requestFailure struct {
	id  string
	err error
}

func (e *requestFailure) Error() string { return e.err.Error() }
func (e *requestFailure) Unwrap() error { return e.err }

func (e *requestFailure) hint() string {
	return "Request " + e.id + ". Run `webtoapk logs --request " + e.id + "` for details."
}

// failure wraps err with the request id when the request itself failed.
func (s *session) failure(id string, err error) error {
	if s.ctrl.State() != lifecycle.Failed {
		return err
	}
	return &requestFailure{id: id, err: err}
}

// save keeps a ready guide as the last guide and writes it when an export
// format was requested.
func (s *session) save() error {
	if s.ctrl.State() != lifecycle.Ready {
		return nil
	}
	if s.remember && len(s.ctrl.Steps()) > 0 {
		if err := storage.Write(export.New(s.ctrl.Request(), s.ctrl.Steps())); err != nil {
			s.logger.Warn("could not keep the last guide", "path", storage.Path(), "error", err)
		}
	}
	if s.format == "" {
		return nil
	}

	var format export.Format
	var err error
	if s.format == "ask" {
		format, err = export.SelectFormat()
	} else {
		format, err = export.ParseFormat(s.format)
	}
	if err != nil {
		return err
	}

	path, err := export.New(s.ctrl.Request(), s.ctrl.Steps()).ToFile(format, ".")
	if err != nil {
		return err
	}
	s.logger.Info("saved guide", "path", path, "format", format)
	display.Success("Guide saved to " + path)
	return nil
}
