package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/glamour"
	huhSpinner "github.com/charmbracelet/huh/spinner"
	"github.com/getsavvyinc/webtoapk/client"
	"github.com/getsavvyinc/webtoapk/cmd/component/status"
	"github.com/getsavvyinc/webtoapk/export/markdown"
	"github.com/getsavvyinc/webtoapk/guide"
	"github.com/getsavvyinc/webtoapk/lifecycle"
	"golang.org/x/term"
)

var errRequestDropped = errors.New("request is no longer active")

// plainRunner drives a request without a TUI: phases are printed as they
// advance and the guide is printed as markdown.
type plainRunner struct {
	out      io.Writer
	interval time.Duration
	logger   *slog.Logger
	// wait runs action while showing title.
	wait   func(title string, action func()) error
	render func(md string) (string, error)
}

func newPlainRunner(out io.Writer, interval time.Duration, logger *slog.Logger) *plainRunner {
	r := &plainRunner{
		out:      out,
		interval: interval,
		logger:   logger,
		wait: func(_ string, action func()) error {
			action()
			return nil
		},
		render: func(md string) (string, error) { return md, nil },
	}

	if term.IsTerminal(int(os.Stderr.Fd())) {
		r.wait = func(title string, action func()) error {
			return huhSpinner.New().Title(title).Action(action).Run()
		}
	}
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		r.render = func(md string) (string, error) {
			return glamour.Render(md, "dark")
		}
	}
	return r
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (r *plainRunner) run(ctx context.Context, ctrl *lifecycle.Controller, cl client.Client, id string) error {
	phases := ctrl.Phases()
	for dispatched := false; !dispatched; {
		if line := status.Line(phases, ctrl.Phase()); line != "" {
			fmt.Fprintln(r.out, line)
		}
		if err := sleep(ctx, r.interval); err != nil {
			ctrl.Reset()
			return err
		}
		switch ctrl.Tick(id) {
		case lifecycle.TickIgnored:
			return errRequestDropped
		case lifecycle.TickDispatch:
			dispatched = true
		}
	}

	req := ctrl.Request()
	genCtx := ctx
	if r.logger != nil {
		genCtx = client.ContextWithLogger(ctx, r.logger.With("id", id))
	}
	var steps []guide.Step
	var genErr error
	if err := r.wait("Waiting for the AI...", func() {
		steps, genErr = cl.Generate(genCtx, req)
	}); err != nil {
		return err
	}
	if genErr != nil {
		ctrl.Reject(id, genErr)
		return genErr
	}
	if !ctrl.Resolve(id, steps) {
		return errRequestDropped
	}

	md, err := markdown.Render(ctrl.Request(), ctrl.Steps())
	if err != nil {
		return err
	}
	out, err := r.render(md)
	if err != nil {
		out = md
	}
	_, err = fmt.Fprintln(r.out, out)
	return err
}
