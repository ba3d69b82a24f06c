package wizard

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/getsavvyinc/webtoapk/client"
	"github.com/getsavvyinc/webtoapk/cmd/component/steplist"
	"github.com/getsavvyinc/webtoapk/cmd/component/stepview"
	"github.com/getsavvyinc/webtoapk/export/markdown"
	"github.com/getsavvyinc/webtoapk/guide"
	"github.com/getsavvyinc/webtoapk/lifecycle"
	"github.com/getsavvyinc/webtoapk/llm"
	"github.com/getsavvyinc/webtoapk/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	steps []guide.Step
	err   error
	calls int
}

func (f *fakeClient) Generate(context.Context, model.GenerationRequest) ([]guide.Step, error) {
	f.calls++
	return f.steps, f.err
}

type fakeExporter struct {
	req   model.GenerationRequest
	steps []guide.Step
}

func (f *fakeExporter) ToMarkdownFile(req model.GenerationRequest, steps []guide.Step) (markdown.Result, error) {
	f.req, f.steps = req, steps
	return markdown.Result{Path: "webtoapk_test.md", Copied: true}, nil
}

func testSteps() []guide.Step {
	return []guide.Step{
		{Title: "Install", Body: guide.Flat{
			Command: "npm install -g cordova",
			Actions: []guide.Action{
				{Label: "Download Node.js", Kind: guide.ActionLink, Value: "https://nodejs.org/"},
				{Label: "Check node", Kind: guide.ActionCommand, Value: "node -v"},
			},
		}},
		{Title: "Environment", Body: guide.OSBranching{
			MacOSLinux: guide.Content{Explanation: "mac"},
			Windows:    guide.Content{Explanation: "win"},
		}},
	}
}

type harness struct {
	m        Model
	ctrl     *lifecycle.Controller
	cl       *fakeClient
	copied   []string
	opened   []string
	exporter *fakeExporter
}

func newHarness(t *testing.T, cl *fakeClient) *harness {
	t.Helper()
	h := &harness{cl: cl, exporter: &fakeExporter{}}
	h.ctrl = lifecycle.New(lifecycle.WithPhases([]string{"one", "two"}))
	id, err := h.ctrl.Submit("https://github.com/user/site", "")
	require.NoError(t, err)

	h.m = New(context.Background(), h.ctrl, cl, id,
		WithPhaseInterval(time.Millisecond),
		WithClipboard(func(s string) error {
			h.copied = append(h.copied, s)
			return nil
		}),
		WithOpener(func(url string) error {
			h.opened = append(h.opened, url)
			return nil
		}),
		WithExporter(h.exporter),
	)
	return h
}

// send applies msg and returns the follow up command.
func (h *harness) send(msg tea.Msg) tea.Cmd {
	next, cmd := h.m.Update(msg)
	h.m = next.(Model)
	return cmd
}

func (h *harness) key(s string) tea.Cmd {
	switch s {
	case "right":
		return h.send(tea.KeyMsg{Type: tea.KeyRight})
	case "left":
		return h.send(tea.KeyMsg{Type: tea.KeyLeft})
	case "tab":
		return h.send(tea.KeyMsg{Type: tea.KeyTab})
	case "shift+tab":
		return h.send(tea.KeyMsg{Type: tea.KeyShiftTab})
	case "enter":
		return h.send(tea.KeyMsg{Type: tea.KeyEnter})
	}
	return h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

// finish ticks through the phases and runs the generation call.
func (h *harness) finish(t *testing.T) {
	t.Helper()
	id := h.ctrl.ActiveID()
	assert.NotNil(t, h.send(phaseTickMsg{id: id}))
	assert.Equal(t, 1, h.ctrl.Phase())

	cmd := h.send(phaseTickMsg{id: id})
	require.NotNil(t, cmd)
	assert.Zero(t, h.cl.calls)

	msg := cmd()
	require.IsType(t, generatedMsg{}, msg)
	h.send(msg)
	assert.Equal(t, 1, h.cl.calls)
}

func TestWizardHappyPath(t *testing.T) {
	h := newHarness(t, &fakeClient{steps: testSteps()})
	assert.Contains(t, h.m.View(), "one")

	h.finish(t)
	assert.Equal(t, lifecycle.Ready, h.ctrl.State())
	assert.Equal(t, modeGuide, h.m.mode)
	assert.Contains(t, h.m.View(), "Install")

	// copy the step command
	cmd := h.key("c")
	require.NotNil(t, cmd)
	ack := h.send(cmd())
	assert.Equal(t, []string{"npm install -g cordova"}, h.copied)
	assert.Equal(t, stepview.CopiedCommand, h.m.copied)
	assert.Contains(t, h.m.View(), "Copied!")
	require.NotNil(t, ack)

	h.send(clearCopiedMsg{seq: h.m.copySeq})
	assert.Empty(t, h.m.copied)

	// focus the link and open it
	h.key("tab")
	assert.Equal(t, 0, h.m.focus)
	h.send(h.key("enter")())
	assert.Equal(t, []string{"https://nodejs.org/"}, h.opened)

	// focus the command action and copy it
	h.key("tab")
	h.send(h.key("enter")())
	assert.Equal(t, "node -v", h.copied[len(h.copied)-1])
	assert.Equal(t, stepview.ActionKey(1), h.m.copied)

	h.key("shift+tab")
	assert.Equal(t, 0, h.m.focus)

	// next page needs an os
	h.key("right")
	assert.Equal(t, 1, h.m.nav.Index())
	assert.Equal(t, -1, h.m.focus)
	assert.Contains(t, h.m.View(), "Press o to pick")

	h.key("o")
	assert.Equal(t, guide.OSMacOSLinux, h.m.nav.OS())
	assert.Contains(t, h.m.View(), "mac")

	h.key("left")
	assert.Equal(t, 0, h.m.nav.Index())
}

func TestWizardStaleCopyAckIsIgnored(t *testing.T) {
	h := newHarness(t, &fakeClient{steps: testSteps()})
	h.finish(t)

	h.send(h.key("c")())
	first := h.m.copySeq
	h.send(h.key("c")())

	h.send(clearCopiedMsg{seq: first})
	assert.Equal(t, stepview.CopiedCommand, h.m.copied)
}

func TestWizardNextOnLastStepStartsOver(t *testing.T) {
	h := newHarness(t, &fakeClient{steps: testSteps()})
	h.finish(t)

	h.key("right")
	require.True(t, h.m.nav.IsLast())
	cmd := h.key("right")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, h.m.Restart())
	assert.Equal(t, lifecycle.Idle, h.ctrl.State())
	assert.Empty(t, h.ctrl.Steps())
}

func TestWizardFailure(t *testing.T) {
	h := newHarness(t, &fakeClient{err: client.ErrMalformedResponse})
	h.finish(t)

	assert.Equal(t, lifecycle.Failed, h.ctrl.State())
	assert.Equal(t, modeFailed, h.m.mode)
	assert.Contains(t, h.m.View(), client.ErrMalformedResponse.Error())
	assert.Contains(t, h.m.View(), "webtoapk logs --request "+h.m.ID())
	assert.ErrorIs(t, h.m.Err(), client.ErrMalformedResponse)

	cmd := h.key("r")
	require.NotNil(t, cmd)
	assert.True(t, h.m.Restart())
	assert.Equal(t, lifecycle.Idle, h.ctrl.State())
}

func TestWizardResetDuringPhasesDropsResult(t *testing.T) {
	h := newHarness(t, &fakeClient{steps: testSteps()})
	id := h.ctrl.ActiveID()

	h.key("r")
	assert.True(t, h.m.Restart())
	assert.Nil(t, h.send(phaseTickMsg{id: id}))

	h.send(generatedMsg{id: id, steps: testSteps()})
	assert.Equal(t, lifecycle.Idle, h.ctrl.State())
	assert.Zero(t, h.cl.calls)
}

func TestWizardStepListAndExport(t *testing.T) {
	h := newHarness(t, &fakeClient{steps: testSteps()})
	h.finish(t)
	h.send(tea.WindowSizeMsg{Width: 100, Height: 40})

	h.key("s")
	assert.Equal(t, modeList, h.m.mode)
	h.send(steplist.SelectedMsg{Index: 1})
	assert.Equal(t, modeGuide, h.m.mode)
	assert.Equal(t, 1, h.m.nav.Index())

	h.key("o")
	h.send(h.key("e")())
	assert.Equal(t, guide.OSMacOSLinux, h.exporter.req.OS)
	assert.Len(t, h.exporter.steps, 2)
	assert.Contains(t, h.m.flash, "webtoapk_test.md")
}

func TestWizardCopyError(t *testing.T) {
	h := newHarness(t, &fakeClient{steps: testSteps()})
	h.m.clipboard = func(string) error { return errors.New("no clipboard") }
	h.finish(t)

	h.send(h.key("c")())
	assert.Empty(t, h.m.copied)
	assert.Contains(t, h.m.flash, "no clipboard")
}

func TestWizardEmptyGuide(t *testing.T) {
	h := newHarness(t, &fakeClient{steps: []guide.Step{}})
	h.finish(t)

	assert.Equal(t, lifecycle.Ready, h.ctrl.State())
	assert.Equal(t, modeGuide, h.m.mode)
	assert.Contains(t, h.m.View(), "No steps were generated")
	assert.Nil(t, h.key("c"))
	assert.Nil(t, h.key("tab"))

	cmd := h.key("right")
	require.NotNil(t, cmd)
	assert.True(t, h.m.Restart())
}

type completerFunc func(context.Context, llm.Request) (string, error)

func (f completerFunc) Complete(ctx context.Context, req llm.Request) (string, error) {
	return f(ctx, req)
}

func TestWizardLogsWithRequestID(t *testing.T) {
	var logs bytes.Buffer
	h := newHarness(t, &fakeClient{})
	h.m.logger = slog.New(slog.NewTextHandler(&logs, nil))
	h.m.cl = client.New(completerFunc(func(context.Context, llm.Request) (string, error) {
		return "", errors.New("upstream 500")
	}), "m")

	id := h.ctrl.ActiveID()
	h.send(phaseTickMsg{id: id})
	cmd := h.send(phaseTickMsg{id: id})
	require.NotNil(t, cmd)
	h.send(cmd())

	assert.Equal(t, lifecycle.Failed, h.ctrl.State())
	assert.Equal(t, client.ErrServiceFailure.Error(), h.ctrl.Error())
	assert.NotContains(t, h.m.View(), "upstream 500")
	assert.Contains(t, logs.String(), "id="+id)
	assert.Contains(t, logs.String(), "upstream 500")
}
