package display

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var style = lipgloss.NewStyle().
	Bold(true).
	PaddingTop(1).
	Foreground(lipgloss.Color("9"))

// Error prints the error and any additional messages to the terminal
func Error(err error, msgs ...string) {
	if err == nil {
		return
	}

	errMsg := err.Error()
	if errMsg == "" {
		return
	}

	ErrorMsg(errMsg)
	if len(msgs) > 0 {
		ErrorMsg(msgs...)
	}
}

func ErrorMsg(msgs ...string) {
	for _, msg := range msgs {
		fmt.Fprintln(os.Stderr, style.Render(msg))
	}
}

func FatalErr(err error, msgs ...string) {
	Error(err, msgs...)
	os.Exit(1)
}

func FatalErrWithSupportCTA(err error, msgs ...string) {
	Error(err, append(msgs, supportCTA)...)
	os.Exit(1)
}

const supportCTA = "Stuck? Open an issue at https://github.com/getsavvyinc/webtoapk/issues and include the output of `webtoapk logs`."

func ErrorWithSupportCTA(err error) {
	Error(err, supportCTA)
}
