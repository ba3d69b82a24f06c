// Package browser opens link actions in the system browser.
package browser

import (
	"errors"
	"fmt"
	"io"
	"net/url"

	"github.com/pkg/browser"
)

var ErrUnsupportedScheme = errors.New("only http and https links can be opened")

func init() {
	// the opener's own output would draw over the guide
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
}

// Open starts the system browser on rawURL without waiting for it.
func Open(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: %q", ErrUnsupportedScheme, rawURL)
	}
	return browser.OpenURL(u.String())
}
