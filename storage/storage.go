// Package storage keeps the most recent ready guide on disk so it can be
// reopened with `webtoapk view --last`.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/getsavvyinc/webtoapk/config"
	"github.com/getsavvyinc/webtoapk/export"
)

const defaultFilename = "last_guide.json"

var ErrNoGuide = errors.New("no guide has been generated yet")

// Path is where the last guide is kept. It lives next to the config file.
func Path() string {
	return filepath.Join(config.DefaultConfigDir, defaultFilename)
}

func Write(g *export.Guide) error {
	data, err := g.Encode(export.JSONFile)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(Path()), 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(Path(), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", Path(), err)
	}
	return nil
}

func Read() (*export.Guide, error) {
	g, err := export.LoadFile(Path())
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoGuide
	}
	return g, err
}
