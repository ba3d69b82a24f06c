// Package tail reads the end of the log file without loading all of it.
package tail

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const blockSize = 1024

var eol = []byte{'\n'}

var (
	ErrInvalidN  = errors.New("number of lines must be positive")
	ErrEmptyFile = errors.New("log file is empty")
)

// Lines returns up to the last n lines of the file at path. When match is
// not empty only lines containing it are counted.
func Lines(path string, n int, match string) ([]string, error) {
	if n <= 0 {
		return nil, ErrInvalidN
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if fi.Size() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	// a filter may drop lines, so the whole file is scanned
	var start int64
	if match == "" {
		if start, err = lineStart(f, int64(n)); err != nil {
			return nil, err
		}
	}
	if _, err := f.Seek(start, io.SeekStart); err != nil {
		return nil, err
	}

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if match != "" && !strings.Contains(line, match) {
			continue
		}
		lines = append(lines, line)
		if len(lines) > n {
			lines = lines[1:]
		}
	}
	return lines, sc.Err()
}

// lineStart returns the offset of the last nth line. An unterminated last
// line is not counted.
// Based on https://github.com/kubernetes/kubernetes/blob/4b8e819355d791d96b7e9d9efe4cbafae2311c88/pkg/util/tail/tail.go#L63
func lineStart(f io.ReadSeeker, n int64) (int64, error) {
	size, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, err
	}
	var left, cnt int64
	buf := make([]byte, blockSize)
	for right := size; right > 0 && cnt <= n; right -= blockSize {
		left = right - blockSize
		if left < 0 {
			left = 0
			buf = make([]byte, right)
		}
		if _, err := f.Seek(left, io.SeekStart); err != nil {
			return 0, err
		}
		if _, err := io.ReadFull(f, buf); err != nil {
			return 0, err
		}
		cnt += int64(bytes.Count(buf, eol))
	}
	for ; cnt > n; cnt-- {
		idx := bytes.Index(buf, eol) + 1
		buf = buf[idx:]
		left += int64(idx)
	}
	return left, nil
}
