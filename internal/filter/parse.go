package filter

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// IgnoreFileName is the per-game rules file picked up from the input root.
const IgnoreFileName = ".lovepackignore"

// LoadFile reads filter rules from a file and adds them to the chain.
func (c *Chain) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open filter file: %w", err)
	}
	defer f.Close()

	if err := c.Load(f); err != nil {
		return fmt.Errorf("filter file %s: %w", path, err)
	}
	return nil
}

// LoadIgnoreFile loads IgnoreFileName from root when it exists. It reports
// whether a file was loaded. The ignore file itself is always excluded.
func (c *Chain) LoadIgnoreFile(root string) (bool, error) {
	path := filepath.Join(root, IgnoreFileName)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if err := c.AddExclude("/" + IgnoreFileName); err != nil {
		return false, err
	}
	if err := c.LoadFile(path); err != nil {
		return false, err
	}
	return true, nil
}

// Load reads rules from r. Format:
//
//	- pattern  → exclude
//	+ pattern  → include
//	# comment  → skip
//	blank line → skip
//	no prefix  → exclude (rsync default)
func (c *Chain) Load(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		include := false
		pattern := line
		switch {
		case strings.HasPrefix(line, "+ "):
			include = true
			pattern = strings.TrimSpace(line[2:])
		case strings.HasPrefix(line, "- "):
			pattern = strings.TrimSpace(line[2:])
		}

		if err := c.add(pattern, include); err != nil {
			return fmt.Errorf("line %d: %w", lineNum, err)
		}
	}
	return scanner.Err()
}
