// Package filter decides which entries of a game directory end up in the
// package. Rules follow rsync semantics: evaluated in order, first match wins,
// and anything unmatched is included.
package filter

import "strings"

// Rule represents a single include or exclude filter rule.
type Rule struct {
	Pattern *Pattern
	Include bool // true=include, false=exclude
}

// Chain holds an ordered list of filter rules plus a size ceiling.
type Chain struct {
	rules   []Rule
	maxSize int64
}

// NewChain creates an empty filter chain.
func NewChain() *Chain {
	return &Chain{}
}

// AddExclude adds an exclude rule for the given pattern.
func (c *Chain) AddExclude(pattern string) error {
	return c.add(pattern, false)
}

// AddInclude adds an include rule for the given pattern.
func (c *Chain) AddInclude(pattern string) error {
	return c.add(pattern, true)
}

func (c *Chain) add(pattern string, include bool) error {
	p, err := Compile(pattern)
	if err != nil {
		return err
	}
	c.rules = append(c.rules, Rule{Pattern: p, Include: include})
	return nil
}

// SetMaxSize drops files larger than n bytes. Zero disables the ceiling.
func (c *Chain) SetMaxSize(n int64) {
	c.maxSize = n
}

// Rules returns a copy of the chain's rules in evaluation order.
func (c *Chain) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

// Empty reports whether the chain has no rules and no size ceiling.
func (c *Chain) Empty() bool {
	return c == nil || (len(c.rules) == 0 && c.maxSize == 0)
}

// Match returns true if the path should be INCLUDED in the package.
// relPath is relative to the game root; a leading "/" (virtual path form)
// is accepted. size is ignored for directories. A nil chain includes all.
func (c *Chain) Match(relPath string, isDir bool, size int64) bool {
	if c == nil {
		return true
	}
	relPath = strings.TrimPrefix(relPath, "/")

	if !isDir && c.maxSize > 0 && size > c.maxSize {
		return false
	}

	for _, rule := range c.rules {
		if rule.Pattern.Match(relPath, isDir) {
			return rule.Include
		}
	}
	return true
}
