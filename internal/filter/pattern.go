package filter

import (
	"fmt"
	"regexp"
	"strings"
)

// Pattern is a compiled rsync-style glob.
type Pattern struct {
	re       *regexp.Regexp
	original string
	anchored bool // pattern starts with / or contains an inner /
	dirOnly  bool // pattern ends with /
}

// Compile converts a glob pattern into a matcher. Supported syntax:
// "*", "**", "?", "[...]" character classes (with "!" negation) and
// "{a,b}" alternation.
func Compile(pattern string) (*Pattern, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, fmt.Errorf("empty filter pattern")
	}
	p := &Pattern{original: pattern}

	if strings.HasSuffix(pattern, "/") {
		p.dirOnly = true
		pattern = strings.TrimSuffix(pattern, "/")
	}

	if strings.HasPrefix(pattern, "/") {
		p.anchored = true
		pattern = strings.TrimPrefix(pattern, "/")
	} else if strings.Contains(pattern, "/") {
		p.anchored = true
	}

	body, err := globToRegex(pattern)
	if err != nil {
		return nil, fmt.Errorf("pattern %q: %w", p.original, err)
	}
	if p.anchored {
		body = "^" + body + "$"
	} else {
		body = "(^|/)" + body + "$"
	}

	re, err := regexp.Compile(body)
	if err != nil {
		return nil, fmt.Errorf("pattern %q: %w", p.original, err)
	}
	p.re = re
	return p, nil
}

// Match tests whether a root-relative slash path matches this pattern.
func (p *Pattern) Match(relPath string, isDir bool) bool {
	if p.dirOnly && !isDir {
		return false
	}
	return p.re.MatchString(relPath)
}

func (p *Pattern) String() string {
	return p.original
}

// globToRegex converts a glob pattern to a regex string.
//
//nolint:gocyclo,revive // cognitive-complexity: character-by-character glob parser
func globToRegex(pattern string) (string, error) {
	var b strings.Builder
	depth := 0 // open {…} groups
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch c {
		case '*':
			if i+1 < len(pattern) && pattern[i+1] == '*' {
				if i+2 < len(pattern) && pattern[i+2] == '/' {
					b.WriteString("(.*/)?")
					i += 2
				} else {
					b.WriteString(".*")
					i++
				}
				continue
			}
			b.WriteString("[^/]*")
		case '?':
			b.WriteString("[^/]")
		case '[':
			end := classEnd(pattern, i)
			if end < 0 {
				b.WriteString(`\[`)
				continue
			}
			cls := pattern[i+1 : end]
			if strings.HasPrefix(cls, "!") {
				cls = "^" + cls[1:]
			}
			b.WriteString("[" + cls + "]")
			i = end
		case '{':
			depth++
			b.WriteString("(?:")
		case '}':
			if depth == 0 {
				b.WriteString(`\}`)
				continue
			}
			depth--
			b.WriteString(")")
		case ',':
			if depth > 0 {
				b.WriteString("|")
			} else {
				b.WriteByte(c)
			}
		case '\\':
			if i+1 < len(pattern) {
				i++
				b.WriteString(regexp.QuoteMeta(string(pattern[i])))
			} else {
				b.WriteString(`\\`)
			}
		case '.', '(', ')', '+', '^', '$', '|':
			b.WriteString(regexp.QuoteMeta(string(c)))
		default:
			b.WriteByte(c)
		}
	}
	if depth != 0 {
		return "", fmt.Errorf("unclosed '{'")
	}
	return b.String(), nil
}

// classEnd returns the index of the ']' closing the class opened at start,
// or -1 when the class is unterminated. A ']' directly after '[' or '[!' is
// a literal member.
func classEnd(pattern string, start int) int {
	j := start + 1
	if j < len(pattern) && pattern[j] == '!' {
		j++
	}
	if j < len(pattern) && pattern[j] == ']' {
		j++
	}
	for j < len(pattern) && pattern[j] != ']' {
		j++
	}
	if j >= len(pattern) {
		return -1
	}
	return j
}
