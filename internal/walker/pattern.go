package walker

import (
	"fmt"
	"regexp"
	"strings"
)

// Pattern is a compiled single-level glob. It matches entry names only and
// never crosses a path separator.
type Pattern struct {
	re       *regexp.Regexp
	original string
}

// CompilePattern compiles a glob supporting *, ? and [...] classes
// ([!...] negates). An empty pattern matches every name.
func CompilePattern(pattern string, ignoreCase bool) (*Pattern, error) {
	if pattern == "" {
		pattern = "*"
	}
	if strings.ContainsAny(pattern, `/\`) {
		return nil, fmt.Errorf("pattern %q must not contain a path separator", pattern)
	}

	reStr := "(?s)^" + globToRegex(pattern) + "$"
	if ignoreCase {
		reStr = "(?i)" + reStr
	}
	re, err := regexp.Compile(reStr)
	if err != nil {
		return nil, fmt.Errorf("pattern %q: %w", pattern, err)
	}
	return &Pattern{re: re, original: pattern}, nil
}

// Match reports whether name matches the pattern.
func (p *Pattern) Match(name string) bool {
	return p.re.MatchString(name)
}

func (p *Pattern) String() string {
	return p.original
}

//nolint:gocyclo // character-by-character glob parser
func globToRegex(pattern string) string {
	src := []rune(pattern)
	var b strings.Builder
	i := 0
	for i < len(src) {
		c := src[i]
		switch c {
		case '*':
			b.WriteString(".*")
			i++
		case '?':
			b.WriteString(".")
			i++
		case '[':
			j := i + 1
			if j < len(src) && src[j] == '!' {
				j++
			}
			if j < len(src) && src[j] == ']' {
				j++
			}
			for j < len(src) && src[j] != ']' {
				j++
			}
			if j < len(src) {
				cls := string(src[i+1 : j])
				if strings.HasPrefix(cls, "!") {
					cls = "^" + cls[1:]
				}
				b.WriteString("[" + cls + "]")
				i = j + 1
			} else {
				b.WriteString(`\[`)
				i++
			}
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
			i++
		}
	}
	return b.String()
}
