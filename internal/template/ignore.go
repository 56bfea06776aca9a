// ignore.go implements the ignore-rule matcher used during materialization.
//
// The rule language is deliberately tiny. A rule is either:
//
//   - a literal name, matched by exact equality against an entry's base
//     name OR its path relative to the template root. Base-name equality
//     is what makes "node_modules" match at any depth.
//   - a pattern containing "*", compiled to an unanchored regular
//     expression with "*" meaning "any substring". This is substring-style
//     matching, not full glob semantics: "*.log" matches anything whose
//     name or relative path contains ".log" after an arbitrary prefix.
//
// Matching is case-sensitive and directory-granular: when a directory
// matches, its entire subtree is skipped without further evaluation.
package template

import (
	"path/filepath"
	"regexp"
	"strings"
)

// DefaultIgnoreRules is the fixed rule set applied to every
// materialization. It is decided at build time and not user-configurable:
// these are the artifacts a template checkout accumulates that must never
// leak into a scaffolded project.
var DefaultIgnoreRules = []string{
	"node_modules",
	".git",
	".turbo",
	".next",
	"dist",
	"*.log",
}

// Matcher evaluates ignore rules against template entries.
// Literal rules and wildcard rules are stored separately because they
// have different matching semantics (equality vs. regexp test).
type Matcher struct {
	literals map[string]struct{}
	patterns []*regexp.Regexp
}

// NewMatcher compiles a rule set into a Matcher. Rules containing "*"
// become regular expressions; everything else is treated as a literal.
// Invalid rules cannot occur: the translation quotes all regexp
// metacharacters before re-introducing ".*" for each wildcard.
func NewMatcher(rules []string) *Matcher {
	m := &Matcher{literals: make(map[string]struct{})}

	for _, rule := range rules {
		if strings.Contains(rule, "*") {
			// Quote the rule so characters like "." stay literal, then
			// turn each quoted wildcard back into ".*". The resulting
			// expression is used unanchored, giving substring semantics.
			expr := strings.ReplaceAll(regexp.QuoteMeta(rule), `\*`, ".*")
			m.patterns = append(m.patterns, regexp.MustCompile(expr))
			continue
		}
		m.literals[rule] = struct{}{}
	}

	return m
}

// Matches reports whether an entry should be skipped. It receives both
// the entry's base name and its path relative to the original template
// root; a rule may hit either. The relative path is normalized to
// forward slashes so rules behave identically across platforms.
func (m *Matcher) Matches(base, rel string) bool {
	rel = filepath.ToSlash(rel)

	if _, ok := m.literals[base]; ok {
		return true
	}
	if _, ok := m.literals[rel]; ok {
		return true
	}

	for _, re := range m.patterns {
		if re.MatchString(base) || re.MatchString(rel) {
			return true
		}
	}

	return false
}
