// Package category maps type text and type tags to coarse categories such as
// "pointer" or "integer".
package category

import (
	"strings"

	"github.com/sirlanci/FuncSelector/internal/config"
	"github.com/sirlanci/FuncSelector/internal/typetag"
)

// Categorizer applies an ordered list of rules; the first match wins.
type Categorizer struct {
	rules []config.CategoryRule
}

// New returns a Categorizer over rules, tried in order.
func New(rules []config.CategoryRule) *Categorizer {
	return &Categorizer{rules: rules}
}

// Of returns the category of tag, or "" when no rule matches. Sentinel
// tags never categorize.
func (c *Categorizer) Of(tag string) string {
	if tag == "" || typetag.IsSentinel(tag) {
		return ""
	}
	for i := range c.rules {
		if matches(&c.rules[i], tag) {
			return c.rules[i].Name
		}
	}
	return ""
}

func matches(r *config.CategoryRule, tag string) bool {
	for _, e := range r.Exact {
		if tag == e {
			return true
		}
	}
	for _, p := range r.Prefixes {
		if strings.HasPrefix(tag, p) {
			return true
		}
	}
	for _, s := range r.Suffixes {
		if strings.HasSuffix(tag, s) {
			return true
		}
	}
	return false
}
