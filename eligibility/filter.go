package eligibility

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/meysamhadeli/renamai/config"
)

// ErrInvalidPattern is returned when a rule pattern is not a valid regular expression.
var ErrInvalidPattern = errors.New("invalid eligibility pattern")

// Filter decides which filenames are handed to the model. It holds compiled
// patterns only and is safe for concurrent use.
type Filter struct {
	includes   []*regexp.Regexp
	excludes   []*regexp.Regexp
	requireAll bool
}

// NewFilter compiles rules, keeping their order within the include and exclude groups.
func NewFilter(rules []config.EligibilityRule, requireAll bool) (*Filter, error) {
	f := &Filter{requireAll: requireAll}
	for i, rule := range rules {
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: rule %d (%q): %v", ErrInvalidPattern, i, rule.Pattern, err)
		}
		if rule.Exclude {
			f.excludes = append(f.excludes, re)
		} else {
			f.includes = append(f.includes, re)
		}
	}
	return f, nil
}

// IsEligible reports whether filename should be processed. Any matching
// exclude rule rejects it. Without include rules every other name is accepted;
// otherwise one matching include rule is enough, or all of them when the
// filter requires all rules.
func (f *Filter) IsEligible(filename string) bool {
	for _, re := range f.excludes {
		if re.MatchString(filename) {
			return false
		}
	}

	if len(f.includes) == 0 {
		return true
	}

	for _, re := range f.includes {
		matched := re.MatchString(filename)
		if f.requireAll && !matched {
			return false
		}
		if !f.requireAll && matched {
			return true
		}
	}
	return f.requireAll
}
