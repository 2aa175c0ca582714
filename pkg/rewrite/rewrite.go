// Package rewrite applies ordered regex search and replace rules to raw
// field values (window titles, process names) before they reach a label.
package rewrite

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/arthur-debert/barkeep/pkg/errors"
	"github.com/arthur-debert/barkeep/pkg/logging"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Case transforms applied to a rule's output
const (
	CaseLower      = "lower"
	CaseUpper      = "upper"
	CaseTitle      = "title"
	CaseCapitalize = "capitalize"
)

// Rule is a single rewrite step. Replacement accepts the \1, \g<1> and
// \g<name> backreference forms used in configuration files.
type Rule struct {
	Pattern     string `mapstructure:"pattern"`
	Replacement string `mapstructure:"replacement"`
	Case        string `mapstructure:"case"`
	IgnoreCase  bool   `mapstructure:"ignore_case"`
}

type compiled struct {
	rule        Rule
	re          *regexp.Regexp
	replacement string
}

// Rewriter holds compiled rules in application order.
type Rewriter struct {
	rules []compiled
}

// Compile compiles every rule. Rules with an empty pattern or replacement are
// dropped. When some patterns fail to compile the returned Rewriter still
// holds the valid rules and the error lists the invalid ones, so callers may
// log and carry on.
func Compile(rules []Rule) (*Rewriter, error) {
	logger := logging.GetLogger("rewrite")
	rw := &Rewriter{rules: make([]compiled, 0, len(rules))}

	var invalid []string
	for i, rule := range rules {
		if rule.Pattern == "" || rule.Replacement == "" {
			logger.Debug().Int("rule", i).Msg("Skipping rewrite rule with empty pattern or replacement")
			continue
		}

		expr := rule.Pattern
		if rule.IgnoreCase {
			expr = "(?i)" + expr
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			logger.Warn().Err(err).Int("rule", i).Str("pattern", rule.Pattern).Msg("Invalid rewrite pattern")
			invalid = append(invalid, fmt.Sprintf("rewrite[%d]: %v", i, err))
			continue
		}

		rw.rules = append(rw.rules, compiled{
			rule:        rule,
			re:          re,
			replacement: translateReplacement(rule.Replacement),
		})
	}

	if len(invalid) > 0 {
		return rw, errors.New(errors.ErrRewriteInvalid, "invalid rewrite pattern").
			WithDetail("errors", invalid)
	}
	return rw, nil
}

// Len returns the number of usable rules
func (rw *Rewriter) Len() int {
	if rw == nil {
		return 0
	}
	return len(rw.rules)
}

// Apply runs the rules in order, each one seeing the previous output. A
// rule's case transform applies only when its pattern matched.
func (rw *Rewriter) Apply(value string) string {
	if rw == nil || value == "" {
		return value
	}

	result := value
	for _, c := range rw.rules {
		if !c.re.MatchString(result) {
			continue
		}
		result = c.re.ReplaceAllString(result, c.replacement)
		result = applyCase(result, c.rule.Case)
	}
	return result
}

func applyCase(s, mode string) string {
	switch mode {
	case CaseLower:
		return strings.ToLower(s)
	case CaseUpper:
		return strings.ToUpper(s)
	case CaseTitle:
		return cases.Title(language.Und).String(s)
	case CaseCapitalize:
		if s == "" {
			return s
		}
		r, size := utf8.DecodeRuneInString(s)
		return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
	default:
		return s
	}
}

// translateReplacement converts a configuration style replacement into the
// template syntax of regexp.Expand.
func translateReplacement(repl string) string {
	var b strings.Builder
	for i := 0; i < len(repl); i++ {
		ch := repl[i]
		if ch == '$' {
			b.WriteString("$$")
			continue
		}
		if ch != '\\' || i+1 >= len(repl) {
			b.WriteByte(ch)
			continue
		}

		next := repl[i+1]
		switch {
		case next >= '0' && next <= '9':
			j := i + 1
			for j < len(repl) && j < i+3 && repl[j] >= '0' && repl[j] <= '9' {
				j++
			}
			b.WriteString("${" + repl[i+1:j] + "}")
			i = j - 1
		case next == 'g' && i+2 < len(repl) && repl[i+2] == '<':
			end := strings.IndexByte(repl[i+3:], '>')
			if end < 0 {
				b.WriteByte(ch)
				continue
			}
			name := repl[i+3 : i+3+end]
			b.WriteString("${" + name + "}")
			i = i + 3 + end
		case next == '\\':
			b.WriteByte('\\')
			i++
		case next == 'n':
			b.WriteByte('\n')
			i++
		case next == 't':
			b.WriteByte('\t')
			i++
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}
