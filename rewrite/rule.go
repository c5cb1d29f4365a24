// Package rewrite applies ordered text replacement rules across a directory
// tree. Patterns are compiled with RE2 so that matching time stays linear in
// the size of the file regardless of the rule set.
package rewrite

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/fwojciec/sitekit"
	"github.com/wasilibs/go-re2"
)

// Rule replaces every match of Pattern with Replacement.
type Rule struct {
	Name        string `toml:"name"`
	Pattern     string `toml:"pattern"`
	Replacement string `toml:"replacement"`

	// Literal treats Pattern as plain text and Replacement as-is, without
	// $1 style expansion.
	Literal bool `toml:"literal"`
}

type compiledRule struct {
	Rule
	re *re2.Regexp
}

// compileRules compiles rules in order. A rule whose replacement text would
// be matched by its own pattern, or by any other rule's pattern, is rejected:
// running such a rule twice would change the output twice.
func compileRules(rules []Rule) ([]compiledRule, error) {
	compiled := make([]compiledRule, 0, len(rules))
	for i, rule := range rules {
		if rule.Pattern == "" {
			return nil, sitekit.Errorf(sitekit.EINVALID, "rule %s: pattern required", ruleName(i, rule))
		}
		expr := rule.Pattern
		if rule.Literal {
			expr = re2.QuoteMeta(expr)
		}
		re, err := re2.Compile(expr)
		if err != nil {
			return nil, sitekit.Errorf(sitekit.EINVALID, "rule %s: %v", ruleName(i, rule), err)
		}
		compiled = append(compiled, compiledRule{Rule: rule, re: re})
	}

	for i, rule := range compiled {
		for j, other := range compiled {
			if other.re.MatchString(rule.Replacement) {
				if i == j {
					return nil, sitekit.Errorf(sitekit.EINVALID,
						"rule %s: replacement %q matches its own pattern", ruleName(i, rule.Rule), rule.Replacement)
				}
				return nil, sitekit.Errorf(sitekit.EINVALID,
					"rule %s: replacement %q matches the pattern of rule %s",
					ruleName(i, rule.Rule), rule.Replacement, ruleName(j, other.Rule))
			}
		}
	}
	return compiled, nil
}

func (r compiledRule) apply(s string) (string, int) {
	n := len(r.re.FindAllStringIndex(s, -1))
	if n == 0 {
		return s, 0
	}
	if r.Literal {
		return r.re.ReplaceAllLiteralString(s, r.Replacement), n
	}
	return r.re.ReplaceAllString(s, r.Replacement), n
}

func ruleName(i int, rule Rule) string {
	if rule.Name != "" {
		return fmt.Sprintf("%q", rule.Name)
	}
	return fmt.Sprintf("#%d", i+1)
}

// PhoneRules returns rules replacing the common US spellings of oldNumber
// with newDisplay, and tel: links to oldNumber with a tel: link to the new
// number. Digits that are part of a longer number are never matched. Both
// numbers must have ten digits, optionally preceded by the country code 1.
func PhoneRules(oldNumber, newDisplay string) ([]Rule, error) {
	oldDigits, err := nationalDigits(oldNumber)
	if err != nil {
		return nil, err
	}
	newDigits, err := nationalDigits(newDisplay)
	if err != nil {
		return nil, err
	}

	area, exchange, line := oldDigits[:3], oldDigits[3:6], oldDigits[6:]
	sep := `[-. ]?`
	number := `\(?` + area + `\)?` + sep + exchange + sep + line + `\b`
	// RE2 has no lookbehind, so the character before the number is
	// captured and written back.
	return []Rule{
		{
			Name:        "phone link",
			Pattern:     `tel:(?:\+?1[-. ]?)?` + number,
			Replacement: "tel:+1" + newDigits,
		},
		{
			Name:        "phone number",
			Pattern:     `(^|[^\d])(?:\+?1[-. ]?)?` + number,
			Replacement: "${1}" + strings.ReplaceAll(newDisplay, "$", "$$"),
		},
	}, nil
}

// nationalDigits returns the ten digit national number of a US phone number.
func nationalDigits(number string) (string, error) {
	var b strings.Builder
	for _, r := range number {
		if unicode.IsDigit(r) && r <= unicode.MaxASCII {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) == 11 && digits[0] == '1' {
		digits = digits[1:]
	}
	if len(digits) != 10 {
		return "", sitekit.Errorf(sitekit.EINVALID, "phone number %q must have 10 digits", number)
	}
	return digits, nil
}

// DomainRules returns a rule pointing absolute links to oldDomain, with or
// without "www." and over either scheme, at newBaseURL.
func DomainRules(oldDomain, newBaseURL string) ([]Rule, error) {
	oldDomain = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(oldDomain)), "www.")
	newBaseURL = strings.TrimSuffix(strings.TrimSpace(newBaseURL), "/")
	if oldDomain == "" {
		return nil, sitekit.Errorf(sitekit.EINVALID, "old domain required")
	}
	if !strings.HasPrefix(newBaseURL, "http://") && !strings.HasPrefix(newBaseURL, "https://") {
		return nil, sitekit.Errorf(sitekit.EINVALID, "new base URL %q must be absolute", newBaseURL)
	}
	return []Rule{{
		Name:        "domain",
		Pattern:     `https?://(?:www\.)?` + re2.QuoteMeta(oldDomain) + `\b`,
		Replacement: strings.ReplaceAll(newBaseURL, "$", "$$"),
	}}, nil
}
