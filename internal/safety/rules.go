// Package safety decides whether a cleanup item may be removed.
package safety

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/RiPetitor/rCleaner/internal/config"
	"github.com/RiPetitor/rCleaner/internal/types"
	"github.com/RiPetitor/rCleaner/internal/utils"
)

type RuleType int

const (
	ProtectSystemPackages RuleType = iota
	ProtectKernel
	ProtectBootloader
	ProtectUserHome
	ProtectActiveApplications
)

func (t RuleType) String() string {
	switch t {
	case ProtectSystemPackages:
		return "system packages"
	case ProtectKernel:
		return "kernel"
	case ProtectBootloader:
		return "bootloader"
	case ProtectUserHome:
		return "user home"
	case ProtectActiveApplications:
		return "active applications"
	}
	return "unknown"
}

type Rule struct {
	Pattern     string
	Description string
	Type        RuleType
}

// builtinRules are always enforced, whatever the config says.
var builtinRules = []Rule{
	{"/boot", "bootloader", ProtectBootloader},
	{"/lib/modules", "kernel modules", ProtectKernel},
	{"/usr/lib/modules", "kernel modules", ProtectKernel},
	{"/bin", "system binaries", ProtectSystemPackages},
	{"/sbin", "system binaries", ProtectSystemPackages},
	{"/usr/bin", "system binaries", ProtectSystemPackages},
	{"/usr/sbin", "system binaries", ProtectSystemPackages},
	{"/lib", "system libraries", ProtectSystemPackages},
	{"/lib64", "system libraries", ProtectSystemPackages},
	{"/usr/lib", "system libraries", ProtectSystemPackages},
	{"/usr/lib64", "system libraries", ProtectSystemPackages},
	{"/etc", "system configuration", ProtectSystemPackages},
	{"/root", "root home", ProtectUserHome},
	{"/var/lib", "package and service state", ProtectActiveApplications},
}

// BuiltinRules returns a copy of the non-configurable rule table.
func BuiltinRules() []Rule {
	return append([]Rule(nil), builtinRules...)
}

type matcher struct {
	rule Rule
	re   *regexp.Regexp
	// prefix holds the expanded pattern for literal rules.
	prefix string
	abs    bool
}

func newMatcher(rule Rule) matcher {
	pattern := utils.ExpandPath(rule.Pattern)
	m := matcher{rule: rule}
	if strings.ContainsAny(pattern, "*?") {
		m.re = globToRegexp(pattern)
		return m
	}
	m.abs = filepath.IsAbs(pattern)
	if m.abs {
		pattern = filepath.Clean(pattern)
	}
	m.prefix = pattern
	return m
}

func (m matcher) match(path string) bool {
	switch {
	case m.re != nil:
		return m.re.MatchString(path)
	case m.abs:
		return utils.IsWithin(path, m.prefix)
	default:
		return strings.Contains(path, m.prefix)
	}
}

func globToRegexp(pattern string) *regexp.Regexp {
	var b strings.Builder
	b.WriteString("^")
	for _, r := range pattern {
		switch r {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")
	return regexp.MustCompile(b.String())
}

// RuleSet evaluates the built-in table, then the whitelist, then the blacklist.
// The first match decides.
type RuleSet struct {
	builtin   []matcher
	whitelist []matcher
	blacklist []matcher
}

func NewRuleSet(whitelist, blacklist []string) *RuleSet {
	rs := &RuleSet{}
	for _, r := range builtinRules {
		rs.builtin = append(rs.builtin, newMatcher(r))
	}
	for _, p := range whitelist {
		rs.whitelist = append(rs.whitelist, newMatcher(Rule{
			Pattern:     p,
			Description: "Whitelist: " + p,
			Type:        ProtectUserHome,
		}))
	}
	for _, p := range blacklist {
		rs.blacklist = append(rs.blacklist, newMatcher(Rule{
			Pattern:     p,
			Description: "Blacklist: " + p,
			Type:        ProtectSystemPackages,
		}))
	}
	return rs
}

func RuleSetFromConfig(cfg *config.Config) *RuleSet {
	return NewRuleSet(cfg.Rules.Whitelist.Paths, cfg.Rules.Blacklist.Patterns)
}

// CheckItem reports whether the rules allow cleaning item.
func (rs *RuleSet) CheckItem(item *types.CleanupItem) bool {
	_, blocked := rs.CheckItemReason(item)
	return !blocked
}

// CheckItemReason returns the reason the item is blocked, if any.
// Items without a path never match.
func (rs *RuleSet) CheckItemReason(item *types.CleanupItem) (string, bool) {
	if !item.HasPath() {
		return "", false
	}
	path := filepath.Clean(utils.ExpandPath(item.Path))

	for _, m := range rs.builtin {
		if m.match(path) {
			return fmt.Sprintf("Protected system path: %s (%s)", m.rule.Pattern, m.rule.Description), true
		}
	}
	// A whitelisted path is protected from cleaning, not exempted from checks.
	for _, m := range rs.whitelist {
		if m.match(path) {
			return "Whitelisted path: " + m.rule.Pattern, true
		}
	}
	for _, m := range rs.blacklist {
		if m.match(path) {
			return "Blacklisted pattern: " + m.rule.Pattern, true
		}
	}
	return "", false
}
