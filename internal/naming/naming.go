// Package naming derives navigation-property names for resolved
// relationships. The forward heuristic is deterministic and ordered:
// configured pattern tables first, then id-suffix stripping, preserved
// roles, substring composition, and a descriptive-humanize fallback.
// Emitters across targets depend on reproducing these names exactly.
package naming

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/mdschema/internal/config"
)

// idSuffixes are stripped from a field name to obtain its base name,
// tried in this order.
var idSuffixes = []string{"_id", "_ID", "Id", "ID"}

// relationshipSuffixes mark role-style base names kept verbatim.
var relationshipSuffixes = []string{"By", "er", "or", "ee", "Owner", "Manager"}

// actionPrefixes mark audit-style base names kept verbatim.
var actionPrefixes = []string{"Created", "Updated", "Modified", "Deleted", "Assigned"}

// Namer derives navigation names under one configuration.
type Namer struct {
	cfg    *config.NamingConfig
	titler cases.Caser

	prefixKeys []string // sorted for deterministic prefix-table lookup
	roles      map[string]string
}

// New creates a Namer for the given naming configuration.
func New(cfg *config.NamingConfig) *Namer {
	n := &Namer{
		cfg:    cfg,
		titler: cases.Title(language.English, cases.NoLower),
		roles:  map[string]string{},
	}
	for k := range cfg.PrefixPatterns {
		n.prefixKeys = append(n.prefixKeys, k)
	}
	sort.Strings(n.prefixKeys)
	for _, role := range cfg.PreserveRoles {
		n.roles[strings.ToLower(role)] = role
	}
	return n
}

// Navigation derives the forward navigation-property name for a field
// referencing targetModel.
func (n *Namer) Navigation(fieldName, targetModel string) string {
	// 1. Caller-supplied pattern tables, exact before prefix.
	if v, ok := n.cfg.Patterns[fieldName]; ok {
		return v
	}
	for _, prefix := range n.prefixKeys {
		if strings.HasPrefix(fieldName, prefix) {
			return n.cfg.PrefixPatterns[prefix]
		}
	}

	// 2. Strip the id suffix to obtain the base name.
	base := StripIDSuffix(fieldName)

	// 3. Base name equals the target: use the target.
	if strings.EqualFold(base, targetModel) {
		return targetModel
	}

	// 4. Preserved roles, relationship suffixes, action prefixes.
	if role, ok := n.roles[strings.ToLower(base)]; ok {
		return role
	}
	if matchesRelationshipSuffix(base) || hasAnyPrefix(base, actionPrefixes) {
		return n.canonicalize(base)
	}

	// 5. Field name contains the target name: compose prefix + target.
	if idx := strings.Index(strings.ToLower(fieldName), strings.ToLower(targetModel)); idx >= 0 {
		return n.canonicalize(fieldName[:idx]) + targetModel
	}

	// 6. Opt-in descriptive fallback for non-trivial base names.
	if n.cfg.PreferDescriptive && len(base) > 2 {
		return n.canonicalize(base)
	}

	// 7. Last resort: the target model name.
	return targetModel
}

// BackReference derives the collection-side navigation name on the
// target: a pluralized field name when the field already mentions the
// source model, else the pluralized source model name.
func (n *Namer) BackReference(fieldName, sourceModel string) string {
	base := StripIDSuffix(fieldName)
	if strings.Contains(strings.ToLower(base), strings.ToLower(sourceModel)) {
		return Pluralize(n.canonicalize(base))
	}
	return Pluralize(sourceModel)
}

// StripIDSuffix removes one trailing id suffix from a field name.
func StripIDSuffix(name string) string {
	for _, suf := range idSuffixes {
		if len(name) > len(suf) && strings.HasSuffix(name, suf) {
			return strings.TrimSuffix(name, suf)
		}
	}
	return name
}

// canonicalize turns a base name into PascalCase: snake and kebab
// segments are title-cased and joined; an already-Pascal name passes
// through unchanged.
func (n *Namer) canonicalize(s string) string {
	s = strings.Trim(s, "_- ")
	if s == "" {
		return s
	}
	if !strings.ContainsAny(s, "_- ") {
		return strings.ToUpper(s[:1]) + s[1:]
	}
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(n.titler.String(p))
	}
	return b.String()
}

// matchesRelationshipSuffix reports whether the base name ends in a
// relationship suffix. The lowercase suffixes (er, or, ee) only count on
// camel-compound names ("AssignedManager", not "Author") — a bare word
// ending in "or" is a noun, not a role.
func matchesRelationshipSuffix(base string) bool {
	for _, suf := range relationshipSuffixes {
		if len(base) <= len(suf) || !strings.HasSuffix(base, suf) {
			continue
		}
		if suf[0] >= 'A' && suf[0] <= 'Z' {
			return true
		}
		if hasInternalUpper(base) {
			return true
		}
	}
	return false
}

// hasInternalUpper reports an uppercase letter after the first rune.
func hasInternalUpper(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			return true
		}
	}
	return false
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, pre := range prefixes {
		if strings.HasPrefix(s, pre) {
			return true
		}
	}
	return false
}
