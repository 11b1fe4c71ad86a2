package builder

import (
	"strings"

	"github.com/leapstack-labs/mdschema/internal/naming"
	"github.com/leapstack-labs/mdschema/internal/typemap"
	"github.com/leapstack-labs/mdschema/pkg/schema"
)

// FallbackEnumType is returned when no declared enum can be matched at
// all; resolution is total by contract.
const FallbackEnumType = "object"

// enumSuffixes are appended to a field name when hunting for its enum,
// tried in this order.
var enumSuffixes = []string{"s", "Type", "Types", "Status", "Statuses", "Kind", "Kinds", "Roles", "States"}

// strippedSubstrings are removed from a field name before retrying the
// suffix hunt.
var strippedSubstrings = []string{"Type", "Status", "Kind"}

// resolveEnums fills EnumType for every enum-like field of every model
// and interface.
func (b *Builder) resolveEnums(doc *schema.Document) []schema.Diagnostic {
	var diags []schema.Diagnostic

	resolve := func(owner string, fields []*schema.Field) {
		for _, f := range fields {
			if !b.enumLike(doc, f) {
				continue
			}
			f.EnumType = b.resolveEnumType(doc, f)
			if f.EnumType == FallbackEnumType {
				diags = append(diags, schema.Diagnostic{
					Code:     "enum-unresolved",
					Severity: schema.SeverityInfo,
					Message:  "no declared enum matches field; using generic fallback",
					Model:    owner,
					Field:    f.Name,
					Pos:      schema.Position{Document: doc.Name, Line: f.Line},
				})
			}
		}
	}

	for _, m := range doc.Models {
		resolve(m.Name, m.Fields)
	}
	for _, i := range doc.Interfaces {
		resolve(i.Name, i.Fields)
	}
	return diags
}

// enumLike reports whether a field needs enum resolution: declared
// "enum", typed with a declared enum's name, or referencing an enum.
func (b *Builder) enumLike(doc *schema.Document, f *schema.Field) bool {
	if b.mapper.Parse(f.Type).Kind == typemap.KindEnum {
		return true
	}
	if doc.EnumByName(f.Type) != nil {
		return true
	}
	if t := f.ReferenceTarget(); t != "" && doc.EnumByName(t) != nil {
		return true
	}
	return false
}

// resolveEnumType finds the declared enum backing a field. Tiers, first
// match wins:
//
//	 1. explicit "type" extended-metadata key naming a declared enum
//	 2. the reference target, when it names a declared enum
//	 3. a declared enum named exactly like the declared type token
//	 4. a declared enum named exactly like the field
//	 5. a declared enum named like the pluralized field name
//	 6. field name + suffix, over the fixed suffix list in order
//	 7. the suffix list over the field name with Type/Status/Kind
//	    substrings stripped, and over the field name with a trailing
//	    "s" stripped
//	 8. any declared enum whose name is a substring of the field name
//	    or vice versa, in declaration order
//	 9. the first declared enum
//	10. the generic fallback type
func (b *Builder) resolveEnumType(doc *schema.Document, f *schema.Field) string {
	if t := f.Meta("type"); t != "" {
		if e := doc.EnumByName(t); e != nil {
			return e.Name
		}
	}
	if t := f.ReferenceTarget(); t != "" {
		if e := doc.EnumByName(t); e != nil {
			return e.Name
		}
	}
	if e := doc.EnumByName(f.Type); e != nil {
		return e.Name
	}
	if e := doc.EnumByName(f.Name); e != nil {
		return e.Name
	}
	if e := doc.EnumByName(naming.Pluralize(f.Name)); e != nil {
		return e.Name
	}

	for _, suf := range enumSuffixes {
		if e := doc.EnumByName(f.Name + suf); e != nil {
			return e.Name
		}
	}

	for _, base := range strippedBases(f.Name) {
		if e := doc.EnumByName(base); e != nil {
			return e.Name
		}
		for _, suf := range enumSuffixes {
			if e := doc.EnumByName(base + suf); e != nil {
				return e.Name
			}
		}
	}

	lowerField := strings.ToLower(f.Name)
	for _, e := range doc.Enums {
		lowerEnum := strings.ToLower(e.Name)
		if strings.Contains(lowerEnum, lowerField) || strings.Contains(lowerField, lowerEnum) {
			return e.Name
		}
	}

	if len(doc.Enums) > 0 {
		return doc.Enums[0].Name
	}
	return FallbackEnumType
}

// strippedBases generates reduced field-name candidates: the name with
// each of Type/Status/Kind removed, and the name with a trailing "s"
// removed. Empty and unchanged candidates are dropped.
func strippedBases(name string) []string {
	var out []string
	for _, sub := range strippedSubstrings {
		if base := strings.ReplaceAll(name, sub, ""); base != "" && base != name {
			out = append(out, base)
		}
	}
	if base := strings.TrimSuffix(name, "s"); base != "" && base != name {
		out = append(out, base)
	}
	return out
}
