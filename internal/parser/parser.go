// Package parser turns schema DSL text into a raw semantic tree: a
// markdown header walk segments the document into model, interface, and
// enum blocks, and an indentation-sensitive bullet grammar yields each
// block's ordered field records. The parser captures attribute tokens
// and descriptions verbatim and resolves no semantics; forward
// references are tolerated and checked later at validation.
package parser

import (
	"strings"

	"github.com/leapstack-labs/mdschema/pkg/schema"
)

// BlockKind classifies a level-2 header block.
type BlockKind int

// Block kinds.
const (
	KindModel BlockKind = iota
	KindInterface
	KindEnum
)

// Block keeps the raw bullet lines of one block's field section so the
// reconciler can re-derive indentation structure from source text.
type Block struct {
	Kind       BlockKind
	Name       string
	FieldLines []Line
	StartLine  int
}

// Result is the parser output: the raw document plus per-block source
// lines for the reconciliation pass.
type Result struct {
	Document *schema.Document
	Blocks   []*Block
}

// Parser parses schema DSL documents.
type Parser struct{}

// New creates a parser.
func New() *Parser {
	return &Parser{}
}

// section names for level-3 headers.
const (
	sectionFields      = ""
	sectionRelations   = "relations"
	sectionIndexes     = "indexes"
	sectionMetadata    = "metadata"
	sectionBehaviors   = "behaviors"
	sectionValidations = "validations"
)

// Parse parses one schema document.
func (p *Parser) Parse(docName, source string) (*Result, error) {
	fm, body, offset, err := extractFrontmatter(docName, source)
	if err != nil {
		return nil, err
	}

	doc := &schema.Document{Name: docName}
	if fm != nil {
		doc.Namespace = fm.Namespace
		doc.Title = fm.Title
	}

	res := &Result{Document: doc}

	st := &blockState{docName: docName}
	lines := strings.Split(body, "\n")
	for idx, text := range lines {
		lineNo := offset + idx + 1
		trimmed := strings.TrimSpace(text)

		switch {
		case strings.HasPrefix(trimmed, "###"):
			st.section = normalizeSection(strings.TrimSpace(strings.TrimPrefix(trimmed, "###")))

		case strings.HasPrefix(trimmed, "##"):
			if err := st.flush(res); err != nil {
				return nil, err
			}
			if err := st.open(strings.TrimSpace(strings.TrimPrefix(trimmed, "##")), lineNo); err != nil {
				return nil, err
			}

		case strings.HasPrefix(trimmed, "#"):
			title := strings.TrimSpace(strings.TrimPrefix(trimmed, "#"))
			if doc.Title == "" {
				doc.Title = title
			}
			if doc.Namespace == "" {
				doc.Namespace = strings.ReplaceAll(title, " ", "")
			}

		default:
			st.body(Line{Text: text, Number: lineNo})
		}
	}
	if err := st.flush(res); err != nil {
		return nil, err
	}

	return res, nil
}

// blockState accumulates lines for the block currently being parsed.
type blockState struct {
	docName string
	active  bool

	kind     BlockKind
	name     string
	label    string
	abstract bool
	inherits []string
	line     int

	section    string
	descLines  []string
	fieldLines []Line
	relLines   []Line
	idxLines   []Line
	metaLines  []Line
	behavLines []Line
	validLines []Line
}

// open begins a new block from a level-2 header spec:
// `Name`, `Name::enum`, `Name::interface`, `Name::abstract`, optionally
// followed by `: Base1, Base2` and a quoted display label.
func (s *blockState) open(header string, lineNo int) error {
	*s = blockState{docName: s.docName, active: true, line: lineNo}

	// Quoted display label.
	if q := strings.IndexAny(header, `"'`); q >= 0 {
		label, _ := scanQuoted(header[q:])
		s.label = label
		header = strings.TrimSpace(header[:q])
	}

	namePart := header
	if sep := strings.Index(header, "::"); sep >= 0 {
		namePart = strings.TrimSpace(header[:sep])
		marker := strings.TrimSpace(header[sep+2:])
		if c := strings.IndexByte(marker, ':'); c >= 0 {
			s.inherits = splitNames(marker[c+1:])
			marker = strings.TrimSpace(marker[:c])
		}
		switch strings.ToLower(marker) {
		case "enum":
			s.kind = KindEnum
		case "interface":
			s.kind = KindInterface
		case "abstract":
			s.kind = KindModel
			s.abstract = true
		default:
			return &StructuralError{Document: s.docName, Line: lineNo,
				Message: "unknown block marker ::" + marker}
		}
	} else if c := strings.IndexByte(header, ':'); c >= 0 {
		namePart = strings.TrimSpace(header[:c])
		s.inherits = splitNames(header[c+1:])
	}

	s.name = namePart
	return nil
}

// body routes a non-header line to the current block section.
func (s *blockState) body(ln Line) {
	if !s.active {
		return
	}
	if isBullet(ln.Text) {
		switch s.section {
		case sectionFields:
			s.fieldLines = append(s.fieldLines, ln)
		case sectionRelations:
			s.relLines = append(s.relLines, ln)
		case sectionIndexes:
			s.idxLines = append(s.idxLines, ln)
		case sectionMetadata:
			s.metaLines = append(s.metaLines, ln)
		case sectionBehaviors:
			s.behavLines = append(s.behavLines, ln)
		case sectionValidations:
			s.validLines = append(s.validLines, ln)
		}
		return
	}
	if t := strings.TrimSpace(ln.Text); t != "" && s.section == sectionFields && len(s.fieldLines) == 0 {
		s.descLines = append(s.descLines, t)
	}
}

// flush finalizes the active block into the result.
func (s *blockState) flush(res *Result) error {
	if !s.active {
		return nil
	}
	defer func() { s.active = false }()

	switch s.kind {
	case KindEnum:
		enum, err := s.buildEnum()
		if err != nil {
			return err
		}
		res.Document.Enums = append(res.Document.Enums, enum)

	case KindInterface:
		iface, err := s.buildInterface()
		if err != nil {
			return err
		}
		res.Document.Interfaces = append(res.Document.Interfaces, iface)
		res.Blocks = append(res.Blocks, &Block{
			Kind: KindInterface, Name: s.name, FieldLines: s.fieldLines, StartLine: s.line,
		})

	default:
		model, err := s.buildModel()
		if err != nil {
			return err
		}
		res.Document.Models = append(res.Document.Models, model)
		res.Blocks = append(res.Blocks, &Block{
			Kind: KindModel, Name: s.name, FieldLines: s.fieldLines, StartLine: s.line,
		})
	}
	return nil
}

// buildModel assembles a Model from the block's accumulated sections.
func (s *blockState) buildModel() (*schema.Model, error) {
	m := &schema.Model{
		Name:        s.name,
		Label:       s.label,
		Description: strings.Join(s.descLines, " "),
		Abstract:    s.abstract,
		Inherits:    s.inherits,
		Metadata:    map[string]string{},
		Line:        s.line,
	}

	fields, err := s.fieldsFromLines()
	if err != nil {
		return nil, err
	}
	m.Fields = fields

	for _, ln := range s.relLines {
		rel, err := s.parseRelation(ln)
		if err != nil {
			return nil, err
		}
		m.Relations = append(m.Relations, rel)
	}
	for _, ln := range s.idxLines {
		m.Indexes = append(m.Indexes, parseIndex(ln))
	}
	for _, ln := range s.metaLines {
		key, value, _ := splitBullet(ln.Text)
		switch strings.ToLower(key) {
		case "abstract":
			m.Abstract = value == "true"
		case "label":
			m.Label = value
		default:
			m.Metadata[key] = value
		}
	}
	for _, ln := range s.behavLines {
		key, value, _ := splitBullet(ln.Text)
		m.Metadata["behavior."+key] = value
	}
	for _, ln := range s.validLines {
		key, value, _ := splitBullet(ln.Text)
		m.Metadata["validation."+key] = value
	}
	return m, nil
}

// buildInterface assembles an Interface; it owns fields like a model but
// carries no relations or indexes.
func (s *blockState) buildInterface() (*schema.Interface, error) {
	fields, err := s.fieldsFromLines()
	if err != nil {
		return nil, err
	}
	iface := &schema.Interface{
		Name:        s.name,
		Description: strings.Join(s.descLines, " "),
		Inherits:    s.inherits,
		Fields:      fields,
		Metadata:    map[string]string{},
		Line:        s.line,
	}
	for _, ln := range s.metaLines {
		key, value, _ := splitBullet(ln.Text)
		iface.Metadata[key] = value
	}
	return iface, nil
}

// fieldsFromLines builds the raw field tree and flattens it into an
// ordered field list. Nested records flatten as siblings here; the
// reconciler later decides which of them were metadata all along.
func (s *blockState) fieldsFromLines() ([]*schema.Field, error) {
	tree, err := BuildFieldTree(s.docName, s.name, s.fieldLines)
	if err != nil {
		return nil, err
	}

	var fields []*schema.Field
	byNode := map[*Node]*schema.Field{}
	var firstErr error

	Walk(tree, func(parent, node *Node) {
		if firstErr != nil {
			return
		}
		isField := node.HasColon || len(node.Children) > 0 || parent == nil
		if !isField {
			// Leaf without separator: immediate metadata of the parent.
			if pf := byNode[parent]; pf != nil {
				pf.SetMeta(node.Name, node.Rest)
			}
			return
		}

		spec, err := parseFieldRest(s.docName, node.Line, node.Rest)
		if err != nil {
			firstErr = err
			return
		}
		f := &schema.Field{
			Name:        node.Name,
			Type:        spec.Type,
			Nullable:    spec.Nullable,
			Length:      spec.Length,
			Default:     spec.Default,
			Attributes:  spec.Attrs,
			Framework:   spec.Framework,
			Description: spec.Description,
			Line:        node.Line,
		}
		byNode[node] = f
		fields = append(fields, f)
	})

	if firstErr != nil {
		return nil, firstErr
	}
	return fields, nil
}

// buildEnum assembles an Enum from entry lines of the form
// "- Name = literal \"description\"" (literal and description optional).
func (s *blockState) buildEnum() (*schema.Enum, error) {
	e := &schema.Enum{Name: s.name, Line: s.line}
	if len(s.inherits) > 0 {
		e.Base = s.inherits[0]
	}

	for _, ln := range s.fieldLines {
		name, rest, hasColon := splitBullet(ln.Text)
		if name == "" {
			continue
		}
		v := schema.EnumValue{Name: name}

		rest = strings.TrimSpace(rest)
		if hasColon && rest != "" && rest[0] != '"' && rest[0] != '\'' {
			// Colon form: "- Active: 1".
			rest = "= " + rest
		}
		if strings.HasPrefix(rest, "=") {
			lit := strings.TrimSpace(strings.TrimPrefix(rest, "="))
			if q := strings.IndexAny(lit, `"'`); q >= 0 {
				rest = lit[q:]
				lit = strings.TrimSpace(lit[:q])
			} else {
				rest = ""
			}
			v.Literal = lit
			v.HasLiteral = lit != ""
		}
		if rest != "" && (rest[0] == '"' || rest[0] == '\'') {
			v.Description, _ = scanQuoted(rest)
		}
		e.Values = append(e.Values, v)
	}

	for _, ln := range s.metaLines {
		key, value, _ := splitBullet(ln.Text)
		switch strings.ToLower(key) {
		case "group":
			e.Group = value
		case "base":
			e.Base = value
		}
	}
	return e, nil
}

// parseRelation parses an explicit relation bullet:
// "- items: to OrderItem many fk=OrderId @cascade".
func (s *blockState) parseRelation(ln Line) (*schema.Relation, error) {
	name, rest, hasColon := splitBullet(ln.Text)
	if !hasColon {
		return nil, &StructuralError{Document: s.docName, Line: ln.Number,
			Message: "relation line needs \"name: to|from Target ...\""}
	}

	rel := &schema.Relation{Name: name, Line: ln.Number}
	for _, tok := range strings.Fields(rest) {
		switch {
		case tok == schema.DirectionTo || tok == schema.DirectionFrom:
			rel.Direction = tok
		case tok == schema.CardinalityOne || tok == schema.CardinalityMany:
			rel.Cardinality = tok
		case strings.HasPrefix(tok, "fk="):
			rel.ForeignKey = strings.TrimPrefix(tok, "fk=")
		case strings.HasPrefix(tok, "load="):
			rel.Load = strings.TrimPrefix(tok, "load=")
		case strings.HasPrefix(tok, "@"):
			rel.Cascade = relationCascade(tok)
		default:
			if rel.Target == "" {
				rel.Target = tok
			}
		}
	}
	if rel.Target == "" {
		return nil, &StructuralError{Document: s.docName, Line: ln.Number,
			Message: "relation " + name + " has no target model"}
	}
	if rel.Direction == "" {
		rel.Direction = schema.DirectionTo
	}
	if rel.Cardinality == "" {
		rel.Cardinality = schema.CardinalityOne
	}
	return rel, nil
}

// relationCascade maps a relation-line @-token to a cascade behavior.
func relationCascade(tok string) string {
	lower := strings.ToLower(tok)
	if strings.HasPrefix(lower, "@cascade(") {
		if arg, ok := splitDefaultAttrArg(tok); ok {
			return schema.NormalizeCascade(arg)
		}
	}
	switch {
	case strings.HasPrefix(lower, "@no_action"):
		return schema.CascadeNoAction
	case strings.HasPrefix(lower, "@cascade"):
		return schema.CascadeDelete
	case strings.HasPrefix(lower, "@set_null"):
		return schema.CascadeSetNull
	case strings.HasPrefix(lower, "@restrict"):
		return schema.CascadeRestrict
	}
	return ""
}

func splitDefaultAttrArg(attr string) (string, bool) {
	_, arg, ok := splitDefaultAttr(attr)
	return arg, ok
}

// parseIndex parses an index bullet: "- idx_name: FieldA, FieldB unique"
// or the anonymous form "- FieldA, FieldB".
func parseIndex(ln Line) *schema.Index {
	name, rest, hasColon := splitBullet(ln.Text)
	idx := &schema.Index{Line: ln.Number}
	spec := rest
	if hasColon {
		idx.Name = name
	} else {
		spec = strings.TrimSpace(name + " " + rest)
	}

	spec = strings.TrimSpace(spec)
	if strings.HasSuffix(spec, " unique") || spec == "unique" {
		idx.Unique = true
		spec = strings.TrimSpace(strings.TrimSuffix(spec, "unique"))
	}
	for _, f := range strings.Split(spec, ",") {
		if f = strings.TrimSpace(f); f != "" {
			idx.Fields = append(idx.Fields, f)
		}
	}
	return idx
}

// normalizeSection maps a level-3 header to a known section name;
// unknown sections fall back to the field section so their bullets are
// at least preserved.
func normalizeSection(title string) string {
	switch strings.ToLower(title) {
	case "relations":
		return sectionRelations
	case "indexes":
		return sectionIndexes
	case "metadata":
		return sectionMetadata
	case "behaviors":
		return sectionBehaviors
	case "validations":
		return sectionValidations
	default:
		return sectionFields
	}
}

// splitNames splits a comma-separated inheritance clause.
func splitNames(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
