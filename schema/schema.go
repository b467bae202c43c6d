// Package schema parses .umsg message definitions and computes their wire
// fingerprint.
//
// Ownership boundary:
// - canonicalization and the 32-bit FNV-1a schema hash
// - the restricted .umsg grammar (one struct of fixed-size scalar fields)
// - the field/type model consumed by the code generator
package schema

import (
	"fmt"
	"hash/fnv"
	"regexp"
	"strconv"
	"strings"
)

// Scalar types admitted by the grammar, in declaration-order-independent
// canonical spelling.
var scalarSizes = map[string]int{
	"uint8_t":  1,
	"int8_t":   1,
	"uint16_t": 2,
	"int16_t":  2,
	"uint32_t": 4,
	"int32_t":  4,
	"uint64_t": 8,
	"int64_t":  8,
	"bool":     1,
	"float":    4,
	"double":   8,
}

// Field is one declared message field.
type Field struct {
	Type     string
	Name     string
	ArrayLen int // 0 means scalar
}

// Size returns the encoded size of the field in bytes.
func (f Field) Size() int {
	n := scalarSizes[f.Type]
	if f.ArrayLen > 0 {
		return n * f.ArrayLen
	}
	return n
}

// Message is a parsed .umsg definition.
type Message struct {
	Name      string
	Package   string
	Fields    []Field
	Canonical string
	Hash      uint32
}

// PayloadSize returns the exact encoded payload size in bytes.
func (m *Message) PayloadSize() int {
	total := 0
	for _, f := range m.Fields {
		total += f.Size()
	}
	return total
}

// ParseError reports a grammar violation with the offending input.
type ParseError struct {
	Detail string
}

func (e *ParseError) Error() string {
	return "schema: " + e.Detail
}

var (
	blockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)
	lineComment  = regexp.MustCompile(`//[^\n\r]*`)
	packageDecl  = regexp.MustCompile(`\bpackage\s+([A-Za-z_][A-Za-z0-9_.]*)\s*;`)
	whitespace   = regexp.MustCompile(`[ \t\r\n]+`)
	structHeader = regexp.MustCompile(`\bstruct\s+([A-Za-z_][A-Za-z0-9_]*)\s*\{`)
	fieldDecl    = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s+([A-Za-z_][A-Za-z0-9_]*)\s*(?:\[\s*([0-9]+)\s*\])?\s*$`)
)

// Canonicalize strips comments, the optional package directive, and all
// ASCII whitespace. The hash is computed over this text, so any semantic
// change to the definition changes the fingerprint.
func Canonicalize(text string) string {
	text = blockComment.ReplaceAllString(text, "")
	text = lineComment.ReplaceAllString(text, "")
	text = packageDecl.ReplaceAllString(text, "")
	return whitespace.ReplaceAllString(text, "")
}

// Hash computes the 32-bit FNV-1a fingerprint of the canonical text.
func Hash(text string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(Canonicalize(text)))
	return h.Sum32()
}

// Parse reads a .umsg source containing exactly one struct definition.
func Parse(text string) (*Message, error) {
	canonical := Canonicalize(text)
	msg := &Message{
		Canonical: canonical,
		Hash:      Hash(text),
	}

	stripped := lineComment.ReplaceAllString(blockComment.ReplaceAllString(text, ""), "")

	if m := packageDecl.FindStringSubmatch(stripped); m != nil {
		msg.Package = m[1]
	}

	header := structHeader.FindStringSubmatchIndex(stripped)
	if header == nil {
		return nil, &ParseError{Detail: "expected 'struct <name> { ... };'"}
	}
	msg.Name = stripped[header[2]:header[3]]

	rest := stripped[header[1]:]
	closing := strings.Index(rest, "}")
	if closing < 0 {
		return nil, &ParseError{Detail: "unterminated struct body"}
	}
	body := rest[:closing]
	tail := strings.TrimSpace(rest[closing+1:])
	if !strings.HasPrefix(tail, ";") {
		return nil, &ParseError{Detail: "missing ';' after struct body"}
	}
	if extra := strings.TrimSpace(tail[1:]); extra != "" {
		return nil, &ParseError{Detail: fmt.Sprintf("unexpected trailing input %q", extra)}
	}

	seen := map[string]bool{}
	for _, decl := range strings.Split(body, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		m := fieldDecl.FindStringSubmatch(decl)
		if m == nil {
			return nil, &ParseError{Detail: fmt.Sprintf("invalid field declaration %q", decl)}
		}
		typeName, fieldName, arrayLen := m[1], m[2], 0
		if _, ok := scalarSizes[typeName]; !ok {
			return nil, &ParseError{Detail: fmt.Sprintf("unsupported type %q", typeName)}
		}
		if seen[fieldName] {
			return nil, &ParseError{Detail: fmt.Sprintf("duplicate field %q", fieldName)}
		}
		seen[fieldName] = true
		if m[3] != "" {
			n, err := strconv.Atoi(m[3])
			if err != nil || n <= 0 {
				return nil, &ParseError{Detail: fmt.Sprintf("invalid array length in %q", decl)}
			}
			arrayLen = n
		}
		msg.Fields = append(msg.Fields, Field{Type: typeName, Name: fieldName, ArrayLen: arrayLen})
	}
	if len(msg.Fields) == 0 {
		return nil, &ParseError{Detail: "struct has no fields"}
	}
	return msg, nil
}
