// Package gen renders parsed .umsg definitions as Go message types
// implementing the umsg.Message contract over the marshal cursors.
package gen

import (
	"fmt"
	"go/format"
	"strings"

	"github.com/embedwire/umsg/schema"
)

// Header marks every generated file.
const Header = "// Code generated by umsggen. DO NOT EDIT."

type typeInfo struct {
	goType string
	suffix string // marshal method suffix: WriteUint8 / ReadUint8 etc.
}

var typeTable = map[string]typeInfo{
	"uint8_t":  {"uint8", "Uint8"},
	"int8_t":   {"int8", "Int8"},
	"uint16_t": {"uint16", "Uint16"},
	"int16_t":  {"int16", "Int16"},
	"uint32_t": {"uint32", "Uint32"},
	"int32_t":  {"int32", "Int32"},
	"uint64_t": {"uint64", "Uint64"},
	"int64_t":  {"int64", "Int64"},
	"bool":     {"bool", "Bool"},
	"float":    {"float32", "Float32"},
	"double":   {"float64", "Float64"},
}

// GoFieldName maps a snake_case schema field to an exported Go identifier.
func GoFieldName(name string) string {
	parts := strings.Split(name, "_")
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}

// File renders one generated source file for msg in the given Go package.
// sourceName names the input file in the generated header.
func File(msg *schema.Message, goPackage, sourceName string) (string, error) {
	for _, f := range msg.Fields {
		if _, ok := typeTable[f.Type]; !ok {
			return "", fmt.Errorf("gen: unsupported type %q", f.Type)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n//\n// source: %s\n// schema hash: %#08x\n\n", Header, sourceName, msg.Hash)
	fmt.Fprintf(&b, "package %s\n\n", goPackage)
	fmt.Fprintf(&b, "import \"github.com/embedwire/umsg/marshal\"\n\n")

	fmt.Fprintf(&b, "const (\n")
	fmt.Fprintf(&b, "\t%sMsgHash uint32 = %#08x\n", msg.Name, msg.Hash)
	fmt.Fprintf(&b, "\t%sPayloadSize    = %d\n", msg.Name, msg.PayloadSize())
	fmt.Fprintf(&b, ")\n\n")

	fmt.Fprintf(&b, "type %s struct {\n", msg.Name)
	for _, f := range msg.Fields {
		info := typeTable[f.Type]
		if f.ArrayLen > 0 {
			fmt.Fprintf(&b, "\t%s [%d]%s\n", GoFieldName(f.Name), f.ArrayLen, info.goType)
		} else {
			fmt.Fprintf(&b, "\t%s %s\n", GoFieldName(f.Name), info.goType)
		}
	}
	fmt.Fprintf(&b, "}\n\n")

	fmt.Fprintf(&b, "func (m *%s) MsgHash() uint32  { return %sMsgHash }\n\n", msg.Name, msg.Name)
	fmt.Fprintf(&b, "func (m *%s) PayloadSize() int { return %sPayloadSize }\n\n", msg.Name, msg.Name)

	fmt.Fprintf(&b, "func (m *%s) Encode(buf []byte) (int, error) {\n", msg.Name)
	fmt.Fprintf(&b, "\tw := marshal.NewWriter(buf)\n")
	for _, f := range msg.Fields {
		info := typeTable[f.Type]
		goName := GoFieldName(f.Name)
		if f.ArrayLen > 0 {
			fmt.Fprintf(&b, "\tif err := w.Write%sArray(m.%s[:]); err != nil {\n\t\treturn 0, err\n\t}\n", info.suffix, goName)
		} else {
			fmt.Fprintf(&b, "\tif err := w.Write%s(m.%s); err != nil {\n\t\treturn 0, err\n\t}\n", info.suffix, goName)
		}
	}
	fmt.Fprintf(&b, "\treturn w.Len(), nil\n}\n\n")

	fmt.Fprintf(&b, "func (m *%s) Decode(data []byte) error {\n", msg.Name)
	fmt.Fprintf(&b, "\tr := marshal.NewReader(data)\n")
	for _, f := range msg.Fields {
		info := typeTable[f.Type]
		goName := GoFieldName(f.Name)
		if f.ArrayLen > 0 {
			fmt.Fprintf(&b, "\tif err := r.Read%sArray(m.%s[:]); err != nil {\n\t\treturn err\n\t}\n", info.suffix, goName)
		} else {
			fmt.Fprintf(&b, "\t{\n\t\tv, err := r.Read%s()\n\t\tif err != nil {\n\t\t\treturn err\n\t\t}\n\t\tm.%s = v\n\t}\n", info.suffix, goName)
		}
	}
	fmt.Fprintf(&b, "\treturn nil\n}\n")

	src, err := format.Source([]byte(b.String()))
	if err != nil {
		return "", fmt.Errorf("gen: format %s: %w", msg.Name, err)
	}
	return string(src), nil
}
