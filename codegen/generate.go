package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"strconv"

	"github.com/signadot/xdom/schema"
)

const header = "// Code generated by xdom-gen. DO NOT EDIT.\n"

var roleNames = map[schema.Role]string{
	schema.ElementRole:   "schema.ElementRole",
	schema.AttributeRole: "schema.AttributeRole",
	schema.TextRole:      "schema.TextRole",
	schema.ElementsRole:  "schema.ElementsRole",
	schema.FlattenRole:   "schema.FlattenRole",
	schema.TagRole:       "schema.TagRole",
}

// Generate returns the formatted source registering the structs of p.
func Generate(p *Package) ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.WriteString(header)
	fmt.Fprintf(buf, "\npackage %s\n\n", p.Name)
	fmt.Fprintf(buf, "import %q\n\n", schemaPath)
	buf.WriteString("func init() {\n")
	for _, s := range p.Structs {
		writeStruct(buf, s)
	}
	buf.WriteString("}\n")
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to format generated code for %s: %w", p.Path, err)
	}
	return src, nil
}

func writeStruct(buf *bytes.Buffer, s *Struct) {
	fmt.Fprintf(buf, "\tschema.MustRegisterStruct(schema.DefineStruct[%s](\n", s.Name)
	fmt.Fprintf(buf, "\t\t%s,\n", structOpts(&s.Opts))
	for i := range s.Fields {
		fmt.Fprintf(buf, "\t\t%s,\n", fieldDef(&s.Fields[i]))
	}
	buf.WriteString("\t))\n")
}

func structOpts(o *schema.StructOpts) string {
	b := &bytes.Buffer{}
	b.WriteString("schema.StructOpts{")
	sep := ""
	add := func(k, v string) {
		fmt.Fprintf(b, "%s%s: %s", sep, k, v)
		sep = ", "
	}
	if o.Rename != "" {
		add("Rename", strconv.Quote(o.Rename))
	}
	if o.RenameAll != "" {
		add("RenameAll", strconv.Quote(string(o.RenameAll)))
	}
	if o.DenyUnknown {
		add("DenyUnknown", "true")
	}
	if o.Tuple {
		add("Tuple", "true")
	}
	b.WriteString("}")
	return b.String()
}

func fieldDef(d *schema.FieldDef) string {
	b := &bytes.Buffer{}
	fmt.Fprintf(b, "schema.FieldDef{Name: %q", d.Name)
	if d.Rename != "" {
		fmt.Fprintf(b, ", Rename: %q", d.Rename)
	}
	if d.Role != schema.ElementRole {
		fmt.Fprintf(b, ", Role: %s", roleNames[d.Role])
	}
	if d.Optional {
		b.WriteString(", Optional: true")
	}
	if d.Required {
		b.WriteString(", Required: true")
	}
	b.WriteString("}")
	return b.String()
}

// OutputFile is the default file generated code for p is written to.
func OutputFile(p *Package) string {
	return filepath.Join(p.Dir, p.Name+"_xdom.go")
}

// WriteFile generates the code for p into path.
func WriteFile(p *Package, path string) error {
	src, err := Generate(p)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, src, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
