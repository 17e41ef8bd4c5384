package codegen

import (
	"fmt"
	"go/types"
	"path/filepath"
	"reflect"
	"slices"

	"golang.org/x/tools/go/packages"

	"github.com/signadot/xdom/schema"
)

const schemaPath = "github.com/signadot/xdom/schema"

// Package is a Go package and its tagged structs.
type Package struct {
	Name    string
	Path    string
	Dir     string
	Structs []*Struct
}

// Struct is the binding of one struct type.
type Struct struct {
	Name   string
	Opts   schema.StructOpts
	Fields []schema.FieldDef
}

// Load loads the packages matching patterns, resolved in dir.
func Load(dir string, patterns ...string) ([]*Package, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedTypes,
		Dir:  dir,
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages %v: %w", patterns, err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages match %v", patterns)
	}
	res := make([]*Package, 0, len(pkgs))
	for _, p := range pkgs {
		if len(p.Errors) > 0 {
			return nil, fmt.Errorf("package %s: %v", p.PkgPath, p.Errors[0])
		}
		pkg, err := FromTypes(p.Types)
		if err != nil {
			return nil, err
		}
		if len(p.GoFiles) > 0 {
			pkg.Dir = filepath.Dir(p.GoFiles[0])
		}
		res = append(res, pkg)
	}
	return res, nil
}

// FromTypes collects the tagged structs of a type-checked package in
// name order.
func FromTypes(tp *types.Package) (*Package, error) {
	pkg := &Package{Name: tp.Name(), Path: tp.Path()}
	scope := tp.Scope()
	names := scope.Names()
	slices.Sort(names)
	for _, name := range names {
		tn, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || tn.IsAlias() {
			continue
		}
		named, ok := tn.Type().(*types.Named)
		if !ok || named.TypeParams().Len() > 0 {
			continue
		}
		st, ok := named.Underlying().(*types.Struct)
		if !ok {
			continue
		}
		s, err := structOf(name, st)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", tp.Path(), name, err)
		}
		if s != nil {
			pkg.Structs = append(pkg.Structs, s)
		}
	}
	return pkg, nil
}

// structOf returns the binding of st, or nil when st carries no xdom
// tag.
func structOf(name string, st *types.Struct) (*Struct, error) {
	s := &Struct{Name: name}
	tagged, err := s.fields(st, true)
	if err != nil {
		return nil, err
	}
	if !tagged {
		return nil, nil
	}
	return s, nil
}

// fields appends the field definitions of st. Fields of unexported
// embedded structs are listed by their promoted names.
func (s *Struct) fields(st *types.Struct, top bool) (bool, error) {
	tagged := false
	for i := 0; i < st.NumFields(); i++ {
		f := st.Field(i)
		tag := reflect.StructTag(st.Tag(i))
		if _, ok := tag.Lookup(schema.TagKey); ok {
			tagged = true
		}
		if f.Embedded() && isMeta(f.Type()) {
			if !top {
				continue
			}
			opts, err := schema.ParseStructOpts(tag.Get(schema.TagKey))
			if err != nil {
				return false, err
			}
			s.Opts = *opts
			tagged = true
			continue
		}
		if !f.Exported() {
			inner, ok := f.Type().Underlying().(*types.Struct)
			if !f.Embedded() || !ok {
				continue
			}
			innerTagged, err := s.fields(inner, false)
			if err != nil {
				return false, err
			}
			tagged = tagged || innerTagged
			continue
		}
		def, err := schema.ParseFieldTag(reflect.StructField{Name: f.Name(), Tag: tag})
		if err != nil {
			return false, fmt.Errorf("field %s: %w", f.Name(), err)
		}
		if def.Skip {
			continue
		}
		s.Fields = append(s.Fields, def)
	}
	return tagged, nil
}

func isMeta(t types.Type) bool {
	named, ok := t.(*types.Named)
	if !ok {
		return false
	}
	obj := named.Obj()
	return obj.Name() == "Meta" && obj.Pkg() != nil && obj.Pkg().Path() == schemaPath
}

// Select keeps the structs named in names, all of them when names is
// empty.
func (p *Package) Select(names ...string) error {
	if len(names) == 0 {
		return nil
	}
	var res []*Struct
	for _, n := range names {
		i := slices.IndexFunc(p.Structs, func(s *Struct) bool { return s.Name == n })
		if i < 0 {
			return fmt.Errorf("no tagged struct %s in %s", n, p.Path)
		}
		res = append(res, p.Structs[i])
	}
	p.Structs = res
	return nil
}
