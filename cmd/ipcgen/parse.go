// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"
)

// serviceMarker marks an interface as a service contract.
const serviceMarker = "//scriptipc:service"

const scriptipcPath = "github.com/Query-farm/script-ipc/scriptipc"

type contractFile struct {
	Source     string
	Package    string
	StdImports []string
	Imports    []string
	Services   []service
}

type service struct {
	Name    string
	Methods []method
}

type method struct {
	Name     string
	WireName string
	Params   []param
	Result   string
}

type param struct {
	Name  string
	Field string
	JSON  string
	Type  string
}

// parseContract reads the service interfaces declared in the Go file at path.
func parseContract(path string, src any) (*contractFile, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, path, src, parser.ParseComments)
	if err != nil {
		return nil, err
	}

	cf := &contractFile{
		Source:  filepath.Base(path),
		Package: f.Name.Name,
	}
	for _, imp := range f.Imports {
		ipath, _ := strconv.Unquote(imp.Path.Value)
		switch ipath {
		case scriptipcPath, "context", "io":
			continue
		}
		spec := imp.Path.Value
		if imp.Name != nil {
			spec = imp.Name.Name + " " + spec
		}
		if first, _, _ := strings.Cut(ipath, "/"); strings.Contains(first, ".") {
			cf.Imports = append(cf.Imports, spec)
		} else {
			cf.StdImports = append(cf.StdImports, spec)
		}
	}

	for _, decl := range f.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			ts := spec.(*ast.TypeSpec)
			iface, ok := ts.Type.(*ast.InterfaceType)
			if !ok {
				continue
			}
			doc := ts.Doc
			if doc == nil && len(gen.Specs) == 1 {
				doc = gen.Doc
			}
			if !hasMarker(doc) {
				continue
			}
			svc, err := parseService(fset, ts.Name.Name, iface)
			if err != nil {
				return nil, err
			}
			cf.Services = append(cf.Services, svc)
		}
	}
	if len(cf.Services) == 0 {
		return nil, fmt.Errorf("%s: no interface marked %s", path, serviceMarker)
	}
	return cf, nil
}

func hasMarker(doc *ast.CommentGroup) bool {
	if doc == nil {
		return false
	}
	for _, c := range doc.List {
		if strings.TrimSpace(c.Text) == serviceMarker {
			return true
		}
	}
	return false
}

// Names the generated client already uses: its helper methods, and the
// receiver, locals and package referenced inside each stub.
var (
	reservedMethods = map[string]bool{"Close": true, "Channel": true}
	reservedParams  = map[string]bool{"c": true, "resp": true, "err": true, "zero": true, "scriptipc": true}
)

func parseService(fset *token.FileSet, name string, iface *ast.InterfaceType) (service, error) {
	svc := service{Name: name}
	wireNames := make(map[string]bool)
	for _, field := range iface.Methods.List {
		fn, ok := field.Type.(*ast.FuncType)
		if !ok || len(field.Names) != 1 {
			return svc, fmt.Errorf("%s: %s: embedded interfaces are not supported", fset.Position(field.Pos()), name)
		}
		m := method{
			Name:     field.Names[0].Name,
			WireName: snakeCase(field.Names[0].Name),
		}
		if reservedMethods[m.Name] {
			return svc, fmt.Errorf("%s: %s.%s: method name is reserved by the generated client", fset.Position(field.Pos()), name, m.Name)
		}
		if wireNames[m.WireName] {
			return svc, fmt.Errorf("%s: %s.%s: wire name %q used twice", fset.Position(field.Pos()), name, m.Name, m.WireName)
		}
		wireNames[m.WireName] = true

		for _, p := range fn.Params.List {
			if len(p.Names) == 0 {
				return svc, fmt.Errorf("%s: %s.%s: parameters must be named", fset.Position(p.Pos()), name, m.Name)
			}
			typ := types.ExprString(p.Type)
			for _, pn := range p.Names {
				if reservedParams[pn.Name] {
					return svc, fmt.Errorf("%s: %s.%s: parameter name %q is reserved by the generated client", fset.Position(pn.Pos()), name, m.Name, pn.Name)
				}
				m.Params = append(m.Params, param{
					Name:  pn.Name,
					Field: exported(pn.Name),
					JSON:  snakeCase(pn.Name),
					Type:  typ,
				})
			}
		}
		if fn.Results != nil {
			if len(fn.Results.List) != 1 || len(fn.Results.List[0].Names) > 1 {
				return svc, fmt.Errorf("%s: %s.%s: at most one result is allowed", fset.Position(fn.Pos()), name, m.Name)
			}
			m.Result = types.ExprString(fn.Results.List[0].Type)
		}
		svc.Methods = append(svc.Methods, m)
	}
	if len(svc.Methods) == 0 {
		return svc, fmt.Errorf("%s: service declares no methods", name)
	}
	return svc, nil
}

// snakeCase turns a Go identifier into its wire form: HasherNew -> hasher_new,
// GetID -> get_id.
func snakeCase(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func exported(s string) string {
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
