// Command arggpt-gen generates tool definitions for functions marked with an
// arggpt:tool comment.
//
// For every Go file containing marked functions it writes a sibling
// <file>.arggpt.go holding one tool.Definition variable per function and a
// constructor for a tool.Registry with all of them:
//
//	//go:generate go run github.com/casualjim/arggpt/cmd/arggpt-gen -path . -export -snake
//
// The function's doc comment becomes the tool's docstring, so the
// Arguments and Returns sections are written there.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"go/ast"
	"go/parser"
	"go/printer"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-openapi/swag"
	"github.com/rs/zerolog"
	"mvdan.cc/gofumpt/format"
)

const (
	marker      = "arggpt:tool"
	outputExt   = ".arggpt.go"
	toolPackage = "github.com/casualjim/arggpt/tool"
	header      = "// Code generated by arggpt-gen. DO NOT EDIT.\n\n"
)

var (
	log    zerolog.Logger
	osExit = os.Exit
)

func init() {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Stamp}
	log = zerolog.New(output).With().Timestamp().Logger()
}

type toolFuncInfo struct {
	name        string
	toolName    string
	comments    []*ast.Comment
	params      []*ast.Field
	exportTools bool
}

type options struct {
	exportTools bool
	snakeCase   bool
}

func main() {
	var (
		path string
		opts options
	)
	flag.StringVar(&path, "path", ".", "file or directory to scan")
	flag.BoolVar(&opts.exportTools, "export", false, "export the generated variables")
	flag.BoolVar(&opts.snakeCase, "snake", false, "use snake_case tool names")
	flag.Parse()

	info, err := os.Stat(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("Error accessing path")
		osExit(1)
		return
	}

	if !info.IsDir() {
		if err := processFile(path, opts); err != nil {
			osExit(1)
		}
		return
	}

	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != path && skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !isSource(d.Name()) {
			return nil
		}
		return processFile(p, opts)
	})
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("Error walking path")
		osExit(1)
	}
}

func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "testdata" || name == "vendor"
}

func isSource(name string) bool {
	return strings.HasSuffix(name, ".go") &&
		!strings.HasSuffix(name, "_test.go") &&
		!strings.HasSuffix(name, outputExt)
}

// processGoFile generates definitions with the function names as tool names.
func processGoFile(path string, exportTools bool) error {
	return processFile(path, options{exportTools: exportTools})
}

func processFile(path string, opts options) error {
	fset := token.NewFileSet()
	fileAST, err := parser.ParseFile(fset, path, nil, parser.ParseComments)
	if err != nil {
		log.Error().Err(err).Str("file", path).Msg("Error parsing file")
		return err
	}

	toolFuncs := collectTools(fileAST, opts.exportTools)
	if len(toolFuncs) == 0 {
		return nil
	}
	if opts.snakeCase {
		for i := range toolFuncs {
			toolFuncs[i].toolName = swag.ToFileName(toolFuncs[i].name)
		}
	}

	base := strings.TrimSuffix(filepath.Base(path), ".go")
	file := createToolsFile(fileAST.Name.Name, registryName(base, opts.exportTools), toolFuncs)

	var buf bytes.Buffer
	buf.WriteString(header)
	if err := printer.Fprint(&buf, token.NewFileSet(), file); err != nil {
		log.Error().Err(err).Str("file", path).Msg("Error printing file")
		return err
	}
	src, err := format.Source(buf.Bytes(), format.Options{})
	if err != nil {
		log.Error().Err(err).Str("file", path).Msg("Error formatting file")
		return err
	}

	outPath := filepath.Join(filepath.Dir(path), base+outputExt)
	if err := os.WriteFile(outPath, src, 0o644); err != nil {
		log.Error().Err(err).Str("file", outPath).Msg("Error writing file")
		return err
	}
	log.Info().Str("file", outPath).Int("tools", len(toolFuncs)).Msg("Generated file")
	return nil
}

func collectTools(fileAST *ast.File, exportTools bool) []toolFuncInfo {
	var toolFuncs []toolFuncInfo
	for _, decl := range fileAST.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Doc == nil || !hasMarker(fn.Doc) {
			continue
		}
		if fn.Recv != nil || fn.Type.TypeParams != nil {
			log.Warn().Str("func", fn.Name.Name).Msg("Skipping method or generic function")
			continue
		}

		var comments []*ast.Comment
		for _, c := range fn.Doc.List {
			if isMarker(c.Text) || strings.HasPrefix(c.Text, "//go:") {
				continue
			}
			comments = append(comments, c)
		}
		// drop the blank line that usually separates the doc from the marker
		for len(comments) > 0 && strings.TrimSpace(strings.TrimPrefix(comments[len(comments)-1].Text, "//")) == "" {
			comments = comments[:len(comments)-1]
		}

		toolFuncs = append(toolFuncs, toolFuncInfo{
			name:        fn.Name.Name,
			toolName:    fn.Name.Name,
			comments:    comments,
			params:      fn.Type.Params.List,
			exportTools: exportTools,
		})
	}
	return toolFuncs
}

func hasMarker(doc *ast.CommentGroup) bool {
	for _, c := range doc.List {
		if isMarker(c.Text) {
			return true
		}
	}
	return false
}

func isMarker(text string) bool {
	return strings.TrimSpace(strings.TrimPrefix(text, "//")) == marker
}

func createToolsFile(pkgName, registry string, toolFuncs []toolFuncInfo) *ast.File {
	file := &ast.File{
		Name: ast.NewIdent(pkgName),
		Decls: []ast.Decl{
			&ast.GenDecl{
				Tok: token.IMPORT,
				Specs: []ast.Spec{
					&ast.ImportSpec{Path: &ast.BasicLit{Kind: token.STRING, Value: strconv.Quote(toolPackage)}},
				},
			},
		},
	}
	if len(toolFuncs) == 0 {
		return file
	}

	vars := make([]ast.Expr, 0, len(toolFuncs))
	for _, tf := range toolFuncs {
		file.Decls = append(file.Decls, createToolVariableAST(tf))
		vars = append(vars, ast.NewIdent(variableName(tf)))
	}
	file.Decls = append(file.Decls, createRegistryAST(registry, vars))
	return file
}

// createToolVariableAST builds
//
//	var nameTool = tool.Must(name, tool.Name("name"), tool.Doc("..."), tool.Parameters(...))
func createToolVariableAST(tf toolFuncInfo) ast.Decl {
	toolName := tf.toolName
	if toolName == "" {
		toolName = tf.name
	}

	args := []ast.Expr{
		ast.NewIdent(tf.name),
		toolCall("Name", stringLit(toolName)),
	}
	if doc := docText(tf.comments); doc != "" {
		args = append(args, toolCall("Doc", stringLit(doc)))
	}
	if names := parameterNames(tf.params); len(names) > 0 {
		lits := make([]ast.Expr, 0, len(names))
		for _, n := range names {
			lits = append(lits, stringLit(n))
		}
		args = append(args, toolCall("Parameters", lits...))
	}

	decl := &ast.GenDecl{
		Tok: token.VAR,
		Specs: []ast.Spec{
			&ast.ValueSpec{
				Names:  []*ast.Ident{ast.NewIdent(variableName(tf))},
				Values: []ast.Expr{toolCall("Must", args...)},
			},
		},
	}
	if len(tf.comments) > 0 {
		decl.Doc = &ast.CommentGroup{List: tf.comments}
	}
	return decl
}

// createRegistryAST builds
//
//	func name() *tool.Registry { return tool.NewRegistry(vars...) }
func createRegistryAST(name string, vars []ast.Expr) ast.Decl {
	return &ast.FuncDecl{
		Name: ast.NewIdent(name),
		Type: &ast.FuncType{
			Params: &ast.FieldList{},
			Results: &ast.FieldList{List: []*ast.Field{
				{Type: &ast.StarExpr{X: &ast.SelectorExpr{X: ast.NewIdent("tool"), Sel: ast.NewIdent("Registry")}}},
			}},
		},
		Body: &ast.BlockStmt{List: []ast.Stmt{
			&ast.ReturnStmt{Results: []ast.Expr{toolCall("NewRegistry", vars...)}},
		}},
	}
}

func toolCall(fn string, args ...ast.Expr) *ast.CallExpr {
	return &ast.CallExpr{
		Fun:  &ast.SelectorExpr{X: ast.NewIdent("tool"), Sel: ast.NewIdent(fn)},
		Args: args,
	}
}

func stringLit(s string) *ast.BasicLit {
	if !strings.Contains(s, "`") && strings.Contains(s, "\n") {
		return &ast.BasicLit{Kind: token.STRING, Value: "`" + s + "`"}
	}
	return &ast.BasicLit{Kind: token.STRING, Value: strconv.Quote(s)}
}

func variableName(tf toolFuncInfo) string {
	name := tf.name + "Tool"
	if tf.exportTools {
		return upperFirst(name)
	}
	return name
}

func registryName(base string, exportTools bool) string {
	if exportTools {
		return "New" + swag.ToGoName(base) + "Registry"
	}
	return "new" + swag.ToGoName(base) + "Registry"
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// docText strips the comment markers, keeping the indentation that follows them.
func docText(comments []*ast.Comment) string {
	lines := make([]string, 0, len(comments))
	for _, c := range comments {
		text := strings.TrimPrefix(c.Text, "//")
		text = strings.TrimPrefix(text, " ")
		lines = append(lines, strings.ReplaceAll(text, "\t", "  "))
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// parameterNames lists the declared names, leaving out a leading context.Context.
func parameterNames(params []*ast.Field) []string {
	var names []string
	for i, field := range params {
		if i == 0 && isContext(field.Type) {
			continue
		}
		if len(field.Names) == 0 {
			names = append(names, fmt.Sprintf("param%d", len(names)))
			continue
		}
		for _, n := range field.Names {
			names = append(names, n.Name)
		}
	}
	return names
}

func isContext(expr ast.Expr) bool {
	sel, ok := expr.(*ast.SelectorExpr)
	if !ok {
		return false
	}
	pkg, ok := sel.X.(*ast.Ident)
	return ok && pkg.Name == "context" && sel.Sel.Name == "Context"
}
