package symbols

import (
	"strings"

	"pycheck/internal/ast"
	"pycheck/internal/source"
)

// ResolveOptions controls a resolve pass for a single AST file.
type ResolveOptions struct {
	Table *Table
	Hints Hints
}

// Result captures resolve artefacts for one file.
type Result struct {
	Table     *Table
	File      ast.FileID
	FileScope ScopeID
}

// ResolveFile walks the AST file and populates the symbol table. It is the
// reference binder: flow-insensitive, one declaration per binding site, in
// document order.
func ResolveFile(builder *ast.Builder, fileID ast.FileID, opts ResolveOptions) Result {
	table := opts.Table
	if table == nil {
		table = NewTable(opts.Hints, builder.StringsInterner)
	}
	result := Result{
		Table: table,
		File:  fileID,
	}

	file := builder.Files.Get(fileID)
	if file == nil {
		return result
	}
	result.FileScope = table.NewFileRoot(fileID, file.Span)

	fr := fileResolver{
		builder: builder,
		table:   table,
		fileID:  fileID,
		module:  result.FileScope,
		scope:   result.FileScope,
	}
	fr.walkBody(file.Body)
	return result
}

type fileResolver struct {
	builder *ast.Builder
	table   *Table
	fileID  ast.FileID
	module  ScopeID
	scope   ScopeID
	stmt    ast.StmtID
}

func (fr *fileResolver) enter(scope ScopeID, fn func()) {
	prev := fr.scope
	fr.scope = scope
	fn()
	fr.scope = prev
}

func (fr *fileResolver) declare(scope ScopeID, decl Declaration) {
	if decl.Name == source.NoStringID {
		return
	}
	decl.File = fr.fileID
	if decl.Stmt == ast.NoStmtID {
		decl.Stmt = fr.stmt
	}
	fr.table.Declare(scope, decl)
}

// bindingScope skips comprehension scopes; `:=` binds in the enclosing function or module.
func (fr *fileResolver) bindingScope() ScopeID {
	scope := fr.scope
	for {
		sc := fr.table.Scopes.Get(scope)
		if sc == nil || sc.Kind != ScopeComprehension || !sc.Parent.IsValid() {
			return scope
		}
		scope = sc.Parent
	}
}

// enclosingFunction is the nonlocal target: the nearest function or lambda above the current scope.
func (fr *fileResolver) enclosingFunction() ScopeID {
	sc := fr.table.Scopes.Get(fr.scope)
	if sc == nil {
		return NoScopeID
	}
	scope := sc.Parent
	for scope.IsValid() {
		parent := fr.table.Scopes.Get(scope)
		if parent == nil {
			return NoScopeID
		}
		if parent.Kind == ScopeFunction || parent.Kind == ScopeLambda {
			return scope
		}
		scope = parent.Parent
	}
	return NoScopeID
}

func (fr *fileResolver) importedName(alias ast.Alias) source.StringID {
	if alias.AsName != source.NoStringID {
		return alias.AsName
	}
	full := fr.builder.Lookup(alias.Name)
	head, _, dotted := strings.Cut(full, ".")
	if !dotted {
		return alias.Name
	}
	return fr.builder.StringsInterner.Intern(head)
}
