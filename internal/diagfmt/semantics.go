package diagfmt

import (
	"fmt"
	"slices"

	"fortio.org/safecast"

	"pycheck/internal/ast"
	"pycheck/internal/source"
	"pycheck/internal/symbols"
	"pycheck/internal/types"
)

// SemanticsInput carries the data required to build a semantic dump of one unit.
type SemanticsInput struct {
	Path    string
	Builder *ast.Builder
	FileID  ast.FileID
	Table   *symbols.Table
	Types   map[ast.ExprID]types.Type
}

// SemanticsOutput represents semantic data emitted alongside diagnostics.
type SemanticsOutput struct {
	Path      string         `json:"path"`
	Scopes    []ScopeJSON    `json:"scopes"`
	Symbols   []SymbolJSON   `json:"symbols"`
	ExprTypes []ExprTypeJSON `json:"expr_types"`
}

type ScopeJSON struct {
	ID     uint32         `json:"id"`
	Kind   string         `json:"kind"`
	Parent uint32         `json:"parent,omitempty"`
	Span   source.Span    `json:"span"`
	Owner  ScopeOwnerJSON `json:"owner"`
}

type ScopeOwnerJSON struct {
	Kind string `json:"kind"`
	Stmt uint32 `json:"stmt,omitempty"`
	Expr uint32 `json:"expr,omitempty"`
}

type SymbolJSON struct {
	ID    uint32   `json:"id"`
	Name  string   `json:"name"`
	Scope uint32   `json:"scope"`
	Decls []string `json:"decls"`
}

type ExprTypeJSON struct {
	ExprID uint32      `json:"expr_id"`
	Kind   string      `json:"kind"`
	Span   source.Span `json:"span"`
	Type   string      `json:"type"`
}

func buildSemanticsOutput(in *SemanticsInput) (*SemanticsOutput, error) {
	if in == nil || in.Table == nil || in.Table.Scopes == nil || in.Table.Symbols == nil {
		return nil, nil
	}
	table := in.Table

	strings := table.Strings
	if strings == nil && in.Builder != nil {
		strings = in.Builder.StringsInterner
	}
	if strings == nil {
		return nil, fmt.Errorf("semantics: missing string interner")
	}

	output := &SemanticsOutput{
		Path:      in.Path,
		Scopes:    make([]ScopeJSON, 0, table.Scopes.Len()),
		Symbols:   make([]SymbolJSON, 0, table.Symbols.Len()),
		ExprTypes: make([]ExprTypeJSON, 0, len(in.Types)),
	}

	for idx := 1; idx <= table.Scopes.Len(); idx++ {
		id, err := safecast.Conv[uint32](idx)
		if err != nil {
			return nil, fmt.Errorf("semantics: scope id overflow: %w", err)
		}
		scope := table.Scopes.Get(symbols.ScopeID(id))
		if scope == nil {
			continue
		}
		owner := ScopeOwnerJSON{Kind: scopeOwnerKindString(scope.Owner.Kind)}
		if scope.Owner.Stmt.IsValid() {
			owner.Stmt = uint32(scope.Owner.Stmt)
		}
		if scope.Owner.Expr.IsValid() {
			owner.Expr = uint32(scope.Owner.Expr)
		}
		output.Scopes = append(output.Scopes, ScopeJSON{
			ID:     id,
			Kind:   scope.Kind.String(),
			Parent: uint32(scope.Parent),
			Span:   scope.Span,
			Owner:  owner,
		})
	}

	for idx := 1; idx <= table.Symbols.Len(); idx++ {
		id, err := safecast.Conv[uint32](idx)
		if err != nil {
			return nil, fmt.Errorf("semantics: symbol id overflow: %w", err)
		}
		sym := table.Symbols.Get(symbols.SymbolID(id))
		if sym == nil {
			continue
		}
		decls := make([]string, 0, len(sym.Decls))
		for _, declID := range sym.Decls {
			if decl := table.Declaration(declID); decl != nil {
				decls = append(decls, decl.Kind.String())
			}
		}
		name, _ := strings.Lookup(sym.Name)
		output.Symbols = append(output.Symbols, SymbolJSON{
			ID:    id,
			Name:  name,
			Scope: uint32(sym.Scope),
			Decls: decls,
		})
	}

	if len(in.Types) > 0 && in.Builder != nil {
		ids := make([]ast.ExprID, 0, len(in.Types))
		for id := range in.Types {
			ids = append(ids, id)
		}
		slices.Sort(ids)
		for _, id := range ids {
			expr := in.Builder.Exprs.Get(id)
			if expr == nil {
				continue
			}
			output.ExprTypes = append(output.ExprTypes, ExprTypeJSON{
				ExprID: uint32(id),
				Kind:   expr.Kind.String(),
				Span:   expr.Span,
				Type:   types.Label(in.Types[id]),
			})
		}
	}

	return output, nil
}

func scopeOwnerKindString(kind symbols.ScopeOwnerKind) string {
	switch kind {
	case symbols.ScopeOwnerFile:
		return "file"
	case symbols.ScopeOwnerStmt:
		return "stmt"
	case symbols.ScopeOwnerExpr:
		return "expr"
	default:
		return "unknown"
	}
}
