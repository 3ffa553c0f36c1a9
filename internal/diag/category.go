package diag

import (
	"fmt"
	"slices"
	"strings"
)

// Category groups codes so users can switch whole rule families on or off.
type Category string

const (
	CategoryNone           Category = ""
	CategoryBinaryOperator Category = "binary-operator"
	CategoryUnaryOperator  Category = "unary-operator"
	CategoryComparison     Category = "comparison"
	CategoryUnresolvedName Category = "unresolved-name"
)

type categoryInfo struct {
	enabledByDefault bool
}

var categories = map[Category]categoryInfo{
	CategoryBinaryOperator: {enabledByDefault: true},
	CategoryUnaryOperator:  {enabledByDefault: false},
	CategoryComparison:     {enabledByDefault: false},
	CategoryUnresolvedName: {enabledByDefault: false},
}

var codeCategory = map[Code]Category{
	SemaBinaryOperator: CategoryBinaryOperator,
	SemaUnaryOperator:  CategoryUnaryOperator,
	SemaComparison:     CategoryComparison,
	SemaUnresolvedName: CategoryUnresolvedName,
}

// Category returns the category of code; CategoryNone for codes that cannot be toggled.
func (c Code) Category() Category {
	return codeCategory[c]
}

// Categories lists known categories in stable order.
func Categories() []Category {
	out := make([]Category, 0, len(categories))
	for c := range categories {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

// ParseCategory validates a user-supplied category name.
func ParseCategory(name string) (Category, error) {
	c := Category(strings.TrimSpace(strings.ToLower(name)))
	if _, ok := categories[c]; !ok {
		names := make([]string, 0, len(categories))
		for _, known := range Categories() {
			names = append(names, string(known))
		}
		return CategoryNone, fmt.Errorf("unknown diagnostic category %q (known: %s)", name, strings.Join(names, ", "))
	}
	return c, nil
}

// Policy decides which categories are reported.
type Policy struct {
	enabled map[Category]bool
}

// DefaultPolicy enables the categories that are on by default.
func DefaultPolicy() Policy {
	p := Policy{enabled: make(map[Category]bool, len(categories))}
	for c, info := range categories {
		p.enabled[c] = info.enabledByDefault
	}
	return p
}

// NewPolicy applies enable then disable on top of the defaults; disable wins.
func NewPolicy(enable, disable []string) (Policy, error) {
	p := DefaultPolicy()
	for _, name := range enable {
		c, err := ParseCategory(name)
		if err != nil {
			return Policy{}, err
		}
		p.enabled[c] = true
	}
	for _, name := range disable {
		c, err := ParseCategory(name)
		if err != nil {
			return Policy{}, err
		}
		p.enabled[c] = false
	}
	return p, nil
}

// Enabled reports whether diagnostics of category c pass. Uncategorised codes always pass.
func (p Policy) Enabled(c Category) bool {
	if c == CategoryNone {
		return true
	}
	if p.enabled == nil {
		return categories[c].enabledByDefault
	}
	return p.enabled[c]
}

// Allows is Enabled for the category of code.
func (p Policy) Allows(code Code) bool {
	return p.Enabled(code.Category())
}
