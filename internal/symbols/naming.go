package symbols

import (
	"golang.org/x/text/unicode/norm"

	"pycheck/internal/source"
)

// NormalizeName applies NFKC, the identifier equivalence of the language:
// `ﬁle` and `file` name the same binding.
func NormalizeName(name string) string {
	if norm.NFKC.IsNormalString(name) {
		return name
	}
	return norm.NFKC.String(name)
}

// canonical maps an interned identifier to the id of its normalized spelling
// without interning anything new.
func (t *Table) canonical(name source.StringID) source.StringID {
	if t.Strings == nil {
		return name
	}
	text, ok := t.Strings.Lookup(name)
	if !ok {
		return name
	}
	normalized := NormalizeName(text)
	if normalized == text {
		return name
	}
	if id, found := t.Strings.Find(normalized); found {
		return id
	}
	return name
}

// internName interns the normalized spelling; used while building the table.
func (t *Table) internName(name source.StringID) source.StringID {
	if t.Strings == nil {
		return name
	}
	text, ok := t.Strings.Lookup(name)
	if !ok {
		return name
	}
	normalized := NormalizeName(text)
	if normalized == text {
		return name
	}
	return t.Strings.Intern(normalized)
}
