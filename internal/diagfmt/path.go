package diagfmt

import (
	"path/filepath"

	"pycheck/internal/source"
)

func displayPath(fs *source.FileSet, id source.FileID, mode PathMode) string {
	f := fs.Get(id)
	if f == nil {
		return "<unknown>"
	}
	return filepath.ToSlash(f.FormatPath(mode.mode(), fs.BaseDir()))
}
