package diagfmt

import (
	"fmt"
	"io"

	"tagcheck/internal/diag"
	"tagcheck/internal/source"
)

// Short prints one line per diagnostic across all documents.
// Well-formed documents print nothing. Diagnostics cut by the bag limit are
// counted on a trailing line, as in Pretty.
func Short(w io.Writer, docs []Document, fs *source.FileSet, includeNotes bool) error {
	for _, doc := range docs {
		if out := diag.FormatShortDiagnostics(items(doc.Bag), fs, includeNotes); out != "" {
			if _, err := fmt.Fprintln(w, out); err != nil {
				return err
			}
		}
		if doc.Bag == nil || doc.Bag.Dropped() == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s: ... %d more diagnostics not shown\n",
			docPath(fs, doc.Path, PathModeRelative), doc.Bag.Dropped()); err != nil {
			return err
		}
	}
	return nil
}
