package diagfmt

import (
	"fmt"
	"io"

	"tagcheck/internal/diag"
	"tagcheck/internal/source"
)

// Plain writes the fixed-format report of each document to w, one line per
// finding or the well-formed line. Documents that could not be read are
// reported on errw instead.
func Plain(w, errw io.Writer, docs []Document, fs *source.FileSet, opts PlainOpts) error {
	for i, doc := range docs {
		if !doc.Loaded {
			for _, d := range items(doc.Bag) {
				if d.Code == diag.IOLoadFileError {
					if _, err := fmt.Fprintf(errw, "%s: %s\n", docPath(fs, doc.Path, opts.PathMode), d.Message); err != nil {
						return err
					}
				}
			}
			continue
		}
		if opts.Headers {
			if i > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(w, "%s:\n", docPath(fs, doc.Path, opts.PathMode)); err != nil {
				return err
			}
		}
		for _, line := range doc.Report {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}
