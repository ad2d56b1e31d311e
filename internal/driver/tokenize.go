package driver

import (
	"tagcheck/internal/source"
	"tagcheck/internal/tagscan"
)

type ScanResult struct {
	FileSet *source.FileSet
	File    *source.File
	Lines   []tagscan.Line // only lines with at least one tag
}

// Scan loads path and lists its tag tokens line by line.
func Scan(path string) (*ScanResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)
	return &ScanResult{FileSet: fs, File: file, Lines: tagscan.ScanLines(file.Lines())}, nil
}
