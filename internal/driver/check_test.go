package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"tagcheck/internal/diag"
	"tagcheck/internal/matcher"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestCheckSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "doc.xml", "<a>\n<b>\n</a>\n")

	fs, res, err := Check(context.Background(), path, Options{})
	require.NoError(t, err)
	require.NotNil(t, fs)
	require.True(t, res.Loaded)
	require.True(t, res.Malformed())
	require.Equal(t, 3, res.Lines)
	require.Equal(t, []string{"Error at line 3 <b> is not constructed correctly."}, res.Result.Messages())

	items := res.Bag.Items()
	require.Len(t, items, 1)
	require.Equal(t, diag.TagInteriorMismatch, items[0].Code)
}

func TestCheckPathsWalksDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.xml", "<b></b>\n")
	writeFile(t, dir, "a.xml", "</z>\n")
	writeFile(t, dir, "nested/c.XML", "<c>\n")
	writeFile(t, dir, "notes.txt", "<x>\n")
	writeFile(t, dir, ".hidden/d.xml", "<d>\n")

	run, err := CheckPaths(context.Background(), []string{dir}, Options{Jobs: 2})
	require.NoError(t, err)
	require.Len(t, run.Results, 3)

	names := make([]string, 0, len(run.Results))
	for _, r := range run.Results {
		names = append(names, filepath.Base(r.Path))
	}
	require.Equal(t, []string{"a.xml", "b.xml", "c.XML"}, names)
	require.Equal(t, 2, run.Malformed())
	require.Zero(t, run.Failed())
	require.False(t, run.NothingRead())
}

func TestCheckPathsExplicitFileIgnoresExtension(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "page.html", "<p></p>\n")

	run, err := CheckPaths(context.Background(), []string{path, path}, Options{})
	require.NoError(t, err)
	require.Len(t, run.Results, 1)
	require.True(t, run.Results[0].Result.WellFormed())
}

func TestCheckPathsCustomExtensions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.xml", "<a>\n")
	writeFile(t, dir, "b.xhtml", "<b></b>\n")

	files, err := ExpandPaths([]string{dir}, []string{".xhtml"})
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.True(t, strings.HasSuffix(files[0], "b.xhtml"))
}

func TestCheckPathsMissingFile(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "ok.xml", "<a></a>\n")
	missing := filepath.Join(dir, "missing.xml")

	run, err := CheckPaths(context.Background(), []string{missing, good}, Options{})
	require.NoError(t, err)
	require.Len(t, run.Results, 2)

	failed := run.Results[0]
	require.False(t, failed.Loaded)
	require.Error(t, failed.LoadErr)
	require.False(t, failed.Malformed())
	require.Len(t, failed.Bag.Items(), 1)
	require.Equal(t, diag.IOLoadFileError, failed.Bag.Items()[0].Code)

	require.True(t, run.Results[1].Loaded)
	require.Equal(t, 1, run.Failed())
	require.False(t, run.NothingRead())

	run, err = CheckPaths(context.Background(), []string{missing}, Options{})
	require.NoError(t, err)
	require.True(t, run.NothingRead())
}

func TestCheckStdin(t *testing.T) {
	opts := Options{Stdin: strings.NewReader("<a>\r\n<b/>\r\n")}
	_, res, err := Check(context.Background(), StdinPath, opts)
	require.NoError(t, err)
	require.Equal(t, "<stdin>", res.Path)
	require.Equal(t, []string{"Error at EOF: <a> is not constructed correctly."}, res.Result.Messages())

	_, res, err = Check(context.Background(), StdinPath, Options{})
	require.NoError(t, err)
	require.False(t, res.Loaded)
}

func TestCheckUsesDiskCache(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "doc.xml", "<a>\n</b>\n")
	cache, err := OpenDiskCacheAt(filepath.Join(dir, "cache"))
	require.NoError(t, err)

	opts := Options{Cache: cache}
	_, first, err := Check(context.Background(), path, opts)
	require.NoError(t, err)
	require.False(t, first.Cached)

	_, second, err := Check(context.Background(), path, opts)
	require.NoError(t, err)
	require.True(t, second.Cached)
	require.Equal(t, first.Result, second.Result)
	require.Equal(t, len(first.Bag.Items()), len(second.Bag.Items()))

	require.NoError(t, cache.DropAll())
	_, third, err := Check(context.Background(), path, opts)
	require.NoError(t, err)
	require.False(t, third.Cached)
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	require.NoError(t, err)

	key := Digest{1, 2, 3}
	var out DiskPayload
	hit, err := cache.Get(key, &out)
	require.NoError(t, err)
	require.False(t, hit)

	in := &DiskPayload{
		Schema: diskCacheSchemaVersion,
		Path:   "doc.xml",
		Lines:  2,
		Findings: []matcher.Finding{{
			Kind: matcher.StrayClosing,
			Line: 2,
			Name: "z",
			At:   matcher.Pos{Line: 2, Col: 1, Len: 4},
		}},
	}
	require.NoError(t, cache.Put(key, in))
	hit, err = cache.Get(key, &out)
	require.NoError(t, err)
	require.True(t, hit)
	require.Equal(t, *in, out)

	in.Schema = diskCacheSchemaVersion + 1
	require.NoError(t, cache.Put(key, in))
	hit, err = cache.Get(key, &out)
	require.NoError(t, err)
	require.False(t, hit)

	var nilCache *DiskCache
	require.NoError(t, nilCache.Put(key, in))
	require.NoError(t, nilCache.DropAll())
}

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) OnEvent(e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

func TestProgressEventsAndTimings(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.xml", "<a></a>\n")
	b := writeFile(t, dir, "b.xml", "<b>\n")

	sink := &recordingSink{}
	run, err := CheckPaths(context.Background(), []string{a, b}, Options{Progress: sink, Timings: true})
	require.NoError(t, err)

	done := map[string]int{}
	for _, e := range sink.events {
		if e.Status == StatusDone {
			done[e.File] = e.Findings
		}
	}
	require.Equal(t, map[string]int{a: 0, b: 1}, done)

	for _, r := range run.Results {
		require.NotNil(t, r.Timing)
		last := r.Bag.Items()[len(r.Bag.Items())-1]
		require.Equal(t, diag.ObsTimings, last.Code)
		require.Len(t, last.Notes, 1)
	}
	require.NotEmpty(t, run.Timer.Report().Phases)
}

func TestCheckPathsCanceled(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.xml", "<a></a>\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := CheckPaths(ctx, []string{path}, Options{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "doc.xml", "<?xml version=\"1.0\"?>\ntext\n<a><b/></a>\n")

	res, err := Scan(path)
	require.NoError(t, err)
	require.Len(t, res.Lines, 1)
	require.Equal(t, 3, res.Lines[0].Num)
	require.False(t, res.Lines[0].Declaration)
	require.Len(t, res.Lines[0].Tokens, 3)

	_, err = Scan(filepath.Join(dir, "nope.xml"))
	require.Error(t, err)
}
