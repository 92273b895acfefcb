package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"

	"github.com/nilehmann/codesync/internal/source"
)

// CollectOptions tunes a tree scan.
type CollectOptions struct {
	// IgnoreFile is the name of the per-directory ignore-rule file.
	// Defaults to ".gitignore".
	IgnoreFile string
	// Progress, when set, receives one event per scanned regular file.
	Progress ProgressSink
}

// Collect walks the tree rooted at root and scans every regular file not
// excluded by ignore rules. Files containing at least one marker
// occurrence are loaded into fileSet (CRLF/BOM normalized) and parsed;
// files without a marker never enter the set. Any I/O error aborts the
// walk: there is no partial-results mode.
func Collect(fileSet *source.FileSet, root string, opts CollectOptions) (*Matches, error) {
	if opts.IgnoreFile == "" {
		opts.IgnoreFile = ".gitignore"
	}
	fileSet.SetBaseDir(root)

	scanner := NewScanner(fileSet)
	ignores := newIgnoreIndex(opts.IgnoreFile)
	matches := &Matches{Interner: scanner.Interner()}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			if path != root && ignores.ignored(root, path, true) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if ignores.ignored(root, path, false) {
			return nil
		}

		// Cheap pre-check on the raw bytes: the marker contains no CR, so
		// CRLF normalization cannot create or destroy an occurrence.
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if markerMatcher.Find(raw) < 0 {
			if opts.Progress != nil {
				opts.Progress.OnEvent(Event{Path: path})
			}
			return nil
		}

		id, err := fileSet.Load(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		fm := scanner.ScanFile(id)
		if len(fm.Matches) > 0 {
			matches.Files = append(matches.Files, fm)
		}
		if opts.Progress != nil {
			opts.Progress.OnEvent(Event{Path: path, Matches: len(fm.Matches)})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return matches, nil
}

// ignoreIndex lazily compiles per-directory ignore-rule files and answers
// whether a path is excluded by any rule file between the root and the
// path's own directory.
type ignoreIndex struct {
	fileName string
	matchers map[string]*gitignore.GitIgnore // dir -> compiled rules, nil when absent
}

func newIgnoreIndex(fileName string) *ignoreIndex {
	return &ignoreIndex{
		fileName: fileName,
		matchers: make(map[string]*gitignore.GitIgnore),
	}
}

func (ix *ignoreIndex) ignored(root, path string, isDir bool) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}

	// Check each rule file from the root down to the path's parent.
	dir := root
	remaining := filepath.ToSlash(rel)
	for {
		if m := ix.matcherFor(dir); m != nil {
			probe := remaining
			if isDir {
				probe += "/"
			}
			if m.MatchesPath(probe) {
				return true
			}
		}

		slash := strings.IndexByte(remaining, '/')
		if slash < 0 {
			return false
		}
		dir = filepath.Join(dir, remaining[:slash])
		remaining = remaining[slash+1:]
	}
}

func (ix *ignoreIndex) matcherFor(dir string) *gitignore.GitIgnore {
	if m, ok := ix.matchers[dir]; ok {
		return m
	}

	var m *gitignore.GitIgnore
	rulePath := filepath.Join(dir, ix.fileName)
	if _, err := os.Stat(rulePath); err == nil {
		if compiled, cerr := gitignore.CompileIgnoreFile(rulePath); cerr == nil {
			m = compiled
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		// Unreadable rule file: treat as absent rather than silently
		// excluding files.
		m = nil
	}
	ix.matchers[dir] = m
	return m
}
