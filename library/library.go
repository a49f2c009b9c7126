package library

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/OdyseeTeam/videoshrink/formats"

	"github.com/karrick/godirwalk"
	"github.com/pkg/errors"
)

// SourceFile is a single discovered input video.
type SourceFile struct {
	// Path is the absolute location of the file.
	Path string
	// RelPath is the location relative to the input directory, used to
	// mirror the input layout under the output directory.
	RelPath string
}

// Discover returns all MP4 files under inputDir, sorted lexicographically
// by full path. Files living under outputDir are skipped so a rerun never
// picks up its own products, even when outputDir is nested inside inputDir
// or reachable through a symlink. An empty result is not an error.
func Discover(inputDir, outputDir string, recursive bool) ([]SourceFile, error) {
	resolvedOut := resolvePath(outputDir)

	var candidates []string
	var err error
	if recursive {
		candidates, err = walkFiles(inputDir)
	} else {
		candidates, err = listFiles(inputDir)
	}
	if err != nil {
		return nil, errors.Wrap(err, "cannot read input directory")
	}

	files := []SourceFile{}
	for _, path := range candidates {
		if !formats.MatchesExtension(path) {
			continue
		}
		if isWithin(resolvePath(path), resolvedOut) {
			continue
		}
		rel, err := filepath.Rel(inputDir, path)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot relativize %v", path)
		}
		files = append(files, SourceFile{Path: path, RelPath: rel})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	logger.Debugw("discovery complete", "dir", inputDir, "found", len(files))
	return files, nil
}

func walkFiles(dir string) ([]string, error) {
	var found []string
	err := godirwalk.Walk(dir, &godirwalk.Options{
		Callback: func(fullPath string, de *godirwalk.Dirent) error {
			if de.IsRegular() {
				found = append(found, fullPath)
				return nil
			}
			// A symlink pointing at a regular file counts as a source.
			if de.IsSymlink() {
				if fi, err := os.Stat(fullPath); err == nil && fi.Mode().IsRegular() {
					found = append(found, fullPath)
				}
			}
			return nil
		},
	})
	return found, err
}

func listFiles(dir string) ([]string, error) {
	names, err := godirwalk.ReadDirnames(dir, nil)
	if err != nil {
		return nil, err
	}
	var found []string
	for _, name := range names {
		path := filepath.Join(dir, name)
		fi, err := os.Stat(path)
		if err != nil || !fi.Mode().IsRegular() {
			continue
		}
		found = append(found, path)
	}
	return found, nil
}

// resolvePath resolves symlinks in p. Since p may not exist yet (the output
// directory is only created once there is something to write), the longest
// existing ancestor is resolved and the remainder reattached.
func resolvePath(p string) string {
	p = filepath.Clean(p)
	suffix := ""
	for cur := p; ; {
		resolved, err := filepath.EvalSymlinks(cur)
		if err == nil {
			return filepath.Join(resolved, suffix)
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return p
		}
		suffix = filepath.Join(filepath.Base(cur), suffix)
		cur = parent
	}
}

func isWithin(path, base string) bool {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
