package library

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
)

type librarySuite struct {
	suite.Suite
	inputDir  string
	outputDir string
}

func TestLibrarySuite(t *testing.T) {
	suite.Run(t, new(librarySuite))
}

func (s *librarySuite) SetupTest() {
	s.inputDir = s.T().TempDir()
	s.outputDir = filepath.Join(s.inputDir, "converted")

	s.touch("a.mp4")
	s.touch("B.MP4")
	s.touch("notes.txt")
	s.touch("clip.mp4.part")
	s.touch(filepath.Join("sub", "c.Mp4"))
	s.touch(filepath.Join("sub", "deeper", "d.mp4"))
	s.touch(filepath.Join("converted", "old.mp4"))
	s.touch(filepath.Join("converted", "thumbnails", "old_thumb_01.jpg"))
}

func (s *librarySuite) touch(rel string) {
	path := filepath.Join(s.inputDir, rel)
	s.Require().NoError(os.MkdirAll(filepath.Dir(path), os.ModePerm))
	s.Require().NoError(os.WriteFile(path, []byte("x"), 0600))
}

func (s *librarySuite) relPaths(files []SourceFile) []string {
	rels := []string{}
	for _, f := range files {
		rels = append(rels, f.RelPath)
	}
	return rels
}

func (s *librarySuite) TestDiscoverRecursive() {
	files, err := Discover(s.inputDir, s.outputDir, true)
	s.Require().NoError(err)
	s.Equal(
		[]string{"B.MP4", "a.mp4", filepath.Join("sub", "c.Mp4"), filepath.Join("sub", "deeper", "d.mp4")},
		s.relPaths(files),
	)
	for _, f := range files {
		s.True(filepath.IsAbs(f.Path))
	}
}

func (s *librarySuite) TestDiscoverFlat() {
	files, err := Discover(s.inputDir, s.outputDir, false)
	s.Require().NoError(err)
	s.Equal([]string{"B.MP4", "a.mp4"}, s.relPaths(files))
}

func (s *librarySuite) TestDiscoverEmpty() {
	empty := s.T().TempDir()
	files, err := Discover(empty, filepath.Join(empty, "converted"), true)
	s.Require().NoError(err)
	s.Empty(files)
}

func (s *librarySuite) TestDiscoverMissingDir() {
	_, err := Discover(filepath.Join(s.inputDir, "nope"), s.outputDir, true)
	s.Error(err)
}

func (s *librarySuite) TestOutputDirOutsideInput() {
	out := s.T().TempDir()
	files, err := Discover(s.inputDir, out, true)
	s.Require().NoError(err)
	// "converted" is a regular subdirectory in this configuration.
	s.Contains(s.relPaths(files), filepath.Join("converted", "old.mp4"))
}

func (s *librarySuite) TestSymlinkedOutputDirExcluded() {
	link := filepath.Join(s.T().TempDir(), "out-link")
	s.Require().NoError(os.Symlink(s.outputDir, link))

	files, err := Discover(s.inputDir, link, true)
	s.Require().NoError(err)
	s.NotContains(s.relPaths(files), filepath.Join("converted", "old.mp4"))
}

func (s *librarySuite) TestResolveNonexistentPath() {
	resolved := resolvePath(filepath.Join(s.inputDir, "converted", "does", "not", "exist"))
	s.Equal(filepath.Join(resolvePath(s.inputDir), "converted", "does", "not", "exist"), resolved)
}

func TestIsWithin(t *testing.T) {
	tests := []struct {
		path, base string
		want       bool
	}{
		{"/a/b/c", "/a/b", true},
		{"/a/b", "/a/b", true},
		{"/a/bc", "/a/b", false},
		{"/a", "/a/b", false},
		{"/x/y", "/a/b", false},
	}
	for _, test := range tests {
		if got := isWithin(test.path, test.base); got != test.want {
			t.Errorf("isWithin(%q, %q) = %v, want %v", test.path, test.base, got, test.want)
		}
	}
}
