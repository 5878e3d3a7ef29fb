package fetch

import (
	"fmt"
	"path"
	"regexp"
	"strings"
)

// DefaultRef is requested when a source names no ref.
const DefaultRef = "HEAD"

// sourcePattern accepts [github:]user/repo[/subdir][#ref].
var sourcePattern = regexp.MustCompile(`^(?:github:)?([\w.-]+)/([\w.-]+)((?:/[\w.-]+)*)/?(?:#(.+))?$`)

// Source identifies a repository archive and the part of it to extract.
type Source struct {
	User   string
	Repo   string
	Subdir string // slash-separated, without leading slash; empty for the whole repo
	Ref    string
}

// ParseSource parses a source identifier.
func ParseSource(src string) (Source, error) {
	m := sourcePattern.FindStringSubmatch(strings.TrimSpace(src))
	if m == nil {
		return Source{}, fmt.Errorf("%w: %q", ErrBadSource, src)
	}

	s := Source{
		User:   m[1],
		Repo:   strings.TrimSuffix(m[2], ".git"),
		Subdir: strings.TrimPrefix(m[3], "/"),
		Ref:    m[4],
	}
	if s.Ref == "" {
		s.Ref = DefaultRef
	}
	for _, part := range strings.Split(s.Subdir, "/") {
		if part == "." || part == ".." {
			return Source{}, fmt.Errorf("%w: %q", ErrBadSource, src)
		}
	}
	return s, nil
}

// ArchiveURL returns the tarball URL under base, e.g.
// https://codeload.github.com/user/repo/tar.gz/HEAD.
func (s Source) ArchiveURL(base string) string {
	return strings.TrimRight(base, "/") + "/" + path.Join(s.User, s.Repo, "tar.gz", s.Ref)
}

// String returns the canonical identifier.
func (s Source) String() string {
	id := s.User + "/" + s.Repo
	if s.Subdir != "" {
		id += "/" + s.Subdir
	}
	if s.Ref != DefaultRef {
		id += "#" + s.Ref
	}
	return id
}
