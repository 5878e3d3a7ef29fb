package fetch

import (
	"archive/tar"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/klauspost/pgzip"

	"github.com/kaywahmatch/create-project/internal/defs"
)

// extract unpacks a GitHub tarball into dest. The archive's top-level
// directory is stripped and, when subdir is set, only entries below it are
// kept. Links are skipped. It returns the number of files written.
func extract(ctx context.Context, archivePath, dest, subdir string, debug func(code, msg string)) (int, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return 0, err
	}
	defer func() { _ = f.Close() }()

	gz, err := pgzip.NewReader(f)
	if err != nil {
		return 0, err
	}
	defer func() { _ = gz.Close() }()

	absDest, err := filepath.Abs(dest)
	if err != nil {
		return 0, err
	}
	prefix := ""
	if subdir != "" {
		prefix = strings.Trim(subdir, "/") + "/"
	}

	tr := tar.NewReader(gz)
	written, matched := 0, false
	for {
		select {
		case <-ctx.Done():
			return written, ctx.Err()
		default:
		}

		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return written, err
		}

		rel, ok := relativeEntry(header.Name, prefix)
		if !ok {
			continue
		}
		matched = true
		if rel == "" {
			continue
		}

		// Zip Slip protection: the target must stay inside dest.
		target := filepath.Join(absDest, filepath.FromSlash(rel))
		if !strings.HasPrefix(target, absDest+string(os.PathSeparator)) {
			return written, fmt.Errorf("%w: %s", ErrIllegalPath, header.Name)
		}

		// Permission bits only: setuid, setgid and sticky are dropped.
		mode := os.FileMode(header.Mode).Perm()

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, defs.DirPerm); err != nil {
				return written, err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), defs.DirPerm); err != nil {
				return written, err
			}
			// Remove first so a previously extracted link is not followed.
			_ = os.Remove(target)
			if err := writeEntry(target, tr, mode); err != nil {
				return written, err
			}
			written++
			debug(CodeFileWritten, rel)
		case tar.TypeSymlink, tar.TypeLink:
			debug(CodeLinkSkipped, rel)
		}
	}

	if prefix != "" && !matched {
		return 0, fmt.Errorf("%w: %s", ErrSubdirNotFound, strings.TrimSuffix(prefix, "/"))
	}
	return written, nil
}

// relativeEntry strips the archive root directory and the subdir prefix from
// an entry name. ok is false for entries outside the prefix.
func relativeEntry(name, prefix string) (string, bool) {
	name = strings.TrimPrefix(name, "./")
	i := strings.IndexByte(name, '/')
	if i < 0 {
		// The pax global header.
		return "", prefix == ""
	}
	rest := strings.TrimSuffix(name[i+1:], "/")
	if rest != "" {
		rest = path.Clean(rest)
	}
	if prefix == "" {
		return rest, true
	}
	if rest+"/" == prefix {
		return "", true
	}
	if !strings.HasPrefix(rest, prefix) {
		return "", false
	}
	return strings.TrimPrefix(rest, prefix), true
}

func writeEntry(target string, r io.Reader, mode os.FileMode) error {
	if mode == 0 {
		mode = defs.FilePerm
	}
	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
