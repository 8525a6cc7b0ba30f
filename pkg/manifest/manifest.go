// Package manifest edits the manifest line of a workflow repository's
// build file: the one line starting with a marker such as "WORKFLOW_FILES ="
// followed by space-separated filenames.
package manifest

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"unicode"

	"github.com/arthur-debert/wflink/pkg/errors"
	"github.com/arthur-debert/wflink/pkg/filesystem"
)

// Suffixes of the files used while swapping in a rewritten build file
const (
	NewSuffix = ".new"
	OldSuffix = ".old"
)

// Append adds filename to the first line of buildFile that starts with
// marker. Every other line is kept verbatim and in order. Entries are not
// deduplicated.
//
// The rewrite goes to {buildFile}.new, then the original is moved to
// {buildFile}.old, the new file is moved into place and the old one is
// removed. A build file without the marker is ErrMalformedData and is left
// untouched.
func Append(fsys filesystem.FS, buildFile, marker, filename string) error {
	info, err := fsys.Stat(buildFile)
	if err != nil {
		return errors.Wrap(err, errors.ErrFileAccess, "cannot stat build file").
			WithDetail("path", buildFile)
	}

	content, err := fsys.ReadFile(buildFile)
	if err != nil {
		return errors.Wrap(err, errors.ErrFileAccess, "cannot read build file").
			WithDetail("path", buildFile)
	}

	rewritten, found, err := appendToMarkerLine(content, marker, filename)
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "cannot rewrite build file").
			WithDetail("path", buildFile)
	}
	if !found {
		return missingMarker(buildFile, marker)
	}

	newPath := buildFile + NewSuffix
	oldPath := buildFile + OldSuffix

	if err := fsys.WriteFile(newPath, rewritten, info.Mode().Perm()); err != nil {
		_ = fsys.Remove(newPath)
		return errors.Wrap(err, errors.ErrFileAccess, "cannot write rewritten build file").
			WithDetail("path", newPath)
	}

	if err := fsys.Rename(buildFile, oldPath); err != nil {
		_ = fsys.Remove(newPath)
		return errors.Wrap(err, errors.ErrFileAccess, "cannot move build file aside").
			WithDetail("path", buildFile)
	}

	if err := fsys.Rename(newPath, buildFile); err != nil {
		// Put the original back so the repository keeps a build file
		_ = fsys.Rename(oldPath, buildFile)
		return errors.Wrap(err, errors.ErrFileAccess, "cannot move rewritten build file into place").
			WithDetail("path", buildFile)
	}

	if err := fsys.Remove(oldPath); err != nil {
		return errors.Wrap(err, errors.ErrFileAccess, "cannot remove previous build file").
			WithDetail("path", oldPath)
	}

	return nil
}

// Contains reports whether buildFile has a line starting with marker
func Contains(fsys filesystem.FS, buildFile, marker string) (bool, error) {
	_, found, err := markerLine(fsys, buildFile, marker)
	return found, err
}

// Entries returns the filenames listed on the manifest line, in order
func Entries(fsys filesystem.FS, buildFile, marker string) ([]string, error) {
	line, found, err := markerLine(fsys, buildFile, marker)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, missingMarker(buildFile, marker)
	}
	return strings.Fields(strings.TrimPrefix(line, marker)), nil
}

func markerLine(fsys filesystem.FS, buildFile, marker string) (string, bool, error) {
	content, err := fsys.ReadFile(buildFile)
	if err != nil {
		return "", false, errors.Wrap(err, errors.ErrFileAccess, "cannot read build file").
			WithDetail("path", buildFile)
	}

	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), len(content)+1)
	for scanner.Scan() {
		if line := scanner.Text(); strings.HasPrefix(line, marker) {
			return line, true, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", false, errors.Wrap(err, errors.ErrInternal, "cannot scan build file").
			WithDetail("path", buildFile)
	}
	return "", false, nil
}

// appendToMarkerLine copies content line by line, extending the first
// marker line. Line endings of untouched lines are preserved.
func appendToMarkerLine(content []byte, marker, filename string) ([]byte, bool, error) {
	reader := bufio.NewReader(bytes.NewReader(content))
	var out bytes.Buffer
	found := false

	for {
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, false, err
		}

		if !found && strings.HasPrefix(line, marker) {
			found = true
			out.WriteString(strings.TrimRightFunc(line, unicode.IsSpace))
			out.WriteString(" ")
			out.WriteString(filename)
			out.WriteString("\n")
		} else {
			out.WriteString(line)
		}

		if err == io.EOF {
			break
		}
	}

	return out.Bytes(), found, nil
}

func missingMarker(buildFile, marker string) error {
	return errors.Newf(errors.ErrMalformedData, "build file has no line starting with %q", marker).
		WithDetail("path", buildFile).
		WithDetail("marker", marker)
}
