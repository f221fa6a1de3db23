// Package resolver evaluates explorer paths such as "fields[0].prop" against
// a parsed JSON document.
//
// A path is a sequence of segments separated by dots, where array indices may
// also be written in brackets: "a.b", "a[1]", "a[1][2]", "a.1" and "[0].x" are
// all valid. The path string is re-read on every call; nothing is cached.
package resolver

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mcncl/jsonexplorer/internal/errors"
	"github.com/mcncl/jsonexplorer/internal/models"
)

// DefaultPrefix is the root prefix prepended to paths picked from the tree.
const DefaultPrefix = "res."

// PathError records the first segment of a path that could not be followed.
type PathError struct {
	Path    string
	Segment string
	Index   int // position of Segment in the segment list
	Err     error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("path %q: segment %d (%q): %v", e.Path, e.Index, e.Segment, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// StripPrefix removes prefix from path when path starts with it.
func StripPrefix(path, prefix string) string {
	if prefix == "" {
		return path
	}
	return strings.TrimPrefix(path, prefix)
}

var bracketReplacer = strings.NewReplacer("][", ".", "[", ".", "]", "")

// Segments splits a path into its raw tokens. Bracket notation is folded into
// the dot separator, so "[1]" is the same as "1". The empty path has no
// segments and a leading separator is dropped; any other empty token names
// the key "".
func Segments(path string) []string {
	if path == "" {
		return []string{}
	}

	segments := strings.Split(bracketReplacer.Replace(path), ".")
	if segments[0] == "" {
		segments = segments[1:]
	}
	return segments
}

// step describes one successful move into a container.
type step struct {
	class models.Class
	key   string
	index int
}

// Resolve returns the value reached by following path from document.
//
// Segments are applied left to right. Arrays take a base-10 index, objects
// take a key, and primitives ignore the segment and pass through unchanged.
// Once a segment fails every later segment passes the failure through; the
// returned error is a *PathError wrapping errors.ErrPathNotFound or
// errors.ErrMalformedPathToken.
func Resolve(document models.JSONValue, path string) (models.JSONValue, error) {
	value, _, err := walk(document, path)
	return value, err
}

func walk(document models.JSONValue, path string) (models.JSONValue, []step, error) {
	var (
		current  = document
		steps    []step
		firstErr error
	)

	for i, token := range Segments(path) {
		if firstErr != nil {
			continue
		}

		switch container := current.(type) {
		case models.JSONArray:
			index, err := strconv.Atoi(token)
			if err != nil {
				firstErr = &PathError{Path: path, Segment: token, Index: i, Err: errors.ErrMalformedPathToken}
				current = nil
				continue
			}
			if index < 0 || index >= len(container) {
				firstErr = &PathError{Path: path, Segment: token, Index: i, Err: errors.ErrPathNotFound}
				current = nil
				continue
			}
			current = container[index]
			steps = append(steps, step{class: models.ClassArray, index: index})
		case *models.JSONObject:
			next, ok := container.Get(token)
			if !ok {
				firstErr = &PathError{Path: path, Segment: token, Index: i, Err: errors.ErrPathNotFound}
				current = nil
				continue
			}
			current = next
			steps = append(steps, step{class: models.ClassObject, key: token})
		default:
			// primitives pass through
		}
	}

	if firstErr != nil {
		return nil, nil, firstErr
	}
	return current, steps, nil
}
