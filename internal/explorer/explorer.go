// Package explorer holds the state behind the JSON explorer view: the loaded
// document, the property path field and the block/variable field.
package explorer

import (
	"fmt"

	"github.com/mcncl/jsonexplorer/internal/errors"
	"github.com/mcncl/jsonexplorer/internal/formatter"
	"github.com/mcncl/jsonexplorer/internal/models"
	"github.com/mcncl/jsonexplorer/internal/renderer"
	"github.com/mcncl/jsonexplorer/internal/resolver"
)

// Options configures an Explorer.
type Options struct {
	// Prefix is prepended to paths chosen from the tree and stripped from
	// the path field before resolution.
	Prefix      string
	IndentWidth int
	// IsActivate reports whether a key name activates a target. Nil means
	// Enter and space.
	IsActivate func(key string) bool
}

// DefaultOptions returns the options used by the original view.
func DefaultOptions() Options {
	return Options{
		Prefix:      resolver.DefaultPrefix,
		IndentWidth: renderer.DefaultIndentWidth,
	}
}

// Explorer is the state of one explorer view. The document is never mutated.
type Explorer struct {
	document models.JSONValue
	path     string
	block    string
	options  Options
	renderer *renderer.Renderer
}

// New creates an Explorer over document with an empty path.
func New(document models.JSONValue, options Options) *Explorer {
	if options.IsActivate == nil {
		options.IsActivate = defaultActivate
	}
	return &Explorer{
		document: document,
		options:  options,
		renderer: renderer.NewRenderer(options.IndentWidth),
	}
}

func defaultActivate(key string) bool {
	return key == "enter" || key == " "
}

// Document returns the document being explored.
func (e *Explorer) Document() models.JSONValue {
	return e.document
}

// Path returns the current property path.
func (e *Explorer) Path() string {
	return e.path
}

// SetPath replaces the property path, as typed by the user.
func (e *Explorer) SetPath(path string) {
	e.path = path
}

// Block returns the block/variable field. It is stored but not interpreted.
func (e *Explorer) Block() string {
	return e.block
}

// SetBlock replaces the block/variable field.
func (e *Explorer) SetBlock(block string) {
	e.block = block
}

// Prefix returns the root prefix used for paths chosen from the tree.
func (e *Explorer) Prefix() string {
	return e.options.Prefix
}

// Activate sets the path to the location of target.
func (e *Explorer) Activate(target renderer.Target) {
	e.path = e.options.Prefix + target.Path
}

// HandleKey activates target when key is an activation key and reports
// whether it did.
func (e *Explorer) HandleKey(target renderer.Target, key string) bool {
	if !e.options.IsActivate(key) {
		return false
	}
	e.Activate(target)
	return true
}

// Value resolves the current path against the document. The path is parsed
// again on every call. A panic while resolving is reported as
// errors.ErrPathNotFound.
func (e *Explorer) Value() (value models.JSONValue, err error) {
	defer func() {
		if r := recover(); r != nil {
			value = nil
			err = errors.NewPathError(fmt.Sprintf("resolving %q: %v", e.path, r), errors.ErrPathNotFound)
		}
	}()
	return resolver.Resolve(e.document, resolver.StripPrefix(e.path, e.options.Prefix))
}

// Display is the text shown for the current path.
func (e *Explorer) Display() string {
	return formatter.Display(e.Value())
}

// Tree renders the document.
func (e *Explorer) Tree() []renderer.Line {
	return e.renderer.Render(e.document)
}

// Targets lists the activation targets of the rendered document.
func (e *Explorer) Targets() []renderer.Target {
	return renderer.Targets(e.Tree())
}
