package toggle

import (
	"io"

	"github.com/PuerkitoBio/goquery"

	"github.com/mcncl/jsonexplorer/internal/errors"
)

// nativeSelector finds native checkboxes inside custom checkbox wrappers.
// Only those immediately followed by a role="checkbox" sibling form a pair.
const nativeSelector = `.custom-checkbox input[type="checkbox"]`

// Document is an HTML page whose custom checkboxes can be operated.
type Document struct {
	doc   *goquery.Document
	pairs []*Pair
}

// Load parses HTML from r and binds every checkbox pair in it.
func Load(r io.Reader, isToggleKey func(key string) bool) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, errors.NewToggleError("failed to parse HTML", err)
	}

	d := &Document{doc: doc}
	doc.Find(nativeSelector).Each(func(_ int, native *goquery.Selection) {
		companion := native.Next()
		if companion.Length() == 0 {
			return
		}
		if role, _ := companion.Attr("role"); role != "checkbox" {
			return
		}
		d.pairs = append(d.pairs, NewPair(nodeNative{native}, nodeCompanion{companion}, isToggleKey))
	})

	if len(d.pairs) == 0 {
		return nil, errors.NewToggleError("document has no custom checkbox pairs", errors.ErrNoCheckboxPairs)
	}
	return d, nil
}

// Pairs returns the bound pairs in document order.
func (d *Document) Pairs() []*Pair {
	return d.pairs
}

// HTML renders the document with the current control state.
func (d *Document) HTML() (string, error) {
	out, err := d.doc.Html()
	if err != nil {
		return "", errors.NewOutputError("failed to render HTML", err)
	}
	return out, nil
}

// nodeNative stores the checked flag as the presence of the checked attribute.
type nodeNative struct {
	sel *goquery.Selection
}

func (n nodeNative) Checked() bool {
	_, ok := n.sel.Attr("checked")
	return ok
}

func (n nodeNative) SetChecked(checked bool) {
	if checked {
		n.sel.SetAttr("checked", "")
		return
	}
	n.sel.RemoveAttr("checked")
}

type nodeCompanion struct {
	sel *goquery.Selection
}

func (n nodeCompanion) Attr(name string) string {
	v, _ := n.sel.Attr(name)
	return v
}

func (n nodeCompanion) SetAttr(name, value string) {
	n.sel.SetAttr(name, value)
}
