package opcxml

import (
	"encoding/xml"
	"io"
	"strings"
)

// element is a decoded XML element. Tag names and attribute keys are matched
// by local name, ignoring namespace prefixes, because vendor exports are not
// consistent about them.
type element struct {
	name     string
	attrs    map[string]string
	text     strings.Builder
	children []*element
}

// decodeTree reads r into an element tree rooted at a synthetic document node.
func decodeTree(r io.Reader) (*element, error) {
	dec := xml.NewDecoder(r)
	root := &element{name: ""}
	stack := []*element{root}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			el := &element{name: t.Name.Local, attrs: make(map[string]string, len(t.Attr))}
			for _, a := range t.Attr {
				el.attrs[a.Name.Local] = a.Value
			}
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, el)
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			stack[len(stack)-1].text.Write(t)
		}
	}
	return root, nil
}

// attr returns the named attribute or "".
func (e *element) attr(name string) string {
	return e.attrs[name]
}

// findDescendant returns the first descendant with the given local name in
// document order, or nil.
func (e *element) findDescendant(name string) *element {
	for _, c := range e.children {
		if c.name == name {
			return c
		}
		if found := c.findDescendant(name); found != nil {
			return found
		}
	}
	return nil
}

// eachDescendant calls fn for every descendant with the given local name in
// document order.
func (e *element) eachDescendant(name string, fn func(*element)) {
	for _, c := range e.children {
		if c.name == name {
			fn(c)
		}
		c.eachDescendant(name, fn)
	}
}
