package arch

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// XSINamespace is the namespace URI of the type discriminator attribute.
const XSINamespace = "http://www.w3.org/2001/XMLSchema-instance"

// DocumentKind distinguishes the two architecture documents.
type DocumentKind string

const (
	KindSoftware DocumentKind = "software"
	KindHardware DocumentKind = "hardware"
	KindUnknown  DocumentKind = "unknown"
)

// Attr is one attribute with its resolved namespace URI.
type Attr struct {
	Space string
	Local string
	Value string
}

// Element is one node of the parsed document tree.
type Element struct {
	Space    string
	Local    string
	Attrs    []Attr
	Children []*Element
}

// Attr returns the value of the un-namespaced attribute name, or "".
func (e *Element) Attr(name string) string {
	v, _ := e.LookupAttr(name)
	return v
}

// LookupAttr is Attr that also reports whether the attribute was present.
func (e *Element) LookupAttr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Space == "" && a.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// AttrOr returns the attribute value, or def when absent.
func (e *Element) AttrOr(name, def string) string {
	if v, ok := e.LookupAttr(name); ok {
		return v
	}
	return def
}

// TypeName returns the raw xsi:type value, for example "components:Component".
// An unbound xsi prefix is accepted as well.
func (e *Element) TypeName() string {
	for _, a := range e.Attrs {
		if (a.Space == XSINamespace || a.Space == "xsi") && a.Local == "type" {
			return a.Value
		}
	}
	return ""
}

// TypeLocal returns the type discriminator with its prefix removed.
func (e *Element) TypeLocal() string {
	t := e.TypeName()
	if i := strings.LastIndex(t, ":"); i >= 0 {
		return t[i+1:]
	}
	return t
}

// Elements returns the direct children with the given local name, in
// document order.
func (e *Element) Elements(name string) []*Element {
	var out []*Element
	for _, c := range e.Children {
		if c.Local == name {
			out = append(out, c)
		}
	}
	return out
}

// Select walks a slash-separated path of local names below e.
func (e *Element) Select(path string) []*Element {
	current := []*Element{e}
	for _, step := range strings.Split(strings.Trim(path, "/"), "/") {
		if step == "" {
			continue
		}
		var next []*Element
		for _, el := range current {
			next = append(next, el.Elements(step)...)
		}
		current = next
	}
	return current
}

// Document is a parsed architecture document.
type Document struct {
	Path string
	Root *Element
	// Raw is the document content as read, kept for the output copy.
	Raw []byte
}

// LoadDocument reads and parses the XML document at path.
func LoadDocument(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &DocumentNotFoundError{Path: path, Err: err}
	}
	doc, err := ParseDocument(bytes.NewReader(raw), path)
	if err != nil {
		return nil, err
	}
	doc.Raw = raw
	return doc, nil
}

// ParseDocument parses an XML document from r. path is only used in errors.
func ParseDocument(r io.Reader, path string) (*Document, error) {
	dec := xml.NewDecoder(r)
	var stack []*Element
	var root *Element
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &MalformedDocumentError{Path: path, Err: err}
		}
		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Space: t.Name.Space, Local: t.Name.Local}
			for _, a := range t.Attr {
				if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
					continue
				}
				el.Attrs = append(el.Attrs, Attr{Space: a.Name.Space, Local: a.Name.Local, Value: a.Value})
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, &MalformedDocumentError{Path: path, Err: fmt.Errorf("multiple root elements")}
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		}
	}
	if root == nil {
		return nil, &MalformedDocumentError{Path: path, Err: fmt.Errorf("no root element")}
	}
	if len(stack) != 0 {
		return nil, &MalformedDocumentError{Path: path, Err: fmt.Errorf("unclosed element <%s>", stack[len(stack)-1].Local)}
	}
	return &Document{Path: path, Root: root}, nil
}

// Kind reports whether the document is a software or hardware description.
func (d *Document) Kind() DocumentKind {
	switch {
	case len(d.Root.Elements("SAElements")) > 0:
		return KindSoftware
	case len(d.Root.Elements("nodes")) > 0:
		return KindHardware
	}
	return KindUnknown
}

// Select walks a slash-separated path of local names from the root.
func (d *Document) Select(path string) []*Element {
	return d.Root.Select(path)
}

// SelectTyped is Select filtered to elements whose type discriminator
// contains typ.
func (d *Document) SelectTyped(path, typ string) []*Element {
	var out []*Element
	for _, el := range d.Select(path) {
		if strings.Contains(el.TypeName(), typ) {
			out = append(out, el)
		}
	}
	return out
}
