package xmldoc

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/bodacc/internal/core/domain"
)

// Document is a parsed bulletin: its UTF-8 text and the ordered tree.
type Document struct {
	Root *Node
	data []byte
}

// Parse builds the ordered tree for a UTF-8 document.
func Parse(data []byte) (*Document, error) {
	dec := newDecoder(data)

	var (
		root  *Node
		stack []*Node
		texts []*strings.Builder
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: parsing document: %v", domain.ErrInvalidInput, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Name: t.Name.Local}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("%w: document has more than one root element", domain.ErrInvalidInput)
				}
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			}
			stack = append(stack, n)
			texts = append(texts, &strings.Builder{})
		case xml.CharData:
			if len(texts) > 0 {
				texts[len(texts)-1].Write(t)
			}
		case xml.EndElement:
			n := stack[len(stack)-1]
			n.Text = strings.TrimSpace(texts[len(texts)-1].String())
			stack = stack[:len(stack)-1]
			texts = texts[:len(texts)-1]
		}
	}

	if root == nil {
		return nil, fmt.Errorf("%w: document has no root element", domain.ErrInvalidInput)
	}
	return &Document{Root: root, data: data}, nil
}

// RootName returns the local name of the root element.
func (d *Document) RootName() string {
	return d.Root.Name
}

// Decode unmarshals the document into v with encoding/xml.
func (d *Document) Decode(v any) error {
	if err := newDecoder(d.data).Decode(v); err != nil {
		return fmt.Errorf("%w: decoding document: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

func newDecoder(data []byte) *xml.Decoder {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = xml.HTMLEntity
	// Text is already UTF-8, whatever the declaration says.
	dec.CharsetReader = func(_ string, r io.Reader) (io.Reader, error) {
		return r, nil
	}
	return dec
}
