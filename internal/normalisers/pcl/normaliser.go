// Package pcl normalises PCL bulletins: judgments in insolvency
// proceedings.
//
// A PCL announcement lists its subjects as a flat run of sibling
// elements; the typed parse loses their order, so the header is read from
// the typed parse and the subjects from the ordered tree (see Group).
package pcl

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/bodacc/internal/core/domain"
	"github.com/custodia-labs/bodacc/internal/core/ports/driven"
	"github.com/custodia-labs/bodacc/internal/logger"
	"github.com/custodia-labs/bodacc/internal/normalisers/builder"
	"github.com/custodia-labs/bodacc/internal/normalisers/schema"
	"github.com/custodia-labs/bodacc/internal/normalisers/value"
	"github.com/custodia-labs/bodacc/internal/xmldoc"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// RootElement is the PCL document root.
const RootElement = "PCL_REDIFF"

type bulletin struct {
	Annonces []schema.Header `xml:"annonces>annonce"`
}

// Normaliser handles PCL documents.
type Normaliser struct {
	b *builder.Builder
}

// New creates a PCL normaliser.
func New(b *builder.Builder) *Normaliser {
	return &Normaliser{b: b}
}

// Format returns the format code.
func (n *Normaliser) Format() domain.Format {
	return domain.FormatPCL
}

// RootElements returns the accepted root element names.
func (n *Normaliser) RootElements() []string {
	return []string{RootElement}
}

// Normalise produces one record per annonce.
func (n *Normaliser) Normalise(ctx context.Context, doc *xmldoc.Document, tmpl *domain.Record) ([]*domain.Record, error) {
	var bul bulletin
	if err := doc.Decode(&bul); err != nil {
		return nil, err
	}
	nodes := doc.Root.Child("annonces").ChildrenNamed("annonce")
	if len(nodes) != len(bul.Annonces) {
		return nil, fmt.Errorf("%w: typed parse found %d annonces, ordered parse %d",
			domain.ErrContractViolation, len(bul.Annonces), len(nodes))
	}

	records := make([]*domain.Record, 0, len(nodes))
	for i, node := range nodes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		header := &bul.Annonces[i]
		if got := node.ChildText("nojo"); got != strings.TrimSpace(header.Nojo) {
			return nil, fmt.Errorf("%w: annonce %d is %q in the typed parse and %q in the ordered parse",
				domain.ErrContractViolation, i, header.Nojo, got)
		}

		rec, err := n.annonce(header, node, tmpl)
		if err != nil {
			return nil, fmt.Errorf("annonce %s: %w", header.Nojo, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func (n *Normaliser) annonce(h *schema.Header, node *xmldoc.Node, tmpl *domain.Record) (*domain.Record, error) {
	rec, err := n.b.Record(tmpl, h)
	if err != nil {
		return nil, err
	}

	g, err := Group(node.Children)
	if err != nil {
		return nil, err
	}

	for _, p := range g.Entities {
		e, err := n.b.Subject(p.Company, p.Person, false)
		if err != nil {
			return nil, err
		}
		if e != nil {
			rec.Subjects = append(rec.Subjects, *e)
		}
	}

	if g.Judgment == nil {
		logger.Warn("annonce %s: no jugement", h.Nojo)
		return rec, nil
	}
	rec.About = n.judgment(g.Judgment)
	return rec, nil
}

func (n *Normaliser) judgment(node *xmldoc.Node) *domain.Act {
	act := &domain.Act{
		Type:       domain.ActJudgment,
		Family:     node.ChildText("famille"),
		Nature:     node.ChildText("nature"),
		Date:       n.b.Date(node.Name+".date", node.ChildText("date"), value.LayoutISO, value.LayoutLong, value.LayoutDMY),
		Complement: node.ChildText("complementJugement"),
		Annulled:   node.Name == elemAnnulment,
	}
	return act
}
