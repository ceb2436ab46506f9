package report

import (
	"fmt"
	"io"

	"github.com/ppiankov/ontologica/internal/model"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const htmlStyle = `body{font-family:sans-serif;max-width:60em;margin:2em auto}
.unclosed{color:#b00}.closed{color:#070}table{border-collapse:collapse}
td,th{border:1px solid #ccc;padding:.2em .6em}`

// RenderHTML writes the report as a standalone HTML page
func (rd *Renderer) RenderHTML(w io.Writer, r *model.Report) error {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	title := "Ontology Report"
	if r.Source != "" {
		title += ": " + r.Source
	}

	root := elem(atom.Html)
	head := elem(atom.Head,
		elem(atom.Meta, attr("charset", "utf-8")),
		elem(atom.Title, text(title)),
		elem(atom.Style, text(htmlStyle)),
	)
	body := elem(atom.Body, elem(atom.H1, text(title)))

	summary := elem(atom.Table, elem(atom.Tr, elem(atom.Th, text("Metric")), elem(atom.Th, text("Count"))))
	for _, row := range []struct {
		name  string
		count int
	}{
		{"Entities", r.Summary.Entities},
		{"Predicates", r.Summary.Predicates},
		{"Values", r.Summary.Values},
		{"Unclosed", r.Summary.Unclosed},
		{"Reviewed", r.Summary.Reviewed},
		{"Incomplete", r.Summary.Incomplete},
	} {
		summary.AppendChild(elem(atom.Tr, elem(atom.Td, text(row.name)), elem(atom.Td, text(fmt.Sprint(row.count)))))
	}
	body.AppendChild(elem(atom.H2, text("Summary")))
	body.AppendChild(summary)

	if r.Score != nil {
		body.AppendChild(elem(atom.H2, text(fmt.Sprintf("Closure Index: %d/100 (%s confidence)", r.Score.Index, r.Score.Confidence))))
		list := elem(atom.Ul)
		for _, c := range r.Score.Components {
			list.AppendChild(elem(atom.Li, attr("class", string(c.Severity)),
				elem(atom.Code, text(c.Name)),
				text(fmt.Sprintf(" %d/%d: %s", c.Points, c.Max, c.Description)),
			))
		}
		body.AppendChild(list)
	}

	body.AppendChild(elem(atom.H2, text("Predicates")))
	for _, owner := range r.Owners {
		section := elem(atom.Section, attr("id", "entity-"+owner.Name), elem(atom.H3, text(owner.Name)))
		list := elem(atom.Ul)
		for _, p := range owner.Predicates {
			class := "closed"
			if !p.Closed {
				class = "unclosed"
			}
			item := elem(atom.Li, attr("class", class),
				elem(atom.Strong, text(p.Name)),
				text(": "+predicateState(p)),
			)
			if len(p.Values) > 0 {
				values := elem(atom.Ul)
				for _, v := range p.Values {
					values.AppendChild(elem(atom.Li, text(v)))
				}
				item.AppendChild(values)
			}
			list.AppendChild(item)
		}
		section.AppendChild(list)
		body.AppendChild(section)
	}

	if len(r.Signals) > 0 {
		body.AppendChild(elem(atom.H2, text("Signals")))
		list := elem(atom.Ul)
		for _, s := range r.Signals {
			list.AppendChild(elem(atom.Li, attr("class", string(s.Severity)),
				elem(atom.Code, text(string(s.Type))),
				text(" "+s.Description),
			))
		}
		body.AppendChild(list)
	}

	root.AppendChild(head)
	root.AppendChild(body)
	doc.AppendChild(root)

	if err := html.Render(w, doc); err != nil {
		return fmt.Errorf("render HTML: %w", err)
	}
	return nil
}

// elem builds an element node. Children may mix attribute carriers and nodes.
func elem(a atom.Atom, children ...interface{}) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for _, c := range children {
		switch v := c.(type) {
		case html.Attribute:
			n.Attr = append(n.Attr, v)
		case *html.Node:
			n.AppendChild(v)
		}
	}
	return n
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
