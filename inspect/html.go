package inspect

import (
	"io"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// WriteHTML outputs rows as an HTML table. Rows of a partition share a
// single cell for their primary key.
func WriteHTML(w io.Writer, rows []Row) error {
	if err := html.Render(w, tableNode(rows)); err != nil {
		tracer().Errorf("inspect HTML: %s", err.Error())
		return err
	}
	return nil
}

func tableNode(rows []Row) *html.Node {
	twoLevel := isPartitioned(rows)
	table := element(atom.Table)
	thead := element(atom.Thead)
	tr := element(atom.Tr)
	tr.AppendChild(textElement(atom.Th, "Key"))
	if twoLevel {
		tr.AppendChild(textElement(atom.Th, "Secondary"))
	}
	tr.AppendChild(textElement(atom.Th, "Value"))
	thead.AppendChild(tr)
	table.AppendChild(thead)
	tbody := element(atom.Tbody)
	for _, g := range groups(rows) {
		for i, row := range rows[g[0]:g[1]] {
			tr := element(atom.Tr)
			if i == 0 {
				td := textElement(atom.Td, row.Primary)
				if n := g[1] - g[0]; n > 1 {
					td.Attr = append(td.Attr, html.Attribute{Key: "rowspan", Val: strconv.Itoa(n)})
				}
				tr.AppendChild(td)
			}
			if twoLevel {
				tr.AppendChild(textElement(atom.Td, row.Secondary))
			}
			tr.AppendChild(textElement(atom.Td, row.Value))
			tbody.AppendChild(tr)
		}
	}
	table.AppendChild(tbody)
	return table
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}

func textElement(a atom.Atom, text string) *html.Node {
	n := element(a)
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return n
}
