package export

import (
	"fmt"
	"io"
	"strconv"

	"golang.org/x/net/html"
)

const reportStyle = `body{font-family:sans-serif;margin:2em}` +
	`table{border-collapse:collapse;margin-bottom:2em}` +
	`th,td{border:1px solid #ccc;padding:2px 8px;text-align:left}` +
	`td.params{font-family:monospace}`

// exportHTML renders a report with a Global parameter table and an entry table
func (e *Exporter) exportHTML(doc ExportedDocument, w io.Writer) error {
	title := e.config.Title
	if title == "" {
		title = doc.FileName
	}
	if title == "" {
		title = "IGES document"
	}

	root := &html.Node{Type: html.DocumentNode}
	root.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	page := element("html")
	root.AppendChild(page)

	head := element("head")
	head.AppendChild(element("meta", html.Attribute{Key: "charset", Val: "utf-8"}))
	head.AppendChild(withText(element("title"), title))
	head.AppendChild(withText(element("style"), reportStyle))
	page.AppendChild(head)

	body := element("body")
	page.AppendChild(body)
	body.AppendChild(withText(element("h1"), title))

	if doc.Start != "" {
		body.AppendChild(withText(element("pre", html.Attribute{Key: "class", Val: "start"}), doc.Start))
	}

	body.AppendChild(withText(element("h2"), "Global Section"))
	global := [][]string{}
	for _, p := range doc.Global {
		value := ""
		if p.Value != nil {
			value = fmt.Sprint(p.Value)
		}
		global = append(global, []string{strconv.Itoa(p.Index), p.Name, p.Type, value})
	}
	body.AppendChild(table("global", []string{"#", "Name", "Type", "Value"}, global, -1))

	body.AppendChild(withText(element("h2"), fmt.Sprintf("Directory Entries (%d)", len(doc.Entries))))
	entries := [][]string{}
	for _, entry := range doc.Entries {
		entries = append(entries, []string{
			strconv.Itoa(entry.Key),
			strconv.Itoa(entry.EntityType),
			entry.EntityName,
			strconv.Itoa(entry.Form),
			entry.LineFont,
			entry.Label,
			entry.ParamStr,
		})
	}
	body.AppendChild(table("entries",
		[]string{"Key", "Type", "Entity", "Form", "Line Font", "Label", "Parameters"}, entries, 6))

	if err := html.Render(w, root); err != nil {
		return fmt.Errorf("rendering HTML: %w", err)
	}
	return nil
}

func element(tag string, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: tag, Attr: attrs}
}

func withText(n *html.Node, s string) *html.Node {
	n.AppendChild(&html.Node{Type: html.TextNode, Data: s})
	return n
}

// table builds a table; cells in column monoCol get the params class.
func table(id string, header []string, rows [][]string, monoCol int) *html.Node {
	t := element("table", html.Attribute{Key: "id", Val: id})

	thead := element("thead")
	tr := element("tr")
	for _, h := range header {
		tr.AppendChild(withText(element("th"), h))
	}
	thead.AppendChild(tr)
	t.AppendChild(thead)

	tbody := element("tbody")
	for _, row := range rows {
		tr := element("tr")
		for i, cell := range row {
			td := element("td")
			if i == monoCol {
				td.Attr = append(td.Attr, html.Attribute{Key: "class", Val: "params"})
			}
			tr.AppendChild(withText(td, cell))
		}
		tbody.AppendChild(tr)
	}
	t.AppendChild(tbody)
	return t
}
