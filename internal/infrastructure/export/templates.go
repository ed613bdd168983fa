package export

import (
	"bytes"
	"html/template"
)

// TemplateData holds everything the proposal template renders.
type TemplateData struct {
	Title      string
	Number     string
	Client     string
	Address    string
	IssueDate  string
	ExpiryDate string
	Notes      string

	Items    []TemplateItem
	Services []TemplateService
	Sections []TemplateSection

	ShowPST    bool
	ShowGST    bool
	PST        string
	GST        string
	Subtotal   string
	GrandTotal string
}

type TemplateItem struct {
	Name  string
	Price string
}

type TemplateService struct {
	Service string
	Price   string
}

type TemplateSection struct {
	Title  string
	Body   string
	Images []TemplateImage
}

type TemplateImage struct {
	AssetRef string
	Caption  string
}

var proposalTemplate = template.Must(template.New("proposal").Parse(proposalTemplateHTML))

// RenderProposalHTML renders the proposal template with provided data.
func RenderProposalHTML(data TemplateData) (string, error) {
	var buf bytes.Buffer
	if err := proposalTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

const proposalTemplateHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.5; max-width: 800px; margin: 2rem auto; color: #222; }
    h1 { border-bottom: 2px solid #333; padding-bottom: 0.5rem; }
    .meta { color: #666; font-size: 0.9em; margin-bottom: 2rem; }
    table { width: 100%; border-collapse: collapse; margin: 1rem 0; }
    th, td { text-align: left; padding: 0.4rem 0.6rem; border-bottom: 1px solid #ddd; }
    td.price { text-align: right; white-space: nowrap; }
    .totals td { border-bottom: none; }
    .totals .grand { font-weight: bold; border-top: 2px solid #333; }
    .section { margin: 1.5rem 0; }
    .caption { color: #666; font-size: 0.85em; }
  </style>
</head>
<body>
  <h1>{{.Title}}</h1>
  <div class="meta">{{.Number}}{{if .Client}} | {{.Client}}{{end}}{{if .Address}} | {{.Address}}{{end}}<br>
    Issued {{.IssueDate}}{{if .ExpiryDate}} · Valid until {{.ExpiryDate}}{{end}}</div>

  {{range .Sections}}
  <div class="section">
    {{if .Title}}<h2>{{.Title}}</h2>{{end}}
    {{if .Body}}<p>{{.Body}}</p>{{end}}
    {{range .Images}}<figure><img src="{{.AssetRef}}" alt="{{.Caption}}"><figcaption class="caption">{{.Caption}}</figcaption></figure>{{end}}
  </div>
  {{end}}

  {{if .Items}}
  <h2>Pricing</h2>
  <table>
    <tr><th>Item</th><th style="text-align:right">Price</th></tr>
    {{range .Items}}<tr><td>{{.Name}}</td><td class="price">{{.Price}}</td></tr>{{end}}
    <tr class="totals"><td>Subtotal{{if .ShowPST}} (incl. PST {{.PST}}){{end}}</td><td class="price">{{.Subtotal}}</td></tr>
    {{if .ShowGST}}<tr class="totals"><td>GST</td><td class="price">{{.GST}}</td></tr>{{end}}
    <tr class="totals grand"><td>Total</td><td class="price">{{.GrandTotal}}</td></tr>
  </table>
  {{end}}

  {{if .Services}}
  <h2>Optional services</h2>
  <table>
    {{range .Services}}<tr><td>{{.Service}}</td><td class="price">{{.Price}}</td></tr>{{end}}
  </table>
  {{end}}

  {{if .Notes}}<div class="section"><h2>Notes</h2><p>{{.Notes}}</p></div>{{end}}
</body>
</html>`
