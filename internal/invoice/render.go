package invoice

import (
	"fmt"
	"html/template"
	"io"
)

var pageTemplate = template.Must(template.New("invoice").Funcs(template.FuncMap{
	"money":  FormatCurrency,
	"number": FormatNumber,
	"inc":    func(i int) int { return i + 1 },
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Invoice {{.Number}}</title>
<style>
body { font-family: sans-serif; margin: 2em; color: #222; }
table { width: 100%; border-collapse: collapse; }
th, td { border-bottom: 1px solid #ddd; padding: 6px; text-align: left; }
td.num, th.num { text-align: right; }
.images img { width: 160px; margin: 4px; }
footer { margin-top: 2em; font-size: 0.85em; color: #666; }
</style>
</head>
<body>
<header>
<h1>Invoice</h1>
<p>Invoice No: <strong>{{.Number}}</strong></p>
<p>Date: {{.IssuedOn}}</p>
<p>Transaction: {{.TransactionID}}</p>
<p>Status: {{.Status}}</p>
</header>
<section class="customer">
<h2>Billed To</h2>
<p>{{.Customer.Name}}</p>
<p>Phone: {{.Customer.Phone}}</p>
<p>Email: {{.Customer.Email}}</p>
<p>Address: {{.Customer.Address}}</p>
</section>
<section class="items">
<table>
<thead><tr><th>#</th><th>Description</th><th class="num">Qty</th><th class="num">Unit Price</th><th class="num">Amount</th></tr></thead>
<tbody>
{{- range $i, $line := .Lines}}
<tr><td>{{inc $i}}</td><td>{{$line.Description}}</td><td class="num">{{number $line.Quantity}}</td><td class="num">{{money $line.UnitPrice}}</td><td class="num">{{money $line.Amount}}</td></tr>
{{- else}}
<tr><td colspan="5">No items</td></tr>
{{- end}}
</tbody>
<tfoot><tr><th colspan="4" class="num">Total</th><th class="num">{{money .Total}}</th></tr></tfoot>
</table>
</section>
{{- if .Images}}
<section class="images">
<h2>Hatchery Images</h2>
{{- range .Images}}
<img src="{{.}}" alt="hatchery image">
{{- end}}
</section>
{{- end}}
<section class="notes"><p>Notes: {{.Notes}}</p></section>
<footer>{{.Footer}}</footer>
</body>
</html>
`))

// Render writes the document as a printable HTML page
func Render(w io.Writer, doc Document) error {
	if err := pageTemplate.Execute(w, doc); err != nil {
		return fmt.Errorf("render invoice %s: %w", doc.Number, err)
	}
	return nil
}
