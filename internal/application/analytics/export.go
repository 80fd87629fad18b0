package analytics

import (
	"bytes"
	"cmp"
	"context"
	"encoding/csv"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/jhoicas/inventory-manager/internal/domain/entity"
)

// Conjuntos exportables.
const (
	ExportProducts  = "products"
	ExportSales     = "sales"
	ExportPurchases = "purchases"
)

// ErrUnknownExport conjunto de exportación no reconocido.
var ErrUnknownExport = fmt.Errorf("exportación desconocida (use %s, %s o %s)", ExportProducts, ExportSales, ExportPurchases)

var (
	productHeader     = []string{"ID", "Name", "Description", "Category", "Supplier", "Quantity", "Price"}
	transactionHeader = []string{"ID", "%s", "Date", "Items Count", "Total Amount"}
)

// WriteCSV escribe el conjunto what en w y devuelve el número de filas de datos.
func (uc *ReportUseCase) WriteCSV(ctx context.Context, what string, w io.Writer) (int, error) {
	cw := csv.NewWriter(w)
	var n int
	switch what {
	case ExportProducts:
		products, err := uc.productRepo.List(ctx)
		if err != nil {
			return 0, err
		}
		slices.SortFunc(products, func(a, b *entity.ProductView) int { return cmp.Compare(a.Name, b.Name) })
		if err := cw.Write(productHeader); err != nil {
			return 0, err
		}
		for _, p := range products {
			rec := []string{
				p.ID, p.Name, p.Description, deref(p.CategoryName), deref(p.SupplierName),
				strconv.Itoa(p.Quantity), p.Price.StringFixed(2),
			}
			if err := cw.Write(rec); err != nil {
				return 0, err
			}
		}
		n = len(products)
	case ExportSales, ExportPurchases:
		var rows []*entity.TransactionSummary
		var err error
		counterpart := "Customer"
		if what == ExportSales {
			rows, err = uc.saleRepo.List(ctx, 0)
		} else {
			counterpart = "Supplier"
			rows, err = uc.purchaseRepo.List(ctx, 0)
		}
		if err != nil {
			return 0, err
		}
		header := slices.Clone(transactionHeader)
		header[1] = fmt.Sprintf(header[1], counterpart)
		if err := cw.Write(header); err != nil {
			return 0, err
		}
		for _, t := range rows {
			rec := []string{
				t.ID, t.CounterpartName, t.Date.Format("2006-01-02"),
				strconv.Itoa(t.ItemsCount), t.TotalAmount.StringFixed(2),
			}
			if err := cw.Write(rec); err != nil {
				return 0, err
			}
		}
		n = len(rows)
	default:
		return 0, ErrUnknownExport
	}
	cw.Flush()
	return n, cw.Error()
}

type exportSection struct {
	Title    string
	Noun     string
	Count    int
	Filename string
	Href     template.URL
}

var exportPage = template.Must(template.New("export").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Inventario - Exportar datos</title>
<style>
body { font-family: Arial, sans-serif; max-width: 800px; margin: 0 auto; padding: 20px; }
.card { border: 1px solid #ddd; border-radius: 8px; padding: 20px; margin-bottom: 20px; }
.btn { display: inline-block; background-color: #0070f3; color: white; padding: 10px 15px; text-decoration: none; border-radius: 5px; }
</style>
</head>
<body>
<h1>Inventario - Exportar datos</h1>
<p>Use los enlaces para descargar los datos:</p>
{{range .}}<div class="card">
<h2>{{.Title}}</h2>
<p>{{.Count}} {{.Noun}}</p>
<a href="{{.Href}}" download="{{.Filename}}" class="btn">Descargar CSV</a>
</div>
{{end}}<p><a href="/reports">&larr; Volver a reportes</a></p>
</body>
</html>
`))

// ExportHTML página HTML con un enlace data:text/csv por conjunto (productos, ventas, compras).
func (uc *ReportUseCase) ExportHTML(ctx context.Context) ([]byte, error) {
	sets := []struct{ what, title, noun string }{
		{ExportProducts, "Productos", "productos"},
		{ExportSales, "Ventas", "ventas registradas"},
		{ExportPurchases, "Compras", "compras registradas"},
	}
	sections := make([]exportSection, 0, len(sets))
	for _, s := range sets {
		var buf bytes.Buffer
		n, err := uc.WriteCSV(ctx, s.what, &buf)
		if err != nil {
			return nil, fmt.Errorf("exportar %s: %w", s.what, err)
		}
		sections = append(sections, exportSection{
			Title:    s.title,
			Noun:     s.noun,
			Count:    n,
			Filename: s.what + ".csv",
			// El contenido va escapado como componente de URL; template.URL evita que
			// html/template reemplace el esquema data: por #ZgotmplZ.
			Href: template.URL("data:text/csv;charset=utf-8," + strings.ReplaceAll(url.QueryEscape(buf.String()), "+", "%20")),
		})
	}
	var out bytes.Buffer
	if err := exportPage.Execute(&out, sections); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
