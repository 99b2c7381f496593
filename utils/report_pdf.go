package utils

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"steg-backend/db/models"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// ReclamationReportData holds all data for the réclamation report template
type ReclamationReportData struct {
	PrintDate    string
	Title        string
	Period       string
	GeneratedBy  string
	Total        int
	ParEtat      map[string]int
	Reclamations []ReclamationReportRow
}

type ReclamationReportRow struct {
	Code       string
	Importance string
	TypePanne  string
	NumClient  string
	Etat       string
	Equipe     string
	Date       string
}

const reclamationReportTemplate = `<!DOCTYPE html>
<html lang="fr">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  body { font-family: Arial, sans-serif; font-size: 12px; color: #222; }
  h1 { font-size: 18px; border-bottom: 2px solid #00529b; padding-bottom: 6px; }
  .meta { margin: 8px 0 16px 0; color: #555; }
  table { width: 100%; border-collapse: collapse; }
  th, td { border: 1px solid #bbb; padding: 4px 6px; text-align: left; }
  th { background: #00529b; color: #fff; }
  tr:nth-child(even) td { background: #f2f6fa; }
  .summary { margin-top: 14px; }
</style>
</head>
<body>
  <h1>{{.Title}}</h1>
  <div class="meta">
    Période : {{.Period}} — Généré le {{.PrintDate}} par {{.GeneratedBy}}
  </div>
  <table>
    <tr>
      <th>Code</th><th>Importance</th><th>Type de panne</th>
      <th>N° client</th><th>État</th><th>Équipe</th><th>Date</th>
    </tr>
    {{range .Reclamations}}
    <tr>
      <td>{{.Code}}</td><td>{{.Importance}}</td><td>{{.TypePanne}}</td>
      <td>{{.NumClient}}</td><td>{{.Etat}}</td><td>{{.Equipe}}</td><td>{{.Date}}</td>
    </tr>
    {{end}}
  </table>
  <div class="summary">
    Total : {{.Total}} réclamation(s)
    {{range $etat, $count := .ParEtat}} — {{$etat}} : {{$count}}{{end}}
  </div>
</body>
</html>`

// GenerateReclamationReport renders the réclamation list as a PDF snapshot
// and saves it under public/reports, returning the public path.
func GenerateReclamationReport(reclamations []models.Reclamation, generatedBy, period, filename string) (string, error) {
	data := prepareReclamationReportData(reclamations, generatedBy, period)

	htmlContent, err := renderReclamationReportHTML(data)
	if err != nil {
		return "", err
	}

	var pdfBuffer bytes.Buffer
	if err := printReportPDF(htmlContent, &pdfBuffer); err != nil {
		return "", err
	}

	dirPath := "./public/reports"
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return "", err
	}

	fullPath := filepath.Join(dirPath, filename)
	if err := os.WriteFile(fullPath, pdfBuffer.Bytes(), 0644); err != nil {
		return "", err
	}

	return "public/reports/" + filename, nil
}

func prepareReclamationReportData(reclamations []models.Reclamation, generatedBy, period string) ReclamationReportData {
	rows := make([]ReclamationReportRow, 0, len(reclamations))
	parEtat := make(map[string]int)

	for _, rec := range reclamations {
		equipe := ""
		if rec.Equipe != nil {
			equipe = rec.Equipe.Nom
		}
		rows = append(rows, ReclamationReportRow{
			Code:       rec.Code,
			Importance: string(rec.Importance),
			TypePanne:  rec.TypePanne,
			NumClient:  rec.NumClient,
			Etat:       string(rec.Etat),
			Equipe:     equipe,
			Date:       rec.CreatedAt.Format("02/01/2006 15:04"),
		})
		parEtat[string(rec.Etat)]++
	}

	return ReclamationReportData{
		PrintDate:    Today().Format("02/01/2006 15:04"),
		Title:        "Rapport des réclamations",
		Period:       period,
		GeneratedBy:  generatedBy,
		Total:        len(reclamations),
		ParEtat:      parEtat,
		Reclamations: rows,
	}
}

func renderReclamationReportHTML(data ReclamationReportData) (string, error) {
	tmpl, err := template.New("reclamation-report").Parse(reclamationReportTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse report template: %v", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute report template: %v", err)
	}
	return buf.String(), nil
}

// printReportPDF serves the HTML on a loopback listener and has headless
// Chrome print it to A4 portrait PDF.
func printReportPDF(htmlContent string, w io.Writer) error {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(htmlContent))
	})

	server := &http.Server{Handler: mux}
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		return err
	}
	defer listener.Close()

	go server.Serve(listener)
	defer server.Close()

	port := listener.Addr().(*net.TCPAddr).Port
	url := fmt.Sprintf("http://localhost:%d", port)

	var buf []byte
	err = chromedp.Run(ctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			buf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).   // A4 Portrait width
				WithPaperHeight(11.69). // A4 Portrait height
				WithMarginTop(0.4).
				WithMarginBottom(0.4).
				WithMarginLeft(0.4).
				WithMarginRight(0.4).
				WithLandscape(false).
				WithPreferCSSPageSize(false).
				WithDisplayHeaderFooter(false).
				Do(ctx)
			return err
		}),
	)

	if err != nil {
		return err
	}

	_, err = w.Write(buf)
	return err
}
