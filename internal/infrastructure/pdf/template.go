package pdf

import (
	"bytes"
	"html/template"
	"time"
)

type Row struct {
	Label    string
	Value    string
	Required bool
}

// Form is the printable view of one application.
type Form struct {
	FormName    string
	PolicyTitle string
	Department  string
	Rows        []Row
	Date        time.Time
}

var formTemplate = template.Must(template.New("form").Funcs(template.FuncMap{
	"ymd": func(t time.Time) string {
		return t.Format("2006년 1월 2일")
	},
}).Parse(`<!DOCTYPE html>
<html lang="ko">
<head>
<meta charset="utf-8">
<title>{{.FormName}}</title>
<style>
  body {
    font-family: 'Malgun Gothic', '맑은 고딕', 'Noto Sans KR', sans-serif;
    padding: 15mm;
    font-size: 12pt;
    line-height: 1.6;
    color: #000;
  }
  table { width: 100%; border-collapse: collapse; margin-bottom: 16px; }
  th, td { border: 1px solid #333; padding: 8px 12px; text-align: left; }
  th { background-color: #f0f0f0; font-weight: bold; width: 30%; }
  h1 { font-size: 20pt; text-align: center; margin-bottom: 8px; }
  .policy { text-align: center; margin-bottom: 24px; color: #333; }
  .required { color: #c00; }
  .signature-area { margin-top: 40px; text-align: center; }
</style>
</head>
<body>
<h1>{{.FormName}}</h1>
<p class="policy">{{.PolicyTitle}}{{if .Department}} ({{.Department}}){{end}}</p>
<table>
{{- range .Rows}}
  <tr><th>{{.Label}}{{if .Required}} <span class="required">*</span>{{end}}</th><td>{{.Value}}</td></tr>
{{- end}}
</table>
<div class="signature-area">
  <p>위와 같이 신청합니다.</p>
  <p>{{ymd .Date}}</p>
  <p>신청인: _________________ (서명 또는 날인)</p>
</div>
</body>
</html>
`))

// HTML renders the form. Values are escaped by html/template.
func HTML(f Form) ([]byte, error) {
	if f.Date.IsZero() {
		f.Date = time.Now()
	}
	var buf bytes.Buffer
	if err := formTemplate.Execute(&buf, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
