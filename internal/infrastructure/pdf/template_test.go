package pdf

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHTML(t *testing.T) {
	out, err := HTML(Form{
		FormName:    "직불금 신청서",
		PolicyTitle: "공익직불금",
		Department:  "농림축산식품부",
		Rows: []Row{
			{Label: "성명", Value: "홍길동", Required: true},
			{Label: "비고", Value: "<script>alert(1)</script>"},
		},
		Date: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	html := string(out)
	require.Contains(t, html, "<h1>직불금 신청서</h1>")
	require.Contains(t, html, "공익직불금 (농림축산식품부)")
	require.Contains(t, html, `<th>성명 <span class="required">*</span></th><td>홍길동</td>`)
	require.Contains(t, html, "2026년 3월 5일")
	require.NotContains(t, html, "<script>")
	require.True(t, strings.Contains(html, "&lt;script&gt;"))
}

func TestHTML_NoDepartment(t *testing.T) {
	out, err := HTML(Form{FormName: "f", PolicyTitle: "p"})
	require.NoError(t, err)
	require.Contains(t, string(out), `<p class="policy">p</p>`)
}
