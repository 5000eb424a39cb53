package publicdata

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"

	"farm-policy/internal/domain/policy"
)

// Upstream datasets do not share a schema, so each policy field is read from
// the first key present in the record.
var (
	titleKeys       = []string{"title", "서비스명", "사업명", "지원사업명", "name"}
	idKeys          = []string{"id", "서비스ID", "사업ID", "serviceId"}
	summaryKeys     = []string{"summary", "서비스목적요약", "사업개요"}
	descriptionKeys = []string{"description", "서비스내용", "지원내용", "사업내용"}
	eligibilityKeys = []string{"eligibility", "지원대상", "선정기준"}
	contactKeys     = []string{"contact", "문의처", "전화문의"}
	urlKeys         = []string{"url", "상세URL", "상세조회URL", "link"}
	departmentKeys  = []string{"department", "소관기관명", "담당부서"}
)

// ToPolicy maps one upstream record onto an inactive catalog policy. Records
// without a title are skipped.
func ToPolicy(source, typ string, item Item) (policy.Policy, bool) {
	title := firstString(item, titleKeys)
	if title == "" {
		return policy.Policy{}, false
	}

	ext := firstString(item, idKeys)
	if ext == "" {
		sum := sha1.Sum([]byte(typ + "\x00" + title))
		ext = hex.EncodeToString(sum[:8])
	}

	src := source
	p := policy.Policy{
		Title:             title,
		Summary:           firstString(item, summaryKeys),
		Description:       firstString(item, descriptionKeys),
		Eligibility:       firstString(item, eligibilityKeys),
		ContactInfo:       firstString(item, contactKeys),
		ApplyURL:          firstString(item, urlKeys),
		Department:        firstString(item, departmentKeys),
		APISource:         &src,
		ExternalID:        typ + ":" + ext,
		RequiredDocuments: []string{},
	}
	if p.Department == "" {
		if s, ok := Sources[source]; ok {
			p.Department = s.Label
		}
	}
	return p, true
}

func firstString(item Item, keys []string) string {
	for _, k := range keys {
		v, ok := item[k]
		if !ok || v == nil {
			continue
		}
		s := strings.TrimSpace(fmt.Sprint(v))
		if s != "" {
			return s
		}
	}
	return ""
}
