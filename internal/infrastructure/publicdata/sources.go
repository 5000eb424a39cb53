package publicdata

import "sort"

// Item is one record of a public API or of the bundled fallback samples.
type Item map[string]any

type Source struct {
	Name        string
	Label       string
	DefaultType string
	Endpoints   map[string]string
	// KeywordParam, when set, forwards the keyword query to the upstream
	// filter parameter of that name.
	KeywordParam string

	NoKeyMessage string
	ErrorMessage string
	Samples      map[string][]Item
}

func (s Source) Types() []string {
	out := make([]string, 0, len(s.Endpoints))
	for t := range s.Endpoints {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

func (s Source) sample(typ string) []Item {
	if items, ok := s.Samples[typ]; ok {
		return items
	}
	return []Item{}
}

var Sources = map[string]Source{
	"mafra": {
		Name:        "mafra",
		Label:       "농림축산식품부",
		DefaultType: "directPayment",
		Endpoints: map[string]string{
			"directPayment": "/15064148/v1/uddi:5601c1ce-ad07-4815-a9c3-837a2f41b105",
			"farmSupport":   "/15064149/v1/uddi:232e0e84-2fbe-4413-a5e5-1be3b4210",
			"farmMachine":   "/15064150/v1/uddi:ae3c58ef-d767-4a9e-a29f-15d2a57e0c34",
		},
		NoKeyMessage: "API 키가 설정되지 않았습니다. 샘플 데이터를 사용합니다.",
		ErrorMessage: "공공API 연동 오류. 저장된 데이터를 사용합니다.",
	},
	"nps": {
		Name:        "nps",
		Label:       "국민연금",
		DefaultType: "pensionInfo",
		Endpoints: map[string]string{
			"pensionInfo":   "/15100742/v1/uddi:pension-info",
			"farmerSupport": "/15100743/v1/uddi:farmer-pension-support",
			"basicPension":  "/15100744/v1/uddi:basic-pension-info",
		},
		NoKeyMessage: "API 키가 설정되지 않았습니다. 안내 정보를 표시합니다.",
		ErrorMessage: "공공API 연동 오류. 안내 정보를 표시합니다.",
		Samples: map[string][]Item{
			"pensionInfo": {{
				"title":       "국민연금 안내",
				"description": "국민연금은 만 18세 이상 60세 미만 국민이 가입 대상입니다.",
				"contact":     "국민연금공단 1355",
				"url":         "https://www.nps.or.kr",
			}},
			"farmerSupport": {{
				"title":       "농어민 연금보험료 지원",
				"description": "농어민 국민연금 보험료의 50%를 국고에서 지원합니다 (월 최대 46,350원).",
				"contact":     "국민연금공단 1355",
				"url":         "https://www.nps.or.kr",
			}},
			"basicPension": {{
				"title":       "기초연금 안내",
				"description": "만 65세 이상, 소득 하위 70% 어르신에게 월 최대 334,810원 지급.",
				"contact":     "보건복지 상담센터 129",
				"url":         "https://basicpension.mohw.go.kr",
			}},
		},
	},
	"bokjiro": {
		Name:        "bokjiro",
		Label:       "복지로",
		DefaultType: "welfare",
		Endpoints: map[string]string{
			"welfare":       "/15083323/v1/uddi:local-welfare-service",
			"lifeSupport":   "/15083324/v1/uddi:life-support-info",
			"energyVoucher": "/15083325/v1/uddi:energy-voucher-info",
		},
		KeywordParam: "cond[서비스명::LIKE]",
		NoKeyMessage: "API 키가 설정되지 않았습니다. 안내 정보를 표시합니다.",
		ErrorMessage: "공공API 연동 오류. 안내 정보를 표시합니다.",
		Samples: map[string][]Item{
			"welfare": {{
				"title":       "지자체 복지서비스",
				"description": "각 시도/시군구에서 자체적으로 운영하는 복지 사업입니다.",
				"contact":     "각 지자체 복지과",
				"url":         "https://www.bokjiro.go.kr",
			}},
			"lifeSupport": {{
				"title":       "기초생활보장 안내",
				"description": "소득인정액이 기준 중위소득 30% 이하 가구에 생계급여를 지급합니다.",
				"contact":     "보건복지 상담센터 129",
				"url":         "https://www.bokjiro.go.kr",
			}},
			"energyVoucher": {{
				"title":       "에너지 바우처 안내",
				"description": "에너지 취약계층에게 냉난방비를 지원합니다.",
				"contact":     "한국에너지공단 1600-3190",
				"url":         "https://www.energy.or.kr",
			}},
		},
	},
}

// SourceNames lists the configured sources in a stable order.
func SourceNames() []string {
	out := make([]string, 0, len(Sources))
	for n := range Sources {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
