package service

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Row 는 결함 리포트 표의 한 행을 나타낸다 (컬럼 헤더 -> 셀 텍스트)
type Row map[string]string

// 결함 리포트 표의 고정 컬럼 헤더
const (
	ColSeq         = "순번"
	ColEnvironment = "시험환경(OS)"
	ColSummary     = "결함요약"
	ColSeverity    = "결함정도"
	ColFrequency   = "발생빈도"
	ColQuality     = "품질특성"
	ColDescription = "결함 설명"
	ColVendor      = "업체 응답"
	ColFixed       = "수정여부"
	ColNote        = "비고"
)

// DefectColumns 정규 컬럼 순서 (CSV 헤더 및 내보내기에 사용)
var DefectColumns = []string{
	ColSeq,
	ColEnvironment,
	ColSummary,
	ColSeverity,
	ColFrequency,
	ColQuality,
	ColDescription,
	ColVendor,
	ColFixed,
	ColNote,
}

// candidateColumns 분류 패스가 값을 끌어올 수 있는 후보 컬럼 (우선순위 순)
// 생성 단계에서 필드 정렬이 어긋난 경우 값이 이 네 컬럼 중 어디에나 들어올 수 있다
var candidateColumns = []string{ColSeverity, ColFrequency, ColQuality, ColDescription}

// quotePairs 셀을 감싸는 따옴표 쌍 (직선/굽은 따옴표, 낫표, 기메)
var quotePairs = [][2]string{
	{`"`, `"`},
	{`'`, `'`},
	{"“", "”"},
	{"‘", "’"},
	{"「", "」"},
	{"『", "』"},
	{"«", "»"},
}

type keywordCode struct {
	keyword string
	code    string
}

// severityCodes 결함정도 정규 코드 (정확 일치가 키워드 추론보다 우선)
var severityCodes = map[string]string{"H": "H", "M": "M", "L": "L"}

// severityKeywords 결함정도 키워드 -> 코드 (대문자 기준 부분 문자열 매칭, 먼저 나온 항목이 우선)
var severityKeywords = []keywordCode{
	{"HIGH", "H"}, {"CRITICAL", "H"},
	{"치명", "H"}, {"중대", "H"}, {"심각", "H"}, {"높음", "H"},
	{"MEDIUM", "M"},
	{"중간", "M"}, {"보통", "M"},
	{"LOW", "L"},
	{"경미", "L"}, {"낮음", "L"}, {"미미", "L"}, {"사소", "L"}, {"경한", "L"},
}

// frequencyCodes 발생빈도 정규 코드
var frequencyCodes = map[string]string{"A": "A", "R": "R"}

// frequencyKeywords 발생빈도 키워드 -> 코드
var frequencyKeywords = []keywordCode{
	{"ALWAYS", "A"},
	{"항상", "A"}, {"항시", "A"}, {"상시", "A"}, {"지속", "A"}, {"매번", "A"}, {"항구", "A"},
	{"INTERMITTENT", "R"}, {"SOMETIMES", "R"}, {"OCCASIONAL", "R"}, {"RARE", "R"},
	{"간헐", "R"}, {"가끔", "R"}, {"드물", "R"}, {"재현", "R"}, {"비정기", "R"}, {"때때로", "R"}, {"조건부", "R"},
}

// qualityLabels 품질특성 동의어 -> 정규 라벨 (공백 제거 + 대문자 변환 후 조회)
// ISO 25010 계열 품질특성의 닫힌 어휘. 목록에 없는 표현은 원문 그대로 둔다
var qualityLabels = map[string]string{
	"기능성":     "기능성",
	"기능":      "기능성",
	"기능적합성":   "기능성",
	"FUNCTIONALITY":         "기능성",
	"FUNCTIONALSUITABILITY": "기능성",

	"성능효율성": "성능효율성",
	"성능효율":  "성능효율성",
	"성능":    "성능효율성",
	"효율성":   "성능효율성",
	"PERFORMANCE":           "성능효율성",
	"PERFORMANCEEFFICIENCY": "성능효율성",
	"EFFICIENCY":            "성능효율성",

	"호환성":   "호환성",
	"호환":    "호환성",
	"상호운용성": "호환성",
	"COMPATIBILITY":    "호환성",
	"INTEROPERABILITY": "호환성",

	"사용성":   "사용성",
	"사용편의성": "사용성",
	"USABILITY": "사용성",

	"신뢰성": "신뢰성",
	"RELIABILITY": "신뢰성",

	"보안성": "보안성",
	"보안":  "보안성",
	"SECURITY": "보안성",

	"유지보수성": "유지보수성",
	"유지보수":  "유지보수성",
	"유지관리성": "유지보수성",
	"MAINTAINABILITY": "유지보수성",

	"이식성": "이식성",
	"이식":  "이식성",
	"PORTABILITY": "이식성",

	"일반적요구사항": "일반적 요구사항",
	"일반요구사항":  "일반적 요구사항",
	"공통요구사항":  "일반적 요구사항",
	"GENERALREQUIREMENTS": "일반적 요구사항",
	"GENERAL":             "일반적 요구사항",
}

type CellNormalizer struct{}

func NewCellNormalizer() *CellNormalizer {
	return &CellNormalizer{}
}

// NormalizeRow 한 행의 셀들을 정규화한다
// 생성 결과의 필드 정렬이 틀어져 있어도 결함정도/발생빈도/품질특성/결함 설명을
// 원래 있어야 할 컬럼으로 재배치한다. 입력을 변경하지 않고 동일한 키 집합의
// 새 매핑을 반환하며, 어떤 패스에서도 인식되지 않은 값은 원문 그대로 남긴다
func (n *CellNormalizer) NormalizeRow(row Row) Row {
	out := make(Row, len(row))
	for k, v := range row {
		out[k] = stripQuotes(v)
	}

	// 분류는 따옴표 제거 직후의 스냅샷을 기준으로 한다
	// 앞선 패스가 코드를 써 넣은 뒤에도 원문 텍스트가 후보로 남아야 하기 때문
	src := make(map[string]string, len(candidateColumns))
	for _, col := range candidateColumns {
		src[col] = out[col]
	}

	// 한 패스에서 소비된 출처 컬럼은 이후 패스에서 보이지 않는다
	consumed := make(map[string]bool, len(candidateColumns))

	if code, from := classify(src, consumed, severityCodes, severityKeywords); code != "" {
		consumed[from] = true
		assign(out, ColSeverity, code)
	}
	if code, from := classify(src, consumed, frequencyCodes, frequencyKeywords); code != "" {
		consumed[from] = true
		assign(out, ColFrequency, code)
	}
	if label, from := classifyQuality(src, consumed); label != "" {
		consumed[from] = true
		assign(out, ColQuality, label)
	}

	// 결함 설명이 이미 문장처럼 보이면 유지, 아니면 남은 후보 중
	// 첫 번째로 문장처럼 보이는 원문으로 교체
	if !looksLikeDescription(src[ColDescription]) {
		for _, col := range candidateColumns {
			if consumed[col] {
				continue
			}
			if cand := strings.TrimSpace(src[col]); looksLikeDescription(cand) {
				consumed[col] = true
				assign(out, ColDescription, cand)
				break
			}
		}
	}

	return out
}

// NormalizeRows 여러 행을 독립적으로 정규화한다
func (n *CellNormalizer) NormalizeRows(rows []Row) []Row {
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, n.NormalizeRow(row))
	}
	return out
}

// classify 후보 컬럼을 우선순위 순으로 돌며 코드를 찾는다
// 각 후보는 정확 일치 -> 키워드 순으로 검사하고, 처음 일치한 후보에서 멈춘다
// 뒤 순위 후보가 다른 코드와 일치하더라도 앞 순위의 판정이 이긴다 (문서화된 동작)
func classify(src map[string]string, consumed map[string]bool, exact map[string]string, keywords []keywordCode) (string, string) {
	for _, col := range candidateColumns {
		if consumed[col] {
			continue
		}
		text := strings.TrimSpace(src[col])
		if text == "" {
			continue
		}
		upper := strings.ToUpper(text)
		if code, ok := exact[upper]; ok {
			return code, col
		}
		for _, kc := range keywords {
			if strings.Contains(upper, kc.keyword) {
				return kc.code, col
			}
		}
	}
	return "", ""
}

// classifyQuality 공백을 제거한 셀 텍스트를 동의어 표에서 조회한다
func classifyQuality(src map[string]string, consumed map[string]bool) (string, string) {
	for _, col := range candidateColumns {
		if consumed[col] {
			continue
		}
		key := strings.ToUpper(removeWhitespace(src[col]))
		if key == "" {
			continue
		}
		if label, ok := qualityLabels[key]; ok {
			return label, col
		}
	}
	return "", ""
}

// stripQuotes 셀을 감싸는 따옴표 쌍을 더 이상 벗길 수 없을 때까지 제거한다
// 한 겹 벗길 때마다 앞뒤 공백을 함께 제거한다
func stripQuotes(s string) string {
	text := strings.TrimSpace(s)
	for {
		stripped := text
		for _, pair := range quotePairs {
			open, closing := pair[0], pair[1]
			if len(text) >= len(open)+len(closing) &&
				strings.HasPrefix(text, open) && strings.HasSuffix(text, closing) {
				stripped = text[len(open) : len(text)-len(closing)]
				break
			}
		}
		stripped = strings.TrimSpace(stripped)
		if stripped == text {
			return text
		}
		text = stripped
	}
}

// looksLikeDescription 짧은 코드가 아니라 문장처럼 보이는지 판단한다
// 25자 이상이거나, 12자 이상이면서 중간에 공백이 있거나, 문장 부호를 포함하면 문장으로 본다
func looksLikeDescription(s string) bool {
	text := strings.TrimSpace(s)
	if text == "" {
		return false
	}
	if utf8.RuneCountInString(text) >= 25 {
		return true
	}
	if utf8.RuneCountInString(text) >= 12 && strings.ContainsFunc(text, unicode.IsSpace) {
		return true
	}
	return strings.ContainsAny(text, ".!?,")
}

func removeWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// assign 입력에 존재하는 컬럼에만 값을 쓴다 (키 집합 보존)
func assign(out Row, col, value string) {
	if _, ok := out[col]; ok {
		out[col] = value
	}
}
