package service_test

import (
	"testing"

	"defect-report-log/pkg/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRow_MisalignedCells(t *testing.T) {
	// 생성 결과의 필드가 한 칸씩 밀린 전형적인 케이스
	// 설명이 결함정도에, 결함정도가 발생빈도에, 발생빈도가 품질특성에,
	// 품질특성이 결함 설명에 들어 있다
	in := service.Row{
		service.ColSummary:     "동일한 CCTV 를 중복 등록할 수 있음",
		service.ColSeverity:    "마지막으로 등록된 관제점만 탐지가 가능합니다.",
		service.ColFrequency:   "중대",
		service.ColQuality:     "Always",
		service.ColDescription: "기능성",
	}

	out := service.NewCellNormalizer().NormalizeRow(in)

	assert.Equal(t, "H", out[service.ColSeverity])
	assert.Equal(t, "A", out[service.ColFrequency])
	assert.Equal(t, "기능성", out[service.ColQuality])
	assert.Equal(t, "마지막으로 등록된 관제점만 탐지가 가능합니다.", out[service.ColDescription])
	assert.Equal(t, "동일한 CCTV 를 중복 등록할 수 있음", out[service.ColSummary])
}

func TestNormalizeRow_AlreadyCanonical(t *testing.T) {
	in := service.Row{
		service.ColSeverity:    "M",
		service.ColFrequency:   "R",
		service.ColQuality:     "신뢰성",
		service.ColDescription: "로그 저장 기능이 5분 간격으로 실패합니다.",
	}

	out := service.NewCellNormalizer().NormalizeRow(in)

	assert.Equal(t, in, out)
}

func TestNormalizeRow_Idempotent(t *testing.T) {
	in := service.Row{
		service.ColSeverity:    "마지막으로 등록된 관제점만 탐지가 가능합니다.",
		service.ColFrequency:   "중대",
		service.ColQuality:     "Always",
		service.ColDescription: "기능성",
	}

	n := service.NewCellNormalizer()
	once := n.NormalizeRow(in)
	twice := n.NormalizeRow(once)

	assert.Equal(t, once, twice)
}

func TestNormalizeRow_StripsWrappingQuotes(t *testing.T) {
	in := service.Row{
		service.ColSeverity:    `"H"`,
		service.ColDescription: "\"입력 값이 저장되지 않고\n빈 화면이 표시됩니다.\"",
		service.ColNote:        "「『메모』」",
	}

	out := service.NewCellNormalizer().NormalizeRow(in)

	assert.Equal(t, "H", out[service.ColSeverity])
	// 따옴표만 벗겨지고 내부 텍스트(줄바꿈 포함)는 그대로 보존된다
	assert.Equal(t, "입력 값이 저장되지 않고\n빈 화면이 표시됩니다.", out[service.ColDescription])
	assert.Equal(t, "메모", out[service.ColNote])
}

func TestNormalizeRow_NoRecognizableValues(t *testing.T) {
	// 어떤 패스에도 걸리지 않으면 원문(공백 제거본)이 그대로 남는다
	in := service.Row{
		service.ColSeverity:    "확인 필요",
		service.ColFrequency:   "미정",
		service.ColQuality:     "해당없음",
		service.ColDescription: "점검",
	}

	out := service.NewCellNormalizer().NormalizeRow(in)

	assert.Equal(t, "확인 필요", out[service.ColSeverity])
	assert.Equal(t, "미정", out[service.ColFrequency])
	assert.Equal(t, "해당없음", out[service.ColQuality])
	assert.Equal(t, "점검", out[service.ColDescription])
}

func TestNormalizeRow_ConsumedSourceInvisibleToLaterPasses(t *testing.T) {
	// "항상 치명적" 은 결함정도(치명)와 발생빈도(항상) 키워드를 모두 포함하지만
	// 결함정도 패스가 먼저 소비하므로 발생빈도 패스에는 보이지 않는다
	in := service.Row{
		service.ColSeverity:    "항상 치명적으로 발생",
		service.ColFrequency:   "",
		service.ColQuality:     "",
		service.ColDescription: "",
	}

	out := service.NewCellNormalizer().NormalizeRow(in)

	assert.Equal(t, "H", out[service.ColSeverity])
	assert.Equal(t, "", out[service.ColFrequency])
	assert.Equal(t, "", out[service.ColQuality])
}

func TestNormalizeRow_PreservesKeySet(t *testing.T) {
	n := service.NewCellNormalizer()

	// 결함 설명 키가 없는 입력: 키를 새로 만들지 않는다
	in := service.Row{
		service.ColSeverity:  "높음",
		service.ColFrequency: "간헐적으로 발생",
	}
	out := n.NormalizeRow(in)

	require.Len(t, out, len(in))
	for k := range in {
		assert.Contains(t, out, k)
	}
	assert.Equal(t, "H", out[service.ColSeverity])
	assert.Equal(t, "R", out[service.ColFrequency])
}

func TestNormalizeRow_DoesNotMutateInput(t *testing.T) {
	in := service.Row{
		service.ColSeverity:    "중대",
		service.ColFrequency:   "항상",
		service.ColQuality:     "보안",
		service.ColDescription: "비밀번호가 평문으로 로그에 남습니다.",
	}
	snapshot := service.Row{}
	for k, v := range in {
		snapshot[k] = v
	}

	service.NewCellNormalizer().NormalizeRow(in)

	assert.Equal(t, snapshot, in)
}

func TestNormalizeRow_SeverityKeywords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"exact_lowercase", "h", "H"},
		{"english_critical", "Critical", "H"},
		{"korean_high", "높음", "H"},
		{"korean_fatal_phrase", "치명적인 오류", "H"},
		{"korean_medium", "보통", "M"},
		{"english_medium", "medium", "M"},
		{"english_low", "Low", "L"},
		{"korean_minor_phrase", "사소한 문제", "L"},
	}

	n := service.NewCellNormalizer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := n.NormalizeRow(service.Row{service.ColSeverity: tt.text})
			assert.Equal(t, tt.want, out[service.ColSeverity])
		})
	}
}

func TestNormalizeRow_FrequencyKeywords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"exact_lowercase", "a", "A"},
		{"korean_always", "항상", "A"},
		{"korean_every_time", "매번 발생", "A"},
		{"english_intermittent", "Intermittent", "R"},
		{"korean_conditional", "조건부 재현", "R"},
		{"korean_rarely", "드물게 발생", "R"},
	}

	n := service.NewCellNormalizer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := n.NormalizeRow(service.Row{
				service.ColSeverity:  "",
				service.ColFrequency: tt.text,
			})
			assert.Equal(t, tt.want, out[service.ColFrequency])
		})
	}
}

func TestNormalizeRow_QualitySynonyms(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"canonical", "기능성", "기능성"},
		{"with_whitespace", "기능 적합성", "기능성"},
		{"english_performance", "Performance", "성능효율성"},
		{"usability_synonym", "사용편의성", "사용성"},
		{"security_short", "보안", "보안성"},
		{"general_requirements", "일반 요구사항", "일반적 요구사항"},
	}

	n := service.NewCellNormalizer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := n.NormalizeRow(service.Row{service.ColQuality: tt.text})
			assert.Equal(t, tt.want, out[service.ColQuality])
		})
	}
}

func TestNormalizeRow_EmptyAndWhitespaceCells(t *testing.T) {
	in := service.Row{
		service.ColSeverity:  "   ",
		service.ColFrequency: "",
		service.ColNote:      "  여백 포함  ",
	}

	out := service.NewCellNormalizer().NormalizeRow(in)

	assert.Equal(t, "", out[service.ColSeverity])
	assert.Equal(t, "", out[service.ColFrequency])
	assert.Equal(t, "여백 포함", out[service.ColNote])
}

func TestNormalizeRows_IndependentPerRow(t *testing.T) {
	rows := []service.Row{
		{service.ColSeverity: "중대"},
		{service.ColSeverity: "경미"},
	}

	out := service.NewCellNormalizer().NormalizeRows(rows)

	require.Len(t, out, 2)
	assert.Equal(t, "H", out[0][service.ColSeverity])
	assert.Equal(t, "L", out[1][service.ColSeverity])
}
