package service_test

import (
	"strings"
	"testing"

	"defect-report-log/pkg/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromCSV(t *testing.T) {
	input := strings.Join([]string{
		"순번,결함요약,결함정도,발생빈도",
		"1,로그인 실패,H,A",
		"2,화면 깨짐",
		",,,",
		`3,"줄바꿈이` + "\n" + `포함된 요약",M,R`,
	}, "\n")

	rows, err := service.NewRowBuilder().FromCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "1", rows[0][service.ColSeq])
	assert.Equal(t, "로그인 실패", rows[0][service.ColSummary])
	assert.Equal(t, "H", rows[0][service.ColSeverity])

	// 짧은 행의 누락 셀은 빈 문자열로 채워진다
	assert.Equal(t, "", rows[1][service.ColSeverity])
	assert.Equal(t, "", rows[1][service.ColFrequency])

	// 따옴표로 감싼 여러 줄 셀
	assert.Equal(t, "줄바꿈이\n포함된 요약", rows[2][service.ColSummary])
}

func TestFromCSV_NoHeader(t *testing.T) {
	_, err := service.NewRowBuilder().FromCSV(strings.NewReader(""))
	assert.Error(t, err)
}

func TestFromJSONTable_RowsObject(t *testing.T) {
	payload := `{"rows": [
		{"순번": 1, "결함요약": "저장 실패", "결함정도": "중대"},
		{"순번": 2, "결함요약": "응답 지연", "결함정도": "L"}
	]}`

	rows, err := service.NewRowBuilder().FromJSONTable([]byte(payload))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// 숫자 셀은 문자열로 느슨하게 변환된다
	assert.Equal(t, "1", rows[0][service.ColSeq])
	assert.Equal(t, "저장 실패", rows[0][service.ColSummary])
	assert.Equal(t, "중대", rows[0][service.ColSeverity])
	assert.Equal(t, "2", rows[1][service.ColSeq])
}

func TestFromJSONTable_BareArray(t *testing.T) {
	payload := `[{"순번": "1", "결함요약": "표시 오류"}, "표가 아닌 항목"]`

	rows, err := service.NewRowBuilder().FromJSONTable([]byte(payload))
	require.NoError(t, err)

	// 객체가 아닌 항목은 건너뛴다
	require.Len(t, rows, 1)
	assert.Equal(t, "표시 오류", rows[0][service.ColSummary])
}

func TestFromJSONTable_Invalid(t *testing.T) {
	builder := service.NewRowBuilder()

	_, err := builder.FromJSONTable([]byte(`{invalid`))
	assert.Error(t, err)

	_, err = builder.FromJSONTable([]byte(`{"data": []}`))
	assert.Error(t, err)

	_, err = builder.FromJSONTable([]byte(`"문자열"`))
	assert.Error(t, err)
}

func TestFromTableData_RowsNotArray(t *testing.T) {
	_, err := service.NewRowBuilder().FromTableData(map[string]interface{}{
		"rows": "배열이 아님",
	})
	assert.Error(t, err)
}
