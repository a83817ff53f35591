package service

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cast"
)

// RowBuilder CSV/JSON 표 데이터를 Row 목록으로 변환한다
// 생성 단계가 만드는 표는 형식이 느슨하므로 셀 누락과 타입 불일치를 허용한다
type RowBuilder struct{}

func NewRowBuilder() *RowBuilder {
	return &RowBuilder{}
}

// FromCSV 헤더 행이 컬럼 이름을 정의하는 CSV 를 읽는다
// 따옴표로 감싼 여러 줄 셀을 허용하고, 짧은 행의 빈 셀은 "" 로 채우며,
// 전부 비어 있는 행은 건너뛴다
func (b *RowBuilder) FromCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("CSV 파싱 실패: %v", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV 에 헤더 행이 없음")
	}

	header := records[0]
	var rows []Row
	for _, record := range records[1:] {
		empty := true
		for _, cell := range record {
			if cell != "" {
				empty = false
				break
			}
		}
		if empty {
			continue
		}

		row := make(Row, len(header))
		for i, name := range header {
			if i < len(record) {
				row[name] = record[i]
			} else {
				row[name] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// FromJSONTable JSON 표 페이로드를 읽는다
// {"rows": [...]} 형식과 최상위 배열 형식 모두 허용한다
func (b *RowBuilder) FromJSONTable(data []byte) ([]Row, error) {
	var payload interface{}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("JSON 파싱 실패: %v", err)
	}

	switch v := payload.(type) {
	case map[string]interface{}:
		return b.FromTableData(v)
	case []interface{}:
		return b.fromItems(v), nil
	default:
		return nil, fmt.Errorf("표 형식이 아닌 JSON 페이로드")
	}
}

// FromTableData 이미 파싱된 JSON 객체에서 rows 필드를 꺼낸다
func (b *RowBuilder) FromTableData(data map[string]interface{}) ([]Row, error) {
	rowsIface, ok := data["rows"]
	if !ok {
		return nil, fmt.Errorf("rows 필드 없음")
	}
	items, ok := rowsIface.([]interface{})
	if !ok {
		return nil, fmt.Errorf("rows 필드가 배열이 아님")
	}
	return b.fromItems(items), nil
}

// fromItems 객체가 아닌 항목은 건너뛰고, 셀 값은 문자열로 느슨하게 변환한다
func (b *RowBuilder) fromItems(items []interface{}) []Row {
	var rows []Row
	for _, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		row := make(Row, len(obj))
		for name, value := range obj {
			row[name] = cast.ToString(value)
		}
		rows = append(rows, row)
	}
	return rows
}
