package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// DefectReport 생성 단계가 저장한 결함 리포트 원본 (tbl_defect_report)
type DefectReport struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	TaskID    string         `gorm:"column:taskId" json:"task_id"` // 생성 작업 ID
	Content   JSONTable      `gorm:"type:text" json:"content"`     // JSON 표 페이로드
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// TableName 테이블 이름 지정
func (DefectReport) TableName() string {
	return "tbl_defect_report"
}

// JSONTable JSON 표 페이로드를 저장/파싱하는 커스텀 타입
// 원본 문자열과 파싱 결과를 함께 보관한다
type JSONTable struct {
	Data map[string]interface{} `json:"-"`
	Raw  string                 `json:"-"`
}

// Value driver.Valuer 구현 (DB 저장용)
func (t JSONTable) Value() (driver.Value, error) {
	if t.Raw != "" {
		return t.Raw, nil
	}
	if t.Data != nil {
		bytes, err := json.Marshal(t.Data)
		if err != nil {
			return nil, err
		}
		return string(bytes), nil
	}
	return nil, nil
}

// Scan sql.Scanner 구현 (DB 조회용)
func (t *JSONTable) Scan(value interface{}) error {
	if value == nil {
		t.Data = nil
		t.Raw = ""
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	t.Raw = string(bytes)

	// 파싱에 실패하면 원본 문자열만 남긴다
	var data map[string]interface{}
	if err := json.Unmarshal(bytes, &data); err != nil {
		t.Data = nil
		return nil
	}
	t.Data = data
	return nil
}

// UnmarshalJSON json.Unmarshaler 구현
func (t *JSONTable) UnmarshalJSON(data []byte) error {
	t.Raw = string(data)
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	t.Data = m
	return nil
}

// MarshalJSON json.Marshaler 구현
func (t JSONTable) MarshalJSON() ([]byte, error) {
	if t.Data != nil {
		return json.Marshal(t.Data)
	}
	if t.Raw != "" {
		return []byte(t.Raw), nil
	}
	return []byte("{}"), nil
}

// Parsed 파싱된 표 데이터를 반환한다
func (t *JSONTable) Parsed() map[string]interface{} {
	return t.Data
}

// RawJSON 원본 JSON 문자열을 반환한다
func (t *JSONTable) RawJSON() string {
	return t.Raw
}
