package model

// NormalizedDefect 셀 정규화를 거친 결함 행, DuckDB 에 저장된다
// 페이로드 파싱에 실패한 리포트도 버리지 않고 ErrorReason 에 사유를 남긴다
type NormalizedDefect struct {
	ID          string `json:"id"` // UUID
	TaskID      string `json:"task_id"`
	Seq         string `json:"seq"`          // 순번
	Environment string `json:"environment"`  // 시험환경(OS)
	Summary     string `json:"summary"`      // 결함요약
	Severity    string `json:"severity"`     // 결함정도 (H/M/L)
	Frequency   string `json:"frequency"`    // 발생빈도 (A/R)
	Quality     string `json:"quality"`      // 품질특성
	Description string `json:"description"`  // 결함 설명
	VendorReply string `json:"vendor_reply"` // 업체 응답
	Fixed       string `json:"fixed"`        // 수정여부
	Note        string `json:"note"`         // 비고
	ErrorReason string `json:"error_reason"`
}

// TableName 테이블 이름 지정
func (NormalizedDefect) TableName() string {
	return "normalized_defect"
}
