package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"defect-report-log/pkg/db"
	"defect-report-log/pkg/model"
)

// ExportService DuckDB 의 정규화 결과를 CSV 리포트로 내보낸다
type ExportService struct{}

func NewExportService() *ExportService {
	return &ExportService{}
}

// ExportCSV 정규 컬럼 순서의 헤더를 붙여 CSV 로 쓴다
// taskID 가 비어 있으면 전체 작업을 내보낸다. 쓴 행 수를 반환한다
func (s *ExportService) ExportCSV(ctx context.Context, w io.Writer, taskID string) (int, error) {
	duckDB := db.GetDuckDBWithContext(ctx)
	if duckDB == nil {
		return 0, fmt.Errorf("DuckDB 연결이 초기화되지 않음")
	}

	query := `
		SELECT task_id, seq, environment, summary, severity, frequency,
			quality, description, vendor_reply, fixed, note
		FROM normalized_defect
		WHERE (error_reason = '' OR error_reason IS NULL)
	`
	args := []interface{}{}
	if taskID != "" {
		query += " AND task_id = ?"
		args = append(args, taskID)
	}
	query += " ORDER BY task_id, seq"

	rows, err := duckDB.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("정규화 행 조회 실패: %v", err)
	}
	defer rows.Close()

	writer := csv.NewWriter(w)
	if err := writer.Write(DefectColumns); err != nil {
		return 0, fmt.Errorf("헤더 쓰기 실패: %v", err)
	}

	written := 0
	for rows.Next() {
		var rec model.NormalizedDefect
		if err := rows.Scan(
			&rec.TaskID,
			&rec.Seq,
			&rec.Environment,
			&rec.Summary,
			&rec.Severity,
			&rec.Frequency,
			&rec.Quality,
			&rec.Description,
			&rec.VendorReply,
			&rec.Fixed,
			&rec.Note,
		); err != nil {
			return written, fmt.Errorf("행 스캔 실패: %v", err)
		}

		record := []string{
			rec.Seq,
			rec.Environment,
			rec.Summary,
			rec.Severity,
			rec.Frequency,
			rec.Quality,
			rec.Description,
			rec.VendorReply,
			rec.Fixed,
			rec.Note,
		}
		if err := writer.Write(record); err != nil {
			return written, fmt.Errorf("행 쓰기 실패: %v", err)
		}
		written++
	}
	if err := rows.Err(); err != nil {
		return written, fmt.Errorf("행 순회 실패: %v", err)
	}

	writer.Flush()
	return written, writer.Error()
}
