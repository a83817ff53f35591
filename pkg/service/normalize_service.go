package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"defect-report-log/pkg/db"
	"defect-report-log/pkg/model"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type NormalizeService struct {
	normalizer *CellNormalizer
	builder    *RowBuilder
}

func NewNormalizeService() *NormalizeService {
	return &NormalizeService{
		normalizer: NewCellNormalizer(),
		builder:    NewRowBuilder(),
	}
}

// NormalizeToDuckDB MySQL 의 tbl_defect_report 에서 생성 결과를 읽어
// 행 단위로 정규화한 뒤 DuckDB 의 normalized_defect 테이블에 저장한다
// taskID 가 비어 있으면 전체 작업을 대상으로 한다
func (s *NormalizeService) NormalizeToDuckDB(ctx context.Context, taskID string, batchSize int) error {
	if err := s.createDuckDBTable(ctx); err != nil {
		return fmt.Errorf("DuckDB 테이블 생성 실패: %v", err)
	}

	mysql := db.GetMySQL()
	if mysql == nil {
		return fmt.Errorf("MySQL 연결이 초기화되지 않음")
	}

	startTime := time.Now()
	offset := 0
	processed := 0
	failed := 0

	for {
		query := mysql.WithContext(ctx).
			Order("id").
			Limit(batchSize).
			Offset(offset)
		if taskID != "" {
			query = query.Where("taskId = ?", taskID)
		}

		var reports []model.DefectReport
		if err := query.Find(&reports).Error; err != nil {
			return fmt.Errorf("리포트 조회 실패: %v", err)
		}
		if len(reports) == 0 {
			break
		}

		for _, report := range reports {
			n, err := s.processAndInsert(ctx, &report)
			if err != nil {
				zap.S().Warnf("리포트 ID %d 처리 실패: %v", report.ID, err)
				failed++
				continue
			}
			processed += n
		}

		offset += batchSize
	}

	zap.S().Infof("정규화 완료: 행 %d 건 저장, 리포트 %d 건 실패", processed, failed)
	zap.S().Infof("소요 시간: %s", time.Since(startTime))
	return nil
}

// NormalizeCSVFile 로컬 CSV 파일을 읽어 정규화한 뒤 DuckDB 에 저장한다
// MySQL 없이 오프라인으로 돌릴 때 사용한다
func (s *NormalizeService) NormalizeCSVFile(ctx context.Context, path string, taskID string) error {
	if err := s.createDuckDBTable(ctx); err != nil {
		return fmt.Errorf("DuckDB 테이블 생성 실패: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("입력 파일 열기 실패: %v", err)
	}
	defer f.Close()

	rows, err := s.builder.FromCSV(f)
	if err != nil {
		return err
	}

	startTime := time.Now()
	processed := 0
	for _, row := range rows {
		rec := s.rowToRecord(taskID, s.normalizer.NormalizeRow(row))
		if err := s.insertRecord(ctx, rec); err != nil {
			return err
		}
		processed++
	}

	zap.S().Infof("정규화 완료: 행 %d 건 저장", processed)
	zap.S().Infof("소요 시간: %s", time.Since(startTime))
	return nil
}

// processAndInsert 리포트 한 건의 표를 행 단위로 정규화해서 저장한다
// 페이로드를 해석할 수 없어도 버리지 않고 ErrorReason 만 채운 레코드를 남긴다
func (s *NormalizeService) processAndInsert(ctx context.Context, report *model.DefectReport) (int, error) {
	tableData := report.Content.Parsed()
	if tableData == nil {
		raw := report.Content.RawJSON()
		if raw == "" {
			return 0, s.insertFailure(ctx, report.TaskID, "내용이 비어 있음")
		}
		if err := json.Unmarshal([]byte(raw), &tableData); err != nil {
			return 0, s.insertFailure(ctx, report.TaskID, fmt.Sprintf("JSON 파싱 실패: %v", err))
		}
	}

	rows, err := s.builder.FromTableData(tableData)
	if err != nil {
		return 0, s.insertFailure(ctx, report.TaskID, err.Error())
	}
	if len(rows) == 0 {
		zap.S().Debugf("리포트 ID %d: 표에 행이 없음, 건너뜀", report.ID)
		return 0, nil
	}

	inserted := 0
	for _, row := range rows {
		rec := s.rowToRecord(report.TaskID, s.normalizer.NormalizeRow(row))
		if err := s.insertRecord(ctx, rec); err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}

func (s *NormalizeService) rowToRecord(taskID string, row Row) *model.NormalizedDefect {
	return &model.NormalizedDefect{
		ID:          uuid.NewString(),
		TaskID:      taskID,
		Seq:         row[ColSeq],
		Environment: row[ColEnvironment],
		Summary:     row[ColSummary],
		Severity:    row[ColSeverity],
		Frequency:   row[ColFrequency],
		Quality:     row[ColQuality],
		Description: row[ColDescription],
		VendorReply: row[ColVendor],
		Fixed:       row[ColFixed],
		Note:        row[ColNote],
	}
}

func (s *NormalizeService) insertFailure(ctx context.Context, taskID, reason string) error {
	return s.insertRecord(ctx, &model.NormalizedDefect{
		ID:          uuid.NewString(),
		TaskID:      taskID,
		ErrorReason: reason,
	})
}

// createDuckDBTable DuckDB 테이블 생성
func (s *NormalizeService) createDuckDBTable(ctx context.Context) error {
	duckDB := db.GetDuckDBWithContext(ctx)
	if duckDB == nil {
		return fmt.Errorf("DuckDB 연결이 초기화되지 않음")
	}

	// 테이블 구조 변경에 대비해 기존 테이블을 지우고 다시 만든다
	_, err := duckDB.ExecContext(ctx, "DROP TABLE IF EXISTS normalized_defect")
	if err != nil {
		return fmt.Errorf("기존 테이블 삭제 실패: %v", err)
	}

	createTableSQL := `
		CREATE TABLE normalized_defect (
			id TEXT PRIMARY KEY,
			task_id TEXT,
			seq TEXT,
			environment TEXT,
			summary TEXT,
			severity TEXT,
			frequency TEXT,
			quality TEXT,
			description TEXT,
			vendor_reply TEXT,
			fixed TEXT,
			note TEXT,
			error_reason TEXT
		)
	`

	_, err = duckDB.ExecContext(ctx, createTableSQL)
	if err != nil {
		return fmt.Errorf("테이블 생성 실패: %v", err)
	}

	zap.S().Debug("DuckDB 테이블 생성 완료")
	return nil
}

func (s *NormalizeService) insertRecord(ctx context.Context, rec *model.NormalizedDefect) error {
	duckDB := db.GetDuckDBWithContext(ctx)
	if duckDB == nil {
		return fmt.Errorf("DuckDB 연결이 초기화되지 않음")
	}

	insertSQL := `
		INSERT INTO normalized_defect (
			id, task_id, seq, environment, summary, severity, frequency,
			quality, description, vendor_reply, fixed, note, error_reason
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := duckDB.ExecContext(ctx, insertSQL,
		rec.ID,
		rec.TaskID,
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
		rec.ErrorReason,
	)
	if err != nil {
		return fmt.Errorf("행 저장 실패: %v", err)
	}
	return nil
}

// GetNormalizedCount 저장된 정규화 행 수를 조회한다
func (s *NormalizeService) GetNormalizedCount(ctx context.Context) (int64, error) {
	duckDB := db.GetDuckDBWithContext(ctx)
	if duckDB == nil {
		return 0, fmt.Errorf("DuckDB 연결이 초기화되지 않음")
	}

	var count int64
	err := duckDB.QueryRowContext(ctx, "SELECT COUNT(*) FROM normalized_defect").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("건수 조회 실패: %v", err)
	}

	return count, nil
}
