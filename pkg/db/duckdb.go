package db

import (
	"context"
	"database/sql"
	"sync"

	"defect-report-log/config"

	_ "github.com/duckdb/duckdb-go/v2"
	"go.uber.org/zap"
)

var duckDB *sql.DB
var duckDBOnce sync.Once

// InitDuckDB duckdb 연결 초기화
func InitDuckDB(cfg *config.DuckDBConfig) error {
	var err error
	duckDBOnce.Do(func() {
		duckDB, err = sql.Open("duckdb", cfg.DBPath)
		if err != nil {
			zap.S().Errorf("duckdb 연결 실패: %v", err)
			return
		}

		// 연결 확인
		if err = duckDB.Ping(); err != nil {
			zap.S().Errorf("duckdb 연결 확인 실패: %v", err)
			return
		}

		zap.S().Debug("duckdb 초기화 완료...")
	})
	return err
}

// GetDuckDB DuckDB 연결 반환
func GetDuckDB() *sql.DB {
	return duckDB
}

// GetDuckDBWithContext 컨텍스트와 함께 쓰는 DuckDB 연결 반환
func GetDuckDBWithContext(ctx context.Context) *sql.DB {
	return duckDB
}
