package cmd

import (
	"errors"

	"defect-report-log/config"
	"defect-report-log/pkg/db"
	"defect-report-log/pkg/service"
	"defect-report-log/pkg/signals"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func NewNormalizeCommand() *cobra.Command {
	var configFilePath string
	var batchSize int
	var taskID string
	var inputPath string

	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "결함 리포트 셀을 정규화해서 DuckDB 에 저장",
		Long:  "MySQL 의 tbl_defect_report 테이블에서 생성 결과를 읽어 행 단위로 셀을 정규화한 뒤 DuckDB 에 저장합니다. --input 으로 로컬 CSV 파일을 지정하면 MySQL 없이 동작합니다",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.TryLoadFromDisk(configFilePath)
			if err != nil {
				zap.S().Errorf("로컬 설정 파일 읽기 오류:%s", err.Error())
				return
			}
			if errs := cfg.Validate(); len(errs) > 0 {
				zap.S().Errorf("로컬 설정 파일 검증 오류:%s", errors.Join(errs...))
				return
			}

			if cfg.DuckDBConfig == nil {
				zap.S().Error("DuckDB 설정이 없음")
				return
			}

			ctx := signals.SetupSignalHandler()

			// DuckDB 초기화
			if err := db.InitDuckDB(cfg.DuckDBConfig); err != nil {
				zap.S().Errorf("DuckDB 연결 오류:%s", err.Error())
				return
			}

			normalizeService := service.NewNormalizeService()

			if inputPath != "" {
				// 로컬 CSV 모드
				if err := normalizeService.NormalizeCSVFile(ctx, inputPath, taskID); err != nil {
					zap.S().Errorf("정규화 실패:%s", err.Error())
					return
				}
			} else {
				if cfg.MySQLConfig == nil {
					zap.S().Error("MySQL 설정이 없음")
					return
				}

				// MySQL 초기화
				if err := db.InitMySQL(cfg.MySQLConfig); err != nil {
					zap.S().Errorf("MySQL 데이터베이스 연결 오류:%s", err.Error())
					return
				}

				if err := normalizeService.NormalizeToDuckDB(ctx, taskID, batchSize); err != nil {
					zap.S().Errorf("정규화 실패:%s", err.Error())
					return
				}
			}

			// 통계 출력
			count, err := normalizeService.GetNormalizedCount(ctx)
			if err != nil {
				zap.S().Warnf("통계 조회 실패:%s", err.Error())
			} else {
				zap.S().Infof("DuckDB 에 저장된 정규화 행 수: %d", count)
			}
		},
	}

	cmd.Flags().StringVarP(&configFilePath, "config", "c", "./etc/config.yaml", "설정 파일 경로")
	cmd.Flags().IntVarP(&batchSize, "batch-size", "b", 100, "배치 처리 크기")
	cmd.Flags().StringVarP(&taskID, "task", "t", "", "대상 생성 작업 ID (비우면 전체)")
	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "로컬 CSV 입력 파일 경로 (지정 시 MySQL 을 쓰지 않음)")
	return cmd
}
