package cmd

import (
	"errors"
	"os"

	"defect-report-log/config"
	"defect-report-log/pkg/db"
	"defect-report-log/pkg/service"
	"defect-report-log/pkg/signals"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func NewExportCommand() *cobra.Command {
	var configFilePath string
	var taskID string
	var outputPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "정규화된 결함 리포트를 CSV 로 내보내기",
		Long:  "DuckDB 의 normalized_defect 테이블에서 정규화된 행을 읽어 정규 컬럼 순서의 CSV 리포트를 만듭니다",
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

			if err := db.InitDuckDB(cfg.DuckDBConfig); err != nil {
				zap.S().Errorf("DuckDB 연결 오류:%s", err.Error())
				return
			}

			out, err := os.Create(outputPath)
			if err != nil {
				zap.S().Errorf("출력 파일 생성 오류:%s", err.Error())
				return
			}
			defer out.Close()

			exportService := service.NewExportService()
			written, err := exportService.ExportCSV(ctx, out, taskID)
			if err != nil {
				zap.S().Errorf("내보내기 실패:%s", err.Error())
				return
			}

			zap.S().Infof("CSV 내보내기 완료: %d 행 -> %s", written, outputPath)
		},
	}

	cmd.Flags().StringVarP(&configFilePath, "config", "c", "./etc/config.yaml", "설정 파일 경로")
	cmd.Flags().StringVarP(&taskID, "task", "t", "", "대상 생성 작업 ID (비우면 전체)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "./defect_report.csv", "출력 CSV 파일 경로")
	return cmd
}
