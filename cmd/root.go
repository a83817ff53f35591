package cmd

import (
	"defect-report-log/pkg/util"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "defect-report-log",
		Short: "결함 리포트 셀 정규화 도구",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd:   true,
			DisableNoDescFlag:   true,
			DisableDescriptions: true,
			HiddenDefaultCmd:    true,
		},
	}

	// 하위 명령 등록
	rootCmd.AddCommand(NewNormalizeCommand())
	rootCmd.AddCommand(NewExportCommand())

	rootCmd.Run = func(cmd *cobra.Command, args []string) {
		zap.S().Info("'normalize' 하위 명령으로 결함 리포트를 정규화하세요")
		cmd.Help()
	}
	rootCmd.Version = util.GetVersion().Version
	return rootCmd
}
