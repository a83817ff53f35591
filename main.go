package main

import (
	"os"

	"defect-report-log/cmd"

	"go.uber.org/zap"
)

func main() {
	logger := zap.Must(zap.NewDevelopment())
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if err := cmd.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
