package signals

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

var onlyOneSignalHandler = make(chan struct{})

// SetupSignalHandler SIGINT/SIGTERM 을 받으면 취소되는 컨텍스트를 반환한다
// 두 번째 신호는 즉시 종료한다. 프로세스당 한 번만 호출할 수 있다
func SetupSignalHandler() context.Context {
	close(onlyOneSignalHandler) // 두 번 호출하면 패닉

	ctx, cancel := context.WithCancel(context.Background())
	c := make(chan os.Signal, 2)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-c
		cancel()
		<-c
		os.Exit(1)
	}()

	return ctx
}
