package events

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/TambayanDev/TambayanBot/pkg/logger"
)

// ReportMemory logs runtime memory usage every interval until ctx ends.
func ReportMemory(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return nil
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			logger.Info(memoryLine(), "Memory")
		}
	}
}

func memoryLine() string {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return fmt.Sprintf("heap %.2f MB, sys %.2f MB, %d goroutines, %d GC cycles",
		float64(m.HeapAlloc)/1024/1024,
		float64(m.Sys)/1024/1024,
		runtime.NumGoroutine(),
		m.NumGC)
}
