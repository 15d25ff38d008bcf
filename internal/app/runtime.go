package app

import (
	"os"
	"sync"
	"sync/atomic"
)

const testModeEnv = "KAIZEN_TEST_MODE"

var (
	testModeFlag atomic.Bool
	testModeOnce sync.Once
)

func detectTestMode() {
	testModeFlag.Store(os.Getenv(testModeEnv) == "1")
}

// InTestMode reports whether binaries should skip network and listener startup.
func InTestMode() bool {
	testModeOnce.Do(detectTestMode)
	return testModeFlag.Load()
}

// RefreshTestMode re-reads the flag after the environment changed.
func RefreshTestMode() {
	detectTestMode()
}

func envOrEmpty(key string) string {
	return os.Getenv(key)
}
