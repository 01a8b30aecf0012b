// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

//go:build !linux

package crypto

import (
	"runtime"
	"time"
)

// fallbackStartTime stands in for /proc/self/stat's start time on
// platforms without a /proc filesystem. It still changes across process
// restarts, which is the property the wrapper key relies on; it merely
// loses exact correlation with the OS-reported process start time.
var fallbackStartTime = time.Now()

func processStartTime() (time.Time, error) {
	return fallbackStartTime, nil
}

func kernelVersion() string {
	return runtime.GOOS + "/" + runtime.GOARCH
}

func memoryAndCores() (totalMemory uint64, cores int) {
	return 0, runtime.NumCPU()
}
