// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

//go:build linux

package crypto

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sys/unix"
)

// clockTicksPerSecond is USER_HZ, which is 100 on virtually every Linux
// build in practice (the kernel config that changes it is vanishingly
// rare on x86/arm64 distributions this vault targets).
const clockTicksPerSecond = 100

// processStartTime reads this process's start time (field 22 of
// /proc/self/stat, in clock ticks since boot) and converts it to a wall
// time using the system boot time derived from sysinfo's uptime.
func processStartTime() (time.Time, error) {
	data, err := os.ReadFile("/proc/self/stat")
	if err != nil {
		return time.Time{}, err
	}

	// comm (field 2) is parenthesized and may itself contain spaces or
	// parens; skip past its final closing paren before splitting on spaces.
	closeParen := strings.LastIndexByte(string(data), ')')
	if closeParen < 0 {
		return time.Time{}, fmt.Errorf("crypto: unexpected /proc/self/stat format")
	}
	fields := strings.Fields(string(data[closeParen+1:]))

	// fields[0] is stat field 3 (state); field 22 (starttime) is fields[19].
	const startTimeIndex = 22 - 3
	if len(fields) <= startTimeIndex {
		return time.Time{}, fmt.Errorf("crypto: unexpected /proc/self/stat field count")
	}
	ticks, err := strconv.ParseInt(fields[startTimeIndex], 10, 64)
	if err != nil {
		return time.Time{}, err
	}

	var si unix.Sysinfo_t
	if err := unix.Sysinfo(&si); err != nil {
		return time.Time{}, err
	}
	bootTime := time.Now().Add(-time.Duration(si.Uptime) * time.Second)
	return bootTime.Add(time.Duration(ticks) * time.Second / clockTicksPerSecond), nil
}

// kernelVersion returns the kernel release string reported by uname(2).
func kernelVersion() string {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return ""
	}
	return nullTerminatedString(uts.Release[:])
}

// memoryAndCores returns total RAM in bytes and the logical core count.
func memoryAndCores() (totalMemory uint64, cores int) {
	var si unix.Sysinfo_t
	if err := unix.Sysinfo(&si); err == nil {
		totalMemory = uint64(si.Totalram) * uint64(si.Unit)
	}
	return totalMemory, runtime.NumCPU()
}

func nullTerminatedString(b []byte) string {
	n := 0
	for n < len(b) && b[n] != 0 {
		n++
	}
	return string(b[:n])
}
