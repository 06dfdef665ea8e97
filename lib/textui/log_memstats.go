// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package textui

import (
	"fmt"
	"runtime"
	"sync"
	"time"
)

// LiveMemUse is a fmt.Stringer that describes the memory use of the
// running program, suitable for appending to progress lines.
type LiveMemUse struct {
	mu    sync.Mutex
	stats runtime.MemStats
	last  time.Time
}

var _ fmt.Stringer = (*LiveMemUse)(nil)

var LiveMemUseUpdateInterval = Tunable(1 * time.Second)

func (o *LiveMemUse) String() string {
	o.mu.Lock()
	defer o.mu.Unlock()

	// runtime.ReadMemStats() stops the world; rate-limit it.
	if now := time.Now(); now.Sub(o.last) > LiveMemUseUpdateInterval {
		runtime.ReadMemStats(&o.stats)
		o.last = now
	}

	// Sys is everything the runtime has mapped (Ready+Prepared);
	// HeapReleased is the part of that it has handed back to the
	// OS (Prepared).
	prepared := o.stats.HeapReleased
	ready := o.stats.Sys - prepared
	live := o.stats.HeapAlloc
	fragOverhead := o.stats.HeapInuse - o.stats.HeapAlloc

	return Sprintf("mem: ready=%.1f (live:%.1f + fragOverhead:%.1f) prepared=%.1f gc=%d",
		IEC(ready, "B"),
		IEC(live, "B"),
		IEC(fragOverhead, "B"),
		IEC(prepared, "B"),
		o.stats.NumGC)
}
