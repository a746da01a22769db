// SPDX-License-Identifier: MIT

// Package parallel runs index loops under an execution policy.
//
// ForAll(policy, n, body) calls body(i) for every i in [0, n). Serial runs
// the loop inline. Host and Device split [0, n) into contiguous chunks and
// run them on a bounded set of goroutines; Device additionally tells
// containers that their buffers must be resident in buffer.Device before the
// loop starts. Bodies must not reallocate the containers they touch.
package parallel

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/katalvlaran/lvarray/buffer"
)

// Policy selects how a loop is executed.
type Policy int

const (
	// Serial runs the loop on the calling goroutine.
	Serial Policy = iota
	// Host fans out over Workers() goroutines.
	Host
	// Device fans out like Host with device residency.
	Device
)

var (
	workers       atomic.Int64
	defaultPolicy atomic.Int64
)

// String returns the lower-case policy name.
func (p Policy) String() string {
	switch p {
	case Serial:
		return "serial"
	case Host:
		return "host"
	case Device:
		return "device"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// Space returns the memory space loop bodies run against.
func (p Policy) Space() buffer.MemorySpace {
	if p == Device {
		return buffer.Device
	}
	return buffer.Host
}

// ParsePolicy resolves "serial", "host" or "device".
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "serial":
		return Serial, nil
	case "host", "":
		return Host, nil
	case "device":
		return Device, nil
	default:
		return Serial, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

// SetWorkers bounds the goroutines used by one loop. n <= 0 restores the
// default of GOMAXPROCS.
func SetWorkers(n int) { workers.Store(int64(n)) }

// Workers returns the goroutine bound for one loop.
func Workers() int {
	if n := int(workers.Load()); n > 0 {
		return n
	}
	return runtime.GOMAXPROCS(0)
}

// SetDefaultPolicy sets the policy returned by DefaultPolicy.
func SetDefaultPolicy(p Policy) { defaultPolicy.Store(int64(p)) }

// DefaultPolicy returns the process-wide policy chosen by configuration.
func DefaultPolicy() Policy { return Policy(defaultPolicy.Load()) }

// ForAll calls body(i) for every i in [0, n) under policy p.
// A panic in any body is re-raised on the calling goroutine after every
// worker has stopped.
func ForAll(p Policy, n int, body func(i int)) {
	if n <= 0 {
		return
	}
	w := Workers()
	if p == Serial || w <= 1 || n == 1 {
		for i := 0; i < n; i++ {
			body(i)
		}
		return
	}
	if w > n {
		w = n
	}

	var (
		wg       sync.WaitGroup
		panicked atomic.Bool
		first    atomic.Value
	)
	chunk := (n + w - 1) / w
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil && panicked.CompareAndSwap(false, true) {
					first.Store(panicValue{r})
				}
			}()
			for i := lo; i < hi; i++ {
				if panicked.Load() {
					return
				}
				body(i)
			}
		}(start, end)
	}
	wg.Wait()

	if v := first.Load(); v != nil {
		panic(v.(panicValue).v)
	}
}

// panicValue boxes recovered values so atomic.Value always sees one type.
type panicValue struct{ v any }

// ExclusiveScan writes the exclusive prefix sums of in to out and returns
// the total. len(out) must be at least len(in). Under Host or Device the
// chunk sums are computed in parallel, then each chunk is offset and scanned
// in parallel.
func ExclusiveScan(p Policy, in, out []int) int {
	n := len(in)
	if len(out) < n {
		panic(fmt.Sprintf("lvarray: exclusive scan of %d values into %d slots", n, len(out)))
	}
	w := Workers()
	if p == Serial || w <= 1 || n < 2*w {
		total := 0
		for i, v := range in {
			out[i] = total
			total += v
		}
		return total
	}

	chunk := (n + w - 1) / w
	nChunks := (n + chunk - 1) / chunk
	sums := make([]int, nChunks)
	ForAll(p, nChunks, func(c int) {
		s := 0
		for _, v := range in[c*chunk : min((c+1)*chunk, n)] {
			s += v
		}
		sums[c] = s
	})
	total := 0
	for c, s := range sums {
		sums[c] = total
		total += s
	}
	ForAll(p, nChunks, func(c int) {
		run := sums[c]
		for i := c * chunk; i < min((c+1)*chunk, n); i++ {
			out[i] = run
			run += in[i]
		}
	})
	return total
}
