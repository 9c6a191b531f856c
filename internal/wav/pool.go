package wav

import "sync"

// scratchCap covers about a second of audio, longer than any catalog asset.
const scratchCap = 48000

// intPool holds the int scratch slices go-audio's IntBuffer needs, so
// rendering a whole catalog in parallel does not allocate one per asset.
var intPool = sync.Pool{
	New: func() interface{} {
		buf := make([]int, 0, scratchCap)
		return &buf
	},
}

// acquireInts returns a pooled slice of length n.
func acquireInts(n int) *[]int {
	bufPtr := intPool.Get().(*[]int)
	if cap(*bufPtr) < n {
		*bufPtr = make([]int, n)
	}
	*bufPtr = (*bufPtr)[:n]
	return bufPtr
}

// releaseInts returns a slice to the pool.
func releaseInts(bufPtr *[]int) {
	intPool.Put(bufPtr)
}
