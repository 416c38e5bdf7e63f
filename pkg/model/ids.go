package model

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"sync/atomic"
	"time"
)

var idSequence atomic.Uint64

// MintID produces a collision-resistant identifier for a freshly constructed
// node. The millisecond timestamp keeps ids roughly sortable, the process-wide
// sequence disambiguates nodes minted within the same millisecond, and the
// random suffix guards against two sessions starting from the same clock.
// All addressing in the editing session is id-based, so a duplicate here would
// silently corrupt an unrelated node.
func MintID(prefix string) string {
	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		// Fall back to the nanosecond clock; the sequence still separates
		// same-process mints.
		nano := uint32(time.Now().UnixNano())
		suffix[0] = byte(nano >> 24)
		suffix[1] = byte(nano >> 16)
		suffix[2] = byte(nano >> 8)
		suffix[3] = byte(nano)
	}
	return prefix + "-" +
		strconv.FormatInt(time.Now().UnixMilli(), 36) + "-" +
		strconv.FormatUint(idSequence.Add(1), 36) + "-" +
		hex.EncodeToString(suffix)
}
