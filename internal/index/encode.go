package index

import (
	"encoding/binary"
	"time"
)

// positionKey keeps bOrder iteration in display order.
func positionKey(i int) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, uint64(i))
	return k
}

// buildKey sorts builds oldest first; the id suffix keeps keys unique
// when two builds finish in the same nanosecond.
func buildKey(t time.Time, id string) []byte {
	buf := make([]byte, 8, 8+1+len(id))
	binary.BigEndian.PutUint64(buf, uint64(t.UnixNano()))
	buf = append(buf, 0x00)
	buf = append(buf, id...)
	return buf
}
