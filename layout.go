// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bcast

// Record layout, relative to the record's buffer offset:
//
//	+---------------------------------------------------------------+
//	| sequence (8) | recordLength (4) | msgLength (4) | typeID (4)  |
//	+---------------------------------------------------------------+
//	| payload (msgLength bytes) ... padding to RecordAlignment      |
//	+---------------------------------------------------------------+
//
// The sequence field is the cumulative stream position at which the
// record starts. It is written last, with release semantics, and is
// the publication signal: a reader that observes it also observes
// every byte stored before it.
const (
	sequenceFieldOffset  int32 = 0
	recLengthFieldOffset int32 = 8
	msgLengthFieldOffset int32 = 12
	msgTypeFieldOffset   int32 = 16

	// HeaderLength is the number of bytes occupied by a record header.
	HeaderLength int32 = 20

	// RecordAlignment is the boundary every record is aligned to.
	// Every record, padding included, occupies a multiple of this, so
	// the remainder at the physical end of the buffer always has room
	// for a padding record's header.
	RecordAlignment int32 = 32
)

// PaddingMsgTypeID is the reserved type id of padding records. A
// padding record carries no payload; it fills the space a real record
// could not use without straddling the physical end of the buffer.
// Receivers skip padding records transparently.
const PaddingMsgTypeID int32 = -1

// Trailer layout. The trailer lives past the record storage area and
// holds the two shared counters. Each counter occupies its own cache
// line so writer stores to one never contend with reader loads of the
// other.
const (
	// TrailerLength is the number of bytes past capacity reserved for
	// the shared counters.
	TrailerLength int32 = 128

	tailCounterTrailerOffset   int32 = 0
	latestCounterTrailerOffset int32 = 64
)

// BufferLength returns the total byte length of a region backing a
// broadcast buffer of the given record-storage capacity.
func BufferLength(capacity int32) int32 {
	return capacity + TrailerLength
}

// MaxMsgLength returns the maximum payload length transmittable
// through a buffer of the given capacity.
func MaxMsgLength(capacity int32) int32 {
	return capacity / 8
}

func sequenceOffset(recordOffset int32) int32 {
	return recordOffset + sequenceFieldOffset
}

func recLengthOffset(recordOffset int32) int32 {
	return recordOffset + recLengthFieldOffset
}

func msgLengthOffset(recordOffset int32) int32 {
	return recordOffset + msgLengthFieldOffset
}

func msgTypeOffset(recordOffset int32) int32 {
	return recordOffset + msgTypeFieldOffset
}

func msgOffset(recordOffset int32) int32 {
	return recordOffset + HeaderLength
}

// align rounds value up to the next multiple of alignment.
// alignment must be a power of two.
func align(value, alignment int32) int32 {
	return (value + alignment - 1) &^ (alignment - 1)
}

// isPowerOfTwo reports whether n is a positive power of two.
func isPowerOfTwo(n int32) bool {
	return n > 0 && n&(n-1) == 0
}
