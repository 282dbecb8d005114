// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bcast

import "fmt"

// Transmitter is the single-writer handle of a broadcast buffer.
//
// Exactly one Transmitter may exist per buffer, and Transmit must not
// be called concurrently: the writer is the sole mutator of the region
// and synchronizes with itself through nothing at all. Create the
// Transmitter in the process that owns the region and do not share it
// across goroutines.
//
// Transmit never blocks and never waits for receivers. A receiver
// that falls behind loses messages; there is no flow control and no
// channel from readers back to the writer.
type Transmitter struct {
	buf          *Buffer
	capacity     int32
	mask         int64
	maxMsgLength int32
	tailOffset   int32
	latestOffset int32
}

// NewTransmitter creates the writer handle for buf.
func NewTransmitter(buf *Buffer) *Transmitter {
	return &Transmitter{
		buf:          buf,
		capacity:     buf.capacity,
		mask:         buf.mask,
		maxMsgLength: MaxMsgLength(buf.capacity),
		tailOffset:   buf.tailCounterOffset(),
		latestOffset: buf.latestCounterOffset(),
	}
}

// Capacity returns the record-storage size of the underlying buffer.
func (t *Transmitter) Capacity() int32 {
	return t.capacity
}

// MaxMsgLength returns the maximum payload length for this buffer.
func (t *Transmitter) MaxMsgLength() int32 {
	return t.maxMsgLength
}

// Transmit publishes payload under the given type id.
//
// The record is claimed at the current tail, written in place, and
// published by a release store of its sequence field; until that store
// lands, receivers scanning the slot see stale content and do not
// surface it. If the record would straddle the physical end of the
// buffer, a padding record fills the remainder first and the real
// record starts at offset 0.
//
// Publishing overwrites whatever older record occupied the reused
// slot. That is the ring semantics; lapped receivers detect it through
// resynchronization and Validate.
func (t *Transmitter) Transmit(typeID int32, payload []byte) error {
	if typeID < 1 {
		return fmt.Errorf("%w: got %d", ErrMsgTypeID, typeID)
	}
	if int64(len(payload)) > int64(t.maxMsgLength) {
		return fmt.Errorf("%w: length %d > max %d", ErrMsgLength, len(payload), t.maxMsgLength)
	}

	buf := t.buf
	// Only the writer advances tail, plain load is enough.
	tail := buf.Int64(t.tailOffset)
	msgLength := int32(len(payload))
	recordLength := align(HeaderLength+msgLength, RecordAlignment)
	recordOffset := int32(tail & t.mask)

	if recordOffset+recordLength > t.capacity {
		// The record would straddle the wrap point. Fill the remainder
		// with a padding record and start over at offset 0. The
		// remainder is a multiple of RecordAlignment, so the padding
		// header always fits.
		remaining := t.capacity - recordOffset
		buf.SetInt32(recLengthOffset(recordOffset), remaining)
		buf.SetInt32(msgLengthOffset(recordOffset), 0)
		buf.SetInt32(msgTypeOffset(recordOffset), PaddingMsgTypeID)
		buf.SetInt64Release(sequenceOffset(recordOffset), tail)
		buf.SetInt64Release(t.tailOffset, tail+int64(remaining))

		tail += int64(remaining)
		recordOffset = 0
	}

	buf.SetInt32(recLengthOffset(recordOffset), recordLength)
	buf.SetInt32(msgLengthOffset(recordOffset), msgLength)
	buf.SetInt32(msgTypeOffset(recordOffset), typeID)
	buf.PutBytes(msgOffset(recordOffset), payload)

	// Publication barrier: sequence last, with release semantics.
	buf.SetInt64Release(sequenceOffset(recordOffset), tail)
	buf.SetInt64Release(t.tailOffset, tail+int64(recordLength))
	buf.SetInt64Release(t.latestOffset, tail)

	return nil
}
