// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bcast

import "code.hybscloud.com/atomix"

// Receiver is an independent reader of a broadcast buffer.
//
// Every receiver owns a private cursor into the shared stream; any
// number of receivers may attach to the same buffer and they never
// coordinate with the transmitter or with each other. A Receiver is
// for use by a single goroutine; attach one Receiver per consumer.
//
// ReceiveNext and Validate are non-blocking and bounded: a consumer
// that wants to wait simply polls again later.
//
// The accessors expose the most recently delivered record. Their
// values are undefined before the first successful ReceiveNext.
type Receiver struct {
	buf          *Buffer
	capacity     int32
	mask         int64
	tailOffset   int32
	latestOffset int32

	// nextRecord is the sequence position the next ReceiveNext starts
	// scanning from. cursor/recordOffset/typeID/length/sequence hold
	// the decoded state of the current record.
	nextRecord   int64
	cursor       int64
	recordOffset int32
	typeID       int32
	length       int32
	sequence     int64

	lapped atomix.Int64
}

// NewReceiver creates a reader handle for buf with its cursor at the
// start of the stream. A receiver joining an already running
// transmission resynchronizes to the latest record on its first
// ReceiveNext and counts the jump as a lap.
func NewReceiver(buf *Buffer) *Receiver {
	return &Receiver{
		buf:          buf,
		capacity:     buf.capacity,
		mask:         buf.mask,
		tailOffset:   buf.tailCounterOffset(),
		latestOffset: buf.latestCounterOffset(),
	}
}

// Capacity returns the record-storage size of the underlying buffer.
func (r *Receiver) Capacity() int32 {
	return r.capacity
}

// Buffer returns the shared buffer the receiver reads from. Together
// with Offset and Length it gives zero-copy access to the current
// payload; callers that take that route must check Validate after
// reading.
func (r *Receiver) Buffer() *Buffer {
	return r.buf
}

// TypeID returns the type id of the current record.
func (r *Receiver) TypeID() int32 {
	return r.typeID
}

// Offset returns the buffer offset of the current record's payload.
func (r *Receiver) Offset() int32 {
	return r.recordOffset + HeaderLength
}

// Length returns the payload length of the current record.
func (r *Receiver) Length() int32 {
	return r.length
}

// LappedCount returns how many times this receiver has been forced to
// skip forward because the transmitter overwrote unread records. The
// counter only grows; readers that keep up never see it move.
func (r *Receiver) LappedCount() int64 {
	return r.lapped.LoadRelaxed()
}

// ReceiveNext scans for the next unread record and decodes it.
//
// Returns false when no new record is published; the previously
// decoded record, if any, stays exposed through the accessors. When
// the transmitter has run ahead by more than a full capacity the
// cursor jumps to the latest record, the lapped count is incremented,
// and scanning resumes from there. Padding records are skipped and
// never surfaced.
func (r *Receiver) ReceiveNext() bool {
	tail := r.buf.Int64Acquire(r.tailOffset)
	cursor := r.nextRecord

	if tail-cursor > int64(r.capacity) {
		// Lapped: unread records up to here are already overwritten.
		// Jump to the start of the most recently completed record.
		cursor = r.buf.Int64Acquire(r.latestOffset)
		r.lapped.StoreRelaxed(r.lapped.LoadRelaxed() + 1)
	}

	for cursor < tail {
		recordOffset := int32(cursor & r.mask)
		sequence := r.buf.Int64Acquire(sequenceOffset(recordOffset))
		if sequence != cursor {
			// The slot does not carry the expected record: either its
			// publication is still in flight or the transmitter is
			// already reclaiming it. Stand still; the next poll
			// resynchronizes once tail has run a full lap ahead.
			break
		}

		recordLength := r.buf.Int32(recLengthOffset(recordOffset))
		typeID := r.buf.Int32(msgTypeOffset(recordOffset))

		if recordLength < RecordAlignment {
			// A record is never shorter than one alignment unit; this
			// slot is mid-overwrite. Same standstill as above.
			break
		}
		if typeID == PaddingMsgTypeID {
			cursor += int64(recordLength)
			continue
		}

		r.cursor = cursor
		r.nextRecord = cursor + int64(recordLength)
		r.recordOffset = recordOffset
		r.sequence = sequence
		r.typeID = typeID
		r.length = r.buf.Int32(msgLengthOffset(recordOffset))
		return true
	}

	// Nothing to surface: only padding, or a slot still being
	// overwritten, between the cursor and tail.
	r.nextRecord = cursor
	return false
}

// Validate reports whether the current record is still intact.
//
// It re-reads the record's sequence field and compares it against the
// value captured by ReceiveNext. Equality means the transmitter has
// not reclaimed the slot since decoding began, so every byte read from
// the record is trustworthy. Inequality means the transmitter wrapped
// and overwrote the slot while the record was being read; the caller
// must discard whatever it read.
//
// This is an optimistic check, not a lock: it never blocks either
// side, it only reports, after the fact, whether the read was clean.
func (r *Receiver) Validate() bool {
	return r.buf.Int64Acquire(sequenceOffset(r.recordOffset)) == r.sequence
}
