// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bcast

import (
	"errors"

	"code.hybscloud.com/iox"
)

// ErrWouldBlock indicates the operation cannot proceed immediately.
//
// For CopyReceiver.Receive it means no unread message is available.
// ErrWouldBlock is a control flow signal, not a failure: the caller
// should poll again later (with backoff or yield) rather than
// propagating the error.
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency.
var ErrWouldBlock = iox.ErrWouldBlock

// ErrCapacity indicates a buffer region whose record-storage size is
// not a power of two of at least RecordAlignment bytes. Detected at
// construction, before any access to the region.
var ErrCapacity = errors.New("bcast: capacity must be a power of two >= RecordAlignment")

// ErrAlignment indicates a buffer region whose base address is not
// 8-byte aligned, which would break the 64-bit ordered accesses to
// the sequence field and the trailer counters.
var ErrAlignment = errors.New("bcast: buffer must be 8-byte aligned")

// ErrMsgLength indicates a payload longer than the buffer's maximum
// message length. The message is rejected before any mutation, never
// truncated.
var ErrMsgLength = errors.New("bcast: message exceeds maximum length")

// ErrMsgTypeID indicates a non-positive message type id. Type ids
// must be greater than zero; PaddingMsgTypeID and the rest of the
// non-positive range are reserved.
var ErrMsgTypeID = errors.New("bcast: message type id must be positive")

// ErrOverrun indicates the transmitter lapped the receiver while a
// message was being copied out. The copied bytes may be torn and must
// not be trusted; the message is reported lost, not delivered.
//
// ErrOverrun is an expected steady-state condition for a reader that
// cannot keep up, not a failure of the buffer.
var ErrOverrun = errors.New("bcast: receiver lapped during copy")

// IsWouldBlock reports whether err indicates the operation would block.
// Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}
