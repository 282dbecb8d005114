// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bcast

// Handler consumes one copied message. The data slice is only valid
// for the duration of the call; retain a copy if the message must
// outlive it.
type Handler func(typeID int32, data []byte)

// CopyReceiver wraps a Receiver and hands out validated copies instead
// of zero-copy views into the shared buffer.
//
// On each delivered record the payload is copied into a private
// scratch buffer and then validated. Only copies that pass validation
// reach the handler; a copy the transmitter tore by wrapping during
// the read is reported as ErrOverrun and never delivered. The copy
// itself is not rolled back — the contract is "the copy happened, do
// not trust it".
type CopyReceiver struct {
	receiver *Receiver
	scratch  []byte
}

// NewCopyReceiver wraps receiver. The scratch buffer is sized for the
// largest message the underlying buffer can carry.
func NewCopyReceiver(receiver *Receiver) *CopyReceiver {
	return &CopyReceiver{
		receiver: receiver,
		scratch:  make([]byte, MaxMsgLength(receiver.capacity)),
	}
}

// LappedCount returns the lapped count of the wrapped receiver.
func (c *CopyReceiver) LappedCount() int64 {
	return c.receiver.LappedCount()
}

// Receive polls for the next message and, if one is available, copies
// it out and passes it to handler.
//
// Returns nil when a message was delivered, ErrWouldBlock when no
// unread message is available, and ErrOverrun when the transmitter
// overwrote the record mid-copy; in the overrun case the handler is
// not called and the message is lost, which the lapped count of the
// wrapped receiver also reflects over time.
func (c *CopyReceiver) Receive(handler Handler) error {
	rcv := c.receiver
	if !rcv.ReceiveNext() {
		return ErrWouldBlock
	}

	typeID := rcv.TypeID()
	length := rcv.Length()
	if length < 0 || int(length) > len(c.scratch) || rcv.Offset()+length > rcv.Capacity() {
		// A length that cannot belong to a published record can only
		// come from a slot torn by the wrapping transmitter.
		return ErrOverrun
	}
	rcv.Buffer().GetBytes(c.scratch[:length], rcv.Offset())

	if !rcv.Validate() {
		return ErrOverrun
	}

	handler(typeID, c.scratch[:length])
	return nil
}
