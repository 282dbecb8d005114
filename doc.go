// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package bcast provides a lock-free single-writer broadcast buffer.
//
// One transmitter publishes short, bounded messages into a
// fixed-capacity ring; any number of independent receivers consume
// them without coordinating with the transmitter or with each other.
// There is no flow control and no channel from readers back to the
// writer: a receiver that falls behind loses messages and observes the
// loss through its lapped count, while the transmitter never waits.
//
// # Quick Start
//
//	buf, err := bcast.NewBuffer(64 * 1024)
//	if err != nil {
//	    // capacity was not a power of two
//	}
//
//	tx := bcast.NewTransmitter(buf)
//	rx := bcast.NewReceiver(buf)
//
//	// Writer side
//	tx.Transmit(1, []byte("hello"))
//
//	// Reader side
//	if rx.ReceiveNext() {
//	    msg := make([]byte, rx.Length())
//	    rx.Buffer().GetBytes(msg, rx.Offset())
//	    if rx.Validate() {
//	        // msg is trustworthy
//	    }
//	}
//
// # Memory Layout
//
// A buffer region is capacity bytes of record storage followed by a
// fixed trailer holding two monotonic counters:
//
//	tail         - total bytes ever claimed by the transmitter
//	latestRecord - sequence of the most recently completed record
//
// Records are self-describing and never straddle the physical end of
// the storage area; a padding record fills the remainder instead and
// receivers skip it transparently. Any process attaching to the same
// region must agree on the layout constants exactly (HeaderLength,
// RecordAlignment, TrailerLength).
//
// # Consistency Model
//
// The transmitter publishes a record by storing its sequence field
// last, with release semantics; receivers load it with acquire
// semantics. That pairing is the only synchronization in the package:
// observing a sequence value implies observing every byte stored
// before it, and implies nothing about what happens afterwards. A
// receiver that reads the payload in place therefore confirms the read
// with Validate, a second acquire load of the same field. Mismatch
// means the transmitter wrapped and reclaimed the slot mid-read and
// the bytes must be discarded.
//
// CopyReceiver packages that protocol: copy out, validate, and only
// then deliver, reporting torn copies as ErrOverrun.
//
// # Common Patterns
//
// Fan-out to worker goroutines:
//
//	tx := bcast.NewTransmitter(buf)
//
//	for range numWorkers {
//	    go func() {
//	        rx := bcast.NewCopyReceiver(bcast.NewReceiver(buf))
//	        backoff := iox.Backoff{}
//	        for {
//	            err := rx.Receive(func(typeID int32, data []byte) {
//	                handle(typeID, data)
//	            })
//	            if bcast.IsWouldBlock(err) {
//	                backoff.Wait()
//	                continue
//	            }
//	            backoff.Reset()
//	        }
//	    }()
//	}
//
// Cross-process control plane: map a file or shared memory segment in
// every participating process, attach with AttachBuffer, and create
// the Transmitter only in the owning process. The package performs no
// mapping itself.
//
// # Concurrency Contract
//
// Exactly one Transmitter per buffer, used from one goroutine.
// Receivers are cheap, independent, and single-goroutine each; create
// one per consumer. All operations are non-blocking and bounded, so
// the package contains no waiting primitives — polling loops belong to
// the application, typically with iox.Backoff or spin.Wait.
package bcast
