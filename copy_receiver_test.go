// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bcast_test

import (
	"bytes"
	"errors"
	"testing"

	"code.hybscloud.com/bcast"
)

// TestCopyReceiverDelivers checks the copy path end to end: the
// handler gets the type id and an equal copy of the payload.
func TestCopyReceiverDelivers(t *testing.T) {
	buf := newTestBuffer(t)
	tx := bcast.NewTransmitter(buf)
	rx := bcast.NewCopyReceiver(bcast.NewReceiver(buf))

	payload := []byte("copy me out")
	if err := tx.Transmit(11, payload); err != nil {
		t.Fatalf("Transmit: %v", err)
	}

	var gotType int32
	var gotData []byte
	err := rx.Receive(func(typeID int32, data []byte) {
		gotType = typeID
		gotData = append([]byte(nil), data...)
	})
	if err != nil {
		t.Fatalf("Receive: %v", err)
	}
	if gotType != 11 {
		t.Errorf("typeID: got %d, want 11", gotType)
	}
	if !bytes.Equal(gotData, payload) {
		t.Errorf("data: got %q, want %q", gotData, payload)
	}
}

// TestCopyReceiverWouldBlock checks the empty-buffer signal and its
// iox taxonomy.
func TestCopyReceiverWouldBlock(t *testing.T) {
	buf := newTestBuffer(t)
	rx := bcast.NewCopyReceiver(bcast.NewReceiver(buf))

	err := rx.Receive(func(int32, []byte) {
		t.Error("handler called with no message published")
	})
	if !errors.Is(err, bcast.ErrWouldBlock) {
		t.Errorf("Receive on empty: got %v, want ErrWouldBlock", err)
	}
	if !bcast.IsWouldBlock(err) {
		t.Error("IsWouldBlock: got false, want true")
	}
}

// TestCopyReceiverFIFO drains several messages in order.
func TestCopyReceiverFIFO(t *testing.T) {
	buf := newTestBuffer(t)
	tx := bcast.NewTransmitter(buf)
	rx := bcast.NewCopyReceiver(bcast.NewReceiver(buf))

	for i := range 5 {
		if err := tx.Transmit(int32(i+1), []byte{byte(i)}); err != nil {
			t.Fatalf("Transmit(%d): %v", i, err)
		}
	}

	for i := range 5 {
		err := rx.Receive(func(typeID int32, data []byte) {
			if typeID != int32(i+1) {
				t.Errorf("message %d: typeID %d", i, typeID)
			}
			if len(data) != 1 || data[0] != byte(i) {
				t.Errorf("message %d: data %v", i, data)
			}
		})
		if err != nil {
			t.Fatalf("Receive(%d): %v", i, err)
		}
	}
	if err := rx.Receive(func(int32, []byte) {}); !errors.Is(err, bcast.ErrWouldBlock) {
		t.Errorf("Receive after drain: got %v, want ErrWouldBlock", err)
	}
}

// TestCopyReceiverReportsTornRecord corrupts a published record's
// msgLength the way a wrapping writer would mid-overwrite; the copy
// must be reported as ErrOverrun, never handed to the handler.
func TestCopyReceiverReportsTornRecord(t *testing.T) {
	buf := newTestBuffer(t)
	tx := bcast.NewTransmitter(buf)
	rx := bcast.NewCopyReceiver(bcast.NewReceiver(buf))

	if err := tx.Transmit(4, []byte("soon torn")); err != nil {
		t.Fatalf("Transmit: %v", err)
	}
	// msgLength field of the record at offset 0.
	buf.SetInt32(12, testCapacity*2)

	err := rx.Receive(func(int32, []byte) {
		t.Error("handler called with a torn record")
	})
	if !errors.Is(err, bcast.ErrOverrun) {
		t.Errorf("Receive(torn): got %v, want ErrOverrun", err)
	}
}

// TestCopyReceiverLappedCount checks the passthrough counter.
func TestCopyReceiverLappedCount(t *testing.T) {
	buf := newTestBuffer(t)
	tx := bcast.NewTransmitter(buf)
	rx := bcast.NewCopyReceiver(bcast.NewReceiver(buf))

	if rx.LappedCount() != 0 {
		t.Errorf("LappedCount: got %d, want 0", rx.LappedCount())
	}

	// Cycle the buffer twice before the first poll.
	payload := make([]byte, 96-20)
	for i := range 30 {
		payload[0] = byte(i)
		if err := tx.Transmit(1, payload); err != nil {
			t.Fatalf("Transmit(%d): %v", i, err)
		}
	}

	if err := rx.Receive(func(int32, []byte) {}); err != nil {
		t.Fatalf("Receive: %v", err)
	}
	if rx.LappedCount() < 1 {
		t.Errorf("LappedCount: got %d, want >= 1", rx.LappedCount())
	}
}
