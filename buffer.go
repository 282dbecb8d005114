// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bcast

import (
	"fmt"
	"unsafe"

	"code.hybscloud.com/atomix"
)

// Buffer is the shared region a transmitter and its receivers operate
// on: capacity bytes of record storage followed by TrailerLength bytes
// holding the tail and latestRecord counters.
//
// All typed access goes through offset-addressed accessors with plain,
// acquire, or release semantics. Buffer never performs memory mapping
// itself; callers that want cross-process broadcast attach a Buffer to
// an externally mapped region with AttachBuffer.
//
// A Buffer handle is freely shareable. The single-writer rule is
// carried by Transmitter, not by Buffer.
type Buffer struct {
	data     []byte
	capacity int32
	mask     int64
}

// NewBuffer allocates a region for the given record-storage capacity
// and attaches to it. Capacity must be a power of two of at least
// RecordAlignment bytes; otherwise ErrCapacity is returned.
func NewBuffer(capacity int32) (*Buffer, error) {
	if !isPowerOfTwo(capacity) || capacity < RecordAlignment {
		return nil, fmt.Errorf("%w: got %d", ErrCapacity, capacity)
	}
	return AttachBuffer(make([]byte, BufferLength(capacity)))
}

// AttachBuffer adopts an existing region of BufferLength(capacity)
// bytes, typically a shared memory mapping created elsewhere. The
// record-storage size (len(data) - TrailerLength) must be a power of
// two of at least RecordAlignment bytes and the base address must be
// 8-byte aligned; construction is the only place these checks can
// fail, no access to the region happens before they pass.
func AttachBuffer(data []byte) (*Buffer, error) {
	capacity := int64(len(data)) - int64(TrailerLength)
	if capacity < int64(RecordAlignment) || !isPowerOfTwo(int32(capacity)) {
		return nil, fmt.Errorf("%w: got %d", ErrCapacity, capacity)
	}
	if uintptr(unsafe.Pointer(unsafe.SliceData(data)))&7 != 0 {
		return nil, ErrAlignment
	}
	return &Buffer{
		data:     data,
		capacity: int32(capacity),
		mask:     capacity - 1,
	}, nil
}

// Capacity returns the record-storage size in bytes. The trailer is
// not included.
func (b *Buffer) Capacity() int32 {
	return b.capacity
}

// int32at and int64at overlay an atomix value on the region at offset.
// Pointer arithmetic avoids a second bounds check in the hot path; the
// caller has already range-checked offset.
// Equivalent to (*atomix.Int32)(unsafe.Pointer(&b.data[offset]))

func (b *Buffer) int32at(offset int32) *atomix.Int32 {
	return (*atomix.Int32)(unsafe.Add(unsafe.Pointer(unsafe.SliceData(b.data)), int(offset)))
}

func (b *Buffer) int64at(offset int32) *atomix.Int64 {
	return (*atomix.Int64)(unsafe.Add(unsafe.Pointer(unsafe.SliceData(b.data)), int(offset)))
}

func (b *Buffer) check(offset, length int32) {
	if offset < 0 || length < 0 || int64(offset)+int64(length) > int64(len(b.data)) {
		panic(fmt.Sprintf("bcast: access [%d, %d) outside region of %d bytes",
			offset, offset+length, len(b.data)))
	}
}

// Int32 returns the 4-byte value at offset with plain semantics.
func (b *Buffer) Int32(offset int32) int32 {
	b.check(offset, 4)
	return b.int32at(offset).LoadRelaxed()
}

// SetInt32 stores v at offset with plain semantics.
func (b *Buffer) SetInt32(offset int32, v int32) {
	b.check(offset, 4)
	b.int32at(offset).StoreRelaxed(v)
}

// Int32Acquire returns the 4-byte value at offset with acquire
// semantics.
func (b *Buffer) Int32Acquire(offset int32) int32 {
	b.check(offset, 4)
	return b.int32at(offset).LoadAcquire()
}

// SetInt32Release stores v at offset with release semantics.
func (b *Buffer) SetInt32Release(offset int32, v int32) {
	b.check(offset, 4)
	b.int32at(offset).StoreRelease(v)
}

// Int64 returns the 8-byte value at offset with plain semantics.
func (b *Buffer) Int64(offset int32) int64 {
	b.check(offset, 8)
	return b.int64at(offset).LoadRelaxed()
}

// SetInt64 stores v at offset with plain semantics.
func (b *Buffer) SetInt64(offset int32, v int64) {
	b.check(offset, 8)
	b.int64at(offset).StoreRelaxed(v)
}

// Int64Acquire returns the 8-byte value at offset with acquire
// semantics. A load that observes a value released by
// SetInt64Release also observes every store made before that release.
func (b *Buffer) Int64Acquire(offset int32) int64 {
	b.check(offset, 8)
	return b.int64at(offset).LoadAcquire()
}

// SetInt64Release stores v at offset with release semantics.
func (b *Buffer) SetInt64Release(offset int32, v int64) {
	b.check(offset, 8)
	b.int64at(offset).StoreRelease(v)
}

// PutBytes copies src into the region at offset. Plain semantics: the
// writer publishes the bytes afterwards with a release store.
func (b *Buffer) PutBytes(offset int32, src []byte) {
	b.check(offset, int32(len(src)))
	copy(b.data[offset:], src)
}

// GetBytes copies len(dst) bytes from the region at offset into dst.
// Plain semantics: the reader is expected to confirm the bytes with a
// post-hoc sequence check.
func (b *Buffer) GetBytes(dst []byte, offset int32) {
	b.check(offset, int32(len(dst)))
	copy(dst, b.data[offset:int(offset)+len(dst)])
}

func (b *Buffer) tailCounterOffset() int32 {
	return b.capacity + tailCounterTrailerOffset
}

func (b *Buffer) latestCounterOffset() int32 {
	return b.capacity + latestCounterTrailerOffset
}
