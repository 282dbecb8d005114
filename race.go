// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package bcast

// RaceEnabled is true when the race detector is active.
// Used by tests to skip concurrent tests: the seqlock-style protocol
// reads shared bytes the transmitter legitimately overwrites in
// flight, which the detector reports as races even though every such
// read is confirmed or discarded through Validate.
const RaceEnabled = true
