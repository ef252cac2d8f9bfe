// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package ringq

// RaceEnabled is true when the race detector is active.
// Used by tests to skip concurrent tests: the detector cannot see the
// happens-before edges established through acquire/release cursor stores
// and reports false positives on slot accesses.
const RaceEnabled = true
