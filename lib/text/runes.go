/*
 * Copyright 2022 Medicines Discovery Catapult
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *     http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package text

import "unicode/utf8"

// Preview returns at most n characters (runes) of s and whether s was cut short.
func Preview(s string, n int) (string, bool) {
	if n < 0 || utf8.RuneCountInString(s) <= n {
		return s, false
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos], true
		}
		i++
	}
	return s, false
}

// RuneOffsets converts character offsets, as reported by models that count code points,
// into byte offsets into s. Offsets past the end of s map to -1.
type RuneOffsets struct {
	bytes []int
}

func NewRuneOffsets(s string) RuneOffsets {
	offsets := make([]int, 0, len(s)+1)
	for pos := range s {
		offsets = append(offsets, pos)
	}
	offsets = append(offsets, len(s))
	return RuneOffsets{bytes: offsets}
}

// Byte returns the byte offset of the rune at index r. r == rune count is the end of s.
func (o RuneOffsets) Byte(r int) int {
	if r < 0 || r >= len(o.bytes) {
		return -1
	}
	return o.bytes[r]
}
