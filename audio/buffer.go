// SPDX-License-Identifier: EPL-2.0

package audio

// Concat joins chunks into one contiguous buffer, keeping arrival order.
// A single chunk is returned as is, without copying. No chunks yields an
// empty buffer.
func Concat(chunks ...[]float32) []float32 {
	switch len(chunks) {
	case 0:
		return []float32{}
	case 1:
		return chunks[0]
	}

	total := 0
	for _, c := range chunks {
		total += len(c)
	}

	out := make([]float32, total)
	offset := 0
	for _, c := range chunks {
		offset += copy(out[offset:], c)
	}

	return out
}
