// SPDX-License-Identifier: EPL-2.0

package utils

// Clamp limits x to the normalized sample range [-1, 1].
func Clamp(x float32) float32 {
	if x > 1 {
		return 1
	} else if x < -1 {
		return -1
	}

	return x
}

// FloatToInt16 quantizes a normalized sample to signed 16-bit PCM.
// Negative values scale by 32768 and positive ones by 32767, so -1 maps to
// math.MinInt16 and 1 to math.MaxInt16. The fraction is truncated.
func FloatToInt16(x float32) int16 {
	x = Clamp(x)
	if x < 0 {
		return int16(x * 32768.0)
	}

	return int16(x * 32767.0)
}

// Int16ToFloat is the inverse of FloatToInt16.
func Int16ToFloat(v int16) float32 {
	if v < 0 {
		return float32(v) / 32768.0
	}

	return float32(v) / 32767.0
}

// FloatToUint8 quantizes a normalized sample to unsigned 8-bit PCM, where 128
// is silence. Negative values scale by 128 and positive ones by 127 before
// the offset is added; the sum is truncated.
func FloatToUint8(x float32) uint8 {
	x = Clamp(x)
	if x < 0 {
		return uint8(x*128.0 + 128.0)
	}

	return uint8(x*127.0 + 128.0)
}

// Uint8ToFloat is the inverse of FloatToUint8.
func Uint8ToFloat(v uint8) float32 {
	d := float32(int(v) - 128)
	if d < 0 {
		return d / 128.0
	}

	return d / 127.0
}
