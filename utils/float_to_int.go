// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// Clamp limits x to [-1, 1]. NaN maps to 0.
func Clamp(x float64) float64 {
	switch {
	case math.IsNaN(x):
		return 0
	case x < -1:
		return -1
	case x > 1:
		return 1
	}
	return x
}

// Int16ToFloat32 normalizes a 16-bit sample by 32767. -32768 maps slightly
// below -1.0; callers clamp after filtering.
func Int16ToFloat32(s int16) float32 {
	return float32(float64(s) / 32767.0)
}

// Float32ToInt16 clamps x and quantizes it with the offset rounding
// floor(32768.5 + 32767*x) - 32768, so 1.0 maps to 32767 and -1.0 to -32767.
func Float32ToInt16(x float32) int16 {
	y := Clamp(float64(x))
	return int16(math.Floor(32768.5+32767.0*y) - 32768)
}
