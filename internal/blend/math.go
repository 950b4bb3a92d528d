// Package blend provides the byte arithmetic behind shape compositing.
//
// Every function here works on straight (non-premultiplied) 8-bit channels.
// Division by 255 uses Alvy Ray Smith's shift formula, which is exact for
// all products of two bytes.
//
// References:
//   - Alpha blending without division: https://arxiv.org/abs/2202.02864
//   - Alvy Ray Smith's technical memos: http://alvyray.com/Memos/
package blend

// div255 divides x by 255 exactly without using division.
//
// Formula: ((x + 1) + ((x + 1) >> 8)) >> 8
//
// The result equals x / 255 (truncated) for every x in [0, 255*255].
func div255(x uint16) uint16 {
	t := x + 1
	return (t + (t >> 8)) >> 8
}

// MulDiv255 multiplies two bytes and divides by 255, truncating.
func MulDiv255(a, b byte) byte {
	return byte(div255(uint16(a) * uint16(b)))
}

// Lerp interpolates a single channel between top and bottom, weighted by
// alpha/255 on the top value:
//
//	out = (alpha/255)*top + (1 - alpha/255)*bottom
//
// The result is truncated to a byte. Alpha 255 returns top unchanged and
// alpha 0 returns bottom unchanged.
func Lerp(top, bottom, alpha byte) byte {
	inv := 255 - uint16(alpha)
	return byte(div255(uint16(alpha)*uint16(top) + inv*uint16(bottom)))
}

// SquaredDiff returns (a-b)^2 for two channel values.
func SquaredDiff(a, b byte) uint32 {
	d := int32(a) - int32(b)
	return uint32(d * d)
}
