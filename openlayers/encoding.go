package openlayers

// Encode converts a physical voltage to the device code a subsystem's
// converter expects, given the subsystem's span, code space, and resolution
// in bits.
//
// The code is computed as floor(2^resolution / (max-min) * (volts-min)) and
// clamped from above to 2^resolution - 1.  There is deliberately no lower
// clamp: a voltage below min produces a negative or wrapped code, exactly as
// the vendor's reference conversion does.  Callers wanting symmetric safety
// clamping must do it themselves before calling.
//
// For non-binary code spaces the sign bit at position resolution-1 is
// inverted, and codes with that bit set afterward are sign-extended through
// the upper bits of the result.
func Encode(volts float32, min, max float64, enc Encoding, resolution uint) int32 {
	span := int64(1) << resolution
	scale := float64(span) / (max - min)
	value := int64(scale * (float64(volts) - min))
	if value > span-1 {
		value = span - 1
	}
	if enc != EncodingBinary {
		sign := int64(1) << (resolution - 1)
		value ^= sign
		if value&sign != 0 {
			value |= ^int64(0) << resolution
		}
	}
	return int32(value)
}
