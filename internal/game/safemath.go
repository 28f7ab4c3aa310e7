package game

import "math/bits"

// All arithmetic on economic quantities goes through these helpers. Any
// overflow, underflow or division by zero fails the whole transaction with
// ErrOverflow; nothing ever saturates or wraps.

func addU64(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, ErrOverflow
	}
	return sum, nil
}

func subU64(a, b uint64) (uint64, error) {
	diff, borrow := bits.Sub64(a, b, 0)
	if borrow != 0 {
		return 0, ErrOverflow
	}
	return diff, nil
}

func mulU64(a, b uint64) (uint64, error) {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return 0, ErrOverflow
	}
	return lo, nil
}

func divU64(a, b uint64) (uint64, error) {
	if b == 0 {
		return 0, ErrOverflow
	}
	return a / b, nil
}

// mulDivU64 computes a*b/den with a 128-bit intermediate, failing only if the
// final quotient does not fit in 64 bits.
func mulDivU64(a, b, den uint64) (uint64, error) {
	if den == 0 {
		return 0, ErrOverflow
	}
	hi, lo := bits.Mul64(a, b)
	if hi >= den {
		return 0, ErrOverflow
	}
	quo, _ := bits.Div64(hi, lo, den)
	return quo, nil
}

// bpsOf applies a basis-point rate (1/10000) to amount.
func bpsOf(amount uint64, bps uint16) (uint64, error) {
	return mulDivU64(amount, uint64(bps), 10000)
}

func addU16(a, b uint16) (uint16, error) {
	sum := uint32(a) + uint32(b)
	if sum > 0xFFFF {
		return 0, ErrOverflow
	}
	return uint16(sum), nil
}

func subU16(a, b uint16) (uint16, error) {
	if b > a {
		return 0, ErrOverflow
	}
	return a - b, nil
}

func addU32(a, b uint32) (uint32, error) {
	sum := uint64(a) + uint64(b)
	if sum > 0xFFFFFFFF {
		return 0, ErrOverflow
	}
	return uint32(sum), nil
}

func subU32(a, b uint32) (uint32, error) {
	if b > a {
		return 0, ErrOverflow
	}
	return a - b, nil
}

func subI64(a, b int64) (int64, error) {
	diff := a - b
	if (b > 0 && diff > a) || (b < 0 && diff < a) {
		return 0, ErrOverflow
	}
	return diff, nil
}

func addI64(a, b int64) (int64, error) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, ErrOverflow
	}
	return sum, nil
}

func mulI64(a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	prod := a * b
	if prod/b != a {
		return 0, ErrOverflow
	}
	return prod, nil
}
