package game

import "math/bits"

// SetMask tracks which properties of a color set the player holds at least one
// slot of. Bit positions are relative to the first property in the set.
type SetMask uint8

func (m SetMask) Has(bit uint8) bool { return m&(1<<bit) != 0 }

func (m *SetMask) Set(bit uint8) { *m |= 1 << bit }

func (m *SetMask) Clear(bit uint8) { *m &^= 1 << bit }

func (m SetMask) Count() uint8 { return uint8(bits.OnesCount8(uint8(m))) }

// firstPropertyInSet maps a set id to the property id of its first member.
var firstPropertyInSet = [MaxSets]uint8{0, 2, 5, 8, 11, 14, 17, 20}

// PropertyBit returns the bit position of propertyID within its set's mask.
func PropertyBit(propertyID, setID uint8) uint8 {
	if setID >= MaxSets {
		return 0
	}
	base := firstPropertyInSet[setID]
	if propertyID < base {
		return 0
	}
	return propertyID - base
}

// SetSize returns how many distinct properties make the set complete: the
// first and last sets hold two, all others three.
func SetSize(setID uint8) uint8 {
	switch setID {
	case 0, 7:
		return 2
	default:
		return 3
	}
}

// Complete reports whether the mask covers every property of the set.
func (m SetMask) Complete(setID uint8) bool {
	return m.Count() >= SetSize(setID)
}
