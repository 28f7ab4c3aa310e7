package game

import "encoding/binary"

// slotHashDataLen is the minimum length of the recent-slot-hash blob: an
// 8-byte slot number followed by a 32-byte hash.
const slotHashDataLen = 40

// CombineEntropy folds three sources into 32 bytes: the caller-supplied
// randomness, the recent slot hash (unknown to the caller at submission time),
// and the slot number and timestamp at inclusion.
//
// This is casual-game-grade randomness, not cryptographically secure: the
// submitter picks when to submit and supplies the candidate pool, so a
// sophisticated attacker can grind favourable conditions. Acceptable at these
// stakes; a verifiable randomness source would be the upgrade path.
func CombineEntropy(user [32]byte, slotHash [32]byte, slot uint64, ts int64) [32]byte {
	var out [32]byte
	for i := 0; i < 32; i++ {
		clock := byte(slot>>(i%8)) ^ byte(uint64(ts)>>(i%8))
		out[i] = user[i] ^ slotHash[i] ^ clock
	}
	return out
}

// slotHashFromData extracts the 32-byte hash from a recent-slot-hash blob.
func slotHashFromData(data []byte) ([32]byte, error) {
	var h [32]byte
	if len(data) < slotHashDataLen {
		return h, ErrSlotHashUnavailable
	}
	copy(h[:], data[8:40])
	return h, nil
}

// targetIndex picks a candidate from the first eight entropy bytes.
func targetIndex(entropy [32]byte, candidates int) int {
	return int(binary.LittleEndian.Uint64(entropy[0:8]) % uint64(candidates))
}

// stealRoll derives the outcome roll in [0,10000) from entropy bytes 8..16,
// independent of the bytes used for target selection.
func stealRoll(entropy [32]byte) uint64 {
	return binary.LittleEndian.Uint64(entropy[8:16]) % 10000
}
