package automaton

// PHI_C64 Golden ratio bit mixer.
const PHI_C64 = uint64(0x9e3779b97f4a7c15)

// mix64 MurmurHash3算法中的64位最终混合步骤
func mix64(k uint64) uint64 {
	k ^= k >> 33
	k *= 0xff51afd7ed558ccd
	k ^= k >> 33
	k *= 0xc4ceb9fe1a85ec53
	k ^= k >> 33
	return k
}

// mixPhi spreads small sequential hashes before bucket masking.
func mixPhi(k uint64) uint64 {
	h := k * PHI_C64
	return h ^ (h >> 32)
}
