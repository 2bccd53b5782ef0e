package hal

// The tick counter is 30 bits wide, so it wraps roughly every 18 minutes.
// All interval arithmetic must go through TicksDiff to stay wrap-safe.
const (
	tickBits = 30

	// TickPeriod is the modulus of Clock.NowMicros.
	TickPeriod uint64 = 1 << tickBits

	tickMask = TickPeriod - 1
)

// TicksDiff returns the signed difference a-b between two wrapped tick
// values, interpreting differences of up to half the period in either
// direction.
func TicksDiff(a, b uint64) int64 {
	d := int64(((a - b + TickPeriod/2) & tickMask)) - int64(TickPeriod/2)
	return d
}

// TicksAdd advances a wrapped tick value by delta microseconds.
func TicksAdd(t uint64, delta int64) uint64 {
	return (t + uint64(delta)) & tickMask
}
