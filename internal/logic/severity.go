package logic

// Transition maps the previous severity state and the current CO2 reading to
// the next severity state. Pure, deterministic, and total.
//
// Rules, in order:
//  1. EXPIRED is absorbing. The scheduler stops evaluating once it is
//     reached; returning EXPIRED here keeps the function total anyway.
//  2. CO2 at or above the expire threshold is EXPIRED regardless of the
//     previous state.
//  3. Recovery from PASS_OUT is hysteretic: once below the pass-out
//     threshold the state becomes RECOVERING rather than snapping straight
//     to a lower severity. The next tick buckets normally.
//  4. Otherwise the reading is bucketed against the thresholds. Bucket upper
//     bounds are exclusive: a reading exactly equal to a threshold falls
//     into the next more severe bucket.
func Transition(prev SeverityState, co2 int, t Thresholds) SeverityState {
	if prev == SeverityExpired {
		return SeverityExpired
	}
	if co2 >= t.Expire {
		return SeverityExpired
	}
	if prev == SeverityPassOut && co2 < t.PassOut {
		return SeverityRecovering
	}
	switch {
	case co2 < t.Stuffy:
		return SeverityNormal
	case co2 < t.OpenWindow:
		return SeverityStuffy
	case co2 < t.PassOut:
		return SeverityOpenWindow
	default:
		return SeverityPassOut
	}
}
