package game

// Accrue converts elapsed wall-clock time into pending rewards at second
// granularity: incomePerSecond = TotalBaseDailyIncome / 86400, floored. The
// sub-second remainder of the daily rate is permanently lost, not carried;
// this is the conservative truncation choice among the historical variants.
//
// The accrual clock always advances to now, even when nothing accrued, so a
// second call with the same timestamp is a no-op. Every handler that changes
// income-affecting counters calls Accrue first, which makes the elapsed
// interval earn at the pre-change rate.
func Accrue(p *Player, now int64) error {
	elapsed, err := subI64(now, p.LastAccrualTS)
	if err != nil {
		return err
	}

	if elapsed > 0 && p.TotalBaseDailyIncome > 0 {
		incomePerSecond := p.TotalBaseDailyIncome / secondsPerDay
		earned, err := mulU64(incomePerSecond, uint64(elapsed))
		if err != nil {
			return err
		}
		pending, err := addU64(p.PendingRewards, earned)
		if err != nil {
			return err
		}
		p.PendingRewards = pending
	}

	p.LastAccrualTS = now
	return nil
}
