package utils

// Monetary amounts are carried as int64 minor units (cents) end to end.
// Integer arithmetic avoids the float rounding drift that matters for fees.

// PercentOf returns pct percent of amount in minor units, rounded half-up.
// 10% of 25000 ($250.00) is 2500 ($25.00); 10% of 25005 rounds 2500.5 up to 2501.
func PercentOf(amount int64, pct int) int64 {
	if amount <= 0 || pct <= 0 {
		return 0
	}
	raw := amount * int64(pct)
	return (raw + 50) / 100
}
