package reconcile

// paidStatus is the only transaction status that participates in rollups.
// The match is exact and case-sensitive as the source system emits it.
const paidStatus = "Paid"

// AggregateDonations computes per-identifier lifetime totals and the most
// recent paid transaction. A rollup exists only for identifiers with at
// least one paid transaction; identifiers without one are simply absent
// (never a zero row). Unparseable amounts are excluded from the total and
// unparseable dates from most-recent selection, without dropping the
// transaction from the other calculation.
//
// The most-recent scan walks transactions in table order and only replaces
// the current best on a strictly later date, so two paid transactions on
// the same maximum date resolve to the earlier row.
func AggregateDonations(txns []DonationTransaction) map[string]DonationRollup {
	rollups := make(map[string]DonationRollup)

	for _, txn := range txns {
		if CleanString(txn.Status) != paidStatus {
			continue
		}

		roll := rollups[txn.ID]

		amount, amountOK := ParseAmount(txn.Amount)
		if amountOK {
			roll.Total += amount
		}

		if date, ok := ParseDate(txn.Date); ok {
			if roll.Latest == nil || date.After(roll.Latest.Date) {
				latest := PaidDonation{Date: date}
				if amountOK {
					latest.Amount = amount
					latest.HasAmount = true
				}
				roll.Latest = &latest
			}
		}

		rollups[txn.ID] = roll
	}

	return rollups
}
