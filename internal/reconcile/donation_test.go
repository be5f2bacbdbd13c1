package reconcile

import (
	"testing"
	"time"
)

func txn(id, status, amount, date string, index int) DonationTransaction {
	return DonationTransaction{ID: id, Status: status, Amount: amount, Date: date, Index: index}
}

func TestAggregateDonationsFiltersToPaid(t *testing.T) {
	rollups := AggregateDonations([]DonationTransaction{
		txn("1", "Paid", "100", "2021-01-01", 0),
		txn("1", "Pending", "900", "2021-02-01", 1),
		txn("1", "paid", "900", "2021-02-01", 2), // case-sensitive: not Paid
		txn("2", "Refunded", "50", "2021-01-01", 3),
	})

	roll, ok := rollups["1"]
	if !ok {
		t.Fatal("identifier 1 should have a rollup")
	}
	if roll.Total != 100 {
		t.Errorf("total = %v, want 100", roll.Total)
	}
	if _, ok := rollups["2"]; ok {
		t.Error("identifier 2 has no paid transactions, rollup must be absent not zero")
	}
}

func TestAggregateDonationsNoPaidMeansAbsent(t *testing.T) {
	rollups := AggregateDonations([]DonationTransaction{
		txn("9", "Pending", "10", "2021-01-01", 0),
	})
	if len(rollups) != 0 {
		t.Errorf("rollups = %v, want none", rollups)
	}
}

func TestAggregateDonationsMostRecent(t *testing.T) {
	rollups := AggregateDonations([]DonationTransaction{
		txn("1", "Paid", "10", "2021-01-01", 0),
		txn("1", "Paid", "20", "2023-06-01", 1),
		txn("1", "Paid", "30", "2022-01-01", 2),
	})

	roll := rollups["1"]
	if roll.Total != 60 {
		t.Errorf("total = %v, want 60", roll.Total)
	}
	if roll.Latest == nil {
		t.Fatal("latest should be set")
	}
	if roll.Latest.Amount != 20 {
		t.Errorf("latest amount = %v, want 20", roll.Latest.Amount)
	}
	if !roll.Latest.Date.Equal(time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("latest date = %v", roll.Latest.Date)
	}
}

func TestAggregateDonationsTieKeepsEarlierRow(t *testing.T) {
	rollups := AggregateDonations([]DonationTransaction{
		txn("1", "Paid", "111", "2022-05-05", 0),
		txn("1", "Paid", "222", "2022-05-05", 1),
	})
	if got := rollups["1"].Latest.Amount; got != 111 {
		t.Errorf("latest amount = %v, want 111 (table order breaks date ties)", got)
	}
}

func TestAggregateDonationsUnparseableAmount(t *testing.T) {
	rollups := AggregateDonations([]DonationTransaction{
		txn("1", "Paid", "oops", "2023-01-01", 0),
		txn("1", "Paid", "40", "2021-01-01", 1),
	})

	roll := rollups["1"]
	if roll.Total != 40 {
		t.Errorf("total = %v, want 40 (unparseable amount excluded)", roll.Total)
	}
	// The bad-amount transaction still wins most-recent on date; its amount
	// is just absent.
	if roll.Latest == nil || roll.Latest.HasAmount {
		t.Errorf("latest = %+v, want date-only entry", roll.Latest)
	}
}

func TestAggregateDonationsUnparseableDate(t *testing.T) {
	rollups := AggregateDonations([]DonationTransaction{
		txn("1", "Paid", "25", "when?", 0),
	})

	roll, ok := rollups["1"]
	if !ok {
		t.Fatal("rollup should exist: amounts still sum")
	}
	if roll.Total != 25 {
		t.Errorf("total = %v, want 25", roll.Total)
	}
	if roll.Latest != nil {
		t.Errorf("latest = %+v, want nil (no parseable dates)", roll.Latest)
	}
}
