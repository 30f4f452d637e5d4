/*
ledger.go - Payment ledger folds

PURPOSE:
  Small read-only helpers over the agreement's payment list. Only
  approved payments count toward the schedule; pending entries are
  money in flight and rejected entries never count.

SEE ALSO:
  - status.go: Uses ApprovedTotal to place the installment pointer
*/
package lending

// ApprovedTotal sums the approved payments, in minor units.
func ApprovedTotal(payments []Payment) int64 {
	var total int64
	for _, p := range payments {
		if p.Status == PaymentApproved {
			total += p.AmountMinorUnits
		}
	}
	return total
}

// PendingTotal sums the payments still awaiting review.
func PendingTotal(payments []Payment) int64 {
	var total int64
	for _, p := range payments {
		if p.Status == PaymentPending {
			total += p.AmountMinorUnits
		}
	}
	return total
}
