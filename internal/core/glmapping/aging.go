package glmapping

import "time"

// AgingBucket classifies an outstanding invoice by days past due.
type AgingBucket string

const (
	BucketCurrent AgingBucket = "CURRENT"
	Bucket1To30   AgingBucket = "1-30 DAYS"
	Bucket31To60  AgingBucket = "31-60 DAYS"
	Bucket61To90  AgingBucket = "61-90 DAYS"
	BucketOver90  AgingBucket = "90+ DAYS"
)

// DaysPastDue returns the whole number of days the due date precedes asOf.
// Fractional days truncate, so an invoice is not "1 day past due" until a
// full 24 hours after its due date. Future due dates yield values <= 0.
func DaysPastDue(dueDate, asOf time.Time) int {
	return int(asOf.Sub(dueDate).Hours() / 24)
}

// CalculateAgingBucket buckets an invoice by days past due as of the given
// date. Boundary values belong to the lower bucket: exactly 30 days past due
// is "1-30 DAYS", exactly 31 is "31-60 DAYS".
func CalculateAgingBucket(dueDate, asOf time.Time) AgingBucket {
	days := DaysPastDue(dueDate, asOf)
	switch {
	case days <= 0:
		return BucketCurrent
	case days <= 30:
		return Bucket1To30
	case days <= 60:
		return Bucket31To60
	case days <= 90:
		return Bucket61To90
	default:
		return BucketOver90
	}
}

// AgingBuckets returns all buckets in days-past-due order, for report
// rendering.
func AgingBuckets() []AgingBucket {
	return []AgingBucket{BucketCurrent, Bucket1To30, Bucket31To60, Bucket61To90, BucketOver90}
}
