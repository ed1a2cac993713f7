package subscription

// Status mirrors the billing provider's subscription lifecycle.
type Status string

const (
	StatusActive   Status = "active"
	StatusCanceled Status = "canceled"
	StatusPastDue  Status = "past_due"
	StatusUnpaid   Status = "unpaid"
	StatusTrialing Status = "trialing"
)

var validStatuses = map[Status]bool{
	StatusActive:   true,
	StatusCanceled: true,
	StatusPastDue:  true,
	StatusUnpaid:   true,
	StatusTrialing: true,
}

func (s Status) IsValid() bool {
	return validStatuses[s]
}

func (s Status) String() string {
	return string(s)
}
