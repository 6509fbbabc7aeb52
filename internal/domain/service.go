package domain

// Service is an entry of the shop's service menu
type Service struct {
	Key             string
	Name            string
	DurationMinutes int
}
