package entity

// Store is a franchise location. Read-only for this service.
type Store struct {
	ID   int64
	Code string
	Name string
}
