package user

// Principal is the verified caller of an authenticated request.
type Principal struct {
	UserID string
	Email  string
	Admin  bool
}
