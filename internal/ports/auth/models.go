package auth

// Claims es la identidad ya verificada del caller.
// UserID es el único campo que usa el guard de ownership.
type Claims struct {
	UserID string
	Email  string
}
