package model

type User struct {
	ID        int64
	Username  string
	Email     string
	FirstName string
	LastName  string
}

// TokenPair is the credential pair returned by a successful login. Access is
// attached to every authenticated request; Refresh is kept for a future
// explicit re-login but is never exchanged automatically.
type TokenPair struct {
	Access  string
	Refresh string
}
