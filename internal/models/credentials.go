package models

// UserCredentials is one row of the "Login Info" sheet. Passwords are
// stored and compared as plain strings, matching the sheet contents.
type UserCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
