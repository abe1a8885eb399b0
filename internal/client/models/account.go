package models

// Account identifies a registered user. Email is the unique identifier;
// the password never travels inside this struct.
type Account struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}
