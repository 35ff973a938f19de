package models

// Session is the authenticated state of the client: an opaque bearer token
// and the profile it was issued for. Token and User travel together; a
// session without either half is invalid.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

func (s Session) Valid() bool {
	return s.Token != "" && s.User.Username != ""
}
