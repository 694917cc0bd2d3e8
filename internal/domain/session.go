package domain

// Session is the identity carried by a signed browser cookie. A request is
// authenticated exactly when a valid token with a non-empty Email claim is
// presented; there is no server-side session state.
type Session struct {
	Email       string
	DisplayName string
}

// Authenticated reports whether the session carries an identity.
func (s *Session) Authenticated() bool {
	return s != nil && s.Email != ""
}
