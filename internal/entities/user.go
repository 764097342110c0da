package entities

// Profile is the authenticated user as returned by the upstream validate
// and login endpoints.
type Profile struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone,omitempty"`
	Perfil string `json:"perfil,omitempty"`
}

// Session holds the current credentials and user profile. Exactly one
// session is active per gateway instance; the token is also persisted so a
// restart can resume it.
type Session struct {
	Token     string
	User      Profile
	Validated bool
}
