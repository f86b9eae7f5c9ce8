package models

// Session is the authenticated user plus the bearer token held client-side.
// Token presence implies an attempt was made to resolve User; User may be
// stale relative to backend truth if the last revalidation failed offline.
type Session struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}
