package credential

// Account represents one registered user. Records are created once at
// successful enrollment and never mutated afterwards.
type Account struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
	Salt         string `json:"salt"`
}

// valid reports whether a persisted record carries every field. Partial
// records are rejected whole on load rather than patched up.
func (a Account) valid() bool {
	return a.ID != "" && a.Name != "" && a.Email != "" && a.PasswordHash != "" && a.Salt != ""
}
