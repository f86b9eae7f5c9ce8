package models

// Role values assigned by the backend.
const (
	RoleCustomer = "customer"
	RoleProvider = "provider"
	RoleAdmin    = "admin"
)

// User represents the authenticated account as returned by the backend.
// Profession is only set for providers; Phone and Address are optional.
type User struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Profession string `json:"profession,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Address    string `json:"address,omitempty"`
	Joined     string `json:"joined,omitempty"`
}

// ProfileUpdate carries client-local profile edits that get shallow-merged
// into the cached user. There is no backend round-trip for these.
type ProfileUpdate struct {
	Name       string `json:"name,omitempty"`
	Email      string `json:"email,omitempty"`
	Profession string `json:"profession,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Address    string `json:"address,omitempty"`
}

// Merge applies a shallow profile update, leaving zero-valued fields untouched.
func (u *User) Merge(updates ProfileUpdate) {
	if updates.Name != "" {
		u.Name = updates.Name
	}
	if updates.Email != "" {
		u.Email = updates.Email
	}
	if updates.Profession != "" {
		u.Profession = updates.Profession
	}
	if updates.Phone != "" {
		u.Phone = updates.Phone
	}
	if updates.Address != "" {
		u.Address = updates.Address
	}
}
