package domain

type ContextKey string

const UserContextKey ContextKey = "user"

// User is the authenticated principal reconstructed from JWT claims. Only
// admin users exist here; the rate endpoint itself is public.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
