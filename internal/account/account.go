package account

import "errors"

var (
	ErrNotFound           = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("email already exists")
)

// Account is a B2B customer login. Permissions gate which product fields
// the storefront reveals, see the auth package for the known values.
type Account struct {
	ID          int      `json:"accountId"`
	Email       string   `json:"email"`
	Password    string   `json:"-"`
	CompanyName string   `json:"companyName"`
	Permissions []string `json:"permissions"`
	CreatedAt   string   `json:"createdAt,omitempty"`
}
