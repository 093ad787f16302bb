package domain

import "time"

// Role is the coarse-grained account type used by the access policy.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
)

// User models a registered account. PasswordHash and RefreshToken never leave
// the process: both are excluded from JSON.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Firstname    string    `json:"firstname" db:"firstname"`
	Lastname     string    `json:"lastname" db:"lastname"`
	Email        string    `json:"email" db:"email"`
	MobileNumber *string   `json:"mobilenumber,omitempty" db:"mobilenumber"`
	Avatar       *string   `json:"avatar,omitempty" db:"avatar"`
	PasswordHash string    `json:"-" db:"password"`
	Role         Role      `json:"role" db:"role"`
	RefreshToken *string   `json:"-" db:"refresh_token"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// FullName joins first and last name the way the storefront displays it.
func (u *User) FullName() string {
	if u.Firstname == "" {
		return u.Lastname
	}
	if u.Lastname == "" {
		return u.Firstname
	}
	return u.Firstname + " " + u.Lastname
}

// Address is a shipping address owned by a user. Orders copy the fields they
// need at placement time instead of referencing the row.
type Address struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Firstname string    `json:"firstname" db:"firstname"`
	Lastname  string    `json:"lastname" db:"lastname"`
	Street    string    `json:"street" db:"street"`
	City      string    `json:"city" db:"city"`
	State     string    `json:"state" db:"state"`
	Zipcode   string    `json:"zipcode" db:"zipcode"`
	Country   string    `json:"country" db:"country"`
	Phone     string    `json:"phone" db:"phone"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
