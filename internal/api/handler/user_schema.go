package handler

// --- Request types ---

type registerRequest struct {
	Firstname    string  `json:"firstname"    validate:"required"`
	Lastname     string  `json:"lastname"     validate:"required"`
	Email        string  `json:"email"        validate:"required,email"`
	MobileNumber *string `json:"mobilenumber" validate:"omitempty,min=7"`
	Avatar       *string `json:"avatar"       validate:"omitempty,url"`
	Password     string  `json:"password"     validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type addressRequest struct {
	Firstname string `json:"firstname" validate:"required"`
	Lastname  string `json:"lastname"  validate:"required"`
	Street    string `json:"street"    validate:"required"`
	City      string `json:"city"      validate:"required"`
	State     string `json:"state"     validate:"required"`
	Zipcode   string `json:"zipcode"   validate:"required"`
	Country   string `json:"country"   validate:"required"`
	Phone     string `json:"phone"     validate:"required"`
}
