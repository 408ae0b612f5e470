package dto

// Registration is the body of POST /api/public/auth/register.
type Registration struct {
	Username  string `json:"username" validate:"notblank,min=3,max=50"`
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"firstName" validate:"notblank"`
	LastName  string `json:"lastName" validate:"notblank"`
	Password  string `json:"password" validate:"required,min=8"`
}

// RegistrationResult is returned with 201 Created.
type RegistrationResult struct {
	Message  string `json:"message"`
	Username string `json:"username"`
}
