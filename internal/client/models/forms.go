package models

// RegisterForm carries the free-text sign-up fields as typed by the user.
type RegisterForm struct {
	Username string
	Email    string
	Phone    string
	Password string
}

// Record converts the form into the record that will be stored. Values are
// kept exactly as entered.
func (f RegisterForm) Record() UserRecord {
	return UserRecord{
		Username: f.Username,
		Email:    f.Email,
		Phone:    f.Phone,
		Password: f.Password,
	}
}

// Credentials is the sign-in form. Identifier may be a username, an email or
// a phone number.
type Credentials struct {
	Identifier string
	Password   string
	RememberMe bool
}

// AuthResult is the outcome of an authentication attempt. User is set only
// when Success is true; Errors is empty on success.
type AuthResult struct {
	Success bool
	User    *UserRecord
	Errors  FieldErrors
}
