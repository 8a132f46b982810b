package services

// User-visible form messages.
const (
	MsgUsernameRequired   = "Username is required"
	MsgEmailRequired      = "Email is required"
	MsgPhoneRequired      = "Phone number is required"
	MsgPasswordRequired   = "Password is required"
	MsgIdentifierRequired = "Username, email, or phone is required"

	MsgInvalidEmail = "Please enter a valid email address"
	MsgInvalidPhone = "Phone number should only contain digits"
	MsgWeakPassword = "Password must contain at least 8 characters, one number, and one special character"
	MsgUserExists   = "User with this username, email, or phone already exists"
	MsgInvalidLogin = "Invalid credentials. Please check your username/email/phone and password."
)
