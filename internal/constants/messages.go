package constants

// User-facing response messages. Clients match on some of these strings, so
// keep them stable.
const (
	MsgRegistered          = "Registered successfully."
	MsgLoggedIn            = "Login successfully."
	MsgLoggedOut           = "Successfully logged out."
	MsgSomethingWentWrong  = "Something went wrong, please try again."
	MsgCredentialsMismatch = "Email & password do not match."
	MsgPasswordMismatch    = "Email or Password do not match."
	MsgAccountBlocked      = "Your account is blocked, Please contact Store Manager."
	MsgDeviceTokenNotSaved = "Could not save device token."
	MsgEmailInvalid        = "Email Address is invalid."
	MsgInvalidPayload      = "The given data was invalid."

	// Bearer middleware
	MsgTokenMissing = "Authorization Token not found."
	MsgTokenInvalid = "Token is Invalid."
)

// Validation rule messages.
const (
	MsgNameRequired        = "The name field is required."
	MsgNameBetween         = "The name must be between 2 and 100 characters."
	MsgEmailRequired       = "The email field is required."
	MsgEmailFormat         = "The email must be a valid email address."
	MsgEmailTaken          = "The email has already been taken."
	MsgEmailMax            = "The email must not be greater than 50 characters."
	MsgPasswordRequired    = "The password field is required."
	MsgPasswordString      = "The password must be a string."
	MsgPasswordMin         = "The password must be at least 6 characters."
	MsgDeviceTokenRequired = "The device token field is required."
	MsgDeviceTypeRequired  = "The device type field is required."
	MsgDeviceTypeInvalid   = "The selected device type is invalid."
)
