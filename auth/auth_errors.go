package auth

// Messages returned to the caller. Username and password failures are
// reported separately.
const (
	MsgRegistered         = "User registered successfully"
	MsgLoggedIn           = "Login successful"
	MsgLoggedOut          = "Logout successful"
	MsgProtectedGranted   = "Protected route access granted"
	MsgUnauthorized       = "Unauthorized"
	MsgMissingCredentials = "Missing credentials"
	MsgIncorrectUsername  = "Incorrect username."
	MsgIncorrectPassword  = "Incorrect password."
)
