package constant

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"

	DefaultUserRole = RoleUser

	// UnknownCountry is stored when the origin country cannot be resolved.
	UnknownCountry = "Unknown"

	// EmailClaim carries the account email next to the standard subject.
	EmailClaim = "userEmailId"

	// LocalsRequesterEmail is the fiber locals key set by the bearer middleware.
	LocalsRequesterEmail = "requesterEmail"
)

// Outcome status codes.
const (
	StatusSuccess = 1
	StatusFail    = 0
	StatusError   = -1
)

// Outcome messages returned to API callers.
const (
	MsgSuccess       = "Success"
	MsgSuccessLower  = "success"
	MsgFail          = "Fail"
	MsgFailLower     = "fail"
	MsgRegistered    = "User registered successfully!"
	MsgEmailInUse    = "Email already in use. Please use a different email."
	MsgInvalidLogin  = "Invalid email or password"
	MsgUserDeleted   = "User deleted successfully."
	MsgUserNotFound  = "User not found."
	MsgDeleteDenied  = "Access denied. Only admin users can delete accounts."
	MsgListDenied    = "Access denied. Only admin users can fetch all users."
	MsgInvalidInput  = "invalid input"
	MsgUnauthorized  = "missing or invalid bearer token"
	MsgRegisterError = "An error occurred during registration."
	MsgLoginError    = "An error occurred during login"
	MsgDeleteError   = "An error occurred while deleting the user."
	MsgListError     = "An error occurred while fetching users."
)
