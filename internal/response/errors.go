package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrEmailNotVerified   ErrCode = "EMAIL_NOT_VERIFIED"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrUserNotFound       ErrCode = "USER_NOT_FOUND"
	ErrRefreshInvalid     ErrCode = "REFRESH_TOKEN_INVALID"
	ErrCookieMissing      ErrCode = "COOKIE_MISSING"
	ErrResetTokenInvalid  ErrCode = "RESET_TOKEN_INVALID"
	ErrVerifyTokenInvalid ErrCode = "VERIFY_TOKEN_INVALID"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrAdminOnly      ErrCode = "ADMIN_ONLY"
	ErrSuperadminOnly ErrCode = "SUPERADMIN_ONLY"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrWeakPassword   ErrCode = "WEAK_PASSWORD"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound       ErrCode = "NOT_FOUND"
	ErrConflict       ErrCode = "CONFLICT"
	ErrAlreadyApplied ErrCode = "ALREADY_APPLIED"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrMailDelivery ErrCode = "MAIL_DELIVERY_FAILED"
	ErrInternal     ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Invalid Credentials!"
	case ErrEmailNotVerified:
		return "Verify email!"
	case ErrTokenRequired:
		return "Authorization header is missing"
	case ErrTokenInvalid:
		return "Token is invalid or expired"
	case ErrUserNotFound:
		return "User not found"
	case ErrRefreshInvalid:
		return "Refresh token is invalid or revoked"
	case ErrCookieMissing:
		return "Refresh token cookie unavailable"
	case ErrResetTokenInvalid:
		return "Token expired or invalid!"
	case ErrVerifyTokenInvalid:
		return "Invalid or expired verification token."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrAdminOnly:
		return "Access denied. Only Admin or Super Admin allowed."
	case ErrSuperadminOnly:
		return "Only Super Admin allowed."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrWeakPassword:
		return "Password must be at least 6 characters long, contain at least one uppercase letter, and at least one special character"
	case ErrInvalidPayload:
		return "Invalid request payload."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found."
	case ErrConflict:
		return "Resource already exists."
	case ErrAlreadyApplied:
		return "You have already applied to this university."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrMailDelivery:
		return "Could not send email. Please try again later."
	case ErrInternal:
		return "Internal server error."
	default:
		return "An unexpected error occurred."
	}
}
