package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrSessionActive      ErrCode = "SESSION_ALREADY_ACTIVE"
	ErrSessionInvalidated ErrCode = "SESSION_INVALIDATED"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrTokenExpired       ErrCode = "TOKEN_EXPIRED"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden         ErrCode = "FORBIDDEN"
	ErrStudentAccessOnly ErrCode = "STUDENT_ACCESS_ONLY"
	ErrAdminAccessOnly   ErrCode = "ADMIN_ACCESS_ONLY"
	ErrSuperAdminOnly    ErrCode = "SUPERADMIN_ONLY"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound         ErrCode = "NOT_FOUND"
	ErrConflict         ErrCode = "CONFLICT"
	ErrDependencyExists ErrCode = "DEPENDENCY_EXISTS"

	// ─── Survey-specific ───────────────────────────────────────────────
	ErrSurveyNotAvailable   ErrCode = "SURVEY_NOT_AVAILABLE"
	ErrSurveyNotPublished   ErrCode = "SURVEY_NOT_PUBLISHED"
	ErrSurveyNotDraft       ErrCode = "SURVEY_NOT_DRAFT"
	ErrNotSurveyOwner       ErrCode = "NOT_SURVEY_OWNER"
	ErrNoQuestions          ErrCode = "NO_QUESTIONS"
	ErrNotEligible          ErrCode = "NOT_ELIGIBLE"
	ErrAlreadySubmitted     ErrCode = "ALREADY_SUBMITTED"
	ErrAnswerRequired       ErrCode = "ANSWER_REQUIRED"
	ErrInvalidAnswer        ErrCode = "INVALID_ANSWER"
	ErrSessionNotFound      ErrCode = "SESSION_NOT_FOUND"
	ErrSessionNotReady      ErrCode = "SESSION_NOT_READY"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Incorrect email/student number or password."
	case ErrSessionActive:
		return "You are already logged in on another device."
	case ErrSessionInvalidated:
		return "Your session has ended. Please log in again."
	case ErrTokenRequired:
		return "An authentication token is required."
	case ErrTokenInvalid:
		return "The authentication token is invalid."
	case ErrTokenExpired:
		return "The authentication token has expired."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "You do not have permission to access this resource."
	case ErrStudentAccessOnly:
		return "This resource is restricted to students."
	case ErrAdminAccessOnly:
		return "This resource is restricted to administrators."
	case ErrSuperAdminOnly:
		return "This action is restricted to platform administrators."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "The ID format is invalid."
	case ErrInvalidPayload:
		return "The request payload is invalid."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "The resource was not found."
	case ErrConflict:
		return "The resource already exists."
	case ErrDependencyExists:
		return "The data cannot be deleted because other data still depends on it."

	// ─── Survey-specific ───────────────────────────────────────────────
	case ErrSurveyNotAvailable:
		return "This survey is not currently available."
	case ErrSurveyNotPublished:
		return "This survey has not been published."
	case ErrSurveyNotDraft:
		return "This survey is not in DRAFT status."
	case ErrNotSurveyOwner:
		return "You are not the owner of this survey."
	case ErrNoQuestions:
		return "This survey has no questions."
	case ErrNotEligible:
		return "You are not part of this survey's target audience."
	case ErrAlreadySubmitted:
		return "You have already submitted a response to this survey."
	case ErrAnswerRequired:
		return "This question requires an answer before continuing."
	case ErrInvalidAnswer:
		return "The answer does not match the question."
	case ErrSessionNotFound:
		return "No active response session was found for this survey."
	case ErrSessionNotReady:
		return "The survey cannot be submitted before the last question."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
