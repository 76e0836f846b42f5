package services

import "github.com/teckbook/teckbook-backend/internal/apperrors"

var (
	ErrPostNotFound      = apperrors.New(apperrors.ErrNotFound, "POST_NOT_FOUND", "post not found")
	ErrAccountNotFound   = apperrors.New(apperrors.ErrNotFound, "ACCOUNT_NOT_FOUND", "account not found")
	ErrCommentNotFound   = apperrors.New(apperrors.ErrNotFound, "COMMENT_NOT_FOUND", "comment not found")
	ErrClassroomNotFound = apperrors.New(apperrors.ErrNotFound, "CLASSROOM_NOT_FOUND", "classroom not found")
	ErrSettingNotFound   = apperrors.New(apperrors.ErrNotFound, "SETTING_NOT_FOUND", "setting not found")

	ErrInvalidReason  = apperrors.New(apperrors.ErrInvalidArgument, "INVALID_REASON", "a reason of at most 1000 characters is required")
	ErrInvalidInput   = apperrors.New(apperrors.ErrInvalidArgument, "INVALID_INPUT", "invalid input")
	ErrInvalidRole    = apperrors.New(apperrors.ErrInvalidArgument, "INVALID_ROLE", "invalid role")
	ErrInvalidAction  = apperrors.New(apperrors.ErrInvalidArgument, "INVALID_ACTION", "invalid audit action")
	ErrWeakPassword   = apperrors.New(apperrors.ErrInvalidArgument, "WEAK_PASSWORD", "password must be at least 8 characters")
	ErrContentBlocked = apperrors.New(apperrors.ErrInvalidArgument, "CONTENT_BLOCKED", "content does not meet the community guidelines")
	ErrEmailTaken     = apperrors.New(apperrors.ErrIllegalTransition, "EMAIL_TAKEN", "email already registered")

	ErrAlreadyCensored     = apperrors.New(apperrors.ErrIllegalTransition, "ALREADY_CENSORED", "post is already censored")
	ErrNotCensored         = apperrors.New(apperrors.ErrIllegalTransition, "NOT_CENSORED", "post is not censored")
	ErrCannotModerateAdmin = apperrors.New(apperrors.ErrIllegalTransition, "CANNOT_MODERATE_ADMIN", "administrator accounts cannot be moderated")
	ErrAlreadySuspended    = apperrors.New(apperrors.ErrIllegalTransition, "ALREADY_SUSPENDED", "account is already suspended")
	ErrNotSuspended        = apperrors.New(apperrors.ErrIllegalTransition, "NOT_SUSPENDED", "account is not suspended")
	ErrNoStrikes           = apperrors.New(apperrors.ErrIllegalTransition, "NO_STRIKES", "account has no strikes to reset")
	ErrPostUnavailable     = apperrors.New(apperrors.ErrIllegalTransition, "POST_UNAVAILABLE", "post is not available for interaction")
	ErrCommentsDisabled    = apperrors.New(apperrors.ErrIllegalTransition, "COMMENTS_DISABLED", "comments are disabled for this post")
	ErrAlreadyLiked        = apperrors.New(apperrors.ErrIllegalTransition, "ALREADY_LIKED", "post already liked")
	ErrNotLiked            = apperrors.New(apperrors.ErrIllegalTransition, "NOT_LIKED", "post is not liked")

	ErrActorNotAdmin      = apperrors.New(apperrors.ErrPermissionDenied, "NOT_ADMINISTRATOR", "only active administrators can moderate")
	ErrAccountRestricted  = apperrors.New(apperrors.ErrPermissionDenied, "ACCOUNT_RESTRICTED", "account is suspended or inactive")
	ErrNotOwner           = apperrors.New(apperrors.ErrPermissionDenied, "NOT_OWNER", "only the author can change this content")
	ErrAdminOnly          = apperrors.New(apperrors.ErrPermissionDenied, "ADMIN_ONLY", "access denied: administrators only")
	ErrInvalidCredentials = apperrors.New(apperrors.ErrUnauthenticated, "INVALID_CREDENTIALS", "invalid email or password")
	ErrInvalidToken       = apperrors.New(apperrors.ErrUnauthenticated, "INVALID_TOKEN", "invalid or expired refresh token")
)
