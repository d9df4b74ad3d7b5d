package service

import "errors"

// Sentinel errors returned across the service layer. Handlers map these to
// HTTP status codes; everything else is treated as an internal error.
var (
	ErrProfileRequired      = errors.New("farmer profile is required")
	ErrProfileNotFound      = errors.New("farmer profile not found")
	ErrTaskNotFound         = errors.New("task not found")
	ErrInvalidTransition    = errors.New("invalid task status transition")
	ErrPostNotFound         = errors.New("post not found")
	ErrZoneNotFound         = errors.New("irrigation zone not found")
	ErrReportNotFound       = errors.New("report not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrCropNotFound         = errors.New("crop not found in catalog")
	ErrInvalidOTP           = errors.New("invalid or expired OTP")
	ErrEmptyContent         = errors.New("content must not be empty")
)
