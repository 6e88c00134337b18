package domain

import "errors"

// Common domain errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrDuplicateEntry = errors.New("duplicate entry")
)

// Affiliate errors
var (
	ErrAffiliateNotFound = errors.New("affiliate not found")
	ErrDuplicateDocument = errors.New("document number already exists")
	ErrInactiveAffiliate = errors.New("affiliate is inactive and cannot apply for credit")
)

// Credit application errors
var (
	ErrApplicationNotFound   = errors.New("credit application not found")
	ErrApplicationNotPending = errors.New("application has already been evaluated")
	ErrEvaluationRequired    = errors.New("application has no risk evaluation to decide on")
)

// Risk central errors
var (
	ErrRiskCentralUnavailable = errors.New("risk central service unavailable")
)
