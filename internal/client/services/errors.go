package services

import "errors"

// Input validation errors. They are shown to the user verbatim.
var (
	ErrInvalidEmail     = errors.New("please enter a valid email address")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	ErrPasswordRequired = errors.New("please enter your password")
	ErrNameRequired     = errors.New("please enter your name")
	ErrPartnerRequired  = errors.New("please enter your partner's name")
	ErrInvalidDate      = errors.New("please enter a valid date, e.g. 2023-06-15")
	ErrNotSignedIn      = errors.New("not signed in")
	ErrWizardFinished   = errors.New("setup is already complete")
)

// MinPasswordLength matches the server rule.
const MinPasswordLength = 6
