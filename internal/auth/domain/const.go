// Package domain defines the authentication domain: sessions backed by opaque
// bearer tokens and one-time codes mailed to users.
package domain

// OTPPurpose scopes a one-time code to the flow that issued it.
type OTPPurpose string

const (
	// OTPPurposeEmailVerification confirms the address used at sign-up.
	OTPPurposeEmailVerification OTPPurpose = "email_verification"

	// OTPPurposeEmailChange confirms a new address before it replaces the current one.
	OTPPurposeEmailChange OTPPurpose = "email_change"
)

// OTPLength is the number of digits in a one-time code.
const OTPLength = 6
