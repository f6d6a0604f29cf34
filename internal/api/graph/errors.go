package graph

import "errors"

// Public error set. These exact messages are the only failure detail that
// crosses the API boundary; everything else stays in the server logs. The
// activation and login messages are deliberately uninformative so callers
// cannot tell a missing account from a failed credential check.
var (
	errBadRequest   = errors.New("Bad Request")
	errUnauthorized = errors.New("Unauthorized")

	errMissingIDAndEmail = errors.New("Please provide either a valid ID or Email.")

	errPasswordNotComplex = errors.New("Password needs to be at least 8 characters with a mix of letters, numbers and symbols.")
	errPasswordMismatch   = errors.New("Please control your password and password confirmation and make sure they are valid.")
	errSignupFailed       = errors.New("Account signup failed. Please try again or contact support if the problem persists.")
	errActivationFailed   = errors.New("Account activation failed. Please try again or contact support if the problem persists.")
	errLoginFailed        = errors.New("Please make sure your account exists and is activated.")
)
