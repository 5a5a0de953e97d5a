package mailbox

import "fmt"

// ConnectionError marks a mailbox failure at the connection level. Once a
// session returns one it is broken and no further operations will succeed.
type ConnectionError struct {
	Op    string
	Cause error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("mailbox connection failed during %s: %v", e.Op, e.Cause)
}

func (e *ConnectionError) Unwrap() error {
	return e.Cause
}

// AuthError marks a rejected login. The credentials are wrong or the
// provider requires an app password.
type AuthError struct {
	User  string
	Cause error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("mailbox authentication failed for %s: %v", e.User, e.Cause)
}

func (e *AuthError) Unwrap() error {
	return e.Cause
}
