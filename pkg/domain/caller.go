package domain

// Caller identifies the principal invoking an operation. Every ledger
// operation receives it explicitly; there is no ambient identity.
type Caller string

// AnonymousCaller is the sentinel used for unauthenticated requests.
const AnonymousCaller Caller = "anonymous"

// IsAnonymous reports whether c carries no usable identity.
func (c Caller) IsAnonymous() bool {
	return c == "" || c == AnonymousCaller
}

func (c Caller) String() string {
	return string(c)
}
