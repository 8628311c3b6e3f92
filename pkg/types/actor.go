package types

// Actor is who performed a request, as recorded in audit logs and used for
// ownership defaults.
type Actor struct {
	UserID    uint
	Username  string
	Role      string
	IP        string
	UserAgent string
}
