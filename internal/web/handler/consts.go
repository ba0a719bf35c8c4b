package handler

const (
	// RootPath is the root path of a route group.
	RootPath = "/"

	// ErrNilACSFatalLogMsg is used if the app, cfg or svc pointer is nil.
	ErrNilACSFatalLogMsg = "app, cfg or svc is nil"

	// LocalsAccount is the fiber.Locals key holding the authenticated account.
	LocalsAccount = "CurrentAccount"

	// LocalsToken is the fiber.Locals key holding the presented session token.
	LocalsToken = "SessionToken"
)
