package internal

// Handler declares routes on a router.
//
// Example:
//
//	type AccountHandler struct {
//	    repo *repo.Repository[Account]
//	}
//
//	func (h *AccountHandler) Routes(r httpkit.Router) {
//	    r.GET("/accounts/{id}", h.show)
//	    r.POST("/accounts", h.create)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc is the signature for route handlers.
// Returning a non-nil error hands control to the error-normalization handler.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc to add cross-cutting concerns.
// Middleware may short-circuit by returning without calling next.
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler is the terminal boundary for errors returned from handlers.
// It must always produce a response and never re-raise.
type ErrorHandler func(Context, error) error
