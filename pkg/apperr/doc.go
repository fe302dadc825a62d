// Package apperr defines the classified application error taxonomy shared by
// all HTTP services built on httpkit.
//
// Every error carries an HTTP status code, a stable title used as a machine-readable
// discriminator in error bodies, a human-readable message, and optional debug detail
// that is exposed only when the service runs in debug mode.
//
// Handlers return taxonomy members directly:
//
//	func (h *Handler) show(c httpkit.Context) error {
//	    item, err := h.repo.Get(c, c.Param("id"))
//	    if err != nil {
//	        return apperr.NotFound(apperr.WithDebug(err.Error()))
//	    }
//	    return c.JSON(http.StatusOK, item)
//	}
//
// The error-normalization handler installed by the App translates them into JSON
// responses; unclassified errors fall back to the Server variant (status 520).
package apperr
