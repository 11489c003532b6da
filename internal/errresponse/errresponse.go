package errresponse

import (
	"net/http"

	"github.com/go-chi/render"
)

// StorageMessage is the fixed message reported for any store failure.
const StorageMessage = "Error connecting to database"

// ErrResponse renderer type for handling all sorts of errors.
type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	Message   string `json:"message"`         // user-level status message
	ErrorText string `json:"error,omitempty"` // underlying error, for debugging
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)

	return nil
}

func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		Message:        "Invalid request.",
		ErrorText:      err.Error(),
	}
}

func ErrRender(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusUnprocessableEntity,
		Message:        "Error rendering response.",
		ErrorText:      err.Error(),
	}
}

// ErrStorage is returned for every store failure. The raw error text is
// passed through without retry.
func ErrStorage(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusInternalServerError,
		Message:        StorageMessage,
		ErrorText:      err.Error(),
	}
}

var ErrNotFound = &ErrResponse{HTTPStatusCode: http.StatusNotFound, Message: "Resource not found."}
