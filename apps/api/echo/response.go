package echoapi

import "github.com/trezcool/clno/core"

// response is the body of every auth, upload and failed request.
type response struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	ID      int               `json:"id,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// setFieldErrors fills Errors, and Message with the first field error when unset.
func (r *response) setFieldErrors(flds []core.FieldError) {
	if len(flds) == 0 {
		return
	}
	r.Errors = make(map[string]string, len(flds))
	for _, f := range flds {
		r.Errors[f.Field] = f.Error
	}
	if r.Message == "" {
		r.Message = flds[0].Field + ": " + flds[0].Error
	}
}

func success(msg string, id ...int) response {
	r := response{Success: true, Message: msg}
	if len(id) > 0 {
		r.ID = id[0]
	}
	return r
}
