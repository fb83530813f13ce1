// Package request
package request

import (
	"errors"
	"net/http"

	"github.com/go-playground/form/v4"
)

var ErrInvalidBody = errors.New("invalid request body")

type RequestDecoder interface {
	Decode(r *http.Request, req any) error
}

// FormDecoder binds an application/x-www-form-urlencoded body to a struct by
// its form tags. Pointer fields stay nil when their key is absent.
type FormDecoder struct {
	maxBytes int64
	decoder  *form.Decoder
}

func NewFormDecoder(maxBytes int64) RequestDecoder {
	return &FormDecoder{
		maxBytes: maxBytes,
		decoder:  form.NewDecoder(),
	}
}

func (d *FormDecoder) Decode(r *http.Request, req any) error {
	if d.maxBytes > 0 {
		r.Body = http.MaxBytesReader(nil, r.Body, d.maxBytes)
	}
	if err := r.ParseForm(); err != nil {
		return ErrInvalidBody
	}

	if err := d.decoder.Decode(req, r.PostForm); err != nil {
		return errors.Join(ErrInvalidBody, err)
	}
	return nil
}
