package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/km-arc/go-serializer/framework/serializer"
)

type dataKey struct{}

// Validated guards next with s. The request Input is validated with
// s.Validate; on success the coerced values are stored on the request
// context for Data. Unreadable input gets 400, rejected input gets 422.
//
//	r.With(gohttp.Validated(s)).Post("/signup", func(w http.ResponseWriter, r *http.Request) {
//	    data := gohttp.Data(r)
//	})
func Validated(s *serializer.Serializer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res := NewResponse(w)
			in, err := NewRequest(r).Input()
			if err != nil {
				res.Error(http.StatusBadRequest, err.Error())
				return
			}
			data, err := s.Validate(in)
			if err != nil {
				var fe *serializer.FieldError
				if !errors.As(err, &fe) {
					res.ServerError()
					return
				}
				res.ValidationError(fe)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), dataKey{}, data)))
		})
	}
}

// Data returns the values stored by Validated, or nil outside of it.
func Data(r *http.Request) map[string]any {
	data, _ := r.Context().Value(dataKey{}).(map[string]any)
	return data
}
