// Package http adapts serializer schemas to net/http.
//
// # Request
//
//	req := gohttp.NewRequest(r)
//
//	// Every input value: query, then body, then chi route params
//	in, err := req.Input()       // map[string]any
//
//	page := req.Query("page", "1")
//	id   := req.RouteParam("id")
//	req.IsJSON()
//
// # Response
//
//	res := gohttp.NewResponse(w)
//
//	res.JSON(200, data)           // raw JSON with status
//	res.Success(data)             // 200 {"data": ...}
//	res.Error(400, "bad input")   // {"message": "bad input"}
//	res.NotFound()                // 404 {"message": "Not found."}
//	res.ServerError()             // 500 {"message": "Server Error."}
//	res.ValidationError(fe)       // 422 {"message": ..., "field": ..., "kind": ...}
//
// # Middleware
//
// Validated runs a Serializer in front of a handler and hands the coerced
// values on through the request context:
//
//	s := serializer.New(schema)
//	router.With(gohttp.Validated(s)).Post("/signup", func(w http.ResponseWriter, r *http.Request) {
//	    gohttp.NewResponse(w).Success(gohttp.Data(r))
//	})
package http
