// Package routing wraps chi with the application's middleware and connects
// HTTP requests to container scopes.
//
// # Router
//
//	r := routing.New(log)
//	r.Get("/users/{id}", show)
//	r.Prefix("/api/v1", func(api *routing.Router) {
//	    api.Post("/carts", create)
//	})
//	r.Mount("/metrics", collector.Handler())
//
// Every router logs one line per request through zap and recovers panics.
//
// # Request scopes
//
// Scoped opens one container scope per request. Handlers resolve scoped
// services from the request; the listed keys are evicted when the handler
// returns.
//
//	r.Group(func(api *routing.Router) {
//	    api.Middleware(routing.Scoped(g, log, "X-Request-ID", container.KeyOf[*Cart]()))
//	    api.Get("/cart", func(w http.ResponseWriter, req *http.Request) {
//	        cart, err := routing.Resolve[*Cart](req)
//	        if err != nil {
//	            routing.NewResponse(w).Fail(err)
//	            return
//	        }
//	        routing.NewResponse(w).Success(cart)
//	    })
//	})
//
// # Response
//
//	res := routing.NewResponse(w)
//	res.Success(v)                       // 200 {"data": v}
//	res.Created(v)                       // 201 {"data": v}
//	res.NoContent()                      // 204
//	res.NotFound()                       // 404 {"message": "Not found."}
//	res.Fail(err)                        // 400 for bad build arguments, else 500
package routing
