package providers

import (
	"livevote/internal/structures"
	"net/http"
)

type RouterProviderInterface interface {
	Handle(method, path string, handler http.Handler)
	Get(path string, handler http.HandlerFunc)
	Post(path string, handler http.HandlerFunc)
	Put(path string, handler http.HandlerFunc)
	Delete(path string, handler http.HandlerFunc)
	Routes() []structures.Route
	Mount(mux *http.ServeMux)
}

// RouterProvider collects routes in registration order. Method matching is
// left to ServeMux, which answers 405 with an Allow header.
type RouterProvider struct {
	routes []structures.Route
}

func (rp *RouterProvider) Handle(method, path string, handler http.Handler) {
	rp.routes = append(rp.routes, structures.Route{Method: method, Path: path, Handler: handler})
}

func (rp *RouterProvider) Get(path string, handler http.HandlerFunc) {
	rp.Handle(http.MethodGet, path, handler)
}

func (rp *RouterProvider) Post(path string, handler http.HandlerFunc) {
	rp.Handle(http.MethodPost, path, handler)
}

func (rp *RouterProvider) Put(path string, handler http.HandlerFunc) {
	rp.Handle(http.MethodPut, path, handler)
}

func (rp *RouterProvider) Delete(path string, handler http.HandlerFunc) {
	rp.Handle(http.MethodDelete, path, handler)
}

func (rp *RouterProvider) Routes() []structures.Route {
	return rp.routes
}

func (rp *RouterProvider) Mount(mux *http.ServeMux) {
	for _, route := range rp.routes {
		mux.Handle(route.Pattern(), route.Handler)
	}
}

func NewRouterProvider() RouterProviderInterface {
	return &RouterProvider{}
}
