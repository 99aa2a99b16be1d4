package structures

import "net/http"

type Route struct {
	Method  string
	Path    string
	Handler http.Handler
}

// Pattern is the net/http ServeMux pattern for the route. An empty method
// matches every method.
func (r Route) Pattern() string {
	if r.Method == "" {
		return r.Path
	}
	return r.Method + " " + r.Path
}
