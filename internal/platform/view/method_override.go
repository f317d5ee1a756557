package view

import "net/http"

// MethodOverride lets HTML forms issue PUT and DELETE: a POST carrying a
// _method field is rewritten before routing. It wraps the router because
// the method must change before the mux matches a route.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			// ParseForm caches the parsed body, so handlers still see
			// every form field afterwards.
			if err := r.ParseForm(); err == nil {
				switch r.PostFormValue("_method") {
				case http.MethodPut, "put":
					r.Method = http.MethodPut
				case http.MethodDelete, "delete":
					r.Method = http.MethodDelete
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}
