package _routers

import (
	"net/http"

	"github.com/gorilla/mux"
)

func GetParam(name string, r *http.Request) string {
	vars := mux.Vars(r)
	if vars == nil {
		return ""
	}
	return vars[name]
}
