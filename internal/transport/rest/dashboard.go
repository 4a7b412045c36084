package rest

import (
	_ "embed"
	"net/http"
	"strconv"
)

//go:embed web/index.html
var dashboardHTML []byte

func serveDashboard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(dashboardHTML)))
	w.Write(dashboardHTML)
}
