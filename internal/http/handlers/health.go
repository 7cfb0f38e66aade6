package handlers

import "net/http"

// HealthCheck reports liveness for load balancers.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSONStatus(w, http.StatusOK, map[string]string{"status": "ok"})
}
