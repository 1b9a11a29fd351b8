package handler

import (
	"net/http"

	"clinic-scheduler/internal/delivery/http/middleware"
)

// subjectFromRequest reads the authenticated subject placed in the request
// context by the auth middleware. Empty when the route is unauthenticated.
func subjectFromRequest(r *http.Request) string {
	subject, _ := middleware.GetSubjectFromContext(r.Context())
	return subject
}
