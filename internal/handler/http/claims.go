package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
)

var errNoOrgClaim = errors.New("token has no organization claim")

// orgIDFromRequest pulls the organization scope out of the verified
// token. AuthRequired guarantees the claim exists on protected routes.
func orgIDFromRequest(r *http.Request) (string, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", err
	}

	orgID, ok := claims["org_id"].(string)
	if !ok || orgID == "" {
		return "", errNoOrgClaim
	}

	return orgID, nil
}
