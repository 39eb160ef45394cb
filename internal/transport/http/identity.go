package http

import (
	"net/http"

	"classquiz-service/internal/domain"
)

// IdentityResolver maps a request to the requester behind it. Token
// issuance and verification live outside this service; deployments sit
// behind a gateway that authenticates and forwards the resolved identity.
type IdentityResolver interface {
	Resolve(r *http.Request) domain.Requester
}

// HeaderIdentityResolver reads the identity the gateway forwards in
// trusted headers. An absent header yields an anonymous requester; the
// use cases decide whether anonymity is acceptable.
type HeaderIdentityResolver struct{}

func (HeaderIdentityResolver) Resolve(r *http.Request) domain.Requester {
	return domain.Requester{
		ID:   r.Header.Get("X-User-Id"),
		Role: domain.Role(r.Header.Get("X-User-Role")),
	}
}
