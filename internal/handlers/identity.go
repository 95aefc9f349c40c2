package handlers

import (
	"net/http"

	"github.com/revuo/company-reviews/internal/models"
)

// Authentication lives upstream (gateway / auth service). By the time a
// request reaches this service the caller is verified and described by
// these headers; we only read them.
const (
	headerUserID   = "X-User-Id"
	headerUserName = "X-User-Name"
	headerAvatar   = "X-User-Avatar"
)

func identityFromRequest(r *http.Request) (models.UserPublic, bool) {
	id := r.Header.Get(headerUserID)
	if id == "" {
		return models.UserPublic{}, false
	}
	return models.UserPublic{
		ID:       id,
		FullName: r.Header.Get(headerUserName),
		Avatar:   r.Header.Get(headerAvatar),
	}, true
}
