package models

import "github.com/golang-jwt/jwt/v4"

// AdminDisplayName is the fixed label for the reserved system administrator identity.
const AdminDisplayName = "Admin"

// FallbackDisplayName is returned when a display name cannot be resolved. It is also
// the placeholder the read-time backfill looks for in cached author names.
const FallbackDisplayName = "Community Member"

// Principal is the authenticated caller. It is produced by the external auth layer
// and trusted as pre-verified; this core never makes authorization decisions beyond
// ownership checks against Principal.ID.
type Principal struct {
	ID                uint   `json:"id"`
	Name              string `json:"name"`
	CommunityLocation string `json:"community_location"`
	IsAdmin           bool   `json:"is_admin"`
}

// Community returns the principal's community partition, defaulting to "General"
// when the auth layer supplied no location attribute.
func (p Principal) Community() string {
	if p.CommunityLocation == "" {
		return "General"
	}
	return p.CommunityLocation
}

// PrincipalClaims are the token claims the upstream auth layer issues for a principal.
type PrincipalClaims struct {
	UserID    uint   `json:"user_id"`
	Name      string `json:"name"`
	Community string `json:"community"`
	IsAdmin   bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// Principal converts the verified claims into a Principal value.
func (c *PrincipalClaims) Principal() Principal {
	return Principal{
		ID:                c.UserID,
		Name:              c.Name,
		CommunityLocation: c.Community,
		IsAdmin:           c.IsAdmin,
	}
}
