package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// Context keys set by RequireFirebaseUser.
const (
	CtxUID     = "firebase_uid"
	CtxEmail   = "email"
	CtxName    = "name"
	CtxPicture = "picture"
)

// Identity is the authenticated caller as described by their
// verified ID token.
type Identity struct {
	UID         string
	Email       string
	DisplayName string
	PhotoURL    string
}

// UserUID extracts the Firebase UID from the gin context.
func UserUID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxUID))
}

// CurrentIdentity collects the verified token claims from the gin
// context.
func CurrentIdentity(c *gin.Context) Identity {
	return Identity{
		UID:         UserUID(c),
		Email:       c.GetString(CtxEmail),
		DisplayName: c.GetString(CtxName),
		PhotoURL:    c.GetString(CtxPicture),
	}
}
