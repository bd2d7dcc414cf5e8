// pep/middleware.go
package pep

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dev-rpatel/janus/util"
)

// ResourceAttributes extracts optional resource attributes (resource-owner,
// target-role) from the request at the guarded call site. A nil extractor
// means the action needs no resource attributes.
type ResourceAttributes func(c *gin.Context) map[string]string

// RequireAction is the guard form as gin middleware: the wrapped handlers
// run only when the policy decision for the named action is Permit. The
// caller identity must already be on the request context, placed there by
// the authentication middleware.
func (p *PEP) RequireAction(action string, resourceAttrs ResourceAttributes) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, role, ok := util.GetCallerFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		var attrs map[string]string
		if resourceAttrs != nil {
			attrs = resourceAttrs(c)
		}

		decision := p.Decide(c.Request.Context(), username, role, action, attrs)
		if !decision.Allowed {
			// The deny reason stays in the audit trail; callers only see
			// the generic rejection.
			c.JSON(http.StatusForbidden, gin.H{"error": "access denied by policy"})
			c.Abort()
			return
		}

		c.Next()
	}
}
