// Package guard implements the authorization predicates gating routes:
// logged-in, farm author, and product author. Each is a middleware that
// either passes through or short-circuits with a flash and a redirect.
package guard

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	farmentity "farmgrocery/internal/feature/farms/domain/entity"
	productentity "farmgrocery/internal/feature/products/domain/entity"
	"farmgrocery/internal/platform/session"
)

// Context keys for records the guards attach for downstream reuse,
// saving the handler a second fetch.
const (
	farmKey    = "guardFarm"
	productKey = "guardProduct"
)

// FarmFinder loads a farm for the ownership check.
type FarmFinder interface {
	Find(ctx context.Context, id uint) (*farmentity.Farm, error)
}

// ProductFinder loads a product for the ownership check.
type ProductFinder interface {
	Find(ctx context.Context, id uint) (*productentity.Product, error)
}

// RequireLogin denies anonymous requests with a redirect to the login
// page, remembering where the user was headed so login can return there.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if session.CurrentUser(c) == nil {
			if c.Request.Method == http.MethodGet {
				session.SetReturnTo(c, c.Request.URL.RequestURI())
			}
			session.Flash(c, "error", "You must be signed in first!")
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireFarmAuthor denies requests whose user does not own the farm in
// the route. A missing or malformed id is a denial, never a server error.
// On success the loaded farm is attached to the context.
func RequireFarmAuthor(farms FarmFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := ParseID(c.Param("id"))
		if err != nil {
			deny(c, "That farm does not exist!", "/farms")
			return
		}

		farm, err := farms.Find(c.Request.Context(), id)
		if err != nil {
			deny(c, "That farm does not exist!", "/farms")
			return
		}

		user := session.CurrentUser(c)
		if user == nil || !farm.OwnedBy(user.ID) {
			deny(c, "You do not have permission to do that!", "/farms/"+c.Param("id"))
			return
		}

		c.Set(farmKey, farm)
		c.Next()
	}
}

// RequireProductAuthor is the product-scoped counterpart of RequireFarmAuthor.
func RequireProductAuthor(products ProductFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := ParseID(c.Param("id"))
		if err != nil {
			deny(c, "That product does not exist!", "/products")
			return
		}

		product, err := products.Find(c.Request.Context(), id)
		if err != nil {
			deny(c, "That product does not exist!", "/products")
			return
		}

		user := session.CurrentUser(c)
		if user == nil || !product.OwnedBy(user.ID) {
			deny(c, "You do not have permission to do that!", "/products/"+c.Param("id"))
			return
		}

		c.Set(productKey, product)
		c.Next()
	}
}

func deny(c *gin.Context, message, location string) {
	session.Flash(c, "error", message)
	c.Redirect(http.StatusFound, location)
	c.Abort()
}

// FarmFromContext returns the farm attached by RequireFarmAuthor.
func FarmFromContext(c *gin.Context) *farmentity.Farm {
	if v, ok := c.Get(farmKey); ok {
		if f, ok := v.(*farmentity.Farm); ok {
			return f
		}
	}
	return nil
}

// ProductFromContext returns the product attached by RequireProductAuthor.
func ProductFromContext(c *gin.Context) *productentity.Product {
	if v, ok := c.Get(productKey); ok {
		if p, ok := v.(*productentity.Product); ok {
			return p
		}
	}
	return nil
}

// ParseID parses a route id parameter.
func ParseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
