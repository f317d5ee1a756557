// Package router assembles the gin route table.
package router

import (
	"github.com/gin-gonic/gin"

	"farmgrocery/internal/app/guard"
	authhandler "farmgrocery/internal/feature/auth/transport/handler"
	farmhandler "farmgrocery/internal/feature/farms/transport/handler"
	producthandler "farmgrocery/internal/feature/products/transport/handler"
	"farmgrocery/internal/platform/http/handler"
	"farmgrocery/internal/platform/logger"
	"farmgrocery/internal/platform/metrics"
	"farmgrocery/internal/platform/session"
	"farmgrocery/internal/platform/view"
)

// Deps carries everything the route table composes: the session
// middleware, the metrics collector, the per-feature handlers, and the
// record loaders the ownership guards consult.
type Deps struct {
	Sessions    *session.Manager
	Metrics     *metrics.HTTPMetrics
	Auth        *authhandler.AuthHandler
	Farms       *farmhandler.FarmHandler
	Products    *producthandler.ProductHandler
	FarmLoad    guard.FarmFinder
	ProductLoad guard.ProductFinder
}

// NewRouter builds the application engine.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logger.Middleware(), d.Metrics.Middleware(), d.Sessions.Middleware())
	r.SetHTMLTemplate(view.Templates())

	loggedIn := guard.RequireLogin()
	farmAuthor := guard.RequireFarmAuthor(d.FarmLoad)
	productAuthor := guard.RequireProductAuthor(d.ProductLoad)

	// Platform
	r.GET("/healthz", handler.Health)
	r.GET("/metrics", metrics.Handler())
	r.GET("/home", handler.Home)

	// Farms
	r.GET("/farms", d.Farms.Index)
	r.GET("/farms/new", loggedIn, d.Farms.NewForm)
	r.POST("/farms", loggedIn, d.Farms.Create)
	r.GET("/farms/:id", d.Farms.Show)
	r.DELETE("/farms/:id", loggedIn, farmAuthor, d.Farms.Delete)
	r.GET("/farms/:id/products/new", loggedIn, farmAuthor, d.Products.NewForm)
	r.POST("/farms/:id/products", loggedIn, farmAuthor, d.Products.Create)

	// Products
	r.GET("/products", d.Products.Index)
	r.GET("/products/:id", d.Products.Show)
	r.GET("/products/:id/edit", loggedIn, productAuthor, d.Products.EditForm)
	r.PUT("/products/:id", loggedIn, productAuthor, d.Products.Update)
	r.DELETE("/products/:id", loggedIn, productAuthor, d.Products.Delete)

	// Users
	r.GET("/register", d.Auth.RegisterForm)
	r.POST("/register", d.Auth.Register)
	r.GET("/login", d.Auth.LoginForm)
	r.POST("/login", d.Auth.Login)
	r.GET("/logout", d.Auth.Logout)

	r.NoRoute(view.NotFound)

	return r
}
