package server

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/newsdeskhq/newsdesk/internal/database"
	"github.com/newsdeskhq/newsdesk/internal/model"
	"github.com/newsdeskhq/newsdesk/internal/server/middlewares"
	"github.com/newsdeskhq/newsdesk/internal/storage"
)

// An IOC is an Inversion Of Control pattern used to init the server package.
type IOC struct {
	Version        string
	Database       database.Client
	Storage        storage.Storage
	NoRegistration bool
	// JWT params
	SigningKey          []byte
	TokenExpirationTime time.Duration
}

// EchoEngine instantiates the web server.
func EchoEngine(ctrl IOC) *echo.Echo {
	engine := echo.New()
	engine.Use(middleware.Recover())
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig))
	engine.Use(middleware.Gzip())

	engine.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "[${status}] ${method} ${uri} (${bytes_in}) ${latency_human}\n",
	}))
	engine.Binder = middlewares.NewBinder()
	// Error handler
	engine.HTTPErrorHandler = middlewares.HTTPErrorHandler

	engine.Pre(middleware.Rewrite(map[string]string{
		"/": "/version",
	}))

	////////////
	// Router //
	////////////

	router := engine.Group("")
	restricted := router.Group("")
	restricted.Use(middlewares.Authentication(ctrl.Database, ctrl.SigningKey))

	// generic handlers
	//
	router.GET("/version", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"version": ctrl.Version,
		})
	})

	//
	// user handlers
	//
	user := &user{
		db:         ctrl.Database,
		signingKey: ctrl.SigningKey,
		tokenTTL:   ctrl.TokenExpirationTime,
	}
	if !ctrl.NoRegistration {
		router.POST("/users", user.Create)
	}
	router.GET("/users", user.List)
	router.GET("/users/:username", user.Fetch)
	router.PATCH("/users/:username", user.Update)
	router.DELETE("/users/:username", user.Delete)
	router.POST("/auth/sign_in", user.Login)

	//
	// archive item handlers
	//
	item := &item{
		db: ctrl.Database,
	}
	restricted.GET("/archive", item.List)
	restricted.GET("/archive/:id", item.Fetch)
	restricted.PATCH("/archive/:id/spike", item.Spike)
	restricted.PATCH("/archive/:id/unspike", item.Unspike)

	//
	// ingest handlers
	//
	ingest := &ingest{
		db: ctrl.Database,
	}
	restricted.POST("/ingest", ingest.Fetch)

	//
	// media handlers
	//
	media := &media{
		db:      ctrl.Database,
		storage: ctrl.Storage,
	}
	restricted.POST("/media", media.Upload)
	restricted.GET("/media/:id", media.Download)
	restricted.DELETE("/media/:id", media.Delete)

	return engine
}

// PrintRoutes prints the Echo engine exposed routes.
func PrintRoutes(e *echo.Echo) {
	ignored := map[string]bool{
		"":   true,
		".":  true,
		"/*": true,
	}

	routes := e.Routes()
	sort.Slice(routes, func(i int, j int) bool {
		return routes[i].Path < routes[j].Path
	})

	fmt.Println("Routes:")
	for _, route := range routes {
		if ignored[route.Path] {
			continue
		}
		fmt.Printf("%6s %s\n", route.Method, route.Path)
	}
}

func currentUser(c echo.Context) *model.User {
	user, ok := c.Get(middlewares.CurrentUserContextKey).(*model.User)
	if ok {
		return user
	}
	return nil
}
