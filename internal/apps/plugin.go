package apps

import (
	"github.com/gofiber/fiber/v2"
)

// Plugin defines the interface every feature module implements. Dependencies
// are handed to the plugin's constructor.
type Plugin interface {
	// ID returns the module identifier used in logs.
	ID() string

	// Models returns the list of GORM model pointers for AutoMigrate.
	Models() []interface{}

	// RegisterRoutes mounts module routes on the given Fiber group.
	// The group is already prefixed with /api and has JWT middleware applied.
	RegisterRoutes(router fiber.Router)
}
