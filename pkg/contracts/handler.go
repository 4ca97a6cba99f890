// Package contracts defines the wiring points between the application shell
// and the domain handlers.
package contracts

import "github.com/julienschmidt/httprouter"

// Handler is implemented by every domain handler (facilities, bookings) that
// mounts routes on the shared router.
type Handler interface {
	RegisterRoutes(*httprouter.Router)
}
