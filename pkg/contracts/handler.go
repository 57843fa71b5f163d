package contracts

import (
	"github.com/julienschmidt/httprouter"
)

// Handler is implemented by every service's HTTP handler bundle.
type Handler interface {
	RegisterRoutes(router *httprouter.Router)
}
