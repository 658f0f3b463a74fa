package v1

import (
	"github.com/julender/julender/controllers/calendar_controller"
	"github.com/julender/julender/controllers/download_controller"
	"github.com/julender/julender/controllers/maintenance_controller"
	"github.com/julender/julender/controllers/thumbnail_controller"
)

type Handlers struct {
	Downloads   *download_controller.Controller
	Thumbnails  *thumbnail_controller.Controller
	Calendar    *calendar_controller.Controller
	Maintenance *maintenance_controller.Controller
}
