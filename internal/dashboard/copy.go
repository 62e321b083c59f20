package dashboard

import (
	"github.com/bebifresh/bebifresh-backend/pkg/enums"
	"github.com/bebifresh/bebifresh-backend/pkg/i18n"
)

const copyHeadline = "dashboard.headline"

var dashboardCopy = i18n.Registry{
	copyHeadline: {
		enums.AgeModeNinos:   "¡Hola! Así va la tienda hoy.",
		enums.AgeModeJovenes: "Resumen de actividad de la tienda.",
		enums.AgeModeAdultos: "Resumen operativo de BebiFresh.",
	},
}
