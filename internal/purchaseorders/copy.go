package purchaseorders

import (
	"github.com/bebifresh/bebifresh-backend/pkg/enums"
	"github.com/bebifresh/bebifresh-backend/pkg/i18n"
)

const (
	copyEmptyLines = "purchase_order.empty_lines"
	copyInFlight   = "purchase_order.submit_in_flight"
)

// orderCopy holds the operator-facing messages of the order editor, keyed by
// audience register.
var orderCopy = i18n.Registry{
	copyEmptyLines: {
		enums.AgeModeNinos:   "¡Agrega al menos un producto antes de enviar!",
		enums.AgeModeJovenes: "Agrega al menos una línea antes de enviar el pedido.",
		enums.AgeModeAdultos: "El pedido debe incluir al menos una línea antes de enviarse.",
	},
	copyInFlight: {
		enums.AgeModeAdultos: "Ya hay un envío en curso para este borrador.",
	},
}
