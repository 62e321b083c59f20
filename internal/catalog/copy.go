package catalog

import (
	"github.com/bebifresh/bebifresh-backend/pkg/enums"
	"github.com/bebifresh/bebifresh-backend/pkg/i18n"
)

// catalogCopy maps product copy keys to audience-registered taglines.
// Products reference a key through their copy_key column; unknown keys
// render no tagline.
var catalogCopy = i18n.Registry{
	"copy.alimentacion": {
		enums.AgeModeNinos:   "¡Ñam ñam! Comida rica para tu peque.",
		enums.AgeModeJovenes: "Nutrición pensada para los primeros años.",
		enums.AgeModeAdultos: "Alimentación infantil seleccionada por nuestro equipo.",
	},
	"copy.higiene": {
		enums.AgeModeNinos:   "¡Burbujas y cosquillas a la hora del baño!",
		enums.AgeModeAdultos: "Cuidado e higiene con ingredientes suaves.",
	},
	"copy.juguetes": {
		enums.AgeModeNinos:   "¡A jugar! Diversión segura para cada edad.",
		enums.AgeModeJovenes: "Juegos que acompañan cada etapa.",
		enums.AgeModeAdultos: "Juguetes certificados por rango de edad.",
	},
	"copy.paseo": {
		enums.AgeModeAdultos: "Todo para salir de paseo con seguridad.",
	},
	"copy.ropa": {
		enums.AgeModeNinos:   "Ropita cómoda para moverse sin parar.",
		enums.AgeModeAdultos: "Prendas de algodón para cada temporada.",
	},
	"copy.hogar": {
		enums.AgeModeAdultos: "Equipa el hogar para la llegada del bebé.",
	},
}

// Tagline resolves the product's audience copy, falling back to the adult
// register when the mode has no entry.
func Tagline(copyKey string, mode enums.AgeMode) string {
	if copyKey == "" {
		return ""
	}
	return i18n.Select(catalogCopy, copyKey, mode)
}
