package testutil

import "go.mongodb.org/mongo-driver/bson"

// ValidContentDoc construye un documento de perfil mínimo pero completo que
// pasa la validación estricta del esquema. Los tests lo clonan y mutan lo que
// necesiten romper.
func ValidContentDoc() bson.M {
	return bson.M{
		"settings": bson.M{
			"theme":                "light",
			"enableDarkModeToggle": true,
			"defaultLanguage":      "es",
			"languages":            bson.A{"es", "en"},
			"entityType":           "firm",
		},
		"styling": bson.M{
			"light": bson.M{
				"primaryColor":    "#1a2b3c",
				"secondaryColor":  "#c0a062",
				"backgroundColor": "#ffffff",
				"textPrimary":     "#111111",
			},
			"dark": bson.M{
				"primaryColor":    "#c0a062",
				"secondaryColor":  "#1a2b3c",
				"backgroundColor": "#0b0b0b",
				"textPrimary":     "#eeeeee",
			},
			"fontFamily": "Lora",
			"fontSize":   bson.M{"base": "16px", "heading": "32px"},
		},
		"analytics": bson.M{
			"visitorCount":     0,
			"visitorLocations": bson.A{},
			"pageClicks": bson.M{
				"hero": 0, "services": 0, "team": 0,
				"cases": 0, "contact": 0, "experience": 0,
			},
			"contactClicks": bson.M{
				"whatsapp": 0, "email": 0, "phone": 0,
			},
		},
		"content": bson.M{
			"es": bson.M{
				"header": bson.M{
					"logoText": "Andea Legal",
					"menuItems": bson.A{
						bson.M{"label": "Inicio", "anchor": "#inicio"},
					},
				},
				"hero": bson.M{
					"backgroundImage": "hero-fondo",
					"title":           "Defensa legal con experiencia",
					"subtitle":        "Más de 20 años acompañando a nuestros clientes",
				},
				"about": bson.M{
					"title":   "Nosotros",
					"mission": "Firma especializada en derecho corporativo.",
				},
			},
		},
	}
}
