package locale

// Spanish is the default storefront language.
var tableES = Table{
	"welcome": Table{
		"title":    "MegaBodega",
		"subtitle": "Tu app de delivery favorita",
		"features": Table{
			"catalog":  "Catálogo completo de productos",
			"payments": "Pagos seguros con tarjeta",
			"delivery": "Entrega rápida a domicilio",
			"tracking": "Seguimiento en tiempo real",
		},
	},
	"buttons": Table{
		"login":                "Iniciar Sesión",
		"register":             "Registrarse",
		"browseWithoutAccount": "Explorar sin cuenta",
	},
	"auth": Table{
		"loginTitle":      "Iniciar Sesión",
		"loginSubtitle":   "Bienvenido de vuelta",
		"registerTitle":   "Crear Cuenta",
		"registerSubtitle": "Únete hoy mismo",
		"email":           "Email",
		"password":        "Contraseña",
		"confirmPassword": "Confirmar contraseña",
		"fullName":        "Nombre completo",
		"phone":           "Teléfono",
		"loggingIn":       "Iniciando sesión...",
		"creatingAccount": "Creando cuenta...",
		"loginFailed":     "No se pudo iniciar sesión",
		"registerFailed":  "No se pudo crear la cuenta",
		"loggedOut":       "Sesión cerrada",
		"accountTypes": Table{
			"customer": "Cliente",
			"staff":    "Tienda",
			"courier":  "Repartidor",
		},
	},
	"catalog": Table{
		"products":   "Productos",
		"categories": "Categorías",
		"stores":     "Tiendas",
		"outOfStock": "Agotado",
		"noResults":  "Sin resultados",
	},
	"cart": Table{
		"title":             "Mi Carrito",
		"empty":             "Tu carrito está vacío",
		"emptyMessage":      "Agrega productos para comenzar",
		"continueShopping":  "Seguir comprando",
		"subtotal":          "Subtotal",
		"items":             "artículos",
		"proceedToCheckout": "Proceder al pago",
	},
	"checkout": Table{
		"title":           "Confirmar pedido",
		"deliveryAddress": "Dirección de entrega",
		"notes":           "Notas",
		"placeOrder":      "Realizar pedido",
		"orderPlaced":     "¡Pedido realizado!",
		"orderFailed":     "No se pudo realizar el pedido",
	},
	"orders": Table{
		"title":     "Mis pedidos",
		"available": "Pedidos disponibles",
		"accepted":  "Pedido aceptado",
		"status": Table{
			"pending":    "Pendiente",
			"confirmed":  "Confirmado",
			"preparing":  "Preparando",
			"ready":      "Listo",
			"delivering": "En camino",
			"delivered":  "Entregado",
			"cancelled":  "Cancelado",
		},
	},
	"languages": Table{
		"spanish":        "Español",
		"english":        "English",
		"russian":        "Русский",
		"selectLanguage": "Seleccionar idioma",
	},
	"common": Table{
		"back":    "Atrás",
		"next":    "Siguiente",
		"cancel":  "Cancelar",
		"confirm": "Confirmar",
		"loading": "Cargando...",
		"error":   "Error",
		"success": "Éxito",
	},
}
