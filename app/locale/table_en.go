package locale

var tableEN = Table{
	"welcome": Table{
		"title":    "MegaBodega",
		"subtitle": "Your favorite delivery app",
		"features": Table{
			"catalog":  "Full product catalog",
			"payments": "Secure card payments",
			"delivery": "Fast home delivery",
			"tracking": "Real-time tracking",
		},
	},
	"buttons": Table{
		"login":                "Sign In",
		"register":             "Sign Up",
		"browseWithoutAccount": "Browse without account",
	},
	"auth": Table{
		"loginTitle":      "Sign In",
		"loginSubtitle":   "Welcome back",
		"registerTitle":   "Create Account",
		"registerSubtitle": "Join us today",
		"email":           "Email",
		"password":        "Password",
		"confirmPassword": "Confirm password",
		"fullName":        "Full name",
		"phone":           "Phone",
		"loggingIn":       "Signing in...",
		"creatingAccount": "Creating account...",
		"loginFailed":     "Could not sign in",
		"registerFailed":  "Could not create account",
		"loggedOut":       "Signed out",
		"accountTypes": Table{
			"customer": "Customer",
			"staff":    "Store",
			"courier":  "Courier",
		},
	},
	"catalog": Table{
		"products":   "Products",
		"categories": "Categories",
		"stores":     "Stores",
		"outOfStock": "Out of stock",
		"noResults":  "No results",
	},
	"cart": Table{
		"title":             "My Cart",
		"empty":             "Your cart is empty",
		"emptyMessage":      "Add products to get started",
		"continueShopping":  "Continue shopping",
		"subtotal":          "Subtotal",
		"items":             "items",
		"proceedToCheckout": "Proceed to checkout",
	},
	"checkout": Table{
		"title":           "Confirm order",
		"deliveryAddress": "Delivery address",
		"notes":           "Notes",
		"placeOrder":      "Place order",
		"orderPlaced":     "Order placed!",
		"orderFailed":     "Could not place the order",
	},
	"orders": Table{
		"title":     "My orders",
		"available": "Available orders",
		"accepted":  "Order accepted",
		"status": Table{
			"pending":    "Pending",
			"confirmed":  "Confirmed",
			"preparing":  "Preparing",
			"ready":      "Ready",
			"delivering": "On the way",
			"delivered":  "Delivered",
			"cancelled":  "Cancelled",
		},
	},
	"languages": Table{
		"spanish":        "Español",
		"english":        "English",
		"russian":        "Русский",
		"selectLanguage": "Select language",
	},
	"common": Table{
		"back":    "Back",
		"next":    "Next",
		"cancel":  "Cancel",
		"confirm": "Confirm",
		"loading": "Loading...",
		"error":   "Error",
		"success": "Success",
	},
}
