package locale

var tableRU = Table{
	"welcome": Table{
		"title":    "MegaBodega",
		"subtitle": "Твоё любимое приложение доставки",
		"features": Table{
			"catalog":  "Полный каталог товаров",
			"payments": "Безопасная оплата картой",
			"delivery": "Быстрая доставка на дом",
			"tracking": "Отслеживание в реальном времени",
		},
	},
	"buttons": Table{
		"login":                "Войти",
		"register":             "Регистрация",
		"browseWithoutAccount": "Смотреть без аккаунта",
	},
	"auth": Table{
		"loginTitle":      "Вход",
		"loginSubtitle":   "С возвращением",
		"registerTitle":   "Создать аккаунт",
		"registerSubtitle": "Присоединяйтесь сегодня",
		"email":           "Email",
		"password":        "Пароль",
		"confirmPassword": "Подтвердите пароль",
		"fullName":        "Полное имя",
		"phone":           "Телефон",
		"loggingIn":       "Вход...",
		"creatingAccount": "Создание аккаунта...",
		"loginFailed":     "Не удалось войти",
		"registerFailed":  "Не удалось создать аккаунт",
		"loggedOut":       "Вы вышли из системы",
		"accountTypes": Table{
			"customer": "Покупатель",
			"staff":    "Магазин",
			"courier":  "Курьер",
		},
	},
	"catalog": Table{
		"products":   "Товары",
		"categories": "Категории",
		"stores":     "Магазины",
		"outOfStock": "Нет в наличии",
		"noResults":  "Ничего не найдено",
	},
	"cart": Table{
		"title":             "Моя корзина",
		"empty":             "Ваша корзина пуста",
		"emptyMessage":      "Добавьте товары, чтобы начать",
		"continueShopping":  "Продолжить покупки",
		"subtotal":          "Итого",
		"items":             "товаров",
		"proceedToCheckout": "Перейти к оплате",
	},
	"checkout": Table{
		"title":           "Подтвердить заказ",
		"deliveryAddress": "Адрес доставки",
		"notes":           "Примечания",
		"placeOrder":      "Оформить заказ",
		"orderPlaced":     "Заказ оформлен!",
		"orderFailed":     "Не удалось оформить заказ",
	},
	"orders": Table{
		"title":     "Мои заказы",
		"available": "Доступные заказы",
		"accepted":  "Заказ принят",
		"status": Table{
			"pending":    "Ожидает",
			"confirmed":  "Подтверждён",
			"preparing":  "Готовится",
			"ready":      "Готов",
			"delivering": "В пути",
			"delivered":  "Доставлен",
			"cancelled":  "Отменён",
		},
	},
	"languages": Table{
		"spanish":        "Español",
		"english":        "English",
		"russian":        "Русский",
		"selectLanguage": "Выбрать язык",
	},
	"common": Table{
		"back":    "Назад",
		"next":    "Далее",
		"cancel":  "Отмена",
		"confirm": "Подтвердить",
		"loading": "Загрузка...",
		"error":   "Ошибка",
		"success": "Готово",
	},
}
