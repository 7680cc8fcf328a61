package constants

const (
	APP_CART_SERVICE         = "cart-service"
	APP_ORDER_SERVICE        = "order-service"
	APP_NOTIFICATION_SERVICE = "notification-service"
	APP_MAIN_KRISHIMART      = "main krishimart"
	AUDIENCE_USER            = "audience-user"
	ISSUER_USER_BACKEND      = "user-backend"

	RECEIPT_CREATED = "receipt_created"

	URL_ORDER_SERVICE = "http://order-service:8080/receipts"
	PATH_LISTINGS     = "/listings"
)
