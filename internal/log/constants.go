package log

const (
	KeyAppName            = "app"
	KeyRequestID          = "requestId"
	KeyProcess            = "process"
	KeyToken              = "token"
	KeyEmail              = "email"
	KeyTag                = "tag"
	KeyConfig             = "config"
	KeyRequestBody        = "requestBody"
	KeyRequestHeader      = "requestHeader"
	KeyRequestHost        = "host"
	KeyRequestIp          = "requesterIP"
	KeyRequestMethod      = "requestMethod"
	KeyRequestURI         = "requestURI"
	KeyRequestURL         = "requestURL"
	KeyTraceID            = "traceId"
	KeySpanID             = "spanId"
	KeyUserID             = "userId"
	KeyListingID          = "listingId"
	KeyOrderID            = "orderId"
	KeyReceiptID          = "receiptId"
	KeyCart               = "cart"
	KeyCartItems          = "cartItems"
	KeyCacheKey           = "cacheKey"
	KeyQuote              = "quote"
	KeyReceipt            = "receipt"
	KeyPaymentMethod      = "paymentMethod"
	KeyIdempotencyKey     = "idempotencyKey"
	KeyPathValues         = "pathValues"
	KeyDbURL              = "dbURL"
	KeyCheckoutState      = "checkoutState"
)
