package cache

const (
	KEY_RECEIPT             = "receipts:%s"
	KEY_RECEIPTS_BY_USER_ID = "receipts:user:%s"
)
