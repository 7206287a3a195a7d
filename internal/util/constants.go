package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

// gin context keys
const (
	ContextKeyClaims = "participant"
	ContextKeyConfig = "config"
)

// AdminKeyHeader 管理员导出接口使用的请求头
const AdminKeyHeader = "X-Admin-Key"
