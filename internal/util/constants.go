package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

// 导出格式
const (
	ExportCSV  = "csv"
	ExportXLSX = "xlsx"
)

const (
	MimeCSV  = "text/csv; charset=utf-8"
	MimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// SessionHeader 浏览器扩展转发 Smartschool 会话使用的请求头
const SessionHeader = "X-Smartschool-Session"
