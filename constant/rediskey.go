package constant

import (
	"fmt"
	"time"
)

// 常量定义
const (
	BasePrefix = "msgsource:"
	Separator  = ":"
)

// Redis 键模板
const (
	// DailyMiss 某日的未命中计数 hash，field 为 "<locale>|<key>"
	// msgsource:miss:yyyyMMdd
	DailyMiss = BasePrefix + "miss" + Separator + "%s"
)

// GetDateKey 生成当前日期的键（格式：yyyyMMdd）
func GetDateKey() string {
	return time.Now().Format("20060102") // Go 中日期格式规则：2006-01-02
}

// GetDailyMissKey 生成每日未命中统计键（格式：msgsource:miss:yyyyMMdd）
func GetDailyMissKey(date string) string {
	return fmt.Sprintf(DailyMiss, date)
}

// GetMissField hash field：locale 和 key 用 '|' 拼接
func GetMissField(locale, key string) string {
	return locale + "|" + key
}
