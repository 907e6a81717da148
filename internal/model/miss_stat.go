package model

// MissStat 每日翻译未命中统计
// Redis 里的计数器由定时任务落库，用于发版前排查漏翻
type MissStat struct {
	BaseModel
	Date   string `gorm:"type:date;index" json:"date"` // YYYY-MM-DD
	MsgKey string `gorm:"column:msg_key;size:255;index" json:"key"`
	Locale string `gorm:"size:32" json:"locale"`
	Count  int64  `gorm:"default:0" json:"count"`
}
