package model

// MessageEntry 数据库维护的翻译条目
// 同一 (basename, locale, key) 唯一；DBSource 按 (basename, locale) 整表捞出
// 构建 Bundle
type MessageEntry struct {
	BaseModel
	Basename string `gorm:"size:64;not null;uniqueIndex:uk_entry,priority:1" json:"basename"`
	Locale   string `gorm:"size:32;not null;uniqueIndex:uk_entry,priority:2" json:"locale"`
	MsgKey   string `gorm:"column:msg_key;size:255;not null;uniqueIndex:uk_entry,priority:3" json:"key"`
	Template string `gorm:"size:2048;not null" json:"template"`
}
