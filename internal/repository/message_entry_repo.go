package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"msgsource-go/internal/i18n"
	"msgsource-go/internal/model"
)

// DBSource 数据库后端的翻译资源，实现 i18n.Source
// 运行期维护的翻译放在 message_entries 表里，和文件资源走同一套
// Store/Catalog 机制
type DBSource struct {
	db *gorm.DB
}

func NewDBSource(db *gorm.DB) *DBSource {
	return &DBSource{db: db}
}

// ReadBundle 捞出某 (basename, locale) 的全部条目
// 没有任何条目时返回 i18n.ErrBundleNotFound，由回退链兜底
func (s *DBSource) ReadBundle(basename string, locale i18n.Locale) (map[string]string, error) {
	var entries []model.MessageEntry
	if err := s.db.
		Where("basename = ? AND locale = ?", basename, locale.String()).
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("查询 message_entries 失败: %w", err)
	}

	if len(entries) == 0 {
		return nil, i18n.ErrBundleNotFound
	}

	messages := make(map[string]string, len(entries))
	for _, e := range entries {
		// 入库时已校验过模板，这里再兜一道防止脏数据进缓存
		if err := i18n.ValidateTemplate(e.Template); err != nil {
			return nil, &i18n.MalformedBundleError{
				Basename: basename,
				Locale:   locale.String(),
				Path:     "db:message_entries",
				Err:      fmt.Errorf("key %q: %w", e.MsgKey, err),
			}
		}
		messages[e.MsgKey] = e.Template
	}
	return messages, nil
}

// UpsertEntry 新增或更新一条翻译
func UpsertEntry(entry *model.MessageEntry) error {
	var existing model.MessageEntry
	err := DB.
		Where("basename = ? AND locale = ? AND msg_key = ?", entry.Basename, entry.Locale, entry.MsgKey).
		First(&existing).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return DB.Create(entry).Error
	}
	if err != nil {
		return err
	}

	existing.Template = entry.Template
	return DB.Save(&existing).Error
}

// ListEntries 分页查询翻译条目
func ListEntries(basename, locale string, page, size int) ([]model.MessageEntry, int64, error) {
	db := DB.Model(&model.MessageEntry{})
	if basename != "" {
		db = db.Where("basename = ?", basename)
	}
	if locale != "" {
		db = db.Where("locale = ?", locale)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []model.MessageEntry
	if err := db.
		Limit(size).
		Offset((page - 1) * size).
		Order("id DESC").
		Find(&entries).Error; err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}
