package utils

import (
	"fmt"
	"regexp"
	"unicode"
)

// 点分命名空间：user.email.required，problem.duplicate-category.title
var messageKeyPattern = regexp.MustCompile(`^[a-z0-9_-]+(\.[a-z0-9_-]+)*$`)

// ValidateMessageKey 校验 message key 是否合法
func ValidateMessageKey(key string) error {
	if key == "" {
		return fmt.Errorf("error.message_key_required")
	}

	if ContainsWhitespace(key) {
		return fmt.Errorf("error.message_key_cannot_contain_spaces")
	}

	if len(key) > 255 {
		return fmt.Errorf("error.message_key_max_length")
	}

	if !messageKeyPattern.MatchString(key) {
		return fmt.Errorf("error.message_key_invalid")
	}

	return nil
}

// ValidateTemplateText 校验模板文本的合法性
func ValidateTemplateText(template string) error {
	// 1. 检查模板是否为空
	if template == "" {
		return fmt.Errorf("error.template_required")
	}

	// 2. 长度限制（与表结构保持一致）
	if len(template) > 2048 {
		return fmt.Errorf("error.template_max_length")
	}
	return nil
}

func ContainsWhitespace(s string) bool {
	for _, r := range s {
		if unicode.IsSpace(r) {
			return true
		}
	}
	return false
}
