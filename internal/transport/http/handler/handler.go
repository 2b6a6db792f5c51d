package handler

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

const maxNameLength = 100

func isNotFound(err error) bool { return errors.Is(err, gorm.ErrRecordNotFound) }

// validateName 参考数据（角色/分类/年级）统一的名称校验：非空、去空格、≤100。
func validateName(raw string) (string, string) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", "Name is required and cannot be an empty string."
	}
	if len(raw) > maxNameLength {
		return "", "Name cannot be longer than 100 characters."
	}
	return name, ""
}

func isDupKey(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "unique failed")
}
