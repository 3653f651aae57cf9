// Package storage содержит общие для файловых хранилищ правила именования.
package storage

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// ObjectName строит имя файла вида <unix-millis>-<base name>.
// Из исходного имени берётся только последний элемент пути; символы вне
// [A-Za-z0-9._-] заменяются на '_', так что имя идёт в URL без экранирования.
func ObjectName(now time.Time, filename string) string {
	base := filepath.Base(strings.ReplaceAll(filename, `\`, "/"))
	if base == "." || base == "/" || base == ".." {
		base = "photo"
	}
	base = strings.Map(safeRune, base)
	return fmt.Sprintf("%d-%s", now.UnixMilli(), base)
}

func safeRune(r rune) rune {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return r
	case r == '.' || r == '-' || r == '_':
		return r
	}
	return '_'
}
