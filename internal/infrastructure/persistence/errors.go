package persistence

import (
	"errors"
	"strings"

	"github.com/freshmart/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// notFound maps gorm's record-not-found to a domain error naming the resource.
func notFound(err error, resource string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.NewNotFoundError(resource)
	}
	return err
}

// containsPattern builds a LIKE pattern for a case-insensitive substring match.
func containsPattern(keyword string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(strings.TrimSpace(keyword))) + "%"
}
