package repositories

import (
	"strings"

	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// whereContains narrows q to rows whose column contains value. Empty values
// leave q unchanged, so chained calls form an AND of the supplied filters.
func whereContains(q *gorm.DB, column, value string) *gorm.DB {
	if value == "" {
		return q
	}
	return q.Where(column+` LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(value)+"%")
}
