package postgres

import (
	"fmt"
	"strings"

	"github.com/upb/esg-data-management/repositories"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// filterBuilder accumulates WHERE clauses with numbered placeholders.
// Clauses use %[1]d for their placeholder so one argument can appear twice.
type filterBuilder struct {
	clauses []string
	args    []interface{}
}

func (b *filterBuilder) add(clause string, arg interface{}) {
	b.args = append(b.args, arg)
	b.clauses = append(b.clauses, fmt.Sprintf(clause, len(b.args)))
}

// search adds a case-insensitive substring match across columns
func (b *filterBuilder) search(term string, columns ...string) {
	if term == "" {
		return
	}
	matches := make([]string, len(columns))
	for i, col := range columns {
		matches[i] = col + " ILIKE $%[1]d"
	}
	b.add("("+strings.Join(matches, " OR ")+")", "%"+escapeLike(term)+"%")
}

func (b *filterBuilder) where() string {
	if len(b.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.clauses, " AND ")
}

// page appends LIMIT/OFFSET. A zero limit leaves the result unbounded.
func (b *filterBuilder) page(p repositories.Page) string {
	var sb strings.Builder
	if p.Limit > 0 {
		b.args = append(b.args, p.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(b.args))
	}
	if p.Offset > 0 {
		b.args = append(b.args, p.Offset)
		fmt.Fprintf(&sb, " OFFSET $%d", len(b.args))
	}
	return sb.String()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
