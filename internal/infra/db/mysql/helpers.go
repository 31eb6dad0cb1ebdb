package mysql

import "database/sql"

// nullableInt maps a zero rating to NULL so unrated treatments stay unrated.
func nullableInt(v int) sql.NullInt64 {
	if v == 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(v), Valid: true}
}
