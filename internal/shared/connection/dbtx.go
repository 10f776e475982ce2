package connection

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// Conn returns a gorm handle scoped to ctx. When tx is set every statement
// issued through the handle runs on that transaction.
func Conn(ctx context.Context, db *gorm.DB, tx *sql.Tx) *gorm.DB {
	scoped := db.WithContext(ctx)
	if tx != nil {
		scoped.Statement.ConnPool = tx
	}
	return scoped
}
