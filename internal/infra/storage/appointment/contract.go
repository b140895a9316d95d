package appointment

import (
	"context"
	"database/sql"

	"github.com/devsign-cl/appointment-service/pkg/dbmetrics"
)

// Reuse the dbmetrics interfaces for database access
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor

// TxBeginner opens transactions; satisfied by *sql.DB and *dbmetrics.DB
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error)
}
