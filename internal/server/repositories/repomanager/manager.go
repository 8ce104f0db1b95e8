package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/netconfd/internal/dbx"
	"github.com/dmitrijs2005/netconfd/internal/server/repositories/items"
	"github.com/dmitrijs2005/netconfd/internal/server/repositories/rules"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Items(db dbx.DBTX) items.Repository
	Rules(db dbx.DBTX) rules.Repository
}
