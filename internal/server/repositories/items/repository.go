package items

import (
	"context"

	"github.com/dmitrijs2005/netconfd/internal/server/models"
)

type Repository interface {
	Revision(ctx context.Context, ds models.Datastore) (int64, error)
	BumpRevision(ctx context.Context, ds models.Datastore) (int64, error)
	DeleteModule(ctx context.Context, ds models.Datastore, module string) (int64, error)
}
