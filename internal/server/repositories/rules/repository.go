package rules

import (
	"context"

	"github.com/dmitrijs2005/netconfd/internal/server/models"
)

type Repository interface {
	FindExecRules(ctx context.Context, userName string, rpcPath string) ([]*models.ExecRule, error)
	Upsert(ctx context.Context, rule *models.ExecRule) error
}
