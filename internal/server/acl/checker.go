// Package acl decides whether a user may execute a protocol operation,
// following the NACM exec rule model: the most specific matching rule wins,
// otherwise the configured default applies.
package acl

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/netconfd/internal/common"
	"github.com/dmitrijs2005/netconfd/internal/dbx"
	"github.com/dmitrijs2005/netconfd/internal/logging"
	"github.com/dmitrijs2005/netconfd/internal/server/models"
	"github.com/dmitrijs2005/netconfd/internal/server/repositories/repomanager"
)

// RPC paths checked before execution.
const (
	PathDeleteConfig = "/ietf-netconf:delete-config"
)

// Checker evaluates exec rules stored in the database.
type Checker struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	execDefault models.RuleAction
	logger      logging.Logger
}

// NewChecker builds a Checker. An empty execDefault means permit.
func NewChecker(db *sql.DB, rm repomanager.RepositoryManager, execDefault models.RuleAction, l logging.Logger) *Checker {
	if execDefault == "" {
		execDefault = models.ActionPermit
	}
	return &Checker{db: db, repomanager: rm, execDefault: execDefault, logger: l.With("module", "acl")}
}

// CheckExec returns common.ErrorPermissionDenied when user may not execute
// rpcPath.
func (c *Checker) CheckExec(ctx context.Context, user string, rpcPath string) error {
	found, err := c.repomanager.Rules(c.db).FindExecRules(ctx, user, rpcPath)
	if err != nil {
		return fmt.Errorf("load exec rules: %w", err)
	}

	action := c.execDefault
	if len(found) > 0 {
		action = found[0].Action
	}
	if action != models.ActionPermit {
		c.logger.Warn(ctx, "exec denied", "user", user, "rpc", rpcPath)
		return common.ErrorPermissionDenied
	}
	return nil
}

// Seed stores rules in one transaction.
func (c *Checker) Seed(ctx context.Context, rules []models.ExecRule) error {
	if len(rules) == 0 {
		return nil
	}
	b := dbx.NewBatch(c.db, nil)
	tx, err := b.Tx(ctx)
	if err != nil {
		return err
	}
	repo := c.repomanager.Rules(tx)
	for i := range rules {
		if err := repo.Upsert(ctx, &rules[i]); err != nil {
			_ = b.Rollback()
			return err
		}
	}
	return b.Commit()
}
