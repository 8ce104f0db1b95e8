// Package rules provides a PostgreSQL-backed repository for NACM-style
// execution rules.
package rules

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/netconfd/internal/dbx"
	"github.com/dmitrijs2005/netconfd/internal/server/models"
)

// PostgresRepository implements rule storage over dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// FindExecRules returns the rules for rpcPath that apply to userName, either
// naming the user directly or the wildcard user. User-specific rules come first.
func (r *PostgresRepository) FindExecRules(ctx context.Context, userName string, rpcPath string) ([]*models.ExecRule, error) {
	query := `
		SELECT username, rpc_path, action
		FROM nacm_rules
		WHERE rpc_path = $1 AND username IN ($2, '*')
		ORDER BY CASE WHEN username = '*' THEN 1 ELSE 0 END
	`
	rows, err := r.db.QueryContext(ctx, query, rpcPath, userName)
	if err != nil {
		return nil, fmt.Errorf("failed to select rules: %w", err)
	}
	defer rows.Close()

	var result []*models.ExecRule
	for rows.Next() {
		var rule models.ExecRule
		var action string
		if err := rows.Scan(&rule.UserName, &rule.RPCPath, &action); err != nil {
			return nil, err
		}
		rule.Action = models.RuleAction(action)
		result = append(result, &rule)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Upsert stores rule, replacing the action of an existing rule for the same
// user and path.
func (r *PostgresRepository) Upsert(ctx context.Context, rule *models.ExecRule) error {
	query := `
		INSERT INTO nacm_rules (username, rpc_path, action)
		VALUES ($1, $2, $3)
		ON CONFLICT (username, rpc_path)
		DO UPDATE SET action = EXCLUDED.action
	`
	if _, err := r.db.ExecContext(ctx, query, rule.UserName, rule.RPCPath, string(rule.Action)); err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	return nil
}
