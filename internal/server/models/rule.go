package models

// RuleAction is the effect of an access-control rule.
type RuleAction string

const (
	ActionPermit RuleAction = "permit"
	ActionDeny   RuleAction = "deny"
)

// AnyUser matches every user in a rule.
const AnyUser = "*"

// ExecRule grants or denies execution of an RPC path to a user.
type ExecRule struct {
	UserName string
	RPCPath  string
	Action   RuleAction
}
