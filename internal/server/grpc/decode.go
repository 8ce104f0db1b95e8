package grpc

import (
	"fmt"

	"github.com/dmitrijs2005/netconfd/internal/common"
	"github.com/dmitrijs2005/netconfd/internal/server/models"
	"google.golang.org/protobuf/types/known/structpb"
)

// decodeDeleteConfig reads {"target": {"startup": null}} or
// {"target": {"url": null | "<locator>"}}. The target choice must select
// exactly one known branch.
func decodeDeleteConfig(in *structpb.Struct) (models.DeleteConfigRequest, error) {
	var req models.DeleteConfigRequest

	target := in.GetFields()["target"].GetStructValue()
	if target == nil {
		return req, fmt.Errorf("%w: missing target", common.ErrUnknownTarget)
	}
	if len(target.GetFields()) != 1 {
		return req, fmt.Errorf("%w: target must select exactly one branch", common.ErrUnknownTarget)
	}

	for branch, v := range target.GetFields() {
		switch branch {
		case models.BranchStartup, models.BranchURL:
		default:
			return req, fmt.Errorf("%w: %q", common.ErrUnknownTarget, branch)
		}

		req.Target.Branch = branch
		switch kind := v.GetKind().(type) {
		case *structpb.Value_NullValue, nil:
		case *structpb.Value_StringValue:
			if branch == models.BranchStartup {
				return req, fmt.Errorf("%w: startup takes no value", common.ErrUnknownTarget)
			}
			s := kind.StringValue
			req.Target.Value = &s
		default:
			return req, fmt.Errorf("%w: %s value must be a string or null", common.ErrUnknownTarget, branch)
		}
	}

	return req, nil
}
