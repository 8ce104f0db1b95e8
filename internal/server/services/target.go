package services

import (
	"fmt"

	"github.com/dmitrijs2005/netconfd/internal/common"
	"github.com/dmitrijs2005/netconfd/internal/server/models"
)

// ResolveTarget decodes the request's target choice. The url branch is only
// accepted when urlEnabled is set and must carry a non-empty locator.
func ResolveTarget(req models.DeleteConfigRequest, urlEnabled bool) (models.Target, error) {
	switch req.Target.Branch {
	case models.BranchStartup:
		return models.NamedStore(models.DatastoreStartup), nil
	case models.BranchURL:
		if !urlEnabled {
			return models.Target{}, common.NewRPCError(common.KindUnsupportedTarget, common.MsgURLNotSupported, nil)
		}
		if req.Target.Value == nil || *req.Target.Value == "" {
			return models.Target{}, common.NewRPCError(common.KindMissingResourceLocator, common.MsgMissingTargetURL, nil)
		}
		return models.ExternalResource(*req.Target.Value), nil
	default:
		return models.Target{}, fmt.Errorf("%w: %q", common.ErrUnknownTarget, req.Target.Branch)
	}
}
