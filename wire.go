//go:build wireinject

package rbac

import (
	"github.com/google/wire"

	"github.com/vpr1995/rbac-engine/core"
	"github.com/vpr1995/rbac-engine/x/access"
	"github.com/vpr1995/rbac-engine/x/policy"
)

var policyServiceProvider = wire.NewSet(policy.NewService)
var accessServiceProvider = wire.NewSet(access.NewService, policy.NewService)

// -----------

func SetupPolicyService() core.PolicyService {
	wire.Build(policyServiceProvider)
	return nil
}

func SetupAccessService(store core.Store) core.AccessService {
	wire.Build(accessServiceProvider)
	return nil
}
