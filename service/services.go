// api/service/services.go
package service

import (
	"github.com/cobaltsec/aegis/api/grant"
	"github.com/cobaltsec/aegis/api/partition"
	"github.com/cobaltsec/aegis/api/pdp/engine"
	"github.com/cobaltsec/aegis/api/policy"
	"github.com/cobaltsec/aegis/api/util"
)

type Services struct {
	Decision    IDecisionService
	Grant       IGrantService
	Routing     IRoutingService
	PolicyAdmin IPolicyAdminService
}

func InitializeServices(
	eng *engine.Engine,
	grantStore grant.Store,
	grantMirror GrantMirror,
	router *partition.Router,
	policies *policy.Store,
	table *partition.Table,
	validationUtil *util.ValidationUtil,
	notificationSvc *util.NotificationService,
	eventBus *util.EventBus,
	alertThreshold float64,
) *Services {
	return &Services{
		Decision:    NewDecisionService(eng, validationUtil, notificationSvc, eventBus, alertThreshold),
		Grant:       NewGrantService(grantStore, grantMirror, validationUtil, notificationSvc, eventBus),
		Routing:     NewRoutingService(router, validationUtil),
		PolicyAdmin: NewPolicyAdminService(policies, table, eventBus, notificationSvc),
	}
}
