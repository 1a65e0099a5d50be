// api/controller/controllers.go
package controller

import (
	"github.com/cobaltsec/aegis/api/audit"
	"github.com/cobaltsec/aegis/api/service"
)

type Controllers struct {
	Decision *DecisionController
	Grant    *GrantController
	Routing  *RoutingController
	Audit    *AuditController
	Policy   *PolicyController
}

func InitializeControllers(services *service.Services, auditService audit.Service) *Controllers {
	return &Controllers{
		Decision: NewDecisionController(services.Decision),
		Grant:    NewGrantController(services.Grant),
		Routing:  NewRoutingController(services.Routing),
		Audit:    NewAuditController(auditService),
		Policy:   NewPolicyController(services.PolicyAdmin),
	}
}
