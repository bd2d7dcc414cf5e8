package controller

import (
	"github.com/dev-rpatel/janus/pep"
	"github.com/dev-rpatel/janus/service"
)

// Controllers aggregates all HTTP controllers for route registration.
type Controllers struct {
	Decision *DecisionController
	Policy   *PolicyController
	File     *FileController
}

func InitializeControllers(decisionService service.IDecisionService, enforcementPoint *pep.PEP) *Controllers {
	return &Controllers{
		Decision: NewDecisionController(decisionService),
		Policy:   NewPolicyController(decisionService),
		File:     NewFileController(enforcementPoint),
	}
}
