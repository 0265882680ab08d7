package mqtt

import (
	"context"

	"github.com/kilianp07/homeload/core/planstore"
)

// PlanPublisher pushes finished plans to the appliances or to a home
// automation controller.
type PlanPublisher interface {
	PublishPlan(ctx context.Context, plan planstore.PlanRecord) error
}
