package installment

import (
	"github.com/smallbiznis/railpos/internal/installment/service"
	"github.com/smallbiznis/railpos/internal/overdue"
	"go.uber.org/fx"
)

var Module = fx.Module("installment.service",
	fx.Provide(func(s *overdue.Sweeper) service.Reconciler { return s }),
	fx.Provide(service.NewService),
)
