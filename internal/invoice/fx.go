package invoice

import (
	"github.com/smallbiznis/railpos/internal/invoice/domain"
	"github.com/smallbiznis/railpos/internal/invoice/numbering"
	"github.com/smallbiznis/railpos/internal/invoice/render"
	"github.com/smallbiznis/railpos/internal/invoice/service"
	"github.com/smallbiznis/railpos/internal/overdue"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.service",
	fx.Provide(func(s *overdue.Sweeper) domain.Reconciler { return s }),
	fx.Provide(numbering.New),
	fx.Provide(render.NewRenderer),
	fx.Provide(service.NewService),
)
