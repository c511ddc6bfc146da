package catalog

import (
	"github.com/smallbiznis/railpos/internal/cache"
	"github.com/smallbiznis/railpos/internal/catalog/repository"
	"github.com/smallbiznis/railpos/internal/catalog/service"
	"go.uber.org/fx"
)

var Module = fx.Module("catalog.service",
	fx.Provide(cache.NewBarcodeCache),
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
