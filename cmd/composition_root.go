package cmd

import (
	"log/slog"
	"time"

	httpadapter "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/services"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	logger     *slog.Logger
	uowFactory *postgres.GormUnitOfWorkFactory
	dispatcher services.OrderDispatcher
	rating     services.RatingCalculator
	clock      func() time.Time
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		logger:     logger,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		dispatcher: services.NewOrderDispatcher(),
		rating:     services.NewRatingCalculator(),
		clock:      time.Now,
	}
}

func (c *CompositionRoot) CreateCreateCouriersCommandHandler() commands.CreateCouriersCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateCouriersCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateOrdersCommandHandler() commands.CreateOrdersCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrdersCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateCourierCommandHandler() commands.UpdateCourierCommandHandler {
	return commands.NewUpdateCourierCommandHandler(c.uowFactoryFunc(), c.dispatcher)
}

func (c *CompositionRoot) CreateAssignOrdersCommandHandler() commands.AssignOrdersCommandHandler {
	return commands.NewAssignOrdersCommandHandler(c.uowFactoryFunc(), c.dispatcher, c.clock)
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() commands.CompleteOrderCommandHandler {
	return commands.NewCompleteOrderCommandHandler(c.uowFactoryFunc())
}

func (c *CompositionRoot) CreateGetCourierInfoQueryHandler() queries.GetCourierInfoQueryHandler {
	return queries.NewGetCourierInfoQueryHandler(c.gormDB, c.rating)
}

func (c *CompositionRoot) CreateGetAllCouriersQueryHandler() queries.GetAllCouriersQueryHandler {
	return queries.NewGetAllCouriersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUncompletedOrdersQueryHandler() queries.GetUncompletedOrdersQueryHandler {
	return queries.NewGetUncompletedOrdersQueryHandler(c.gormDB)
}

// CreateHTTPHandler builds the echo instance with every route registered.
func (c *CompositionRoot) CreateHTTPHandler() *echo.Echo {
	e := httpadapter.NewEcho(c.logger.With("component", "http"))
	httpadapter.NewServer(httpadapter.Handlers{
		CreateCouriers:       c.CreateCreateCouriersCommandHandler(),
		UpdateCourier:        c.CreateUpdateCourierCommandHandler(),
		CreateOrders:         c.CreateCreateOrdersCommandHandler(),
		AssignOrders:         c.CreateAssignOrdersCommandHandler(),
		CompleteOrder:        c.CreateCompleteOrderCommandHandler(),
		GetCourierInfo:       c.CreateGetCourierInfoQueryHandler(),
		GetAllCouriers:       c.CreateGetAllCouriersQueryHandler(),
		GetUncompletedOrders: c.CreateGetUncompletedOrdersQueryHandler(),
	}).RegisterRoutes(e)
	return e
}

func (c *CompositionRoot) uowFactoryFunc() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
