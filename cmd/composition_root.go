package cmd

import (
	"peermint/internal/adapters/out/postgres"
	"peermint/internal/core/application/usecases/commands"
	"peermint/internal/core/application/usecases/queries"
	"peermint/internal/core/domain/services"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	calc       services.PayoutCalculator
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB, []byte(configs.EscrowAuthoritySecret)),
		calc:       services.NewPayoutCalculator(),
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.createUoWFactory(), c.calc)
}

func (c *CompositionRoot) CreateJoinOrderCommandHandler() commands.JoinOrderCommandHandler {
	return commands.NewJoinOrderCommandHandler(c.createOrderUoWFactory())
}

func (c *CompositionRoot) CreateMarkPaidCommandHandler() commands.MarkPaidCommandHandler {
	return commands.NewMarkPaidCommandHandler(c.createOrderUoWFactory())
}

func (c *CompositionRoot) CreateAcknowledgeReleaseCommandHandler() commands.AcknowledgeReleaseCommandHandler {
	return commands.NewAcknowledgeReleaseCommandHandler(c.createUoWFactory(), c.calc)
}

func (c *CompositionRoot) CreateAutoReleaseCommandHandler() commands.AutoReleaseCommandHandler {
	return commands.NewAutoReleaseCommandHandler(c.createUoWFactory(), c.calc)
}

func (c *CompositionRoot) CreateRaiseDisputeCommandHandler() commands.RaiseDisputeCommandHandler {
	return commands.NewRaiseDisputeCommandHandler(c.createOrderUoWFactory())
}

func (c *CompositionRoot) CreateResolveDisputeCommandHandler() commands.ResolveDisputeCommandHandler {
	return commands.NewResolveDisputeCommandHandler(c.createUoWFactory(), c.calc)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOpenOrdersQueryHandler() queries.GetOpenOrdersQueryHandler {
	return queries.NewGetOpenOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCreatorOrdersQueryHandler() queries.GetCreatorOrdersQueryHandler {
	return queries.NewGetCreatorOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateOrderUoWFactory() commands.OrderUoWFactory {
	return c.createOrderUoWFactory()
}

func (c *CompositionRoot) createUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) createOrderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
