//go:build wireinject
// +build wireinject

package main

import (
	"github.com/Jacobbrewer1/concierge/cmd/bot/config"
	"github.com/Jacobbrewer1/concierge/pkg/dataaccess"
	"github.com/Jacobbrewer1/concierge/pkg/datatransfer"
	"github.com/Jacobbrewer1/concierge/pkg/events"
	"github.com/Jacobbrewer1/concierge/pkg/logging"
	"github.com/Jacobbrewer1/concierge/pkg/tickets"
	"github.com/google/wire"
	"github.com/gorilla/mux"
)

var storeSet = wire.NewSet(
	NewStore,
	dataaccess.NewLocker,
	dataaccess.NewGuildDal,
	dataaccess.NewTicketDal,
	dataaccess.NewPanelDal,
	dataaccess.NewTrustedDal,
	dataaccess.NewRawDal,
)

var serviceSet = wire.NewSet(
	NewPolicy,
	tickets.NewRegistry,
	NewTicketPlatform,
	NewController,
	NewEventPlatform,
	events.NewService,
	NewTransferService,
	datatransfer.NewFetcher,
	NewBackupScheduler,
	NewUserLimiter,
)

func InitializeApp() (*App, func(), error) {
	wire.Build(
		wire.Value(logging.Name(config.AppName)),
		logging.NewConfig,
		logging.CommonLogger,
		config.Parse,
		mux.NewRouter,
		NewSession,
		storeSet,
		serviceSet,
		NewApp,
	)
	return new(App), nil, nil
}
