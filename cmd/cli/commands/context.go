package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/donghoonhyun/altar-scheduler-sub001/internal/config"
	"github.com/donghoonhyun/altar-scheduler-sub001/pkg/core/services"
	"github.com/donghoonhyun/altar-scheduler-sub001/pkg/db"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Store    db.Store
	Notifier services.Notifier
	Logger   *zap.Logger
	Ctx      context.Context
}
