package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/zherujiang/spotlight/internal/logger"
)

// QueryHook logs every statement bun executes, with its duration.
type QueryHook struct {
	log *logger.Logger
}

var _ bun.QueryHook = (*QueryHook)(nil)

func NewQueryHook(log *logger.Logger) *QueryHook {
	return &QueryHook{log: log}
}

func (h *QueryHook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (h *QueryHook) AfterQuery(_ context.Context, event *bun.QueryEvent) {
	duration := time.Since(event.StartTime).Round(time.Microsecond)
	if event.Err != nil && !errors.Is(event.Err, sql.ErrNoRows) {
		h.log.Error("DATABASE", fmt.Sprintf("[%s] %s (%s): %v", event.Operation(), event.Query, duration, event.Err))
		return
	}
	h.log.LogDatabase(event.Operation(), duration.String(), event.Query)
}
