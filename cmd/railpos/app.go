package main

import (
	"context"
	"os"
	"os/user"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/railpos/internal/catalog"
	"github.com/smallbiznis/railpos/internal/clock"
	"github.com/smallbiznis/railpos/internal/config"
	"github.com/smallbiznis/railpos/internal/customer"
	"github.com/smallbiznis/railpos/internal/installment"
	"github.com/smallbiznis/railpos/internal/invoice"
	"github.com/smallbiznis/railpos/internal/observability"
	obsctx "github.com/smallbiznis/railpos/internal/observability/context"
	"github.com/smallbiznis/railpos/internal/overdue"
	"github.com/smallbiznis/railpos/internal/payment"
	"github.com/smallbiznis/railpos/pkg/db"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

const stopTimeout = 15 * time.Second

func coreModules() []fx.Option {
	return []fx.Option{
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,

		catalog.Module,
		customer.Module,
		invoice.Module,
		payment.Module,
		overdue.Module,
		installment.Module,
	}
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}

// runOnce starts the ledger, fills targets and runs fn before stopping it.
func runOnce(cmd *cobra.Command, fn func(ctx context.Context) error, targets ...any) error {
	var node *snowflake.Node
	opts := append(coreModules(), fx.NopLogger, fx.Populate(append(targets, &node)...))
	app := fx.New(opts...)
	if err := app.Err(); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := app.Start(ctx); err != nil {
		return err
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
		defer cancel()
		_ = app.Stop(stopCtx)
	}()

	return fn(operationContext(cmd, ctx, node))
}

// operationContext tags ctx with the identifiers the ledger logs carry.
func operationContext(cmd *cobra.Command, ctx context.Context, node *snowflake.Node) context.Context {
	if node != nil {
		ctx = obsctx.WithRequestID(ctx, node.Generate().String())
	}

	actor := os.Getenv("USER")
	if u, err := user.Current(); err == nil {
		actor = u.Username
	}
	if actor != "" {
		ctx = obsctx.WithActor(ctx, "cli", actor)
	}

	if terminal, _ := cmd.Flags().GetString("terminal"); terminal != "" {
		ctx = obsctx.WithTerminal(ctx, terminal)
	}
	return ctx
}
