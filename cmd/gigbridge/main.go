package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/gigbridge/gigbridge/internal/migration"
	"github.com/gigbridge/gigbridge/internal/observability"
	"github.com/gigbridge/gigbridge/internal/server"
	"github.com/gigbridge/gigbridge/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
