// Package di contains dependency injection tokens for the roster context.
package di

import (
	"github.com/fd1az/cap-alpha/business/roster/app"
	"github.com/fd1az/cap-alpha/internal/di"
)

var (
	// Store is private to the roster module.
	Store   = di.NewToken[app.Store]("roster.Store")
	Service = di.NewToken[*app.Service]("roster.Service")
)
