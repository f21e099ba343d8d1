// Package di contains dependency injection tokens for the evaluation context.
package di

import (
	evalApp "github.com/fd1az/cap-alpha/business/evaluation/app"
	"github.com/fd1az/cap-alpha/business/evaluation/infra/httpapi"
	"github.com/fd1az/cap-alpha/internal/di"
)

var (
	Engine   = di.NewToken[*evalApp.Engine]("evaluation.Engine")
	WinModel = di.NewToken[*evalApp.WinModel]("evaluation.WinModel")
	Partners = di.NewToken[*evalApp.PartnerFinder]("evaluation.PartnerFinder")
	Server   = di.NewToken[*httpapi.Server]("evaluation.Server")
)
