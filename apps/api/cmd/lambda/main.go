//go:build lambda
// +build lambda

package main

import (
	"context"

	"github.com/guardian/guardian-api/apps/api/server"
	"github.com/guardian/guardian-api/libs/go/logger"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/davecgh/go-spew/spew"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// @title       Guardian API
// @version     1.0
// @description Executor and auditor registries, approvals and guard checks for Safe accounts
// @BasePath    /api/v1

var ginLambda *ginadapter.GinLambdaV2

func init() {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	// InitializeHandlers sets up the logger for the configured stage
	server.InitializeHandlers()
	server.InitializeRoutes(r)

	ginLambda = ginadapter.NewV2(r)
}

func Handler(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	logger.Debug("Received Lambda request",
		zap.String("path", req.RawPath),
		zap.String("request", spew.Sdump(req.RequestContext.HTTP)),
	)

	return ginLambda.ProxyWithContext(ctx, req)
}

func main() {
	defer logger.Sync()
	lambda.Start(Handler)
}
