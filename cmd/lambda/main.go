package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	fiberadapter "github.com/awslabs/aws-lambda-go-api-proxy/fiber"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/f3rva/f3rva-workout-service/internal/config"
	"github.com/f3rva/f3rva-workout-service/internal/db"
	"github.com/f3rva/f3rva-workout-service/internal/server"
)

var mainDepsProvider = defaultDeps
var mainRunner = realMain

func main() {
	mainRunner(mainDepsProvider())
}

type mainDeps struct {
	loadConfig      func() config.Config
	connectPostgres func(config.Config) (*pgxpool.Pool, error)
	start           func(handler interface{})
}

func defaultDeps() mainDeps {
	return mainDeps{
		loadConfig:      config.Load,
		connectPostgres: db.ConnectPostgres,
		start:           lambda.Start,
	}
}

// realMain builds the same fiber app the standalone server runs and hands it
// to the Lambda runtime behind an API Gateway proxy. The pool outlives one
// invocation: warm starts reuse it.
func realMain(deps mainDeps) {
	cfg := deps.loadConfig()

	pg, err := deps.connectPostgres(cfg)
	if err != nil {
		log.Printf("postgres connection failed: %v", err)
	}

	srv := server.NewServer(cfg, pg)
	deps.start(newHandler(fiberadapter.New(srv.App)))
}

// proxy is the bridge the handler drives; *fiberadapter.FiberLambda
// satisfies it.
type proxy interface {
	ProxyWithContext(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)
}

// newHandler translates API Gateway events through the in-process app.
// Adapter failures collapse to a generic 500 so no internal detail reaches
// the caller.
func newHandler(p proxy) func(context.Context, events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return func(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		log.Printf("processing %s %s", event.HTTPMethod, event.Path)

		resp, err := p.ProxyWithContext(ctx, event)
		if err != nil {
			log.Printf("proxy error: %v", err)
			return events.APIGatewayProxyResponse{
				StatusCode: 500,
				Headers:    map[string]string{"Content-Type": "application/json"},
				Body:       `{"error": "Internal server error"}`,
			}, nil
		}

		log.Printf("response status %d for %s %s", resp.StatusCode, event.HTTPMethod, event.Path)
		return resp, nil
	}
}
