package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/guardian/guardian-api/libs/go/chain"
	awsclient "github.com/guardian/guardian-api/libs/go/client/aws"
	"github.com/guardian/guardian-api/libs/go/client/eth"
	"github.com/guardian/guardian-api/libs/go/client/guardian"
	"github.com/guardian/guardian-api/libs/go/helpers"
	"github.com/guardian/guardian-api/libs/go/interfaces"
	"github.com/guardian/guardian-api/libs/go/logger"
	"github.com/guardian/guardian-api/libs/go/metrics"
	"github.com/guardian/guardian-api/libs/go/services"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const defaultMaxAttempts = 5

// Application holds the keeper dependencies
type Application struct {
	// planner resolves the pause batch before anything is sent. It may be
	// nil when the keeper submits through the drill API.
	planner     interfaces.PauseService
	submitter   interfaces.PauseSubmitter
	metrics     *metrics.PromIndicators
	logger      *zap.Logger
	maxAttempts int
}

// AlertMessage is a monitoring alert asking for market to be paused.
type AlertMessage struct {
	Market   string `json:"market"`
	Reason   string `json:"reason,omitempty"`
	Source   string `json:"source,omitempty"`
	RaisedAt int64  `json:"raised_at,omitempty"`
}

// AlertProcessingResult represents the result of processing one alert
type AlertProcessingResult struct {
	MessageID   string `json:"message_id"`
	Market      string `json:"market,omitempty"`
	Kind        string `json:"kind,omitempty"`
	TxHash      string `json:"tx_hash,omitempty"`
	Paused      bool   `json:"paused"`
	Attempt     int    `json:"attempt"`
	Error       string `json:"error,omitempty"`
	ShouldRetry bool   `json:"should_retry"`
}

func main() {
	stage, err := helpers.ResolveStage(os.Getenv("STAGE"), helpers.StageProd)
	if err != nil {
		stage = helpers.StageProd
	}
	logger.InitLogger(stage)
	defer logger.Sync()

	app, err := createApplication(context.Background(), stage)
	if err != nil {
		logger.Fatal("Failed to create application", zap.Error(err))
	}

	lambda.Start(app.HandleSQSEvent)
}

func createApplication(ctx context.Context, stage string) (*Application, error) {
	secrets, err := awsclient.NewSecretsManagerClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create secrets manager client: %w", err)
	}
	indicators := metrics.NewPromIndicators(prometheus.NewRegistry())

	maxAttempts := defaultMaxAttempts
	if raw := os.Getenv("KEEPER_MAX_ATTEMPTS"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid KEEPER_MAX_ATTEMPTS %q", raw)
		}
		maxAttempts = n
	}

	keyHex, err := secrets.GetSecretString(ctx, "KEEPER_PRIVATE_KEY_ARN", "KEEPER_PRIVATE_KEY")
	if stage == helpers.StageLocal {
		// the drill API accepts the deterministic drill keeper
		return newDrillApplication(keyHex, indicators, maxAttempts)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get keeper key: %w", err)
	}

	rpcURL, err := secrets.GetSecretString(ctx, "RPC_URL_ARN", "RPC_URL")
	if err != nil {
		return nil, fmt.Errorf("failed to get RPC_URL: %w", err)
	}
	chainName := os.Getenv("CHAIN")
	if chainName == "" {
		return nil, fmt.Errorf("CHAIN environment variable is required")
	}
	deployment, err := helpers.ResolveDeployment(chainName, os.Getenv("DEPLOYMENT_CONFIG"))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve deployment: %w", err)
	}

	client, err := eth.Dial(ctx, rpcURL, indicators)
	if err != nil {
		return nil, err
	}
	if client.ChainID().Int64() != deployment.ChainID {
		return nil, fmt.Errorf("rpc chain id %s does not match %s (%d)", client.ChainID(), chainName, deployment.ChainID)
	}

	keeper, err := eth.NewKeeper(client, keyHex, deployment.PauseModule, eth.DefaultKeeperParams())
	if err != nil {
		return nil, err
	}
	if keeper.Address() != deployment.Keeper {
		return nil, fmt.Errorf("keeper key controls %s, pause module expects %s", keeper.Address().Hex(), deployment.Keeper.Hex())
	}

	planner, err := services.NewPauseModuleService(services.PauseModuleConfig{
		Keeper:                deployment.Keeper,
		Safe:                  deployment.Guardian,
		MultiSendCallOnly:     deployment.MultiSendCallOnly,
		LegacyPoolComptroller: deployment.LegacyPoolComptroller,
	}, client, nil, nil, services.WithPauseMetrics(indicators))
	if err != nil {
		return nil, err
	}

	logger.Info("Pause keeper configured",
		zap.String("chain", chainName),
		zap.String("keeper", keeper.Address().Hex()),
		zap.String("pause_module", deployment.PauseModule.Hex()))
	return NewApplication(planner, keeper, indicators, maxAttempts), nil
}

func newDrillApplication(keyHex string, indicators *metrics.PromIndicators, maxAttempts int) (*Application, error) {
	baseURL := os.Getenv("GUARDIAN_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}
	key := chain.DrillKey("keeper")
	if keyHex != "" {
		parsed, err := crypto.HexToECDSA(strings.TrimPrefix(keyHex, "0x"))
		if err != nil {
			return nil, fmt.Errorf("invalid keeper private key: %w", err)
		}
		key = parsed
	}
	client := guardian.NewClient(baseURL, key)
	logger.Info("Pause keeper submitting through the drill API",
		zap.String("base_url", baseURL),
		zap.String("keeper", client.Address().Hex()))
	return NewApplication(nil, client, indicators, maxAttempts), nil
}

// NewApplication wires the keeper. planner may be nil.
func NewApplication(planner interfaces.PauseService, submitter interfaces.PauseSubmitter, indicators *metrics.PromIndicators, maxAttempts int) *Application {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	return &Application{
		planner:     planner,
		submitter:   submitter,
		metrics:     indicators,
		logger:      logger.Named(logger.ComponentKeeper),
		maxAttempts: maxAttempts,
	}
}

// HandleSQSEvent pauses the market of every alert. Records that may succeed
// on a later delivery are reported back as batch item failures.
func (app *Application) HandleSQSEvent(ctx context.Context, event events.SQSEvent) (events.SQSEventResponse, error) {
	app.logger.Info("Pause keeper handling SQS event",
		zap.Int("record_count", len(event.Records)))

	var response events.SQSEventResponse
	paused := make(map[common.Address]AlertProcessingResult)
	successCount := 0

	for _, record := range event.Records {
		result := app.processRecord(ctx, record, paused)
		if result.Paused {
			successCount++
		}
		if result.ShouldRetry {
			response.BatchItemFailures = append(response.BatchItemFailures, events.SQSBatchItemFailure{
				ItemIdentifier: record.MessageId,
			})
		}
	}

	app.logger.Info("Alert processing completed",
		zap.Int("total", len(event.Records)),
		zap.Int("paused", successCount),
		zap.Int("retry", len(response.BatchItemFailures)))
	return response, nil
}

// processRecord handles one alert. Markets already paused earlier in the
// batch are not submitted twice.
func (app *Application) processRecord(ctx context.Context, record events.SQSMessage, paused map[common.Address]AlertProcessingResult) AlertProcessingResult {
	result := AlertProcessingResult{
		MessageID: record.MessageId,
		Attempt:   receiveCount(record),
	}

	var alert AlertMessage
	if err := json.Unmarshal([]byte(record.Body), &alert); err != nil {
		app.logger.Error("Failed to unmarshal alert",
			zap.String("message_id", record.MessageId),
			zap.Error(err))
		app.metrics.AddKeeperAlert("invalid")
		result.Error = fmt.Sprintf("unmarshal error: %v", err)
		return result
	}
	result.Market = alert.Market

	market, err := helpers.ParseAddress(alert.Market)
	if err != nil || helpers.IsZeroAddress(market) {
		app.logger.Error("Alert carries an invalid market",
			zap.String("message_id", record.MessageId),
			zap.String("market", alert.Market))
		app.metrics.AddKeeperAlert("invalid")
		result.Error = "invalid market address"
		return result
	}

	if previous, ok := paused[market]; ok {
		app.logger.Info("Market already paused in this batch",
			zap.String("message_id", record.MessageId),
			zap.String("market", market.Hex()))
		previous.MessageID = record.MessageId
		previous.Attempt = result.Attempt
		return previous
	}

	log := app.logger.With(
		zap.String("message_id", record.MessageId),
		zap.String("market", market.Hex()),
		zap.String("source", alert.Source),
		zap.String("reason", alert.Reason),
		zap.Int("attempt", result.Attempt))

	if app.planner != nil {
		plan, err := app.planner.PlanPause(ctx, market)
		if err != nil {
			return app.fail(log, result, fmt.Errorf("plan: %w", err))
		}
		result.Kind = plan.Kind
		log.Info("Pause planned",
			zap.String("comptroller", plan.Comptroller.Hex()),
			zap.String("kind", plan.Kind),
			zap.Int("calls", len(plan.Calls)))
	}

	start := time.Now()
	hash, err := app.submitter.SubmitPause(ctx, market)
	if err != nil {
		return app.fail(log, result, fmt.Errorf("submit: %w", err))
	}

	result.Paused = true
	result.TxHash = hash.Hex()
	paused[market] = result
	app.metrics.AddKeeperAlert("paused")
	log.Info("Market paused",
		zap.String("tx_hash", result.TxHash),
		zap.Duration("duration", time.Since(start)))
	return result
}

func (app *Application) fail(log *zap.Logger, result AlertProcessingResult, err error) AlertProcessingResult {
	result.Error = err.Error()
	if result.Attempt >= app.maxAttempts {
		log.Error("Giving up on alert after max attempts",
			zap.Int("max_attempts", app.maxAttempts),
			zap.Error(err))
		app.metrics.AddKeeperAlert("abandoned")
		return result
	}
	log.Warn("Pause failed, alert will be redelivered", zap.Error(err))
	app.metrics.AddKeeperAlert("failed")
	result.ShouldRetry = true
	return result
}

func receiveCount(record events.SQSMessage) int {
	n, err := strconv.Atoi(record.Attributes["ApproximateReceiveCount"])
	if err != nil || n <= 0 {
		return 1
	}
	return n
}
