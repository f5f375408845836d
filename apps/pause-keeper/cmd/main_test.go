package main

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/ethereum/go-ethereum/common"
	"github.com/guardian/guardian-api/libs/go/logger"
	"github.com/guardian/guardian-api/libs/go/metrics"
	"github.com/guardian/guardian-api/libs/go/mocks"
	"github.com/guardian/guardian-api/libs/go/types/business"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	logger.InitLogger("test")
}

var (
	legacyMarket   = common.HexToAddress("0xA07c5b74C9B40447a954e1466938b865b6BBea36")
	isolatedMarket = common.HexToAddress("0xb91A659E88B51474767CD97EF3196A3e7cEDD2c8")
	pauseTxHash    = common.HexToHash("0x9a6f3c1e0b7d2a4c8e5f1b3d7a9c2e4f6b8d0a1c3e5f7b9d1a3c5e7f9b1d3a5c")
)

func sqsRecord(id, body string, receiveCount string) events.SQSMessage {
	msg := events.SQSMessage{MessageId: id, Body: body}
	if receiveCount != "" {
		msg.Attributes = map[string]string{"ApproximateReceiveCount": receiveCount}
	}
	return msg
}

func alertBody(market common.Address) string {
	return `{"market":"` + market.Hex() + `","source":"risk-monitor","reason":"oracle deviation"}`
}

func newTestApp(t *testing.T, withPlanner bool) (*Application, *mocks.MockPauseService, *mocks.MockPauseSubmitter, *prometheus.Registry) {
	t.Helper()
	ctrl := gomock.NewController(t)
	submitter := mocks.NewMockPauseSubmitter(ctrl)
	reg := prometheus.NewRegistry()

	var planner *mocks.MockPauseService
	if withPlanner {
		planner = mocks.NewMockPauseService(ctrl)
		return NewApplication(planner, submitter, metrics.NewPromIndicators(reg), 3), planner, submitter, reg
	}
	return NewApplication(nil, submitter, metrics.NewPromIndicators(reg), 3), nil, submitter, reg
}

func TestHandleSQSEvent_PausesMarkets(t *testing.T) {
	app, planner, submitter, reg := newTestApp(t, true)
	ctx := context.Background()

	planner.EXPECT().PlanPause(ctx, legacyMarket).Return(&business.PausePlan{Market: legacyMarket, Kind: "legacy"}, nil)
	planner.EXPECT().PlanPause(ctx, isolatedMarket).Return(&business.PausePlan{Market: isolatedMarket, Kind: "isolated"}, nil)
	submitter.EXPECT().SubmitPause(ctx, legacyMarket).Return(pauseTxHash, nil)
	submitter.EXPECT().SubmitPause(ctx, isolatedMarket).Return(pauseTxHash, nil)

	resp, err := app.HandleSQSEvent(ctx, events.SQSEvent{Records: []events.SQSMessage{
		sqsRecord("m-1", alertBody(legacyMarket), "1"),
		sqsRecord("m-2", alertBody(isolatedMarket), "1"),
	}})
	require.NoError(t, err)
	assert.Empty(t, resp.BatchItemFailures)

	expected := `
# HELP guardian_keeper_alerts_total Monitoring alerts handled by the keeper
# TYPE guardian_keeper_alerts_total counter
guardian_keeper_alerts_total{result="paused"} 2
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "guardian_keeper_alerts_total"))
}

func TestHandleSQSEvent_DuplicateMarketSubmittedOnce(t *testing.T) {
	app, _, submitter, _ := newTestApp(t, false)
	ctx := context.Background()

	submitter.EXPECT().SubmitPause(ctx, legacyMarket).Return(pauseTxHash, nil).Times(1)

	resp, err := app.HandleSQSEvent(ctx, events.SQSEvent{Records: []events.SQSMessage{
		sqsRecord("m-1", alertBody(legacyMarket), ""),
		sqsRecord("m-2", alertBody(legacyMarket), ""),
	}})
	require.NoError(t, err)
	assert.Empty(t, resp.BatchItemFailures)
}

func TestHandleSQSEvent_InvalidAlertsAreDropped(t *testing.T) {
	app, _, _, reg := newTestApp(t, false)

	resp, err := app.HandleSQSEvent(context.Background(), events.SQSEvent{Records: []events.SQSMessage{
		sqsRecord("m-1", "not json", ""),
		sqsRecord("m-2", `{"market":"0x1234"}`, ""),
		sqsRecord("m-3", `{"market":"0x0000000000000000000000000000000000000000"}`, ""),
	}})
	require.NoError(t, err)
	assert.Empty(t, resp.BatchItemFailures)

	expected := `
# HELP guardian_keeper_alerts_total Monitoring alerts handled by the keeper
# TYPE guardian_keeper_alerts_total counter
guardian_keeper_alerts_total{result="invalid"} 3
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "guardian_keeper_alerts_total"))
}

func TestHandleSQSEvent_Failures(t *testing.T) {
	tests := []struct {
		name         string
		receiveCount string
		planErr      error
		submitErr    error
		wantRetry    bool
	}{
		{name: "plan fails on first delivery", receiveCount: "1", planErr: errors.New("rpc timeout"), wantRetry: true},
		{name: "submit fails on first delivery", receiveCount: "1", submitErr: errors.New("pause transaction reverted"), wantRetry: true},
		{name: "submit fails on last attempt", receiveCount: "3", submitErr: errors.New("pause transaction reverted"), wantRetry: false},
		{name: "unparseable receive count counts as first", receiveCount: "x", submitErr: errors.New("nonce too low"), wantRetry: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, planner, submitter, _ := newTestApp(t, true)
			ctx := context.Background()

			if tt.planErr != nil {
				planner.EXPECT().PlanPause(ctx, legacyMarket).Return(nil, tt.planErr)
			} else {
				planner.EXPECT().PlanPause(ctx, legacyMarket).Return(&business.PausePlan{Market: legacyMarket, Kind: "legacy"}, nil)
				submitter.EXPECT().SubmitPause(ctx, legacyMarket).Return(common.Hash{}, tt.submitErr)
			}

			resp, err := app.HandleSQSEvent(ctx, events.SQSEvent{Records: []events.SQSMessage{
				sqsRecord("m-1", alertBody(legacyMarket), tt.receiveCount),
			}})
			require.NoError(t, err)
			if tt.wantRetry {
				require.Len(t, resp.BatchItemFailures, 1)
				assert.Equal(t, "m-1", resp.BatchItemFailures[0].ItemIdentifier)
			} else {
				assert.Empty(t, resp.BatchItemFailures)
			}
		})
	}
}

func TestProcessRecord_Result(t *testing.T) {
	app, _, submitter, _ := newTestApp(t, false)
	ctx := context.Background()
	submitter.EXPECT().SubmitPause(ctx, legacyMarket).Return(pauseTxHash, nil)

	result := app.processRecord(ctx, sqsRecord("m-9", alertBody(legacyMarket), "2"), map[common.Address]AlertProcessingResult{})
	assert.True(t, result.Paused)
	assert.Equal(t, 2, result.Attempt)
	assert.Equal(t, pauseTxHash.Hex(), result.TxHash)
	assert.False(t, result.ShouldRetry)
}
