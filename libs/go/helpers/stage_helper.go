package helpers

import (
	"fmt"
	"slices"
	"strings"

	"github.com/guardian/guardian-api/libs/go/constants"
)

// Stages a guardian process runs in. Deployed stages read their credentials
// from Secrets Manager, local defaults to the drill ledger.
const (
	StageProd  = constants.ProdEnvironment
	StageDev   = "dev"
	StageLocal = "local"
)

var stages = []string{StageProd, StageDev, StageLocal}

// IsValidStage reports whether stage is one of the known stages.
func IsValidStage(stage string) bool {
	return slices.Contains(stages, stage)
}

// IsDeployedStage reports whether stage runs against deployed infrastructure.
func IsDeployedStage(stage string) bool {
	return stage == StageProd || stage == StageDev
}

// ResolveStage normalizes the STAGE value raw. An empty value selects fallback.
func ResolveStage(raw, fallback string) (string, error) {
	stage := strings.ToLower(strings.TrimSpace(raw))
	if stage == "" {
		stage = fallback
	}
	if !IsValidStage(stage) {
		return "", fmt.Errorf("invalid stage %q, must be one of: %s", raw, strings.Join(stages, ", "))
	}
	return stage, nil
}
