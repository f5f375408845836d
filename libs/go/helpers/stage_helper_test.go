package helpers_test

import (
	"testing"

	"github.com/guardian/guardian-api/libs/go/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveStage(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		fallback string
		want     string
		wantErr  bool
	}{
		{name: "explicit", raw: "dev", fallback: helpers.StageLocal, want: helpers.StageDev},
		{name: "normalized", raw: " PROD ", fallback: helpers.StageLocal, want: helpers.StageProd},
		{name: "empty uses fallback", raw: "", fallback: helpers.StageLocal, want: helpers.StageLocal},
		{name: "unknown", raw: "staging", fallback: helpers.StageLocal, wantErr: true},
		{name: "invalid fallback", raw: "", fallback: "qa", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := helpers.ResolveStage(tt.raw, tt.fallback)
			if tt.wantErr {
				assert.ErrorContains(t, err, "invalid stage")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsDeployedStage(t *testing.T) {
	assert.True(t, helpers.IsDeployedStage(helpers.StageProd))
	assert.True(t, helpers.IsDeployedStage(helpers.StageDev))
	assert.False(t, helpers.IsDeployedStage(helpers.StageLocal))
	assert.False(t, helpers.IsDeployedStage(""))
}
