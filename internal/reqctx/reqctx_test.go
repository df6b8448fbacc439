package reqctx

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRun(t *testing.T) {
	ctx := WithRun(context.Background())
	rc := GetRun(ctx)

	_, err := uuid.Parse(rc.RunID)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), rc.StartTime, time.Second)

	other := GetRun(WithRun(context.Background()))
	assert.NotEqual(t, rc.RunID, other.RunID)
}

func TestGetRun_Missing(t *testing.T) {
	rc := GetRun(context.Background())
	assert.Equal(t, "unknown", rc.RunID)
}

func TestElapsed(t *testing.T) {
	ctx := WithRun(context.Background())
	time.Sleep(5 * time.Millisecond)
	assert.GreaterOrEqual(t, Elapsed(ctx), 5*time.Millisecond)
}
