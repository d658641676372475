package metrics

import coreport "github.com/amirhossein-jamali/qr-rewards/internal/domain/port/core"

// NoopRewardMetrics discards reward counters when metrics are disabled
type NoopRewardMetrics struct{}

var _ coreport.RewardMetrics = NoopRewardMetrics{}

func (NoopRewardMetrics) ScanAttempt(string)  {}
func (NoopRewardMetrics) GameCompleted(int64) {}
func (NoopRewardMetrics) GameRejected(int)    {}
