package activity

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// 생성 결과 분류
const (
	OutcomeSucceeded      = "succeeded"
	OutcomeRejected       = "rejected"
	OutcomeUpstreamFailed = "upstream_failed"
)

const (
	recentKey     = "activity:recent"
	counterPrefix = "activity:count:"
	maxRecent     = 50 // 최근 기록 보관 개수
)

// Entry - 생성 요청 1건의 기록
type Entry struct {
	RequestID string    `json:"requestId"`
	Outcome   string    `json:"outcome"`
	Size      string    `json:"size,omitempty"`
	ElapsedMS int64     `json:"elapsedMs"`
	At        time.Time `json:"at"`
}

// Stats - /metrics 응답용 스냅샷
type Stats struct {
	Succeeded      int64   `json:"succeeded"`
	Rejected       int64   `json:"rejected"`
	UpstreamFailed int64   `json:"upstreamFailed"`
	Recent         []Entry `json:"recent"`
}

// Recorder - Redis 기반 activity 기록기
// Redis가 없으면 nil client로 생성되고 모든 동작이 no-op이 된다
type Recorder struct {
	rdb *redis.Client
}

// NewRecorder - Recorder 생성 (rdb는 nil 허용)
func NewRecorder(rdb *redis.Client) *Recorder {
	return &Recorder{rdb: rdb}
}

// Enabled - 기록 활성화 여부
func (r *Recorder) Enabled() bool {
	return r != nil && r.rdb != nil
}

// Record - 생성 결과 기록 (카운터 증가 + 최근 목록 push)
func (r *Recorder) Record(ctx context.Context, entry Entry) {
	if !r.Enabled() {
		return
	}

	entry.At = time.Now().UTC()

	payload, err := json.Marshal(entry)
	if err != nil {
		log.Printf("⚠️  Failed to marshal activity entry: %v", err)
		return
	}

	pipe := r.rdb.Pipeline()
	pipe.Incr(ctx, counterPrefix+entry.Outcome)
	pipe.LPush(ctx, recentKey, payload)
	pipe.LTrim(ctx, recentKey, 0, maxRecent-1)
	if _, err := pipe.Exec(ctx); err != nil {
		// 기록 실패는 요청 처리에 영향을 주지 않는다
		log.Printf("⚠️  Failed to record activity: %v", err)
	}
}

// Snapshot - 현재 카운터와 최근 기록 조회
func (r *Recorder) Snapshot(ctx context.Context) (*Stats, error) {
	stats := &Stats{Recent: []Entry{}}
	if !r.Enabled() {
		return stats, nil
	}

	for outcome, target := range map[string]*int64{
		OutcomeSucceeded:      &stats.Succeeded,
		OutcomeRejected:       &stats.Rejected,
		OutcomeUpstreamFailed: &stats.UpstreamFailed,
	} {
		count, err := r.rdb.Get(ctx, counterPrefix+outcome).Int64()
		if err != nil && err != redis.Nil {
			return nil, err
		}
		*target = count
	}

	raw, err := r.rdb.LRange(ctx, recentKey, 0, maxRecent-1).Result()
	if err != nil && err != redis.Nil {
		return nil, err
	}
	for _, item := range raw {
		var entry Entry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			continue
		}
		stats.Recent = append(stats.Recent, entry)
	}

	return stats, nil
}
