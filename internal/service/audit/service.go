package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-dashboard/internal/model"
	"github.com/jwalitptl/clinic-dashboard/internal/repository"
	"github.com/jwalitptl/clinic-dashboard/pkg/search"
	"github.com/jwalitptl/clinic-dashboard/pkg/sortpipe"
)

const contextRequestID = "request_id"

type Service struct {
	repo repository.AuditRepository
	now  func() time.Time
}

func NewService(repo repository.AuditRepository) *Service {
	return &Service{repo: repo, now: time.Now}
}

type LogOptions struct {
	Changes   interface{}
	IPAddress string
	UserAgent string
}

// Log creates an audit log entry. Request details are taken from the gin
// context when ctx is one and opts does not set them.
func (s *Service) Log(ctx context.Context, action, entityType, entityID string, opts *LogOptions) error {
	if opts == nil {
		opts = &LogOptions{}
	}

	var changes json.RawMessage
	if opts.Changes != nil {
		raw, err := json.Marshal(opts.Changes)
		if err != nil {
			return fmt.Errorf("failed to encode audit changes: %w", err)
		}
		changes = raw
	}

	entry := model.AuditLog{
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Changes:    changes,
		IPAddress:  opts.IPAddress,
		UserAgent:  opts.UserAgent,
		CreatedAt:  s.now(),
	}
	if gc, ok := ctx.(*gin.Context); ok {
		entry.RequestID = gc.GetString(contextRequestID)
		if entry.IPAddress == "" {
			entry.IPAddress = gc.ClientIP()
			entry.UserAgent = gc.GetHeader("User-Agent")
		}
	}

	s.repo.Add(entry)
	return nil
}

var newestFirst = sortpipe.New(
	sortpipe.ByTime(func(l model.AuditLog) time.Time { return l.CreatedAt }).Dir(sortpipe.Desc),
)

// List returns matching entries, newest first.
func (s *Service) List(ctx context.Context, filters model.AuditFilters) []model.AuditLog {
	logs := search.Filter(s.repo.All(),
		search.Equal(func(l model.AuditLog) string { return l.EntityType }, filters.EntityType),
		search.Equal(func(l model.AuditLog) string { return l.EntityID }, filters.EntityID),
		search.Equal(func(l model.AuditLog) string { return l.Action }, filters.Action),
	)
	logs = newestFirst.Sort(logs)
	if filters.Limit > 0 && len(logs) > filters.Limit {
		logs = logs[:filters.Limit]
	}
	return logs
}

func (s *Service) GetAggregateStats(ctx context.Context) model.AuditStats {
	stats := model.AuditStats{
		ActionCounts: map[string]int{},
		EntityCounts: map[string]int{},
	}
	for _, l := range s.repo.All() {
		stats.TotalLogs++
		stats.ActionCounts[l.Action]++
		stats.EntityCounts[l.EntityType]++
	}
	return stats
}

// Prune removes entries created before cutoff and reports how many went.
func (s *Service) Prune(ctx context.Context, cutoff time.Time) int {
	removed := 0
	for _, l := range s.repo.All() {
		if ctx.Err() != nil {
			break
		}
		if l.CreatedAt.Before(cutoff) && s.repo.Remove(l.ID) {
			removed++
		}
	}
	return removed
}
