// Package status
package status

import (
	"context"
	"time"

	"kunlun/internal/domain"
	"kunlun/internal/logger"
)

// Broadcaster fans accepted statuses out to live subscribers.
type Broadcaster interface {
	Broadcast(event domain.WsEvent)
}

type Service struct {
	repo      domain.StatusRepository
	hub       Broadcaster
	retention int
	log       logger.Logger
	now       func() time.Time
}

func NewService(repo domain.StatusRepository, hub Broadcaster, retention int, log logger.Logger) *Service {
	if retention < 1 {
		retention = 1
	}
	return &Service{
		repo:      repo,
		hub:       hub,
		retention: retention,
		log:       log,
		now:       time.Now,
	}
}

// Ingest stores one report. Pruning failures are logged, not returned, since
// the report itself was stored.
func (s *Service) Ingest(ctx context.Context, report domain.StatusReport) (*domain.IngestResult, error) {
	st := s.toStatus(report)

	machineID := sanitize(deref(report.MachineID))
	clientID, err := s.repo.UpsertClient(ctx, machineID, st.Name)
	if err != nil {
		return nil, err
	}

	st.ClientID = clientID
	st.MachineID = machineID
	if err := s.repo.Insert(ctx, &st); err != nil {
		return nil, err
	}

	if err := s.repo.Prune(ctx, s.retention); err != nil {
		s.log.Error("failed to prune status history", "error", err)
	}

	if s.hub != nil {
		s.hub.Broadcast(domain.WsEvent{Event: domain.WsEventStatusReceived, Payload: st})
	}

	s.log.Debug("status stored", "client_id", clientID, "machine_id", machineID, "name", st.Name)

	return &domain.IngestResult{ClientID: clientID, Name: st.Name, Location: st.Location}, nil
}

func (s *Service) Latest(ctx context.Context) ([]domain.Status, error) {
	return s.repo.Latest(ctx)
}

// Cleanup drops statuses older than maxAge. A non-positive maxAge keeps
// everything.
func (s *Service) Cleanup(ctx context.Context, maxAge time.Duration) (int64, error) {
	if maxAge <= 0 {
		return 0, nil
	}
	cutoff := s.now().UTC().Add(-maxAge).Unix()
	return s.repo.DeleteOlderThan(ctx, cutoff)
}

func (s *Service) toStatus(r domain.StatusReport) domain.Status {
	return domain.Status{
		InsertedAt:      s.now().UTC().Unix(),
		Name:            orDefault(sanitize(deref(r.Name)), domain.DefaultName),
		System:          sanitize(deref(r.System)),
		Location:        orDefault(sanitize(r.Location), domain.DefaultLocation),
		Uptime:          parseInt(deref(r.Uptime)),
		CPUPercent:      parseFloat(r.CPUPercent),
		NetTx:           parseInt(r.NetTx),
		NetRx:           parseInt(r.NetRx),
		DisksTotalKB:    parseInt(r.DisksTotalKB),
		DisksAvailKB:    parseInt(r.DisksAvailKB),
		CPUNumCores:     parseInt(r.CPUNumCores),
		MemTotal:        parseFloat(r.MemTotal),
		MemFree:         parseFloat(r.MemFree),
		MemUsed:         parseFloat(r.MemUsed),
		SwapTotal:       parseFloat(r.SwapTotal),
		SwapFree:        parseFloat(r.SwapFree),
		ProcessCount:    parseInt(r.ProcessCount),
		ConnectionCount: parseInt(r.ConnectionCount),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
