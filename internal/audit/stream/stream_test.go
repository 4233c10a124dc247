package stream_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kgo"

	"contacts/internal/audit"
	"contacts/internal/audit/models"
	"contacts/internal/audit/stream"
	"contacts/internal/persistence"
	"contacts/internal/persistence/memory"
	"contacts/internal/persistence/schema"
	id "contacts/pkg/domain"
	"contacts/pkg/requestcontext"
)

type Note struct {
	ID       int64       `db:"id,pk"`
	TenantID id.TenantID `db:"tenant_id" assoc:"tenant"`
	Body     string      `db:"body"`
}

func (n *Note) Tenant() id.TenantID { return n.TenantID }

type fakeProducer struct {
	mu      sync.Mutex
	records []*kgo.Record
	ctxErr  error
	err     error
}

func (f *fakeProducer) ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ctxErr = ctx.Err()
	results := make(kgo.ProduceResults, 0, len(rs))
	for _, r := range rs {
		if f.err == nil {
			f.records = append(f.records, r)
		}
		results = append(results, kgo.ProduceResult{Record: r, Err: f.err})
	}
	return results
}

type PublisherSuite struct {
	suite.Suite
	producer *fakeProducer
	manager  *persistence.Manager
	db       *memory.DB
}

func TestPublisherSuite(t *testing.T) {
	suite.Run(t, new(PublisherSuite))
}

func (s *PublisherSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.producer = &fakeProducer{}
	s.db = memory.New()
	registry := schema.NewRegistry().MustRegister(&Note{}, &models.Entry{})
	s.manager = persistence.NewManager(registry, s.db, s.db,
		persistence.WithAllocator(persistence.NewSequenceAllocator(1)))
	audit.NewInterceptor(registry, audit.WithLogger(logger)).Attach(s.manager)
	stream.New(s.producer, "audit.entries", stream.WithLogger(logger)).Attach(s.manager)
}

func (s *PublisherSuite) flush(entities ...any) error {
	ctx := requestcontext.WithUserID(context.Background(), 5)
	ctx = requestcontext.WithTime(ctx, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	sess := s.manager.NewSession()
	for _, e := range entities {
		s.Require().NoError(sess.Persist(e))
	}
	return sess.Flush(ctx)
}

func (s *PublisherSuite) TestPublishesCommittedEntries() {
	note := &Note{TenantID: 5, Body: "hello"}
	s.Require().NoError(s.flush(note))

	s.Require().Len(s.producer.records, 1)
	rec := s.producer.records[0]
	s.Equal("audit.entries", rec.Topic)
	s.Equal("5", string(rec.Key))
	s.Equal([]kgo.RecordHeader{
		{Key: "action", Value: []byte("INSERT")},
		{Key: "entity_type", Value: []byte("Note")},
	}, rec.Headers)

	var body map[string]any
	s.Require().NoError(json.Unmarshal(rec.Value, &body))
	s.Equal("Note", body["entityType"])
	s.Equal(float64(note.ID), body["entityId"])
	s.Equal("hello", body["snapshotAfter"].(map[string]any)["body"])
}

func (s *PublisherSuite) TestPublishFailureDoesNotFailCommit() {
	s.producer.err = errors.New("broker unavailable")

	note := &Note{TenantID: 5, Body: "kept"}
	s.Require().NoError(s.flush(note))

	_, ok := s.db.Get("notes", note.ID)
	s.True(ok)
	s.Len(s.db.Select("audit_log", nil), 1)
}

func (s *PublisherSuite) TestNothingPublishedWithoutEntries() {
	p := stream.New(s.producer, "audit.entries")
	p.Publish(context.Background(), nil)
	s.Empty(s.producer.records)
}

func (s *PublisherSuite) TestPublishOutlivesRequestCancellation() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := stream.New(s.producer, "audit.entries")
	p.Publish(ctx, []*models.Entry{{ID: 1, TenantID: 2, EntityType: "Note", Action: models.ActionRemove}})

	s.Require().Len(s.producer.records, 1)
	s.NoError(s.producer.ctxErr)
}

func (s *PublisherSuite) TestZeroTimeoutKeepsDefault() {
	p := stream.New(s.producer, "audit.entries", stream.WithTimeout(0))
	p.Publish(context.Background(), []*models.Entry{{ID: 1, TenantID: 2, EntityType: "Note", Action: models.ActionInsert}})

	s.Require().Len(s.producer.records, 1)
	s.NoError(s.producer.ctxErr)
}
