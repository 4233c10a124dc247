package audit_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"contacts/internal/audit"
	"contacts/internal/audit/models"
	auditstore "contacts/internal/audit/store"
	"contacts/internal/persistence"
	"contacts/internal/persistence/memory"
	"contacts/internal/persistence/schema"
	id "contacts/pkg/domain"
	dErrors "contacts/pkg/domain-errors"
	"contacts/pkg/requestcontext"
)

type InterceptorSuite struct {
	suite.Suite
	db      *memory.DB
	manager *persistence.Manager
	entries *auditstore.InMemoryStore
	now     time.Time
}

func TestInterceptorSuite(t *testing.T) {
	suite.Run(t, new(InterceptorSuite))
}

func (s *InterceptorSuite) SetupTest() {
	s.db = memory.New()
	registry := schema.NewRegistry().MustRegister(&Pet{}, &Toy{}, &Chore{}, &models.Entry{})
	s.manager = persistence.NewManager(registry, s.db, s.db,
		persistence.WithAllocator(persistence.NewSequenceAllocator(1000)))
	audit.NewInterceptor(registry, audit.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))).Attach(s.manager)

	var err error
	s.entries, err = auditstore.NewInMemory(s.db, registry)
	s.Require().NoError(err)
	s.now = time.Date(2025, 4, 2, 9, 30, 0, 0, time.UTC)
}

// as returns a request context for principal (zero for none) at the suite's clock.
func (s *InterceptorSuite) as(principal id.UserID) context.Context {
	ctx := requestcontext.WithTime(context.Background(), s.now)
	if principal != 0 {
		ctx = requestcontext.WithUserID(ctx, principal)
	}
	return ctx
}

func (s *InterceptorSuite) logs(tenant id.TenantID) []*models.Entry {
	entries, err := s.entries.List(context.Background(), tenant, models.Filter{Order: models.OrderAsc})
	s.Require().NoError(err)
	return entries
}

func (s *InterceptorSuite) insertPet(ctx context.Context, p *Pet) *persistence.Session {
	sess := s.manager.NewSession()
	s.Require().NoError(sess.Persist(p))
	s.Require().NoError(sess.Flush(ctx))
	return sess
}

func (s *InterceptorSuite) TestInsertRecordsSnapshotAfterWithFinalID() {
	p := &Pet{TenantID: 7, HouseID: 3, Name: "Rex", Toys: []*Toy{{Name: "ball"}}}
	s.insertPet(s.as(7), p)

	logs := s.logs(7)
	s.Require().Len(logs, 1)
	e := logs[0]
	s.Equal(models.ActionInsert, e.Action)
	s.Equal("Pet", e.EntityType)
	s.Require().NotNil(e.EntityID)
	s.Equal(p.ID, *e.EntityID)
	s.Equal(models.Snapshot{
		"id":       p.ID,
		"tenant":   int64(7),
		"house":    int64(3),
		"name":     "Rex",
		"nickname": nil,
	}, e.SnapshotAfter)
	s.Equal(p.ID, e.SnapshotAfter["id"], "snapshot id matches the committed id")
	s.Nil(e.SnapshotBefore)
	s.Nil(e.Changes)
	s.Equal(id.UserID(7), e.ActorID)
	s.Equal(id.TenantID(7), e.TenantID)
	s.True(s.now.Equal(e.CreatedAt))
	s.NotZero(e.ID)
}

func (s *InterceptorSuite) TestUpdateRecordsOnlyChangedFields() {
	p := &Pet{TenantID: 7, HouseID: 3, Name: "Rex"}
	sess := s.insertPet(s.as(7), p)

	p.Name = "Max"
	p.Nickname = strPtr("Maxi")
	s.Require().NoError(sess.Flush(s.as(7)))

	logs := s.logs(7)
	s.Require().Len(logs, 2)
	upd := logs[1]
	s.Equal(models.ActionUpdate, upd.Action)
	s.Equal(models.Changes{
		"name":     {Old: "Rex", New: "Max"},
		"nickname": {Old: nil, New: "Maxi"},
	}, upd.Changes)
	s.Nil(upd.SnapshotBefore)
	s.Nil(upd.SnapshotAfter)
	s.Equal(p.ID, *upd.EntityID)
}

func (s *InterceptorSuite) TestAssociationChangeUsesAssociationName() {
	p := &Pet{TenantID: 7, HouseID: 3, Name: "Rex"}
	sess := s.insertPet(s.as(7), p)

	p.HouseID = 4
	s.Require().NoError(sess.Flush(s.as(7)))

	logs := s.logs(7)
	s.Require().Len(logs, 2)
	s.Equal(models.Changes{"house": {Old: int64(3), New: int64(4)}}, logs[1].Changes)
}

func (s *InterceptorSuite) TestRemoveRecordsSnapshotBefore() {
	p := &Pet{TenantID: 7, HouseID: 0, Name: "Rex"}
	sess := s.insertPet(s.as(7), p)

	s.Require().NoError(sess.Remove(p))
	s.Require().NoError(sess.Flush(s.as(7)))

	logs := s.logs(7)
	s.Require().Len(logs, 2)
	rm := logs[1]
	s.Equal(models.ActionRemove, rm.Action)
	s.Equal(models.Snapshot{"id": p.ID, "tenant": int64(7), "name": "Rex", "nickname": nil}, rm.SnapshotBefore,
		"unset associations are omitted")
	s.Nil(rm.SnapshotAfter)
	s.Nil(rm.Changes)
}

func (s *InterceptorSuite) TestEntriesFollowWorkOrder() {
	a := &Pet{TenantID: 7, Name: "A"}
	b := &Pet{TenantID: 7, Name: "B"}
	sess := s.manager.NewSession()
	s.Require().NoError(sess.Persist(a))
	s.Require().NoError(sess.Persist(b))
	s.Require().NoError(sess.Flush(s.as(7)))

	c := &Pet{TenantID: 7, Name: "C"}
	s.Require().NoError(sess.Persist(c))
	a.Name = "A2"
	s.Require().NoError(sess.Remove(b))
	s.Require().NoError(sess.Flush(s.as(7)))

	var actions []models.Action
	for _, e := range s.logs(7) {
		actions = append(actions, e.Action)
	}
	s.Equal([]models.Action{
		models.ActionInsert, models.ActionInsert,
		models.ActionInsert, models.ActionUpdate, models.ActionRemove,
	}, actions)
}

func (s *InterceptorSuite) TestNonTenantAwareEntitiesAreNotAudited() {
	sess := s.manager.NewSession()
	s.Require().NoError(sess.Persist(&Toy{Name: "ball"}))
	s.Require().NoError(sess.Flush(s.as(7)))

	s.Len(s.db.Select("toys", nil), 1)
	s.Empty(s.db.Select("audit_log", nil))
}

func (s *InterceptorSuite) TestAuditEntriesAreNeverAudited() {
	sess := s.manager.NewSession()
	s.Require().NoError(sess.Persist(&models.Entry{TenantID: 7, ActorID: 7, EntityType: "Manual", Action: models.ActionInsert}))
	s.Require().NoError(sess.Flush(s.as(7)))

	rows := s.db.Select("audit_log", nil)
	s.Require().Len(rows, 1)
	s.Equal("Manual", rows[0]["entity_type"])
}

func (s *InterceptorSuite) TestKeylessEntityGetsNullEntityID() {
	sess := s.manager.NewSession()
	s.Require().NoError(sess.Persist(&Chore{TenantID: 7, Task: "walk"}))
	s.Require().NoError(sess.Flush(s.as(7)))

	logs := s.logs(7)
	s.Require().Len(logs, 1)
	s.Nil(logs[0].EntityID)
	s.Equal(models.Snapshot{"tenant": int64(7), "task": "walk"}, logs[0].SnapshotAfter)
}

func (s *InterceptorSuite) TestPrincipalIsActorAndEntityGivesTenant() {
	p := &Pet{TenantID: 7, Name: "Rex"}
	s.insertPet(s.as(9), p)

	logs := s.logs(7)
	s.Require().Len(logs, 1)
	s.Equal(id.UserID(9), logs[0].ActorID, "the principal is the actor")
	s.Equal(id.TenantID(7), logs[0].TenantID, "the tenant comes from the entity")
	s.Empty(s.logs(9))
}

func (s *InterceptorSuite) TestBackgroundChangeFallsBackToTenantOwner() {
	p := &Pet{TenantID: 7, Name: "Rex"}
	s.insertPet(s.as(0), p)

	logs := s.logs(7)
	s.Require().Len(logs, 1)
	s.Equal(id.UserID(7), logs[0].ActorID)
}

func (s *InterceptorSuite) TestUnattributableChangeAbortsTheFlush() {
	sess := s.manager.NewSession()
	s.Require().NoError(sess.Persist(&Pet{Name: "orphan"}))
	s.Require().NoError(sess.Persist(&Pet{TenantID: 7, Name: "fine"}))

	err := sess.Flush(s.as(0))
	s.Require().Error(err)
	s.ErrorIs(err, audit.ErrNoActor)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))

	s.Empty(s.db.Select("pets", nil), "the entity write is rolled back with the audit entries")
	s.Empty(s.db.Select("audit_log", nil))
}

func (s *InterceptorSuite) TestUnchangedTrackedEntityProducesNoEntry() {
	p := &Pet{TenantID: 7, Name: "Rex"}
	sess := s.insertPet(s.as(7), p)
	s.Require().NoError(sess.Flush(s.as(7)))
	s.Len(s.logs(7), 1)
}
