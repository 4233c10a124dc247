package store_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"contacts/internal/notification/models"
	"contacts/internal/notification/store"
	"contacts/internal/persistence"
	"contacts/internal/persistence/memory"
	"contacts/internal/persistence/schema"
)

type InMemoryStoreSuite struct {
	storeContract
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	db := memory.New()
	registry := schema.NewRegistry().MustRegister(models.Entities()...)
	notifications, err := store.NewInMemory(db, registry)
	s.Require().NoError(err)
	s.store = notifications
	s.uow = persistence.NewManager(registry, db, db,
		persistence.WithAllocator(persistence.NewSequenceAllocator(100)))
}
