package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	auditmodels "contacts/internal/audit/models"
	"contacts/internal/contact/models"
	"contacts/internal/contact/service"
	"contacts/internal/contact/store"
	"contacts/internal/persistence"
	"contacts/internal/persistence/schema"
	id "contacts/pkg/domain"
	dErrors "contacts/pkg/domain-errors"
)

func (s *ServiceSuite) TestImportSkipsStoredNames() {
	_, err := s.service.CreateContact(s.as(alice, 0), models.ContactRequest{
		ContactNames: []models.NameInput{{Family: str("Lovelace"), Given: str("Ada")}},
	})
	s.Require().NoError(err)

	result, err := s.service.ImportContacts(s.as(alice, time.Minute), models.ImportRequest{Contacts: []models.ContactRequest{
		{ContactNames: []models.NameInput{{Family: str("Lovelace"), Given: str("Ada")}}},
		{ContactNames: []models.NameInput{{Family: str("Lovelace")}}},
		{ContactNames: []models.NameInput{{Given: str("Grace")}}, ContactDates: []models.DateInput{{Date: str("1906-12-09")}}},
	}})
	s.Require().NoError(err)
	s.Equal(1, result.Skipped)
	s.Require().Len(result.Imported, 2)
	s.Equal("Lovelace", *result.Imported[0].Names[0].Family)
	s.Nil(result.Imported[0].Names[0].Given)
	s.Require().Len(result.Imported[1].Dates, 1)

	inserts := s.logs(alice, auditmodels.Filter{Action: auditmodels.ActionInsert, EntityType: models.EntityContact})
	s.Len(inserts, 3)
}

func (s *ServiceSuite) TestImportDeduplicatesWithinBatch() {
	result, err := s.service.ImportContacts(s.as(alice, 0), models.ImportRequest{Contacts: []models.ContactRequest{
		{ContactNames: []models.NameInput{{Given: str("Ann")}}},
		{ContactNames: []models.NameInput{{Family: str("Other")}, {Given: str("Ann")}}},
		{ContactNames: []models.NameInput{{}}},
		{ContactNames: []models.NameInput{{}}},
	}})
	s.Require().NoError(err)
	s.Equal(1, result.Skipped)
	s.Len(result.Imported, 3)
}

func (s *ServiceSuite) TestImportIsTenantScoped() {
	_, err := s.service.CreateContact(s.as(bob, 0), models.ContactRequest{
		ContactNames: []models.NameInput{{Given: str("Ann")}},
	})
	s.Require().NoError(err)

	result, err := s.service.ImportContacts(s.as(alice, 0), models.ImportRequest{Contacts: []models.ContactRequest{
		{ContactNames: []models.NameInput{{Given: str("Ann")}}},
	}})
	s.Require().NoError(err)
	s.Zero(result.Skipped)
	s.Len(result.Imported, 1)
}

func (s *ServiceSuite) TestImportRejectsWholeBatchOnInvalidContact() {
	_, err := s.service.ImportContacts(s.as(alice, 0), models.ImportRequest{Contacts: []models.ContactRequest{
		{ContactNames: []models.NameInput{{Given: str("ok")}}},
		{ContactDates: []models.DateInput{{Date: str("10/12/1815")}}},
	}})
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	s.Empty(s.db.Select("contacts", nil))

	_, err = s.service.ImportContacts(s.as(alice, 0), models.ImportRequest{
		Contacts: make([]models.ContactRequest, models.MaxImportBatch+1),
	})
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))

	_, err = s.service.ImportContacts(context.Background(), models.ImportRequest{})
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

type checkerFunc func(models.ContactRequest) (bool, error)

func (f checkerFunc) IsDuplicate(_ context.Context, _ id.TenantID, req models.ContactRequest) (bool, error) {
	return f(req)
}

func (s *ServiceSuite) TestImportUsesConfiguredCheckers() {
	registry := schema.NewRegistry().MustRegister(models.Entities()...)
	manager := persistence.NewManager(registry, s.db, s.db,
		persistence.WithAllocator(persistence.NewSequenceAllocator(100)))
	contacts, err := store.NewInMemory(s.db, registry)
	s.Require().NoError(err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	noDates := checkerFunc(func(req models.ContactRequest) (bool, error) {
		return len(req.ContactDates) == 0, nil
	})
	svc := service.New(contacts, manager, service.WithLogger(logger), service.WithDuplicateCheckers(noDates))
	result, err := svc.ImportContacts(s.as(alice, 0), models.ImportRequest{Contacts: []models.ContactRequest{
		{ContactNames: []models.NameInput{{Given: str("Ann")}}},
		{ContactDates: []models.DateInput{{Text: str("met")}}},
	}})
	s.Require().NoError(err)
	s.Equal(1, result.Skipped)
	s.Require().Len(result.Imported, 1)
	s.Empty(result.Imported[0].Names)

	failing := checkerFunc(func(models.ContactRequest) (bool, error) {
		return false, errors.New("lookup failed")
	})
	svc = service.New(contacts, manager, service.WithLogger(logger), service.WithDuplicateCheckers(failing))
	_, err = svc.ImportContacts(s.as(alice, 0), models.ImportRequest{Contacts: []models.ContactRequest{{}}})
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}
