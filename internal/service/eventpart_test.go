package service

import (
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vocoteam/eventparts-api/internal/domain"
	"github.com/vocoteam/eventparts-api/internal/repository"
)

type fakePartRepo struct {
	nextID         uint
	parts          map[uint]domain.EventPart
	assignedOrders map[uint][]domain.Order
	assignedParts  map[string]domain.AssignmentSet

	createEntries []domain.LogEntry
	updateEntries []domain.LogEntry
	deleteEntries []domain.LogEntry
}

func newFakePartRepo() *fakePartRepo {
	return &fakePartRepo{
		nextID:         1,
		parts:          map[uint]domain.EventPart{},
		assignedOrders: map[uint][]domain.Order{},
		assignedParts:  map[string]domain.AssignmentSet{},
	}
}

func (f *fakePartRepo) add(part domain.EventPart) domain.EventPart {
	part.ID = f.nextID
	f.nextID++
	f.parts[part.ID] = part
	return part
}

func (f *fakePartRepo) CreateWithLog(_ context.Context, part domain.EventPart, entry domain.LogEntry) (domain.EventPart, error) {
	created := f.add(part)
	entry.ObjectID = created.ID
	f.createEntries = append(f.createEntries, entry)
	return created, nil
}

func (f *fakePartRepo) UpdateWithLog(_ context.Context, part domain.EventPart, entry domain.LogEntry) (domain.EventPart, error) {
	f.parts[part.ID] = part
	f.updateEntries = append(f.updateEntries, entry)
	return part, nil
}

func (f *fakePartRepo) DeleteWithLog(_ context.Context, part domain.EventPart, entry domain.LogEntry) error {
	delete(f.parts, part.ID)
	f.deleteEntries = append(f.deleteEntries, entry)
	return nil
}

func (f *fakePartRepo) FindByID(_ context.Context, eventID, id uint) (domain.EventPart, error) {
	part, ok := f.parts[id]
	if !ok || part.EventID != eventID {
		return domain.EventPart{}, repository.ErrEventPartNotFound
	}
	return part, nil
}

func (f *fakePartRepo) FindByEvent(_ context.Context, eventID uint, offset, limit int) ([]domain.EventPart, error) {
	var parts []domain.EventPart
	for id := uint(1); id < f.nextID; id++ {
		if part, ok := f.parts[id]; ok && part.EventID == eventID {
			parts = append(parts, part)
		}
	}
	if offset >= len(parts) {
		return nil, nil
	}
	end := offset + limit
	if end > len(parts) {
		end = len(parts)
	}
	return parts[offset:end], nil
}

func (f *fakePartRepo) CountByEvent(_ context.Context, eventID uint) (int64, error) {
	var count int64
	for _, part := range f.parts {
		if part.EventID == eventID {
			count++
		}
	}
	return count, nil
}

func (f *fakePartRepo) FindAssignedParts(_ context.Context, orderCode string) (domain.AssignmentSet, error) {
	return f.assignedParts[orderCode], nil
}

func (f *fakePartRepo) FindAssignedOrders(_ context.Context, partID uint) ([]domain.Order, error) {
	return f.assignedOrders[partID], nil
}

type fakeOrderRepo struct {
	events    map[string]domain.Event
	orders    map[string]domain.Order
	positions []domain.OrderPosition
	questions map[string]domain.Question
	answers   map[uint]map[uint]string // questionID -> positionID -> answer
}

func (f *fakeOrderRepo) FindEventBySlugs(_ context.Context, organizerSlug, eventSlug string) (domain.Event, error) {
	event, ok := f.events[organizerSlug+"/"+eventSlug]
	if !ok {
		return domain.Event{}, repository.ErrEventNotFound
	}
	return event, nil
}

func (f *fakeOrderRepo) FindOrderByCode(_ context.Context, eventID uint, code string) (domain.Order, error) {
	order, ok := f.orders[code]
	if !ok || order.EventID != eventID {
		return domain.Order{}, repository.ErrOrderNotFound
	}
	return order, nil
}

func (f *fakeOrderRepo) FindPositionsForOrders(_ context.Context, orderCodes []string) ([]domain.OrderPosition, error) {
	wanted := map[string]bool{}
	for _, code := range orderCodes {
		wanted[code] = true
	}
	var positions []domain.OrderPosition
	for _, position := range f.positions {
		if wanted[position.OrderCode] {
			positions = append(positions, position)
		}
	}
	return positions, nil
}

func (f *fakeOrderRepo) FindQuestionByIdentifier(_ context.Context, _ uint, identifier string) (domain.Question, error) {
	question, ok := f.questions[identifier]
	if !ok {
		return domain.Question{}, repository.ErrQuestionNotFound
	}
	return question, nil
}

func (f *fakeOrderRepo) FindAnswers(_ context.Context, positionIDs []uint, questionID uint) (map[uint]string, error) {
	answers := map[uint]string{}
	for _, id := range positionIDs {
		if answer, ok := f.answers[questionID][id]; ok {
			answers[id] = answer
		}
	}
	return answers, nil
}

type fakeSettingsRepo struct {
	settings domain.Settings
	err      error
}

func (f *fakeSettingsRepo) Get(_ context.Context, _ uint) (domain.Settings, error) {
	if f.err != nil {
		return domain.Settings{}, f.err
	}
	return f.settings, nil
}

// participantFixture builds one start part with two assigned orders:
//
//	ORD1: leader (item 27), one regular participant, one excluded item,
//	      one canceled position
//	ORD2: one regular participant, one non-admission position
func participantFixture() (*fakePartRepo, *fakeOrderRepo, domain.EventPart) {
	partRepo := newFakePartRepo()
	part := partRepo.add(domain.EventPart{
		EventID: 1,
		Name:    "Opening Hike",
		Type:    domain.PartTypeStart,
	})

	partRepo.assignedOrders[part.ID] = []domain.Order{
		{Code: "ORD2", EventID: 1, Email: "two@example.com", Status: domain.OrderStatusPaid},
		{Code: "ORD1", EventID: 1, Email: "one@example.com", Status: domain.OrderStatusPaid},
	}
	partRepo.assignedParts["ORD1"] = domain.AssignmentSet{Start: &part}
	partRepo.assignedParts["ORD2"] = domain.AssignmentSet{Start: &part}

	orderRepo := &fakeOrderRepo{
		orders: map[string]domain.Order{
			"ORD1": {Code: "ORD1", EventID: 1, Status: domain.OrderStatusPaid},
			"ORD2": {Code: "ORD2", EventID: 1, Status: domain.OrderStatusPaid},
		},
		positions: []domain.OrderPosition{
			{ID: 1, OrderCode: "ORD1", ItemID: 27, Item: domain.Item{ID: 27, Name: "Leader", Admission: true}, AttendeeName: "Alice", AttendeeEmail: "alice@example.com"},
			{ID: 2, OrderCode: "ORD1", ItemID: 10, Item: domain.Item{ID: 10, Name: "Participant", Admission: true}, AttendeeName: "Bob", AttendeeEmail: "bob@example.com"},
			{ID: 3, OrderCode: "ORD1", ItemID: 51, Item: domain.Item{ID: 51, Name: "Extra", Admission: true}, AttendeeName: "Eve"},
			{ID: 4, OrderCode: "ORD1", ItemID: 10, Item: domain.Item{ID: 10, Name: "Participant", Admission: true}, AttendeeName: "Gone", Canceled: true},
			{ID: 5, OrderCode: "ORD2", ItemID: 10, Item: domain.Item{ID: 10, Name: "Participant", Admission: true}, AttendeeName: "Carol", AttendeeEmail: "carol@example.com"},
			{ID: 6, OrderCode: "ORD2", ItemID: 99, Item: domain.Item{ID: 99, Name: "Merch", Admission: false}},
		},
		questions: map[string]domain.Question{
			"CQEBCKRP": {ID: 7, EventID: 1, Identifier: "CQEBCKRP"},
		},
		answers: map[uint]map[uint]string{
			7: {1: "+49123456789"},
		},
	}

	return partRepo, orderRepo, part
}

func TestEventPartService_ParticipantPositions(t *testing.T) {
	partRepo, orderRepo, part := participantFixture()
	svc := NewEventPartService(partRepo, orderRepo, &fakeSettingsRepo{settings: domain.DefaultSettings()})

	participants, err := svc.ParticipantPositions(context.Background(), 1, part.ID)
	require.NoError(t, err)

	// Canceled, non-admission and excluded-item positions are out;
	// the rest sorts by order code descending.
	require.Len(t, participants, 3)
	assert.Equal(t, "Carol", participants[0].AttendeeName)
	assert.Equal(t, "ORD2", participants[0].OrderCode)
	assert.Equal(t, "ORD1", participants[1].OrderCode)
	assert.Equal(t, "ORD1", participants[2].OrderCode)
}

func TestEventPartService_UsedPlaces(t *testing.T) {
	partRepo, orderRepo, part := participantFixture()
	svc := NewEventPartService(partRepo, orderRepo, &fakeSettingsRepo{settings: domain.DefaultSettings()})

	usedPlaces, err := svc.UsedPlaces(context.Background(), 1, part.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, usedPlaces)
}

func TestEventPartService_ContactInfo(t *testing.T) {
	partRepo, orderRepo, part := participantFixture()
	svc := NewEventPartService(partRepo, orderRepo, &fakeSettingsRepo{settings: domain.DefaultSettings()})

	info, err := svc.ContactInfo(context.Background(), 1, part.ID)
	require.NoError(t, err)
	assert.False(t, info.Degraded)
	require.Len(t, info.Contacts, 2)

	assert.Equal(t, "ORD2", info.Contacts[0].OrderCode)
	assert.Empty(t, info.Contacts[0].Name)
	assert.Equal(t, 1, info.Contacts[0].Participants)

	assert.Equal(t, "ORD1", info.Contacts[1].OrderCode)
	assert.Equal(t, "Alice", info.Contacts[1].Name)
	assert.Equal(t, "alice@example.com", info.Contacts[1].Email)
	assert.Equal(t, "+49123456789", info.Contacts[1].Phone)
	assert.Equal(t, 2, info.Contacts[1].Participants)
}

func TestEventPartService_ContactInfo_MissingQuestionDegrades(t *testing.T) {
	partRepo, orderRepo, part := participantFixture()
	delete(orderRepo.questions, "CQEBCKRP")
	svc := NewEventPartService(partRepo, orderRepo, &fakeSettingsRepo{settings: domain.DefaultSettings()})

	info, err := svc.ContactInfo(context.Background(), 1, part.ID)
	require.NoError(t, err)
	assert.True(t, info.Degraded)
	require.Len(t, info.Contacts, 2)
	assert.Empty(t, info.Contacts[1].Phone)
	assert.Equal(t, "Alice", info.Contacts[1].Name)
}

func TestEventPartService_ContactInfo_SkipsCanceledOrders(t *testing.T) {
	partRepo, orderRepo, part := participantFixture()
	orders := partRepo.assignedOrders[part.ID]
	orders[0].Status = domain.OrderStatusCanceled
	partRepo.assignedOrders[part.ID] = orders
	svc := NewEventPartService(partRepo, orderRepo, &fakeSettingsRepo{settings: domain.DefaultSettings()})

	info, err := svc.ContactInfo(context.Background(), 1, part.ID)
	require.NoError(t, err)
	require.Len(t, info.Contacts, 1)
	assert.Equal(t, "ORD1", info.Contacts[0].OrderCode)
}

func TestEventPartService_ProjectList(t *testing.T) {
	partRepo, orderRepo, part := participantFixture()
	orderRepo.questions["ZN3NGADT"] = domain.Question{ID: 8, EventID: 1, Identifier: "ZN3NGADT"}
	orderRepo.answers[8] = map[uint]string{2: "vegetarian"}
	svc := NewEventPartService(partRepo, orderRepo, &fakeSettingsRepo{settings: domain.DefaultSettings()})

	event := domain.Event{ID: 1, Slug: "voco24"}
	filename, data, err := svc.ProjectList(context.Background(), event, part.ID)
	require.NoError(t, err)
	assert.Equal(t, "voco24_projectlist.csv", filename)

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)

	// One header plus one row per participant position.
	require.Len(t, records, 4)
	assert.Equal(t, []string{"Gruppe", "Name", "Rolle", "E-Mail", "Mobil", "Ernährung", "Allergien", "Geburtsdatum", "Auftakt"}, records[0])
	assert.Equal(t, "ORD2", records[1][0])
	assert.Equal(t, "Carol", records[1][1])
	assert.Equal(t, "Opening Hike", records[1][8])

	assert.Equal(t, "Alice", records[2][1])
	assert.Equal(t, "+49123456789", records[2][4])
	assert.Equal(t, "Bob", records[3][1])
	assert.Equal(t, "vegetarian", records[3][5])
}

func TestEventPartService_CreateEventPart(t *testing.T) {
	partRepo := newFakePartRepo()
	svc := NewEventPartService(partRepo, &fakeOrderRepo{}, &fakeSettingsRepo{settings: domain.DefaultSettings()})

	created, err := svc.CreateEventPart(context.Background(), domain.EventPart{
		EventID: 1,
		Name:    "Closing Ceremony",
		Type:    domain.PartTypeEnd,
	}, 0, 42)
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	require.Len(t, partRepo.createEntries, 1)
	entry := partRepo.createEntries[0]
	assert.Equal(t, domain.ActionEventPartAdded, entry.ActionType)
	assert.Equal(t, uint(42), entry.UserID)
	assert.Equal(t, "Closing Ceremony", entry.Data["name"])
}

func TestEventPartService_CreateEventPart_CopyFrom(t *testing.T) {
	partRepo := newFakePartRepo()
	source := partRepo.add(domain.EventPart{
		EventID:     1,
		Name:        "Hike A",
		Description: domain.LocalizedString{"en": "A long walk"},
		Category:    "outdoor",
		Capacity:    24,
		Type:        domain.PartTypeStart,
	})
	svc := NewEventPartService(partRepo, &fakeOrderRepo{}, &fakeSettingsRepo{settings: domain.DefaultSettings()})

	created, err := svc.CreateEventPart(context.Background(), domain.EventPart{
		EventID: 1,
		Name:    "Hike B",
	}, source.ID, 1)
	require.NoError(t, err)

	assert.Equal(t, "Hike B", created.Name)
	assert.Equal(t, "outdoor", created.Category)
	assert.Equal(t, 24, created.Capacity)
	assert.Equal(t, domain.PartTypeStart, created.Type)
	assert.Equal(t, "A long walk", created.Description.Plain())
}

func TestEventPartService_CreateEventPart_CopyFromUnknownIgnored(t *testing.T) {
	partRepo := newFakePartRepo()
	svc := NewEventPartService(partRepo, &fakeOrderRepo{}, &fakeSettingsRepo{settings: domain.DefaultSettings()})

	_, err := svc.CreateEventPart(context.Background(), domain.EventPart{
		EventID: 1,
		Name:    "Hike B",
		Type:    domain.PartTypeStart,
	}, 999, 1)
	require.NoError(t, err)
}

func TestEventPartService_CreateEventPart_Invalid(t *testing.T) {
	partRepo := newFakePartRepo()
	svc := NewEventPartService(partRepo, &fakeOrderRepo{}, &fakeSettingsRepo{settings: domain.DefaultSettings()})

	_, err := svc.CreateEventPart(context.Background(), domain.EventPart{EventID: 1, Type: domain.PartTypeStart}, 0, 1)
	assert.ErrorIs(t, err, ErrPartNameRequired)

	_, err = svc.CreateEventPart(context.Background(), domain.EventPart{EventID: 1, Name: "X", Type: "finale"}, 0, 1)
	assert.ErrorIs(t, err, ErrPartTypeInvalid)
}

func TestEventPartService_UpdateEventPart_ChangedFieldsOnly(t *testing.T) {
	partRepo := newFakePartRepo()
	part := partRepo.add(domain.EventPart{
		EventID:  1,
		Name:     "Hike A",
		Category: "outdoor",
		Capacity: 24,
		Type:     domain.PartTypeStart,
	})
	svc := NewEventPartService(partRepo, &fakeOrderRepo{}, &fakeSettingsRepo{settings: domain.DefaultSettings()})

	submitted := part
	submitted.Capacity = 30

	_, err := svc.UpdateEventPart(context.Background(), submitted, 5)
	require.NoError(t, err)

	require.Len(t, partRepo.updateEntries, 1)
	entry := partRepo.updateEntries[0]
	assert.Equal(t, domain.ActionEventPartChanged, entry.ActionType)
	assert.Equal(t, map[string]interface{}{"capacity": 30}, entry.Data)
}

func TestEventPartService_UpdateEventPart_NoChangeNoAudit(t *testing.T) {
	partRepo := newFakePartRepo()
	part := partRepo.add(domain.EventPart{EventID: 1, Name: "Hike A", Type: domain.PartTypeStart})
	svc := NewEventPartService(partRepo, &fakeOrderRepo{}, &fakeSettingsRepo{settings: domain.DefaultSettings()})

	updated, err := svc.UpdateEventPart(context.Background(), part, 5)
	require.NoError(t, err)
	assert.Equal(t, part, updated)
	assert.Empty(t, partRepo.updateEntries)
}

func TestEventPartService_DeleteEventPart(t *testing.T) {
	partRepo := newFakePartRepo()
	part := partRepo.add(domain.EventPart{EventID: 1, Name: "Hike A", Type: domain.PartTypeStart})
	svc := NewEventPartService(partRepo, &fakeOrderRepo{}, &fakeSettingsRepo{settings: domain.DefaultSettings()})

	require.NoError(t, svc.DeleteEventPart(context.Background(), 1, part.ID, 5))
	require.Len(t, partRepo.deleteEntries, 1)
	assert.Equal(t, domain.ActionEventPartDeleted, partRepo.deleteEntries[0].ActionType)

	// A retry finds nothing.
	err := svc.DeleteEventPart(context.Background(), 1, part.ID, 5)
	assert.ErrorIs(t, err, ErrEventPartNotFound)
	assert.Len(t, partRepo.deleteEntries, 1)
}

func TestEventPartService_GetEventPart_WrongEvent(t *testing.T) {
	partRepo := newFakePartRepo()
	part := partRepo.add(domain.EventPart{EventID: 1, Name: "Hike A", Type: domain.PartTypeStart})
	svc := NewEventPartService(partRepo, &fakeOrderRepo{}, &fakeSettingsRepo{settings: domain.DefaultSettings()})

	_, err := svc.GetEventPart(context.Background(), 2, part.ID)
	assert.ErrorIs(t, err, ErrEventPartNotFound)
}

func TestEventPartService_TypeName_FallsBackToDefaults(t *testing.T) {
	svc := NewEventPartService(newFakePartRepo(), &fakeOrderRepo{}, &fakeSettingsRepo{err: errors.New("boom")})

	assert.Equal(t, "Start", svc.TypeName(context.Background(), 1, domain.PartTypeStart))
}

func TestEventPartService_ContactTable(t *testing.T) {
	partRepo, orderRepo, part := participantFixture()
	svc := NewEventPartService(partRepo, orderRepo, &fakeSettingsRepo{settings: domain.DefaultSettings()})

	html, degraded, err := svc.ContactTable(context.Background(), 1, part.ID)
	require.NoError(t, err)
	assert.False(t, degraded)
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "Alice")
	assert.Contains(t, html, "alice@example.com")
}
