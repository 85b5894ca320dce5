package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vocoteam/eventparts-api/internal/domain"
)

type fakeAssignRepo struct {
	parts         map[uint]domain.EventPart
	assignedParts map[string]domain.AssignmentSet

	replacedOrder string
	replacedPicks map[domain.PartType]uint
	replaceCalls  int
}

func (f *fakeAssignRepo) FindByID(_ context.Context, eventID, id uint) (domain.EventPart, error) {
	part, ok := f.parts[id]
	if !ok || part.EventID != eventID {
		return domain.EventPart{}, ErrEventPartNotFound
	}
	return part, nil
}

func (f *fakeAssignRepo) FindByEventAndType(_ context.Context, eventID uint, partType domain.PartType) ([]domain.EventPart, error) {
	var parts []domain.EventPart
	for _, part := range f.parts {
		if part.EventID == eventID && part.Type == partType {
			parts = append(parts, part)
		}
	}
	return parts, nil
}

func (f *fakeAssignRepo) ReplaceAssignments(_ context.Context, _ uint, orderCode string, picks map[domain.PartType]uint) error {
	f.replacedOrder = orderCode
	f.replacedPicks = picks
	f.replaceCalls++
	return nil
}

func (f *fakeAssignRepo) FindAssignedParts(_ context.Context, orderCode string) (domain.AssignmentSet, error) {
	return f.assignedParts[orderCode], nil
}

func assignmentFixture() (*fakeAssignRepo, *fakeOrderRepo) {
	repo := &fakeAssignRepo{
		parts: map[uint]domain.EventPart{
			1: {ID: 1, EventID: 1, Name: "Opening Hike", Type: domain.PartTypeStart},
			2: {ID: 2, EventID: 1, Name: "Workshop Week", Type: domain.PartTypeMiddle},
			3: {ID: 3, EventID: 1, Name: "Closing Ceremony", Type: domain.PartTypeEnd},
		},
		assignedParts: map[string]domain.AssignmentSet{},
	}
	orderRepo := &fakeOrderRepo{
		orders: map[string]domain.Order{
			"ORD1": {Code: "ORD1", EventID: 1, Status: domain.OrderStatusPaid},
		},
	}
	return repo, orderRepo
}

func TestAssignmentService_ReplaceAssignments(t *testing.T) {
	repo, orderRepo := assignmentFixture()
	svc := NewAssignmentService(repo, orderRepo, &fakeSettingsRepo{settings: domain.DefaultSettings()})

	picks := map[domain.PartType]uint{
		domain.PartTypeStart:  1,
		domain.PartTypeMiddle: 2,
	}
	require.NoError(t, svc.ReplaceAssignments(context.Background(), 1, "ORD1", picks))

	assert.Equal(t, "ORD1", repo.replacedOrder)
	assert.Equal(t, picks, repo.replacedPicks)
}

func TestAssignmentService_ReplaceAssignments_EmptyClearsAll(t *testing.T) {
	repo, orderRepo := assignmentFixture()
	svc := NewAssignmentService(repo, orderRepo, &fakeSettingsRepo{settings: domain.DefaultSettings()})

	require.NoError(t, svc.ReplaceAssignments(context.Background(), 1, "ORD1", map[domain.PartType]uint{}))
	assert.Equal(t, 1, repo.replaceCalls)
	assert.Empty(t, repo.replacedPicks)
}

func TestAssignmentService_ReplaceAssignments_TypeMismatch(t *testing.T) {
	repo, orderRepo := assignmentFixture()
	svc := NewAssignmentService(repo, orderRepo, &fakeSettingsRepo{settings: domain.DefaultSettings()})

	err := svc.ReplaceAssignments(context.Background(), 1, "ORD1", map[domain.PartType]uint{
		domain.PartTypeStart: 3, // an end-typed part
	})
	assert.ErrorIs(t, err, ErrPartTypeMismatch)
	assert.Zero(t, repo.replaceCalls)
}

func TestAssignmentService_ReplaceAssignments_UnknownOrder(t *testing.T) {
	repo, orderRepo := assignmentFixture()
	svc := NewAssignmentService(repo, orderRepo, &fakeSettingsRepo{settings: domain.DefaultSettings()})

	err := svc.ReplaceAssignments(context.Background(), 1, "NOPE", map[domain.PartType]uint{})
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestAssignmentService_ReplaceAssignments_UnknownPart(t *testing.T) {
	repo, orderRepo := assignmentFixture()
	svc := NewAssignmentService(repo, orderRepo, &fakeSettingsRepo{settings: domain.DefaultSettings()})

	err := svc.ReplaceAssignments(context.Background(), 1, "ORD1", map[domain.PartType]uint{
		domain.PartTypeStart: 999,
	})
	assert.ErrorIs(t, err, ErrEventPartNotFound)
}

func TestAssignmentService_GetAssignments(t *testing.T) {
	repo, orderRepo := assignmentFixture()
	start := repo.parts[1]
	repo.assignedParts["ORD1"] = domain.AssignmentSet{Start: &start}
	svc := NewAssignmentService(repo, orderRepo, &fakeSettingsRepo{settings: domain.DefaultSettings()})

	set, choices, err := svc.GetAssignments(context.Background(), 1, "ORD1")
	require.NoError(t, err)
	require.NotNil(t, set.Start)
	assert.Equal(t, "Opening Hike", set.Start.Name)
	assert.Nil(t, set.Middle)
	assert.Nil(t, set.End)

	assert.Len(t, choices[domain.PartTypeStart], 1)
	assert.Len(t, choices[domain.PartTypeMiddle], 1)
	assert.Len(t, choices[domain.PartTypeEnd], 1)
}

func TestAssignmentService_PublicOrderInfo_NotPublic(t *testing.T) {
	repo, orderRepo := assignmentFixture()
	svc := NewAssignmentService(repo, orderRepo, &fakeSettingsRepo{settings: domain.DefaultSettings()})

	set, _, public, err := svc.PublicOrderInfo(context.Background(), 1, "ORD1")
	require.NoError(t, err)
	assert.False(t, public)
	assert.Equal(t, domain.AssignmentSet{}, set)
}

func TestAssignmentService_PublicOrderInfo_Public(t *testing.T) {
	repo, orderRepo := assignmentFixture()
	start := repo.parts[1]
	repo.assignedParts["ORD1"] = domain.AssignmentSet{Start: &start}

	settings := domain.DefaultSettings()
	settings.Public = true
	svc := NewAssignmentService(repo, orderRepo, &fakeSettingsRepo{settings: settings})

	set, got, public, err := svc.PublicOrderInfo(context.Background(), 1, "ORD1")
	require.NoError(t, err)
	assert.True(t, public)
	assert.Equal(t, "Eventparts", got.PublicName.Plain())
	require.NotNil(t, set.Start)
	assert.Equal(t, "Opening Hike", set.Start.Name)
}

func TestAssignmentService_Placeholders(t *testing.T) {
	repo, orderRepo := assignmentFixture()
	start := repo.parts[1]
	start.Description = domain.LocalizedString{"en": "A long walk"}
	start.Category = "outdoor"
	repo.parts[1] = start
	repo.assignedParts["ORD1"] = domain.AssignmentSet{Start: &start}
	svc := NewAssignmentService(repo, orderRepo, &fakeSettingsRepo{settings: domain.DefaultSettings()})

	placeholders, err := svc.Placeholders(context.Background(), 1, "ORD1")
	require.NoError(t, err)

	assert.Equal(t, "Opening Hike", placeholders["eventparts_start_name"])
	assert.Equal(t, "A long walk", placeholders["eventparts_start_description"])
	assert.Equal(t, "outdoor", placeholders["eventparts_start_category"])
	assert.Equal(t, "Start", placeholders["eventparts_start_type"])

	// Unassigned slots still resolve, to empty strings.
	assert.Equal(t, "", placeholders["eventparts_middle_name"])
	assert.Equal(t, "", placeholders["eventparts_middle_type"])
	assert.Equal(t, "", placeholders["eventparts_end_name"])
	assert.Len(t, placeholders, 12)
}
