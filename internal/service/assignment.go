package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vocoteam/eventparts-api/internal/domain"
	"github.com/vocoteam/eventparts-api/internal/repository"
)

var (
	ErrOrderNotFound       = repository.ErrOrderNotFound
	ErrPartTypeMismatch    = errors.New("event part type does not match the selection slot")
	ErrDuplicateAssignment = repository.ErrDuplicateAssignment
)

type AssignmentRepository interface {
	FindByID(ctx context.Context, eventID, id uint) (domain.EventPart, error)
	FindByEventAndType(ctx context.Context, eventID uint, partType domain.PartType) ([]domain.EventPart, error)
	ReplaceAssignments(ctx context.Context, eventID uint, orderCode string, picks map[domain.PartType]uint) error
	FindAssignedParts(ctx context.Context, orderCode string) (domain.AssignmentSet, error)
}

type AssignmentOrderRepository interface {
	FindOrderByCode(ctx context.Context, eventID uint, code string) (domain.Order, error)
}

type AssignmentSettingsRepository interface {
	Get(ctx context.Context, eventID uint) (domain.Settings, error)
}

type AssignmentService struct {
	repo         AssignmentRepository
	orderRepo    AssignmentOrderRepository
	settingsRepo AssignmentSettingsRepository
}

func NewAssignmentService(repo AssignmentRepository, orderRepo AssignmentOrderRepository, settingsRepo AssignmentSettingsRepository) *AssignmentService {
	return &AssignmentService{
		repo:         repo,
		orderRepo:    orderRepo,
		settingsRepo: settingsRepo,
	}
}

// GetAssignments returns the order's current pick per type plus the
// selectable parts per slot.
func (s *AssignmentService) GetAssignments(ctx context.Context, eventID uint, orderCode string) (domain.AssignmentSet, map[domain.PartType][]domain.EventPart, error) {
	if _, err := s.orderRepo.FindOrderByCode(ctx, eventID, orderCode); err != nil {
		return domain.AssignmentSet{}, nil, fmt.Errorf("s.orderRepo.FindOrderByCode -> %w", err)
	}

	set, err := s.repo.FindAssignedParts(ctx, orderCode)
	if err != nil {
		return domain.AssignmentSet{}, nil, fmt.Errorf("s.repo.FindAssignedParts -> %w", err)
	}

	choices := make(map[domain.PartType][]domain.EventPart, len(domain.PartTypes))
	for _, partType := range domain.PartTypes {
		parts, err := s.repo.FindByEventAndType(ctx, eventID, partType)
		if err != nil {
			return domain.AssignmentSet{}, nil, fmt.Errorf("s.repo.FindByEventAndType -> %w", err)
		}
		choices[partType] = parts
	}

	return set, choices, nil
}

// ReplaceAssignments swaps the order's selection for the given picks in one
// transaction: every existing assignment goes away, one row per non-empty
// pick comes back. Each pick must reference a part of the event whose type
// matches its slot.
func (s *AssignmentService) ReplaceAssignments(ctx context.Context, eventID uint, orderCode string, picks map[domain.PartType]uint) error {
	if _, err := s.orderRepo.FindOrderByCode(ctx, eventID, orderCode); err != nil {
		return fmt.Errorf("s.orderRepo.FindOrderByCode -> %w", err)
	}

	for partType, partID := range picks {
		part, err := s.repo.FindByID(ctx, eventID, partID)
		if err != nil {
			return fmt.Errorf("s.repo.FindByID -> %w", err)
		}
		if part.Type != partType {
			return ErrPartTypeMismatch
		}
	}

	if err := s.repo.ReplaceAssignments(ctx, eventID, orderCode, picks); err != nil {
		return fmt.Errorf("s.repo.ReplaceAssignments -> %w", err)
	}

	return nil
}

// OrderInfo is the staff view of an order's slots, with the configured type
// display names alongside.
func (s *AssignmentService) OrderInfo(ctx context.Context, eventID uint, orderCode string) (domain.AssignmentSet, domain.Settings, error) {
	if _, err := s.orderRepo.FindOrderByCode(ctx, eventID, orderCode); err != nil {
		return domain.AssignmentSet{}, domain.Settings{}, fmt.Errorf("s.orderRepo.FindOrderByCode -> %w", err)
	}

	set, err := s.repo.FindAssignedParts(ctx, orderCode)
	if err != nil {
		return domain.AssignmentSet{}, domain.Settings{}, fmt.Errorf("s.repo.FindAssignedParts -> %w", err)
	}

	settings, err := s.settingsRepo.Get(ctx, eventID)
	if err != nil {
		return domain.AssignmentSet{}, domain.Settings{}, fmt.Errorf("s.settingsRepo.Get -> %w", err)
	}

	return set, settings, nil
}

// PublicOrderInfo is the customer view. The second return value reports
// whether the event exposes part information publicly at all; when false the
// set is empty and the caller should render nothing.
func (s *AssignmentService) PublicOrderInfo(ctx context.Context, eventID uint, orderCode string) (domain.AssignmentSet, domain.Settings, bool, error) {
	settings, err := s.settingsRepo.Get(ctx, eventID)
	if err != nil {
		return domain.AssignmentSet{}, domain.Settings{}, false, fmt.Errorf("s.settingsRepo.Get -> %w", err)
	}
	if !settings.Public {
		return domain.AssignmentSet{}, settings, false, nil
	}

	if _, err = s.orderRepo.FindOrderByCode(ctx, eventID, orderCode); err != nil {
		return domain.AssignmentSet{}, domain.Settings{}, false, fmt.Errorf("s.orderRepo.FindOrderByCode -> %w", err)
	}

	set, err := s.repo.FindAssignedParts(ctx, orderCode)
	if err != nil {
		return domain.AssignmentSet{}, domain.Settings{}, false, fmt.Errorf("s.repo.FindAssignedParts -> %w", err)
	}

	return set, settings, true, nil
}

// Placeholders flattens the order's assignments into the
// "eventparts_<type>_<attribute>" substitution map used by ticket layouts
// and mail texts. Unassigned slots yield empty strings.
func (s *AssignmentService) Placeholders(ctx context.Context, eventID uint, orderCode string) (map[string]string, error) {
	if _, err := s.orderRepo.FindOrderByCode(ctx, eventID, orderCode); err != nil {
		return nil, fmt.Errorf("s.orderRepo.FindOrderByCode -> %w", err)
	}

	set, err := s.repo.FindAssignedParts(ctx, orderCode)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAssignedParts -> %w", err)
	}

	settings, err := s.settingsRepo.Get(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.settingsRepo.Get -> %w", err)
	}

	placeholders := make(map[string]string, 4*len(domain.PartTypes))
	for _, partType := range domain.PartTypes {
		prefix := fmt.Sprintf("eventparts_%s_", partType)

		var name, description, category, typeName string
		if part := set.ByType(partType); part != nil {
			name = part.Name
			description = part.Description.Plain()
			category = part.Category
			typeName = settings.TypeName(partType)
		}

		placeholders[prefix+"name"] = name
		placeholders[prefix+"description"] = description
		placeholders[prefix+"category"] = category
		placeholders[prefix+"type"] = typeName
	}

	return placeholders, nil
}
