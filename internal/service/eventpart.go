package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"html/template"
	"sort"

	"go.uber.org/zap"

	"github.com/vocoteam/eventparts-api/internal/domain"
	"github.com/vocoteam/eventparts-api/internal/repository"
)

var (
	ErrEventPartNotFound = repository.ErrEventPartNotFound
	ErrQuestionNotFound  = repository.ErrQuestionNotFound
	ErrPartNameRequired  = errors.New("event part name is required")
	ErrPartTypeInvalid   = errors.New("event part type is invalid")
)

type EventPartRepository interface {
	CreateWithLog(ctx context.Context, part domain.EventPart, entry domain.LogEntry) (domain.EventPart, error)
	UpdateWithLog(ctx context.Context, part domain.EventPart, entry domain.LogEntry) (domain.EventPart, error)
	DeleteWithLog(ctx context.Context, part domain.EventPart, entry domain.LogEntry) error
	FindByID(ctx context.Context, eventID, id uint) (domain.EventPart, error)
	FindByEvent(ctx context.Context, eventID uint, offset, limit int) ([]domain.EventPart, error)
	CountByEvent(ctx context.Context, eventID uint) (int64, error)
	FindAssignedParts(ctx context.Context, orderCode string) (domain.AssignmentSet, error)
	FindAssignedOrders(ctx context.Context, partID uint) ([]domain.Order, error)
}

type OrderRepository interface {
	FindEventBySlugs(ctx context.Context, organizerSlug, eventSlug string) (domain.Event, error)
	FindOrderByCode(ctx context.Context, eventID uint, code string) (domain.Order, error)
	FindPositionsForOrders(ctx context.Context, orderCodes []string) ([]domain.OrderPosition, error)
	FindQuestionByIdentifier(ctx context.Context, eventID uint, identifier string) (domain.Question, error)
	FindAnswers(ctx context.Context, positionIDs []uint, questionID uint) (map[uint]string, error)
}

type SettingsRepository interface {
	Get(ctx context.Context, eventID uint) (domain.Settings, error)
}

type EventPartService struct {
	repo         EventPartRepository
	orderRepo    OrderRepository
	settingsRepo SettingsRepository
}

func NewEventPartService(repo EventPartRepository, orderRepo OrderRepository, settingsRepo SettingsRepository) *EventPartService {
	return &EventPartService{
		repo:         repo,
		orderRepo:    orderRepo,
		settingsRepo: settingsRepo,
	}
}

// CreateEventPart creates a part under the event. When copyFromID references
// an existing part of the same event, its values seed any field the caller
// left empty. A copy_from reference that doesn't resolve is ignored.
func (s *EventPartService) CreateEventPart(ctx context.Context, part domain.EventPart, copyFromID, userID uint) (domain.EventPart, error) {
	if copyFromID != 0 {
		source, err := s.repo.FindByID(ctx, part.EventID, copyFromID)
		if err == nil {
			part = seedFromCopy(part, source)
		} else if !errors.Is(err, ErrEventPartNotFound) {
			return domain.EventPart{}, fmt.Errorf("s.repo.FindByID -> %w", err)
		}
	}

	if part.Name == "" {
		return domain.EventPart{}, ErrPartNameRequired
	}
	if !part.Type.IsValid() {
		return domain.EventPart{}, ErrPartTypeInvalid
	}

	entry := domain.LogEntry{
		EventID:    part.EventID,
		ObjectType: "eventpart",
		ActionType: domain.ActionEventPartAdded,
		Data:       partFields(part),
		UserID:     userID,
	}

	created, err := s.repo.CreateWithLog(ctx, part, entry)
	if err != nil {
		return domain.EventPart{}, fmt.Errorf("s.repo.CreateWithLog -> %w", err)
	}

	return created, nil
}

// UpdateEventPart saves the submitted fields. When nothing changed, the
// stored part comes back untouched and no audit entry is written; otherwise
// the audit entry carries only the changed fields.
func (s *EventPartService) UpdateEventPart(ctx context.Context, part domain.EventPart, userID uint) (domain.EventPart, error) {
	existing, err := s.repo.FindByID(ctx, part.EventID, part.ID)
	if err != nil {
		return domain.EventPart{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	changed := changedFields(existing, part)
	if len(changed) == 0 {
		return existing, nil
	}

	part.CreatedAt = existing.CreatedAt

	entry := domain.LogEntry{
		EventID:    part.EventID,
		ObjectType: "eventpart",
		ObjectID:   part.ID,
		ActionType: domain.ActionEventPartChanged,
		Data:       changed,
		UserID:     userID,
	}

	updated, err := s.repo.UpdateWithLog(ctx, part, entry)
	if err != nil {
		return domain.EventPart{}, fmt.Errorf("s.repo.UpdateWithLog -> %w", err)
	}

	return updated, nil
}

// DeleteEventPart hard-deletes a part and its assignments. The audit entry
// and the delete share one transaction, so a retry finds nothing and gets
// ErrEventPartNotFound.
func (s *EventPartService) DeleteEventPart(ctx context.Context, eventID, id, userID uint) error {
	existing, err := s.repo.FindByID(ctx, eventID, id)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	entry := domain.LogEntry{
		EventID:    eventID,
		ObjectType: "eventpart",
		ObjectID:   existing.ID,
		ActionType: domain.ActionEventPartDeleted,
		Data:       map[string]interface{}{"name": existing.Name},
		UserID:     userID,
	}

	if err := s.repo.DeleteWithLog(ctx, existing, entry); err != nil {
		return fmt.Errorf("s.repo.DeleteWithLog -> %w", err)
	}

	return nil
}

func (s *EventPartService) GetEventPart(ctx context.Context, eventID, id uint) (domain.EventPart, error) {
	part, err := s.repo.FindByID(ctx, eventID, id)
	if err != nil {
		return domain.EventPart{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return part, nil
}

func (s *EventPartService) ListEventParts(ctx context.Context, eventID uint, page, pageSize int) ([]domain.EventPart, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	parts, err := s.repo.FindByEvent(ctx, eventID, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("s.repo.FindByEvent -> %w", err)
	}

	total, err := s.repo.CountByEvent(ctx, eventID)
	if err != nil {
		return nil, 0, fmt.Errorf("s.repo.CountByEvent -> %w", err)
	}

	return parts, total, nil
}

// TypeName resolves the event's configured display name for a part type.
// Settings failures fall back to the defaults so callers never see an error.
func (s *EventPartService) TypeName(ctx context.Context, eventID uint, t domain.PartType) string {
	settings, err := s.settingsRepo.Get(ctx, eventID)
	if err != nil {
		zap.L().Error("failed to load event settings, using defaults", zap.Uint("event_id", eventID), zap.Error(err))
		settings = domain.DefaultSettings()
	}

	return settings.TypeName(t)
}

// ParticipantPositions returns the actual participants of a part: admission
// positions of assigned orders, minus canceled positions and positions of
// excluded catalog items, sorted by order code descending.
func (s *EventPartService) ParticipantPositions(ctx context.Context, eventID, partID uint) ([]domain.OrderPosition, error) {
	settings, err := s.settingsRepo.Get(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.settingsRepo.Get -> %w", err)
	}

	if _, err = s.repo.FindByID(ctx, eventID, partID); err != nil {
		return nil, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	orders, err := s.repo.FindAssignedOrders(ctx, partID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAssignedOrders -> %w", err)
	}

	codes := make([]string, len(orders))
	for i, order := range orders {
		codes[i] = order.Code
	}

	positions, err := s.orderRepo.FindPositionsForOrders(ctx, codes)
	if err != nil {
		return nil, fmt.Errorf("s.orderRepo.FindPositionsForOrders -> %w", err)
	}

	participants := make([]domain.OrderPosition, 0, len(positions))
	for _, position := range positions {
		if !position.Item.Admission || position.Canceled {
			continue
		}
		if settings.IsExcludedItem(position.ItemID) {
			continue
		}
		participants = append(participants, position)
	}

	sort.SliceStable(participants, func(i, j int) bool {
		return participants[i].OrderCode > participants[j].OrderCode
	})

	return participants, nil
}

// UsedPlaces counts the part's participants. Capacity itself is
// informational and never checked against this.
func (s *EventPartService) UsedPlaces(ctx context.Context, eventID, partID uint) (int, error) {
	participants, err := s.ParticipantPositions(ctx, eventID, partID)
	if err != nil {
		return 0, fmt.Errorf("s.ParticipantPositions -> %w", err)
	}

	return len(participants), nil
}

// ContactInfo aggregates one contact row per non-canceled assigned order:
// the attendee data of the order's leader position, the leader's mobile
// answer and the order's participant headcount. The computation is
// best-effort: anything that fails is logged and the result comes back
// partial with Degraded set.
func (s *EventPartService) ContactInfo(ctx context.Context, eventID, partID uint) (domain.ContactInfo, error) {
	settings, err := s.settingsRepo.Get(ctx, eventID)
	if err != nil {
		return domain.ContactInfo{}, fmt.Errorf("s.settingsRepo.Get -> %w", err)
	}

	if _, err = s.repo.FindByID(ctx, eventID, partID); err != nil {
		return domain.ContactInfo{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	orders, err := s.repo.FindAssignedOrders(ctx, partID)
	if err != nil {
		return domain.ContactInfo{}, fmt.Errorf("s.repo.FindAssignedOrders -> %w", err)
	}

	info := domain.ContactInfo{Contacts: []domain.Contact{}}

	codes := make([]string, 0, len(orders))
	for _, order := range orders {
		if order.Status == domain.OrderStatusCanceled {
			continue
		}
		codes = append(codes, order.Code)
	}
	if len(codes) == 0 {
		return info, nil
	}

	positions, err := s.orderRepo.FindPositionsForOrders(ctx, codes)
	if err != nil {
		zap.L().Error("contact info: loading positions failed", zap.Uint("event_part_id", partID), zap.Error(err))
		info.Degraded = true
		return info, nil
	}

	leaders := make(map[string]domain.OrderPosition)
	participants := make(map[string]int)
	for _, position := range positions {
		if position.Canceled {
			continue
		}
		if position.ItemID == settings.LeaderItemID {
			leaders[position.OrderCode] = position
		}
		if position.Item.Admission && !settings.IsExcludedItem(position.ItemID) {
			participants[position.OrderCode]++
		}
	}

	phones := map[uint]string{}
	question, err := s.orderRepo.FindQuestionByIdentifier(ctx, eventID, settings.QuestionMobile)
	if err != nil {
		zap.L().Error("contact info: mobile question lookup failed", zap.String("identifier", settings.QuestionMobile), zap.Error(err))
		info.Degraded = true
	} else {
		leaderIDs := make([]uint, 0, len(leaders))
		for _, leader := range leaders {
			leaderIDs = append(leaderIDs, leader.ID)
		}
		phones, err = s.orderRepo.FindAnswers(ctx, leaderIDs, question.ID)
		if err != nil {
			zap.L().Error("contact info: answer lookup failed", zap.Uint("question_id", question.ID), zap.Error(err))
			info.Degraded = true
			phones = map[uint]string{}
		}
	}

	for _, code := range codes {
		contact := domain.Contact{
			OrderCode:    code,
			Participants: participants[code],
		}
		if leader, ok := leaders[code]; ok {
			contact.Name = leader.AttendeeName
			contact.Email = leader.AttendeeEmail
			contact.Phone = phones[leader.ID]
		}
		info.Contacts = append(info.Contacts, contact)
	}

	return info, nil
}

var projectListHeader = []string{
	"Gruppe", "Name", "Rolle", "E-Mail", "Mobil", "Ernährung", "Allergien", "Geburtsdatum", "Auftakt",
}

// ProjectList renders the part's participant list as CSV, one row per
// participant position. Question columns that have no matching question in
// the event stay empty.
func (s *EventPartService) ProjectList(ctx context.Context, event domain.Event, partID uint) (string, []byte, error) {
	settings, err := s.settingsRepo.Get(ctx, event.ID)
	if err != nil {
		return "", nil, fmt.Errorf("s.settingsRepo.Get -> %w", err)
	}

	participants, err := s.ParticipantPositions(ctx, event.ID, partID)
	if err != nil {
		return "", nil, fmt.Errorf("s.ParticipantPositions -> %w", err)
	}

	positionIDs := make([]uint, len(participants))
	for i, position := range participants {
		positionIDs[i] = position.ID
	}

	mobile := s.answerColumn(ctx, event.ID, settings.QuestionMobile, positionIDs)
	diet := s.answerColumn(ctx, event.ID, settings.QuestionDiet, positionIDs)
	allergy := s.answerColumn(ctx, event.ID, settings.QuestionAllergy, positionIDs)
	birthdate := s.answerColumn(ctx, event.ID, settings.QuestionBirthdate, positionIDs)

	startNames := make(map[string]string)
	for _, position := range participants {
		if _, ok := startNames[position.OrderCode]; ok {
			continue
		}
		set, err := s.repo.FindAssignedParts(ctx, position.OrderCode)
		if err != nil {
			return "", nil, fmt.Errorf("s.repo.FindAssignedParts -> %w", err)
		}
		if set.Start != nil {
			startNames[position.OrderCode] = set.Start.Name
		} else {
			startNames[position.OrderCode] = ""
		}
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(projectListHeader); err != nil {
		return "", nil, fmt.Errorf("w.Write -> %w", err)
	}
	for _, position := range participants {
		row := []string{
			position.OrderCode,
			position.AttendeeName,
			position.Item.Name,
			position.AttendeeEmail,
			mobile[position.ID],
			diet[position.ID],
			allergy[position.ID],
			birthdate[position.ID],
			startNames[position.OrderCode],
		}
		if err := w.Write(row); err != nil {
			return "", nil, fmt.Errorf("w.Write -> %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", nil, fmt.Errorf("w.Error -> %w", err)
	}

	filename := fmt.Sprintf("%s_projectlist.csv", event.Slug)

	return filename, buf.Bytes(), nil
}

func (s *EventPartService) answerColumn(ctx context.Context, eventID uint, identifier string, positionIDs []uint) map[uint]string {
	question, err := s.orderRepo.FindQuestionByIdentifier(ctx, eventID, identifier)
	if err != nil {
		zap.L().Warn("project list: question lookup failed, leaving column empty", zap.String("identifier", identifier), zap.Error(err))
		return map[uint]string{}
	}

	answers, err := s.orderRepo.FindAnswers(ctx, positionIDs, question.ID)
	if err != nil {
		zap.L().Warn("project list: answer lookup failed, leaving column empty", zap.Uint("question_id", question.ID), zap.Error(err))
		return map[uint]string{}
	}

	return answers
}

var contactTableTmpl = template.Must(template.New("contact_table").Parse(`<table>
<tr><th>Name</th><th>E-Mail</th><th>Mobil</th><th>Teilnehmende</th></tr>
{{- range .Contacts }}
<tr><td>{{ .Name }}</td><td>{{ .Email }}</td><td>{{ .Phone }}</td><td>{{ .Participants }}</td></tr>
{{- end }}
</table>`))

// ContactTable renders ContactInfo as an inline HTML table for mail bodies.
func (s *EventPartService) ContactTable(ctx context.Context, eventID, partID uint) (string, bool, error) {
	info, err := s.ContactInfo(ctx, eventID, partID)
	if err != nil {
		return "", false, fmt.Errorf("s.ContactInfo -> %w", err)
	}

	var buf bytes.Buffer
	if err := contactTableTmpl.Execute(&buf, info); err != nil {
		return "", false, fmt.Errorf("contactTableTmpl.Execute -> %w", err)
	}

	return buf.String(), info.Degraded, nil
}

func seedFromCopy(part, source domain.EventPart) domain.EventPart {
	if part.Name == "" {
		part.Name = source.Name
	}
	if len(part.Description) == 0 {
		part.Description = source.Description
	}
	if part.Category == "" {
		part.Category = source.Category
	}
	if part.Capacity == 0 {
		part.Capacity = source.Capacity
	}
	if part.Type == "" {
		part.Type = source.Type
	}
	return part
}

func partFields(part domain.EventPart) map[string]interface{} {
	return map[string]interface{}{
		"name":        part.Name,
		"description": part.Description,
		"category":    part.Category,
		"capacity":    part.Capacity,
		"type":        string(part.Type),
	}
}

func changedFields(existing, submitted domain.EventPart) map[string]interface{} {
	changed := map[string]interface{}{}
	if submitted.Name != existing.Name {
		changed["name"] = submitted.Name
	}
	if !localizedEqual(submitted.Description, existing.Description) {
		changed["description"] = submitted.Description
	}
	if submitted.Category != existing.Category {
		changed["category"] = submitted.Category
	}
	if submitted.Capacity != existing.Capacity {
		changed["capacity"] = submitted.Capacity
	}
	if submitted.Type != existing.Type {
		changed["type"] = string(submitted.Type)
	}
	return changed
}

func localizedEqual(a, b domain.LocalizedString) bool {
	if len(a) != len(b) {
		return false
	}
	for locale, text := range a {
		if b[locale] != text {
			return false
		}
	}
	return true
}
