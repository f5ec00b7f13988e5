package generate_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-HeliTourService/internal/domain"
	courseRepo "github.com/m04kA/SMC-HeliTourService/internal/infra/storage/course"
	"github.com/m04kA/SMC-HeliTourService/internal/integrations/opsnotifier"
)

const msgNoNewSlots = "No new slots: all requested slots already exist"

// UseCase use case для пакетной генерации слотов по сетке дата x время
type UseCase struct {
	slotRepo   SlotRepository
	courseRepo CourseRepository
	notifier   Notifier
	metrics    Metrics
	cfg        Config
	logger     Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	courseRepo CourseRepository,
	notifier Notifier,
	metrics Metrics,
	cfg Config,
	logger Logger,
) *UseCase {
	if cfg.DefaultMaxPax <= 0 {
		cfg.DefaultMaxPax = domain.DefaultMaxPax
	}
	if cfg.MaxRangeDays <= 0 {
		cfg.MaxRangeDays = domain.MaxGenerationDays
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = domain.GenerationChunkSize
	}

	return &UseCase{
		slotRepo:   slotRepo,
		courseRepo: courseRepo,
		notifier:   notifier,
		metrics:    metrics,
		cfg:        cfg,
		logger:     logger,
	}
}

// Execute выполняет генерацию слотов.
// Уже существующие слоты пропускаются, поэтому повторный запуск безопасен.
// Пакеты вставляются независимо: ошибка пакета превращается в предупреждение
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GenerateSlots: start=%s, end=%s, times=%v", req.StartDate, req.EndDate, req.Times)

	// 1. Валидация входных данных
	p, err := validateRequest(req, uc.cfg)
	if err != nil {
		uc.logger.Warn("GenerateSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем курс
	if p.courseID != nil {
		if _, err := uc.courseRepo.GetByID(ctx, *p.courseID); err != nil {
			if errors.Is(err, courseRepo.ErrCourseNotFound) {
				uc.logger.Warn("GenerateSlots: course id=%s not found", p.courseID)
				return nil, ErrCourseNotFound
			}
			uc.logger.Error("GenerateSlots: failed to get course id=%s: %v", p.courseID, err)
			return nil, fmt.Errorf("%w: failed to get course: %v", ErrInternal, err)
		}
	}

	// 3. Получаем существующие слоты одним запросом на весь диапазон
	filter := domain.SlotsFilter{
		StartDate:      p.startDate,
		EndDate:        p.endDate,
		CourseID:       p.courseID,
		UnassignedOnly: p.courseID == nil,
	}
	existing, err := uc.slotRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Error("GenerateSlots: failed to list existing slots: %v", err)
		return nil, fmt.Errorf("%w: failed to list existing slots: %v", ErrInternal, err)
	}

	// 4. Строим кандидатов и отбрасываем существующие
	candidates, skipped := buildCandidates(p, existing)
	resp := &Response{Skipped: skipped, Warnings: []string{}}

	if len(candidates) == 0 {
		resp.Message = msgNoNewSlots
		uc.metrics.AddSlotsGenerated("skipped", skipped)
		uc.logger.Info("GenerateSlots: nothing to insert, skipped=%d", skipped)
		return resp, nil
	}

	// 5. Вставляем пакетами
	failedChunks, totalChunks := 0, 0
	for start := 0; start < len(candidates); start += uc.cfg.ChunkSize {
		end := start + uc.cfg.ChunkSize
		if end > len(candidates) {
			end = len(candidates)
		}
		chunk := candidates[start:end]
		totalChunks++

		inserted, err := uc.slotRepo.CreateBatch(ctx, chunk)
		if err != nil {
			failedChunks++
			warning := fmt.Sprintf("failed to insert slots %d-%d (%s %s .. %s %s): %v",
				start+1, end,
				chunk[0].Date.Format(domain.DateFormat), chunk[0].Time,
				chunk[len(chunk)-1].Date.Format(domain.DateFormat), chunk[len(chunk)-1].Time,
				err)
			resp.Warnings = append(resp.Warnings, warning)
			uc.metrics.AddSlotsGenerated("failed", len(chunk))
			uc.logger.Warn("GenerateSlots: %s", warning)
			continue
		}

		resp.Created += int(inserted)
		// Разница: слоты, созданные параллельной генерацией после шага 3
		resp.Skipped += len(chunk) - int(inserted)
	}

	uc.metrics.AddSlotsGenerated("created", resp.Created)
	uc.metrics.AddSlotsGenerated("skipped", resp.Skipped)

	// 6. Ни один пакет не вставлен: это отказ, а не частичный успех
	if failedChunks == totalChunks {
		uc.notify(ctx, req, resp, true)
		uc.logger.Error("GenerateSlots: all %d chunks failed", totalChunks)
		return nil, fmt.Errorf("%w: all %d insert batches failed: %s", ErrInternal, totalChunks, resp.Warnings[0])
	}

	if failedChunks > 0 {
		uc.notify(ctx, req, resp, false)
	}

	switch {
	case resp.Created == 0 && failedChunks == 0:
		resp.Message = msgNoNewSlots
	case failedChunks > 0:
		resp.Message = fmt.Sprintf("Created %d slots, skipped %d, %d of %d batches failed",
			resp.Created, resp.Skipped, failedChunks, totalChunks)
	default:
		resp.Message = fmt.Sprintf("Created %d slots, skipped %d", resp.Created, resp.Skipped)
	}

	uc.logger.Info("GenerateSlots: created=%d, skipped=%d, failed_chunks=%d", resp.Created, resp.Skipped, failedChunks)

	return resp, nil
}

func (uc *UseCase) notify(ctx context.Context, req *Request, resp *Response, failed bool) {
	courseID := ""
	if req.CourseID != nil {
		courseID = *req.CourseID
	}

	if err := uc.notifier.NotifyGenerationIssues(ctx, opsnotifier.GenerationAlert{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		CourseID:  courseID,
		Created:   resp.Created,
		Skipped:   resp.Skipped,
		Warnings:  resp.Warnings,
		Failed:    failed,
	}); err != nil {
		uc.logger.Warn("GenerateSlots: failed to notify operators: %v", err)
	}
}

// buildCandidates декартово произведение дат и времен без уже существующих слотов
func buildCandidates(p *plan, existing []*domain.Slot) ([]*domain.Slot, int) {
	existingKeys := make(map[domain.SlotKey]struct{}, len(existing))
	for _, s := range existing {
		existingKeys[s.Key()] = struct{}{}
	}

	var candidates []*domain.Slot
	skipped := 0

	for date := p.startDate; !date.After(p.endDate); date = date.AddDate(0, 0, 1) {
		for _, t := range p.times {
			if _, ok := existingKeys[domain.NewSlotKey(date, t)]; ok {
				skipped++
				continue
			}
			candidates = append(candidates, &domain.Slot{
				ID:       uuid.New(),
				CourseID: p.courseID,
				Date:     date,
				Time:     t,
				MaxPax:   p.maxPax,
				Status:   domain.SlotStatusOpen,
			})
		}
	}

	return candidates, skipped
}
