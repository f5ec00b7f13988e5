package generate_slots

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HeliTourService/internal/domain"
	courseRepo "github.com/m04kA/SMC-HeliTourService/internal/infra/storage/course"
	"github.com/m04kA/SMC-HeliTourService/internal/integrations/opsnotifier"
	"github.com/m04kA/SMC-HeliTourService/pkg/logger"
	"github.com/m04kA/SMC-HeliTourService/pkg/ptr"
)

// memorySlots хранит слоты в памяти и умеет ронять выбранные вызовы CreateBatch
type memorySlots struct {
	mu        sync.Mutex
	slots     map[domain.SlotKey]*domain.Slot
	calls     int
	failCalls map[int]bool // номера вызовов CreateBatch (с 1), которые вернут ошибку
	failAll   bool
	listCalls int
}

func newMemorySlots() *memorySlots {
	return &memorySlots{slots: make(map[domain.SlotKey]*domain.Slot), failCalls: map[int]bool{}}
}

func (m *memorySlots) List(_ context.Context, filter domain.SlotsFilter) ([]*domain.Slot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++

	var out []*domain.Slot
	for _, s := range m.slots {
		if s.Date.Before(filter.StartDate) || s.Date.After(filter.EndDate) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (m *memorySlots) CreateBatch(_ context.Context, slots []*domain.Slot) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	if m.failAll || m.failCalls[m.calls] {
		return 0, errors.New("connection reset")
	}

	var inserted int64
	for _, s := range slots {
		if _, ok := m.slots[s.Key()]; ok {
			continue
		}
		m.slots[s.Key()] = s
		inserted++
	}
	return inserted, nil
}

type courses struct {
	known map[uuid.UUID]bool
}

func (c *courses) GetByID(_ context.Context, id uuid.UUID) (*domain.Course, error) {
	if !c.known[id] {
		return nil, courseRepo.ErrCourseNotFound
	}
	return &domain.Course{ID: id, Name: "Tokyo Bay", Price: 50000, IsActive: true}, nil
}

type recordingNotifier struct {
	alerts []opsnotifier.GenerationAlert
}

func (n *recordingNotifier) NotifyGenerationIssues(_ context.Context, alert opsnotifier.GenerationAlert) error {
	n.alerts = append(n.alerts, alert)
	return nil
}

type outcomeCounter struct {
	counts map[string]int
}

func (c *outcomeCounter) AddSlotsGenerated(outcome string, count int) {
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	c.counts[outcome] += count
}

type fixture struct {
	slots    *memorySlots
	courses  *courses
	notifier *recordingNotifier
	metrics  *outcomeCounter
	uc       *UseCase
}

func newFixture(chunkSize int) *fixture {
	f := &fixture{
		slots:    newMemorySlots(),
		courses:  &courses{known: map[uuid.UUID]bool{}},
		notifier: &recordingNotifier{},
		metrics:  &outcomeCounter{},
	}
	f.uc = NewUseCase(f.slots, f.courses, f.notifier, f.metrics, Config{
		DefaultMaxPax: 4,
		MaxRangeDays:  90,
		ChunkSize:     chunkSize,
	}, logger.NewNop())
	return f
}

func threeByThree() *Request {
	return &Request{
		StartDate: "2024-06-01",
		EndDate:   "2024-06-03",
		Times:     []string{"09:00", "11:00", "14:00"},
	}
}

func TestExecute_CreatesGrid(t *testing.T) {
	f := newFixture(100)

	resp, err := f.uc.Execute(context.Background(), threeByThree())
	require.NoError(t, err)

	assert.Equal(t, 9, resp.Created)
	assert.Equal(t, 0, resp.Skipped)
	assert.Empty(t, resp.Warnings)
	assert.Len(t, f.slots.slots, 9)

	for _, s := range f.slots.slots {
		assert.Equal(t, 4, s.MaxPax)
		assert.Equal(t, 0, s.CurrentPax)
		assert.Equal(t, domain.SlotStatusOpen, s.Status)
		assert.Nil(t, s.CourseID)
	}
}

func TestExecute_SkipsExistingSlots(t *testing.T) {
	f := newFixture(100)

	_, err := f.uc.Execute(context.Background(), &Request{
		StartDate: "2024-06-01",
		EndDate:   "2024-06-03",
		Times:     []string{"09:00"},
	})
	require.NoError(t, err)

	resp, err := f.uc.Execute(context.Background(), threeByThree())
	require.NoError(t, err)

	assert.Equal(t, 6, resp.Created)
	assert.Equal(t, 3, resp.Skipped)
	assert.Len(t, f.slots.slots, 9)
}

func TestExecute_RerunIsIdempotent(t *testing.T) {
	f := newFixture(100)

	_, err := f.uc.Execute(context.Background(), threeByThree())
	require.NoError(t, err)

	resp, err := f.uc.Execute(context.Background(), threeByThree())
	require.NoError(t, err)

	assert.Equal(t, 0, resp.Created)
	assert.Equal(t, 9, resp.Skipped)
	assert.Equal(t, msgNoNewSlots, resp.Message)
	assert.Equal(t, 1, f.slots.calls)
}

func TestExecute_ValidationHappensBeforeDatabase(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		mention string
	}{
		{
			name:    "time out of range",
			req:     &Request{StartDate: "2024-06-01", EndDate: "2024-06-01", Times: []string{"09:00", "25:00"}},
			mention: "25:00",
		},
		{
			name:    "signed hour",
			req:     &Request{StartDate: "2024-06-01", EndDate: "2024-06-01", Times: []string{"+9:00"}},
			mention: "+9:00",
		},
		{
			name:    "negative hour",
			req:     &Request{StartDate: "2024-06-01", EndDate: "2024-06-01", Times: []string{"09:00", "-0:30"}},
			mention: "-0:30",
		},
		{
			name:    "signed hour and minute",
			req:     &Request{StartDate: "2024-06-01", EndDate: "2024-06-01", Times: []string{"+0:+5"}},
			mention: "+0:+5",
		},
		{
			name:    "range over 90 days",
			req:     &Request{StartDate: "2024-01-01", EndDate: "2024-04-01", Times: []string{"09:00"}},
			mention: "90",
		},
		{
			name:    "end before start",
			req:     &Request{StartDate: "2024-06-02", EndDate: "2024-06-01", Times: []string{"09:00"}},
			mention: "endDate",
		},
		{
			name:    "bad date format",
			req:     &Request{StartDate: "2024/06/01", EndDate: "2024-06-01", Times: []string{"09:00"}},
			mention: "2024/06/01",
		},
		{
			name:    "empty times",
			req:     &Request{StartDate: "2024-06-01", EndDate: "2024-06-01"},
			mention: "times",
		},
		{
			name:    "non-positive max pax",
			req:     &Request{StartDate: "2024-06-01", EndDate: "2024-06-01", Times: []string{"09:00"}, MaxPax: ptr.Ptr(0)},
			mention: "maxPax",
		},
		{
			name:    "malformed course id",
			req:     &Request{StartDate: "2024-06-01", EndDate: "2024-06-01", Times: []string{"09:00"}, CourseID: ptr.Ptr("tokyo-bay")},
			mention: "tokyo-bay",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(100)

			_, err := f.uc.Execute(context.Background(), tt.req)

			require.ErrorIs(t, err, ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.mention)
			assert.Zero(t, f.slots.listCalls)
			assert.Zero(t, f.slots.calls)
		})
	}
}

func TestExecute_NinetyDaysIsAllowed(t *testing.T) {
	f := newFixture(100)

	resp, err := f.uc.Execute(context.Background(), &Request{
		StartDate: "2024-01-01",
		EndDate:   "2024-03-31",
		Times:     []string{"09:00"},
	})

	require.NoError(t, err)
	assert.Equal(t, 91, resp.Created)
}

func TestExecute_CourseNotFound(t *testing.T) {
	f := newFixture(100)
	req := threeByThree()
	req.CourseID = ptr.Ptr(uuid.NewString())

	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrCourseNotFound)
	assert.Zero(t, f.slots.calls)
}

func TestExecute_CourseSlots(t *testing.T) {
	f := newFixture(100)
	courseID := uuid.New()
	f.courses.known[courseID] = true

	req := threeByThree()
	req.CourseID = ptr.Ptr(courseID.String())
	req.MaxPax = ptr.Ptr(6)

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 9, resp.Created)
	for _, s := range f.slots.slots {
		require.NotNil(t, s.CourseID)
		assert.Equal(t, courseID, *s.CourseID)
		assert.Equal(t, 6, s.MaxPax)
	}
}

func TestExecute_FailedChunkBecomesWarning(t *testing.T) {
	f := newFixture(4)
	f.slots.failCalls[2] = true

	resp, err := f.uc.Execute(context.Background(), threeByThree())
	require.NoError(t, err)

	// 9 кандидатов пакетами по 4: 4 + 4 (упал) + 1
	assert.Equal(t, 5, resp.Created)
	require.Len(t, resp.Warnings, 1)
	assert.Contains(t, resp.Warnings[0], "5-8")
	assert.Equal(t, 4, f.metrics.counts["failed"])

	require.Len(t, f.notifier.alerts, 1)
	assert.False(t, f.notifier.alerts[0].Failed)
}

func TestExecute_AllChunksFailed(t *testing.T) {
	f := newFixture(4)
	f.slots.failAll = true

	_, err := f.uc.Execute(context.Background(), threeByThree())

	assert.ErrorIs(t, err, ErrInternal)
	require.Len(t, f.notifier.alerts, 1)
	assert.True(t, f.notifier.alerts[0].Failed)
	assert.Len(t, f.notifier.alerts[0].Warnings, 3)
}

func TestExecute_DuplicateTimesCollapse(t *testing.T) {
	f := newFixture(100)

	resp, err := f.uc.Execute(context.Background(), &Request{
		StartDate: "2024-06-01",
		EndDate:   "2024-06-01",
		Times:     []string{"09:00", "09:00", " 09:00"},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Created)
}
