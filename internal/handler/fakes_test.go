package handler

// In-memory store fakes. They track call counts so tests can assert that a
// rejected request never touched the data layer.

import (
	"context"
	"sync"

	"github.com/pumpcare/connect/internal/model"
	"github.com/pumpcare/connect/internal/queue"
	"github.com/pumpcare/connect/internal/repository"
)

type fakeAdminStore struct {
	mu     sync.Mutex
	admins map[string]model.Admin
	nextID uint64
	calls  int
}

func newFakeAdminStore() *fakeAdminStore {
	return &fakeAdminStore{admins: map[string]model.Admin{}}
}

func (f *fakeAdminStore) Create(_ context.Context, name, email, passwordHash string) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if _, ok := f.admins[email]; ok {
		return 0, repository.ErrDuplicate
	}
	f.nextID++
	f.admins[email] = model.Admin{ID: f.nextID, Name: name, Email: email, PasswordHash: passwordHash}
	return f.nextID, nil
}

func (f *fakeAdminStore) GetByEmail(_ context.Context, email string) (model.Admin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	a, ok := f.admins[email]
	if !ok {
		return model.Admin{}, repository.ErrNotFound
	}
	return a, nil
}

type fakePanchayatStore struct {
	mu     sync.Mutex
	rows   map[uint64]model.Panchayat
	nextID uint64
	calls  int
}

func newFakePanchayatStore() *fakePanchayatStore {
	return &fakePanchayatStore{rows: map[uint64]model.Panchayat{}}
}

func (f *fakePanchayatStore) Create(_ context.Context, p model.Panchayat) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	for _, row := range f.rows {
		if row.Email == p.Email {
			return 0, repository.ErrDuplicate
		}
	}
	f.nextID++
	p.ID = f.nextID
	f.rows[p.ID] = p
	return p.ID, nil
}

func (f *fakePanchayatStore) GetByEmail(_ context.Context, email string) (model.Panchayat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	for _, row := range f.rows {
		if row.Email == email {
			return row, nil
		}
	}
	return model.Panchayat{}, repository.ErrNotFound
}

func (f *fakePanchayatStore) GetByID(_ context.Context, id uint64) (model.Panchayat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	row, ok := f.rows[id]
	if !ok {
		return model.Panchayat{}, repository.ErrNotFound
	}
	return row, nil
}

func (f *fakePanchayatStore) Update(_ context.Context, p model.Panchayat) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	old, ok := f.rows[p.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if p.PasswordHash == "" {
		p.PasswordHash = old.PasswordHash
	}
	f.rows[p.ID] = p
	return nil
}

func (f *fakePanchayatStore) Delete(_ context.Context, id uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if _, ok := f.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakePanchayatStore) List(_ context.Context) ([]model.Panchayat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	out := []model.Panchayat{}
	for _, row := range f.rows {
		out = append(out, row)
	}
	return out, nil
}

func (f *fakePanchayatStore) Search(_ context.Context, _ string) ([]model.Panchayat, error) {
	return f.List(nil)
}

type fakeOperatorStore struct {
	mu     sync.Mutex
	rows   map[uint64]model.Operator
	nextID uint64
	calls  int
}

func newFakeOperatorStore() *fakeOperatorStore {
	return &fakeOperatorStore{rows: map[uint64]model.Operator{}}
}

func (f *fakeOperatorStore) Create(_ context.Context, o model.Operator) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	for _, row := range f.rows {
		if row.Email == o.Email {
			return 0, repository.ErrDuplicate
		}
	}
	f.nextID++
	o.ID = f.nextID
	f.rows[o.ID] = o
	return o.ID, nil
}

func (f *fakeOperatorStore) GetByEmail(_ context.Context, email string) (model.Operator, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	for _, row := range f.rows {
		if row.Email == email {
			return row, nil
		}
	}
	return model.Operator{}, repository.ErrNotFound
}

func (f *fakeOperatorStore) GetByID(_ context.Context, id uint64) (model.Operator, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	row, ok := f.rows[id]
	if !ok {
		return model.Operator{}, repository.ErrNotFound
	}
	return row, nil
}

func (f *fakeOperatorStore) Update(_ context.Context, o model.Operator) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	old, ok := f.rows[o.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if o.PasswordHash == "" {
		o.PasswordHash = old.PasswordHash
	}
	f.rows[o.ID] = o
	return nil
}

func (f *fakeOperatorStore) Delete(_ context.Context, id uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if _, ok := f.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeOperatorStore) List(_ context.Context) ([]model.Operator, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	out := []model.Operator{}
	for _, row := range f.rows {
		out = append(out, row)
	}
	return out, nil
}

type fakeVillagerStore struct {
	mu    sync.Mutex
	rows  map[uint64]model.Villager
	calls int
}

func newFakeVillagerStore() *fakeVillagerStore {
	return &fakeVillagerStore{rows: map[uint64]model.Villager{}}
}

func (f *fakeVillagerStore) Create(_ context.Context, v model.Villager) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if _, ok := f.rows[v.HouseNo]; ok {
		return repository.ErrDuplicate
	}
	for _, row := range f.rows {
		if row.Email == v.Email {
			return repository.ErrDuplicate
		}
	}
	f.rows[v.HouseNo] = v
	return nil
}

func (f *fakeVillagerStore) GetByEmail(_ context.Context, email string) (model.Villager, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	for _, row := range f.rows {
		if row.Email == email {
			return row, nil
		}
	}
	return model.Villager{}, repository.ErrNotFound
}

func (f *fakeVillagerStore) GetByHouseNo(_ context.Context, houseNo uint64) (model.Villager, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	row, ok := f.rows[houseNo]
	if !ok {
		return model.Villager{}, repository.ErrNotFound
	}
	return row, nil
}

func (f *fakeVillagerStore) Update(_ context.Context, v model.Villager) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	old, ok := f.rows[v.HouseNo]
	if !ok {
		return repository.ErrNotFound
	}
	if v.PasswordHash == "" {
		v.PasswordHash = old.PasswordHash
	}
	f.rows[v.HouseNo] = v
	return nil
}

func (f *fakeVillagerStore) Delete(_ context.Context, houseNo uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if _, ok := f.rows[houseNo]; !ok {
		return repository.ErrNotFound
	}
	delete(f.rows, houseNo)
	return nil
}

type fakeSectorStore struct {
	mu     sync.Mutex
	rows   map[uint64]model.Sector
	nextID uint64
	calls  int
}

func newFakeSectorStore() *fakeSectorStore {
	return &fakeSectorStore{rows: map[uint64]model.Sector{}}
}

func (f *fakeSectorStore) Create(_ context.Context, s model.Sector) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.nextID++
	s.ID = f.nextID
	f.rows[s.ID] = s
	return s.ID, nil
}

func (f *fakeSectorStore) GetByID(_ context.Context, id uint64) (model.Sector, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	row, ok := f.rows[id]
	if !ok {
		return model.Sector{}, repository.ErrNotFound
	}
	return row, nil
}

func (f *fakeSectorStore) Update(_ context.Context, s model.Sector) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	old, ok := f.rows[s.ID]
	if !ok {
		return repository.ErrNotFound
	}
	s.PanchayatID = old.PanchayatID
	f.rows[s.ID] = s
	return nil
}

func (f *fakeSectorStore) Delete(_ context.Context, id uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if _, ok := f.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

type fakeFeedbackStore struct {
	mu     sync.Mutex
	rows   map[uint64]model.Feedback
	nextID uint64
	calls  int
}

func newFakeFeedbackStore() *fakeFeedbackStore {
	return &fakeFeedbackStore{rows: map[uint64]model.Feedback{}}
}

func (f *fakeFeedbackStore) Create(_ context.Context, fb model.Feedback) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.nextID++
	fb.ID = f.nextID
	f.rows[fb.ID] = fb
	return fb.ID, nil
}

func (f *fakeFeedbackStore) ListRecent(_ context.Context, limit int) ([]model.Feedback, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	out := []model.Feedback{}
	for _, row := range f.rows {
		if len(out) == limit {
			break
		}
		out = append(out, row)
	}
	return out, nil
}

func (f *fakeFeedbackStore) ListByHouse(_ context.Context, houseNo uint64) ([]model.Feedback, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	out := []model.Feedback{}
	for _, row := range f.rows {
		if row.HouseNo == houseNo {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeFeedbackStore) UpdateStatus(_ context.Context, id uint64, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	row, ok := f.rows[id]
	if !ok {
		return repository.ErrNotFound
	}
	row.Status = status
	f.rows[id] = row
	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []queue.FeedbackCreatedEvent
}

func (f *fakePublisher) PublishFeedbackCreated(_ context.Context, ev queue.FeedbackCreatedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev)
	return nil
}
