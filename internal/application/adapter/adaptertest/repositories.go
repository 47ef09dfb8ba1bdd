// Package adaptertest provides in-memory implementations of the adapter
// interfaces for use-case tests.
package adaptertest

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/carbon-tracker/backend/internal/application/adapter"
	"github.com/carbon-tracker/backend/internal/domain/entity"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
	"github.com/carbon-tracker/backend/internal/domain/valueobject"
)

// FactorRepository is an in-memory adapter.EmissionFactorRepository.
type FactorRepository struct {
	mu      sync.Mutex
	factors map[uuid.UUID]*entity.EmissionFactor

	// Lookups counts FindByID calls.
	Lookups int
	// Err, when set, is returned by every method.
	Err error
}

var _ adapter.EmissionFactorRepository = (*FactorRepository)(nil)

// NewFactorRepository creates a repository holding factors.
func NewFactorRepository(factors ...*entity.EmissionFactor) *FactorRepository {
	r := &FactorRepository{factors: make(map[uuid.UUID]*entity.EmissionFactor)}
	for _, f := range factors {
		r.factors[f.ID] = f
	}
	return r
}

func (r *FactorRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.EmissionFactor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Lookups++
	if r.Err != nil {
		return nil, r.Err
	}
	f, ok := r.factors[id]
	if !ok {
		return nil, domainerror.ErrFactorNotFound
	}
	return f, nil
}

func (r *FactorRepository) List(_ context.Context) ([]*entity.EmissionFactor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := make([]*entity.EmissionFactor, 0, len(r.factors))
	for _, f := range r.factors {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *FactorRepository) Create(_ context.Context, factor *entity.EmissionFactor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.factors[factor.ID] = factor
	return nil
}

func (r *FactorRepository) ReplaceAll(_ context.Context, factors []*entity.EmissionFactor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.factors = make(map[uuid.UUID]*entity.EmissionFactor, len(factors))
	for _, f := range factors {
		r.factors[f.ID] = f
	}
	return nil
}

// scopeOf is used by the input repository to emulate the factor join.
func (r *FactorRepository) scopeOf(id uuid.UUID) (entity.Scope, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.factors[id]
	if !ok {
		return 0, false
	}
	return f.Scope, true
}

// UserInputRepository is an in-memory adapter.UserInputRepository.
// Scoped queries join against the given factor repository.
type UserInputRepository struct {
	mu      sync.Mutex
	factors *FactorRepository
	inputs  []*entity.UserInput

	// CreateErr is returned by Create; nothing is stored when set.
	CreateErr error
	// QueryErr is returned by the read methods.
	QueryErr error
}

var _ adapter.UserInputRepository = (*UserInputRepository)(nil)

// NewUserInputRepository creates an empty repository joined to factors.
func NewUserInputRepository(factors *FactorRepository) *UserInputRepository {
	return &UserInputRepository{factors: factors}
}

func (r *UserInputRepository) Create(_ context.Context, input *entity.UserInput) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.CreateErr != nil {
		return r.CreateErr
	}
	r.inputs = append(r.inputs, input)
	return nil
}

// All returns every stored record in insertion order.
func (r *UserInputRepository) All() []*entity.UserInput {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.UserInput, len(r.inputs))
	copy(out, r.inputs)
	return out
}

func (r *UserInputRepository) ListByUser(_ context.Context, userID uuid.UUID, page, perPage int) (*adapter.UserInputListResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.QueryErr != nil {
		return nil, r.QueryErr
	}

	var owned []*entity.UserInput
	for _, in := range r.inputs {
		if in.UserID == userID {
			owned = append(owned, in)
		}
	}
	sort.SliceStable(owned, func(i, j int) bool {
		if !owned[i].DatePeriodStart.Equal(owned[j].DatePeriodStart) {
			return owned[i].DatePeriodStart.After(owned[j].DatePeriodStart)
		}
		return owned[i].CreatedAt.After(owned[j].CreatedAt)
	})

	result := &adapter.UserInputListResult{TotalItems: int64(len(owned))}
	start := (page - 1) * perPage
	if start >= len(owned) {
		result.Inputs = []*entity.UserInput{}
		return result, nil
	}
	end := start + perPage
	if end > len(owned) {
		end = len(owned)
	}
	result.Inputs = owned[start:end]
	return result, nil
}

func (r *UserInputRepository) FindScopedEmissions(_ context.Context, userID uuid.UUID, dateRange *valueobject.DateRange) ([]entity.ScopedEmission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.QueryErr != nil {
		return nil, r.QueryErr
	}

	var rows []entity.ScopedEmission
	for _, in := range r.inputs {
		if in.UserID != userID {
			continue
		}
		if dateRange != nil && !dateRange.Contains(in.DatePeriodStart) {
			continue
		}
		scope, ok := r.factors.scopeOf(in.FactorID)
		if !ok {
			continue
		}
		rows = append(rows, entity.ScopedEmission{
			EmissionsKg:     in.CalculatedEmissionsKg,
			Scope:           scope,
			DatePeriodStart: in.DatePeriodStart,
		})
	}
	return rows, nil
}

// ReportRepository is an in-memory adapter.ReportRepository.
type ReportRepository struct {
	mu      sync.Mutex
	reports []*entity.Report

	// Err, when set, is returned by every method; nothing is stored.
	Err error
}

var _ adapter.ReportRepository = (*ReportRepository)(nil)

// NewReportRepository creates an empty repository.
func NewReportRepository() *ReportRepository {
	return &ReportRepository{}
}

func (r *ReportRepository) Create(_ context.Context, report *entity.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.reports = append(r.reports, report)
	return nil
}

func (r *ReportRepository) ListByUser(_ context.Context, userID uuid.UUID) ([]*entity.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	var out []*entity.Report
	for _, rep := range r.reports {
		if rep.UserID == userID {
			out = append(out, rep)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].GeneratedAt.After(out[j].GeneratedAt)
	})
	return out, nil
}

func (r *ReportRepository) FindByIDForUser(_ context.Context, id, userID uuid.UUID) (*entity.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, rep := range r.reports {
		if rep.ID == id && rep.UserID == userID {
			return rep, nil
		}
	}
	return nil, domainerror.ErrReportNotFound
}

// UserRepository is an in-memory adapter.UserRepository.
type UserRepository struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

var _ adapter.UserRepository = (*UserRepository)(nil)

// NewUserRepository creates an empty repository.
func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[uuid.UUID]*entity.User)}
}

func (r *UserRepository) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

func (r *UserRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domainerror.ErrUserNotFound
	}
	return u, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	return err == nil, nil
}

func (r *UserRepository) ExistsByUsername(_ context.Context, username string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}
