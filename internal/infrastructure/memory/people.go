package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/jhoicas/warehouse-pos/internal/domain"
	"github.com/jhoicas/warehouse-pos/internal/domain/entity"
	"github.com/jhoicas/warehouse-pos/internal/domain/repository"
)

// UserRepo implementa repository.UserRepository.
type UserRepo struct{ v view }

var _ repository.UserRepository = (*UserRepo)(nil)

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	return r.v.do(func(st *state) error {
		for _, ex := range st.users {
			if ex.Username == u.Username {
				return domain.ErrDuplicate
			}
		}
		st.users[u.ID] = *u
		return nil
	})
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.v.do(func(st *state) error {
		if u, ok := st.users[id]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	var out *entity.User
	err := r.v.do(func(st *state) error {
		for _, u := range st.users {
			if u.Username == username {
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	return r.v.do(func(st *state) error {
		u, ok := st.users[id]
		if !ok {
			return domain.ErrNotFound
		}
		u.PasswordHash = passwordHash
		st.users[id] = u
		return nil
	})
}

func (r *UserRepo) SetActive(_ context.Context, id string, active bool) error {
	return r.v.do(func(st *state) error {
		u, ok := st.users[id]
		if !ok {
			return domain.ErrNotFound
		}
		u.IsActive = active
		st.users[id] = u
		return nil
	})
}

// EmployeeRepo implementa repository.EmployeeRepository.
type EmployeeRepo struct{ v view }

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

func (r *EmployeeRepo) Create(_ context.Context, e *entity.Employee) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.users[e.UserID]; !ok {
			return domain.ErrNotFound
		}
		for _, ex := range st.employees {
			if ex.UserID == e.UserID {
				return domain.ErrDuplicate
			}
		}
		cp := *e
		cp.Sections = slices.Clone(e.Sections)
		st.employees[e.ID] = cp
		return nil
	})
}

func (r *EmployeeRepo) GetByID(_ context.Context, id string) (*entity.Employee, error) {
	var out *entity.Employee
	err := r.v.do(func(st *state) error {
		if e, ok := st.employees[id]; ok {
			e.Sections = slices.Clone(e.Sections)
			out = &e
		}
		return nil
	})
	return out, err
}

func (r *EmployeeRepo) GetByUserID(_ context.Context, userID string) (*entity.Employee, error) {
	var out *entity.Employee
	err := r.v.do(func(st *state) error {
		for _, e := range st.employees {
			if e.UserID == userID {
				e.Sections = slices.Clone(e.Sections)
				out = &e
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *EmployeeRepo) Update(_ context.Context, e *entity.Employee) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.employees[e.ID]; !ok {
			return domain.ErrNotFound
		}
		cp := *e
		cp.Sections = slices.Clone(e.Sections)
		st.employees[e.ID] = cp
		return nil
	})
}

func (r *EmployeeRepo) List(_ context.Context, warehouseID string, limit, offset int) ([]*entity.Employee, error) {
	var out []*entity.Employee
	err := r.v.do(func(st *state) error {
		all := make([]*entity.Employee, 0, len(st.employees))
		for _, e := range st.employees {
			if warehouseID != "" && e.WarehouseID != warehouseID {
				continue
			}
			e.Sections = slices.Clone(e.Sections)
			all = append(all, &e)
		}
		slices.SortFunc(all, func(a, b *entity.Employee) int { return strings.Compare(a.FullName, b.FullName) })
		out = page(all, limit, offset)
		return nil
	})
	return out, err
}

// SectionRepo implementa repository.SectionRepository.
type SectionRepo struct{ v view }

var _ repository.SectionRepository = (*SectionRepo)(nil)

func (r *SectionRepo) Upsert(_ context.Context, sections []entity.AccessSection) error {
	return r.v.do(func(st *state) error {
		for _, s := range sections {
			i := slices.IndexFunc(st.sections, func(ex entity.AccessSection) bool { return ex.Slug == s.Slug })
			if i >= 0 {
				st.sections[i].Name = s.Name
				continue
			}
			st.sections = append(st.sections, s)
		}
		return nil
	})
}

func (r *SectionRepo) List(_ context.Context) ([]entity.AccessSection, error) {
	var out []entity.AccessSection
	err := r.v.do(func(st *state) error {
		out = slices.Clone(st.sections)
		return nil
	})
	return out, err
}

// ActivityRepo implementa repository.ActivityLogRepository.
type ActivityRepo struct{ v view }

var _ repository.ActivityLogRepository = (*ActivityRepo)(nil)

func (r *ActivityRepo) Create(_ context.Context, l *entity.ActivityLog) error {
	return r.v.do(func(st *state) error {
		st.logs = append(st.logs, *l)
		return nil
	})
}

// List más recientes primero; warehouseID filtra por la bodega del empleado que actuó.
func (r *ActivityRepo) List(_ context.Context, warehouseID string, limit, offset int) ([]*entity.ActivityLog, error) {
	var out []*entity.ActivityLog
	err := r.v.do(func(st *state) error {
		all := make([]*entity.ActivityLog, 0, len(st.logs))
		for i := len(st.logs) - 1; i >= 0; i-- {
			l := st.logs[i]
			if warehouseID != "" && st.employees[l.EmployeeID].WarehouseID != warehouseID {
				continue
			}
			l.Username = st.users[l.UserID].Username
			all = append(all, &l)
		}
		slices.SortStableFunc(all, func(a, b *entity.ActivityLog) int { return b.CreatedAt.Compare(a.CreatedAt) })
		out = page(all, limit, offset)
		return nil
	})
	return out, err
}
