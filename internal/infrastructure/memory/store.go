// Package memory implementación en memoria de los repositorios y del TxRunner.
// Sirve para tests de casos de uso y para levantar la API sin base de datos.
package memory

import (
	"context"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/warehouse-pos/internal/domain/entity"
	"github.com/jhoicas/warehouse-pos/internal/domain/inventory"
	"github.com/jhoicas/warehouse-pos/internal/domain/repository"
)

type state struct {
	categories map[string]entity.Category
	products   map[string]entity.Product
	warehouses map[string]entity.Warehouse
	profiles   map[string]entity.WarehouseProfile
	users      map[string]entity.User
	employees  map[string]entity.Employee
	sections   []entity.AccessSection
	stocks     map[inventory.StockKey]entity.Stock
	incoming   map[string]entity.Incoming
	movements  map[string]entity.Movement
	sales      map[string]entity.Sale
	logs       []entity.ActivityLog
}

func newState() *state {
	return &state{
		categories: map[string]entity.Category{},
		products:   map[string]entity.Product{},
		warehouses: map[string]entity.Warehouse{},
		profiles:   map[string]entity.WarehouseProfile{},
		users:      map[string]entity.User{},
		employees:  map[string]entity.Employee{},
		stocks:     map[inventory.StockKey]entity.Stock{},
		incoming:   map[string]entity.Incoming{},
		movements:  map[string]entity.Movement{},
		sales:      map[string]entity.Sale{},
	}
}

// clone copia superficial de cada colección. Los slices internos (secciones, líneas de venta)
// nunca se mutan en sitio, así que compartirlos es seguro.
func (s *state) clone() *state {
	return &state{
		categories: maps.Clone(s.categories),
		products:   maps.Clone(s.products),
		warehouses: maps.Clone(s.warehouses),
		profiles:   maps.Clone(s.profiles),
		users:      maps.Clone(s.users),
		employees:  maps.Clone(s.employees),
		sections:   slices.Clone(s.sections),
		stocks:     maps.Clone(s.stocks),
		incoming:   maps.Clone(s.incoming),
		movements:  maps.Clone(s.movements),
		sales:      maps.Clone(s.sales),
		logs:       slices.Clone(s.logs),
	}
}

// Store guarda todo en mapas protegidos por un único mutex.
// Run mantiene el mutex durante toda la función, así que las transacciones se serializan;
// si fn falla se restaura la copia tomada al inicio.
type Store struct {
	mu sync.Mutex
	st *state
}

// New crea un store vacío.
func New() *Store {
	return &Store{st: newState()}
}

// view acceso al estado. locked indica que el caller ya tiene el mutex (dentro de Run).
type view struct {
	s      *Store
	locked bool
}

func (v view) do(fn func(st *state) error) error {
	if !v.locked {
		v.s.mu.Lock()
		defer v.s.mu.Unlock()
	}
	return fn(v.s.st)
}

// Run ejecuta fn con repositorios transaccionales.
func (s *Store) Run(ctx context.Context, fn func(repos repository.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.st.clone()
	if err := fn(s.repos(view{s: s, locked: true})); err != nil {
		s.st = snapshot
		return err
	}
	return nil
}

// Repos repositorios fuera de transacción (cada llamada toma el mutex).
func (s *Store) Repos() repository.TxRepos {
	return s.repos(view{s: s})
}

func (s *Store) repos(v view) repository.TxRepos {
	return repository.TxRepos{
		Stocks:     &StockRepo{v},
		Incoming:   &IncomingRepo{v},
		Movements:  &MovementRepo{v},
		Sales:      &SaleRepo{v},
		Products:   &ProductRepo{v},
		Warehouses: &WarehouseRepo{v},
		Users:      &UserRepo{v},
		Employees:  &EmployeeRepo{v},
		Activity:   &ActivityRepo{v},
	}
}

// Categories repositorio de categorías.
func (s *Store) Categories() *CategoryRepo { return &CategoryRepo{view{s: s}} }

// Sections repositorio de secciones de acceso.
func (s *Store) Sections() *SectionRepo { return &SectionRepo{view{s: s}} }

func page[T any](list []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(list) {
		return []T{}
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

// inRange from/to inclusivos por día.
func inRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && !t.Before(to.AddDate(0, 0, 1)) {
		return false
	}
	return true
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
