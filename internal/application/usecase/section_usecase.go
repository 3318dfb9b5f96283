package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/warehouse-pos/internal/domain/entity"
	"github.com/jhoicas/warehouse-pos/internal/domain/repository"
)

// SectionService catálogo de secciones de acceso. Es el único punto que siembra los slugs.
type SectionService struct {
	repo repository.SectionRepository
}

// NewSectionService construye el servicio de secciones.
func NewSectionService(repo repository.SectionRepository) *SectionService {
	return &SectionService{repo: repo}
}

// Setup crea o renombra las secciones por defecto. Idempotente.
func (s *SectionService) Setup(ctx context.Context) (int, error) {
	if err := s.repo.Upsert(ctx, entity.DefaultSections); err != nil {
		return 0, fmt.Errorf("sections: %w", err)
	}
	return len(entity.DefaultSections), nil
}

// List devuelve las secciones registradas.
func (s *SectionService) List(ctx context.Context) ([]entity.AccessSection, error) {
	return s.repo.List(ctx)
}
