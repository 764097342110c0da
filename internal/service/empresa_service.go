package service

import (
	"context"

	"barbertime/internal/entities"
	apperrors "barbertime/internal/errors"
)

// EmpresaDirectory is the slice of the upstream client the company flow
// needs.
type EmpresaDirectory interface {
	ListEmpresas(ctx context.Context, token string) ([]entities.Empresa, error)
	CreateEmpresa(ctx context.Context, token string, e entities.Empresa) (*entities.Empresa, error)
}

type EmpresaService struct {
	upstream EmpresaDirectory
	tokens   TokenSource
}

func NewEmpresaService(up EmpresaDirectory, tokens TokenSource) *EmpresaService {
	return &EmpresaService{upstream: up, tokens: tokens}
}

func (s *EmpresaService) List(ctx context.Context) ([]entities.Empresa, error) {
	return s.upstream.ListEmpresas(ctx, s.tokens.Token())
}

func (s *EmpresaService) Create(ctx context.Context, e entities.Empresa) (*entities.Empresa, error) {
	vf := apperrors.NewValidationFailure()
	if e.Nome == "" {
		vf.Add("nome", "nome é obrigatório")
	}
	if !vf.Empty() {
		return nil, vf
	}
	e.Ativo = true
	return s.upstream.CreateEmpresa(ctx, s.tokens.Token(), e)
}
