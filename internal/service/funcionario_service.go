package service

import (
	"context"

	"barbertime/internal/entities"
	apperrors "barbertime/internal/errors"
)

// FuncionarioDirectory is the slice of the upstream client the employee
// flow needs.
type FuncionarioDirectory interface {
	ListFuncionarios(ctx context.Context, token string, empresaID int) ([]entities.Funcionario, error)
	CreateFuncionario(ctx context.Context, token string, f entities.Funcionario) (*entities.Funcionario, error)
	UpdateFuncionario(ctx context.Context, token string, id int, f entities.Funcionario) (*entities.Funcionario, error)
	DeleteFuncionario(ctx context.Context, token string, id int) error
}

type FuncionarioService struct {
	upstream FuncionarioDirectory
	tokens   TokenSource
}

func NewFuncionarioService(up FuncionarioDirectory, tokens TokenSource) *FuncionarioService {
	return &FuncionarioService{upstream: up, tokens: tokens}
}

func (s *FuncionarioService) List(ctx context.Context, empresaID int) ([]entities.Funcionario, error) {
	return s.upstream.ListFuncionarios(ctx, s.tokens.Token(), empresaID)
}

func (s *FuncionarioService) Create(ctx context.Context, f entities.Funcionario) (*entities.Funcionario, error) {
	if vf := validateFuncionario(f); !vf.Empty() {
		return nil, vf
	}
	f.Ativo = true
	return s.upstream.CreateFuncionario(ctx, s.tokens.Token(), f)
}

func (s *FuncionarioService) Update(ctx context.Context, id int, f entities.Funcionario) (*entities.Funcionario, error) {
	if vf := validateFuncionario(f); !vf.Empty() {
		return nil, vf
	}
	return s.upstream.UpdateFuncionario(ctx, s.tokens.Token(), id, f)
}

func (s *FuncionarioService) Delete(ctx context.Context, id int) error {
	return s.upstream.DeleteFuncionario(ctx, s.tokens.Token(), id)
}

func validateFuncionario(f entities.Funcionario) *apperrors.ValidationFailure {
	vf := apperrors.NewValidationFailure()
	if f.Nome == "" {
		vf.Add("nome", "nome é obrigatório")
	}
	if f.EmpresaID <= 0 {
		vf.Add("empresaId", "empresa é obrigatória")
	}
	return vf
}
