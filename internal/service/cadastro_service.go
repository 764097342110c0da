package service

import (
	"context"

	"barbertime/internal/entities"
	apperrors "barbertime/internal/errors"
)

// CadastroDirectory is the slice of the upstream client the registration
// pass-throughs need.
type CadastroDirectory interface {
	CreateCliente(ctx context.Context, token string, c entities.Cliente) (*entities.Cliente, error)
	CreateServico(ctx context.Context, token string, sv entities.Servico) (*entities.Servico, error)
	ListServicos(ctx context.Context, token string, empresaID int) ([]entities.Servico, error)
}

// CadastroService forwards client and service-catalog registrations to the
// upstream after form-level validation.
type CadastroService struct {
	upstream CadastroDirectory
	tokens   TokenSource
}

func NewCadastroService(up CadastroDirectory, tokens TokenSource) *CadastroService {
	return &CadastroService{upstream: up, tokens: tokens}
}

func (s *CadastroService) CreateCliente(ctx context.Context, c entities.Cliente) (*entities.Cliente, error) {
	vf := apperrors.NewValidationFailure()
	if c.Nome == "" {
		vf.Add("nome", "nome é obrigatório")
	}
	if !vf.Empty() {
		return nil, vf
	}
	return s.upstream.CreateCliente(ctx, s.tokens.Token(), c)
}

func (s *CadastroService) CreateServico(ctx context.Context, sv entities.Servico) (*entities.Servico, error) {
	vf := apperrors.NewValidationFailure()
	if sv.Nome == "" {
		vf.Add("nome", "nome é obrigatório")
	}
	if sv.EmpresaID <= 0 {
		vf.Add("empresaId", "empresa é obrigatória")
	}
	if sv.Preco < 0 {
		vf.Add("preco", "preço não pode ser negativo")
	}
	if sv.DuracaoMinutos <= 0 {
		vf.Add("duracaoMinutos", "duração deve ser maior que zero")
	}
	if !vf.Empty() {
		return nil, vf
	}
	sv.Ativo = true
	return s.upstream.CreateServico(ctx, s.tokens.Token(), sv)
}

func (s *CadastroService) ListServicos(ctx context.Context, empresaID int) ([]entities.Servico, error) {
	return s.upstream.ListServicos(ctx, s.tokens.Token(), empresaID)
}
