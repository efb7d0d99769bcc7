package services

import (
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func novoUserService(t *testing.T) (*UserService, sqlmock.Sqlmock) {
	t.Helper()
	xp, mock := novoXPService(t)
	return NewUserService(xp.DB, xp, NewCEPService()), mock
}

// Limites do cadastro: senha 6–100, nome 2–150. A validação acontece antes de
// qualquer consulta ao banco.
func TestRegistrarUsuarioValidacao(t *testing.T) {
	svc, mock := novoUserService(t)

	casos := []struct {
		nome  string
		senha string
	}{
		{"Maria Silva", "12345"},                       // senha curta
		{"Maria Silva", strings.Repeat("a", 101)},      // senha longa
		{"M", "senha-segura"},                          // nome curto
		{strings.Repeat("a", 151), "senha-segura"},     // nome longo
	}
	for _, c := range casos {
		_, _, err := svc.RegistrarUsuario(RegistroUsuario{
			Nome:  c.nome,
			Email: "maria@exemplo.com",
			Senha: c.senha,
		})
		assert.Error(t, err, "nome=%q senha de %d caracteres", c.nome, len(c.senha))
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrarUsuarioLimitesAceitos(t *testing.T) {
	if err := validarSenha("123456"); err != nil {
		t.Errorf("senha de 6 caracteres deveria passar: %v", err)
	}
	if err := validarSenha(strings.Repeat("a", 100)); err != nil {
		t.Errorf("senha de 100 caracteres deveria passar: %v", err)
	}
	if err := validarNome("Jô"); err != nil {
		t.Errorf("nome de 2 caracteres deveria passar: %v", err)
	}
	if err := validarNome(strings.Repeat("a", 150)); err != nil {
		t.Errorf("nome de 150 caracteres deveria passar: %v", err)
	}
	// Limites contam runas, não bytes.
	if err := validarNome("Zé"); err != nil {
		t.Errorf("nome acentuado de 2 runas deveria passar: %v", err)
	}
}

func TestAtualizarPerfilNomeInvalido(t *testing.T) {
	svc, mock := novoUserService(t)

	mock.ExpectQuery(`SELECT \* FROM "usuarios"`).
		WillReturnRows(linhaUsuario(1, 180, 2))

	nome := "x"
	_, err := svc.AtualizarPerfil(1, AtualizacaoUsuario{Nome: &nome})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListarGruposVulnerabilidade(t *testing.T) {
	svc, mock := novoUserService(t)

	mock.ExpectQuery(`SELECT \* FROM "grupos_vulnerabilidade"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "categoria", "tipo"}).
			AddRow(1, "Pessoa com Deficiência", "Deficiência física").
			AddRow(5, "Raça e Etnia", "Pessoa negra"))

	grupos, err := svc.ListarGruposVulnerabilidade()
	require.NoError(t, err)
	require.Len(t, grupos, 2)
	assert.Equal(t, "Pessoa com Deficiência", grupos[0].Categoria)
	assert.Equal(t, "Pessoa negra", grupos[1].Tipo)
}

func TestObterPerfilComGrupos(t *testing.T) {
	svc, mock := novoUserService(t)

	mock.ExpectQuery(`SELECT \* FROM "usuarios"`).
		WillReturnRows(linhaUsuario(1, 180, 2))
	mock.ExpectQuery(`SELECT g\.id, g\.categoria, g\.tipo`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "categoria", "tipo"}).
			AddRow(7, "Situação Social", "Baixa renda"))

	perfil, err := svc.ObterPerfil(1)
	require.NoError(t, err)
	require.Len(t, perfil.GruposVulnerabilidade, 1)
	assert.Equal(t, "Baixa renda", perfil.GruposVulnerabilidade[0].Tipo)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestObterPerfilSemGrupos(t *testing.T) {
	svc, mock := novoUserService(t)

	mock.ExpectQuery(`SELECT \* FROM "usuarios"`).
		WillReturnRows(linhaUsuario(1, 50, 1))
	mock.ExpectQuery(`SELECT g\.id, g\.categoria, g\.tipo`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "categoria", "tipo"}))

	perfil, err := svc.ObterPerfil(1)
	require.NoError(t, err)
	assert.NotNil(t, perfil.GruposVulnerabilidade)
	assert.Empty(t, perfil.GruposVulnerabilidade)
}
