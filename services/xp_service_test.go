package services

import (
	"testing"

	"github.com/DjefferBP/sis-sistema-de-inclusao-social/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func novoBancoMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return gdb, mock
}

func novoXPService(t *testing.T) (*XPService, sqlmock.Sqlmock) {
	t.Helper()
	gdb, mock := novoBancoMock(t)
	catalog, err := NewXPCatalog(models.AcoesXPPadrao, []models.NivelTitulo{
		{ID: 1, Nivel: 1, XPNecessario: 0, Titulo: "Iniciante"},
		{ID: 2, Nivel: 2, XPNecessario: 100, Titulo: "Novato"},
		{ID: 3, Nivel: 3, XPNecessario: 300, Titulo: "Aprendiz"},
	})
	require.NoError(t, err)
	return NewXPService(gdb, catalog), mock
}

func TestAdicionarXPComLevelUp(t *testing.T) {
	svc, mock := novoXPService(t)

	// O usuário fecha em 130 XP com nivel_atual armazenado 1: o limiar de 100
	// foi cruzado, então o serviço grava o nível 2 e sinaliza nivel_up.
	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE usuarios SET xp_atual = xp_atual \+ \$1`).
		WithArgs(10, 1).
		WillReturnRows(sqlmock.NewRows([]string{"xp_atual", "nivel_atual"}).AddRow(130, 1))
	mock.ExpectExec(`UPDATE "usuarios" SET "nivel_atual"=\$1`).
		WithArgs(2, sqlmock.AnyArg(), 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "usuario_xp_historico"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	resultado, err := svc.AdicionarXP(1, "criar_post", "")
	require.NoError(t, err)

	assert.Equal(t, 10, resultado.XPGanho)
	assert.Equal(t, 130, resultado.XPTotal)
	assert.Equal(t, 1, resultado.NivelAnterior)
	assert.Equal(t, 2, resultado.NivelAtual)
	assert.True(t, resultado.NivelUp)
	assert.Equal(t, "Novato", resultado.TituloAtual)
	assert.Equal(t, "Criou um post", resultado.Descricao)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdicionarXPSemLevelUp(t *testing.T) {
	svc, mock := novoXPService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE usuarios SET xp_atual = xp_atual \+ \$1`).
		WithArgs(5, 7).
		WillReturnRows(sqlmock.NewRows([]string{"xp_atual", "nivel_atual"}).AddRow(30, 1))
	mock.ExpectQuery(`INSERT INTO "usuario_xp_historico"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
	mock.ExpectCommit()

	resultado, err := svc.AdicionarXP(7, "comentar_post", "")
	require.NoError(t, err)

	assert.False(t, resultado.NivelUp)
	assert.Equal(t, 1, resultado.NivelAtual)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdicionarXPDescricaoPersonalizada(t *testing.T) {
	svc, mock := novoXPService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE usuarios SET xp_atual = xp_atual \+ \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"xp_atual", "nivel_atual"}).AddRow(35, 1))
	mock.ExpectQuery(`INSERT INTO "usuario_xp_historico"`).
		WithArgs(1, "criar_post", 10, "Criou o post: Vagas em SP...", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectCommit()

	resultado, err := svc.AdicionarXP(1, "criar_post", "Criou o post: Vagas em SP...")
	require.NoError(t, err)
	assert.Equal(t, "Criou o post: Vagas em SP...", resultado.Descricao)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdicionarXPAcaoDesconhecida(t *testing.T) {
	svc, mock := novoXPService(t)

	// Falha antes de qualquer acesso ao banco.
	_, err := svc.AdicionarXP(1, "acao_que_nao_existe", "")
	assert.ErrorIs(t, err, ErrAcaoDesconhecida)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdicionarXPUsuarioNaoEncontrado(t *testing.T) {
	svc, mock := novoXPService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE usuarios SET xp_atual = xp_atual \+ \$1`).
		WithArgs(25, 999).
		WillReturnRows(sqlmock.NewRows([]string{"xp_atual", "nivel_atual"}))
	mock.ExpectRollback()

	_, err := svc.AdicionarXP(999, "cadastro", "")
	assert.ErrorIs(t, err, ErrUsuarioNaoEncontrado)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func linhaUsuario(id uint, xp, nivel int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "nome", "email", "xp_atual", "nivel_atual"}).
		AddRow(id, "Maria Silva", "maria@exemplo.com", xp, nivel)
}

func TestGetProgresso(t *testing.T) {
	svc, mock := novoXPService(t)

	mock.ExpectQuery(`SELECT \* FROM "usuarios"`).
		WillReturnRows(linhaUsuario(1, 180, 2))

	progresso, err := svc.GetProgresso(1)
	require.NoError(t, err)

	assert.Equal(t, 180, progresso.XPAtual)
	assert.Equal(t, 2, progresso.NivelAtual)
	assert.Equal(t, "Novato", progresso.TituloAtual)
	assert.Equal(t, 40.00, progresso.ProgressoProximoNivel)
	require.NotNil(t, progresso.ProximoNivel)
	assert.Equal(t, 3, progresso.ProximoNivel.Nivel)
	assert.Equal(t, 300, progresso.ProximoNivel.XPNecessario)
	assert.Equal(t, 120, progresso.ProximoNivel.XPRestante)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProgressoNivelMaximo(t *testing.T) {
	svc, mock := novoXPService(t)

	mock.ExpectQuery(`SELECT \* FROM "usuarios"`).
		WillReturnRows(linhaUsuario(1, 500, 3))

	progresso, err := svc.GetProgresso(1)
	require.NoError(t, err)

	assert.Equal(t, 100.0, progresso.ProgressoProximoNivel)
	assert.Nil(t, progresso.ProximoNivel)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProgressoUsuarioNaoEncontrado(t *testing.T) {
	svc, mock := novoXPService(t)

	mock.ExpectQuery(`SELECT \* FROM "usuarios"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.GetProgresso(42)
	assert.ErrorIs(t, err, ErrUsuarioNaoEncontrado)
}

func TestEquiparTitulo(t *testing.T) {
	svc, mock := novoXPService(t)

	mock.ExpectQuery(`SELECT \* FROM "usuarios"`).
		WillReturnRows(linhaUsuario(1, 180, 2))
	mock.ExpectExec(`UPDATE "usuarios" SET "titulo_equipado_id"=\$1`).
		WithArgs(2, sqlmock.AnyArg(), 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	resultado, err := svc.EquiparTitulo(1, 2)
	require.NoError(t, err)

	assert.Equal(t, "Novato", resultado.TituloEquipado)
	assert.Equal(t, 2, resultado.NivelRequerido)
	assert.Equal(t, 2, resultado.NivelUsuario)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEquiparTituloNivelInsuficiente(t *testing.T) {
	svc, mock := novoXPService(t)

	mock.ExpectQuery(`SELECT \* FROM "usuarios"`).
		WillReturnRows(linhaUsuario(1, 50, 1))

	_, err := svc.EquiparTitulo(1, 3)
	assert.ErrorIs(t, err, ErrNivelInsuficiente)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEquiparTituloInexistente(t *testing.T) {
	svc, mock := novoXPService(t)

	// id 42 não está no catálogo: nenhuma consulta deve acontecer.
	_, err := svc.EquiparTitulo(1, 42)
	assert.ErrorIs(t, err, ErrTituloNaoEncontrado)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoverTitulo(t *testing.T) {
	svc, mock := novoXPService(t)

	mock.ExpectExec(`UPDATE "usuarios" SET "titulo_equipado_id"=\$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, svc.RemoverTitulo(1))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoverTituloUsuarioNaoEncontrado(t *testing.T) {
	svc, mock := novoXPService(t)

	mock.ExpectExec(`UPDATE "usuarios" SET "titulo_equipado_id"=\$1`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := svc.RemoverTitulo(999)
	assert.ErrorIs(t, err, ErrUsuarioNaoEncontrado)
}

func TestGetHistorico(t *testing.T) {
	svc, mock := novoXPService(t)

	mock.ExpectQuery(`SELECT \* FROM "usuario_xp_historico"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "usuario_id", "acao", "xp_ganho", "descricao"}).
			AddRow(2, 1, "criar_post", 10, "Criou um post").
			AddRow(1, 1, "cadastro", 25, "Criou a conta na plataforma"))

	historico, err := svc.GetHistorico(1, 50)
	require.NoError(t, err)
	require.Len(t, historico, 2)
	assert.Equal(t, "criar_post", historico[0].Acao)
	assert.Equal(t, 25, historico[1].XPGanho)
}
