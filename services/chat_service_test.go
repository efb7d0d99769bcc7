package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func novoChatService(t *testing.T) (*ChatService, sqlmock.Sqlmock) {
	t.Helper()
	xp, mock := novoXPService(t)
	return NewChatService(xp.DB, xp), mock
}

func linhaConversa(id, u1, u2 uint) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "usuario1_id", "usuario2_id"}).AddRow(id, u1, u2)
}

func TestNormalizarPar(t *testing.T) {
	a, b := normalizarPar(5, 2)
	if a != 2 || b != 5 {
		t.Fatalf("normalizarPar(5,2) = (%d,%d), esperado (2,5)", a, b)
	}

	a, b = normalizarPar(2, 5)
	if a != 2 || b != 5 {
		t.Fatalf("normalizarPar(2,5) = (%d,%d), esperado (2,5)", a, b)
	}
}

// A visão completa devolve conversa e mensagens juntas e marca as recebidas
// como lidas.
func TestObterConversaCompleta(t *testing.T) {
	svc, mock := novoChatService(t)

	mock.ExpectQuery(`SELECT \* FROM "conversas"`).
		WillReturnRows(linhaConversa(3, 1, 2))
	mock.ExpectQuery(`SELECT \* FROM "mensagens"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "conversa_id", "remetente_id", "conteudo", "lida"}).
			AddRow(10, 3, 2, "Oi!", false).
			AddRow(11, 3, 1, "Olá, tudo bem?", true))
	mock.ExpectExec(`UPDATE "mensagens" SET "lida"=\$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	completa, err := svc.ObterConversaCompleta(3, 1)
	require.NoError(t, err)

	assert.Equal(t, uint(3), completa.Conversa.ID)
	assert.Equal(t, 2, completa.TotalMensagens)
	assert.Equal(t, "Oi!", completa.Mensagens[0].Conteudo)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestObterConversaCompletaNaoParticipante(t *testing.T) {
	svc, mock := novoChatService(t)

	mock.ExpectQuery(`SELECT \* FROM "conversas"`).
		WillReturnRows(linhaConversa(3, 4, 5))

	_, err := svc.ObterConversaCompleta(3, 1)
	assert.ErrorIs(t, err, ErrNaoParticipante)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A busca por par normaliza a ordem dos ids e nunca cria conversa nova.
func TestBuscarConversaPorUsuarios(t *testing.T) {
	svc, mock := novoChatService(t)

	mock.ExpectQuery(`SELECT \* FROM "conversas" WHERE usuario1_id = \$1 AND usuario2_id = \$2`).
		WillReturnRows(linhaConversa(9, 2, 5))

	conversa, err := svc.BuscarConversaPorUsuarios(5, 2)
	require.NoError(t, err)
	assert.Equal(t, uint(9), conversa.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBuscarConversaPorUsuariosNaoEncontrada(t *testing.T) {
	svc, mock := novoChatService(t)

	mock.ExpectQuery(`SELECT \* FROM "conversas"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.BuscarConversaPorUsuarios(1, 2)
	assert.ErrorIs(t, err, ErrConversaNaoEncontrada)
}
