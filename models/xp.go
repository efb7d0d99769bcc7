package models

import "time"

// AcaoXP: catálogo estático ação → recompensa. Provisionado administrativamente,
// somente leitura em runtime.
type AcaoXP struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Acao      string    `gorm:"uniqueIndex;not null" json:"acao"`
	XPGanho   int       `gorm:"not null" json:"xp_ganho"`
	Descricao string    `json:"descricao"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (AcaoXP) TableName() string { return "acoes_xp" }

// NivelTitulo: tabela ordenada de níveis com limiar de XP e título desbloqueado.
// Invariante: xp_necessario estritamente crescente, nível 1 em 0.
type NivelTitulo struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Nivel        int       `gorm:"uniqueIndex;not null" json:"nivel"`
	XPNecessario int       `gorm:"not null" json:"xp_necessario"`
	Titulo       string    `gorm:"not null" json:"titulo"`
	Descricao    string    `json:"descricao"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (NivelTitulo) TableName() string { return "niveis_titulos" }

// XPHistorico é o razão append-only de eventos de XP: uma linha por premiação,
// nunca atualizada ou removida. A soma de xp_ganho por usuário deve bater com
// o xp_atual dele.
type XPHistorico struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UsuarioID uint      `gorm:"index;not null" json:"usuario_id"`
	Acao      string    `gorm:"not null" json:"acao"`
	XPGanho   int       `gorm:"not null" json:"xp_ganho"`
	Descricao string    `json:"descricao"`
	DataAcao  time.Time `gorm:"autoCreateTime;index" json:"data_acao"`
}

func (XPHistorico) TableName() string { return "usuario_xp_historico" }

// Catálogo padrão, inserido no primeiro boot quando as tabelas estão vazias.
var AcoesXPPadrao = []AcaoXP{
	{Acao: "cadastro", XPGanho: 25, Descricao: "Criou a conta na plataforma"},
	{Acao: "criar_post", XPGanho: 10, Descricao: "Criou um post"},
	{Acao: "comentar_post", XPGanho: 5, Descricao: "Comentou em um post"},
	{Acao: "post_comentado", XPGanho: 3, Descricao: "Recebeu um comentário em um post"},
	{Acao: "post_curtido", XPGanho: 2, Descricao: "Recebeu uma curtida em um post"},
	{Acao: "comentario_curtido", XPGanho: 1, Descricao: "Recebeu uma curtida em um comentário"},
	{Acao: "iniciar_conversa", XPGanho: 5, Descricao: "Iniciou uma nova conversa"},
	{Acao: "enviar_mensagem", XPGanho: 1, Descricao: "Enviou uma mensagem no chat"},
}

var NiveisTitulosPadrao = []NivelTitulo{
	{Nivel: 1, XPNecessario: 0, Titulo: "Iniciante", Descricao: "Bem-vindo à plataforma!"},
	{Nivel: 2, XPNecessario: 100, Titulo: "Novato", Descricao: "Primeiros passos na comunidade"},
	{Nivel: 3, XPNecessario: 300, Titulo: "Aprendiz", Descricao: "Participação constante"},
	{Nivel: 4, XPNecessario: 600, Titulo: "Participante", Descricao: "Presença ativa na comunidade"},
	{Nivel: 5, XPNecessario: 1000, Titulo: "Engajado", Descricao: "Contribuições frequentes"},
	{Nivel: 6, XPNecessario: 1500, Titulo: "Veterano", Descricao: "Membro experiente"},
	{Nivel: 7, XPNecessario: 2500, Titulo: "Mentor", Descricao: "Referência para novos membros"},
	{Nivel: 8, XPNecessario: 4000, Titulo: "Especialista", Descricao: "Conhecimento reconhecido"},
	{Nivel: 9, XPNecessario: 6000, Titulo: "Embaixador", Descricao: "Voz ativa da comunidade"},
	{Nivel: 10, XPNecessario: 10000, Titulo: "Lenda", Descricao: "O topo da progressão"},
}
