package models

import "time"

// Conversa liga dois usuários; a dupla é única independente da ordem
// (o serviço normaliza usuario1_id < usuario2_id antes de criar).
type Conversa struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Usuario1ID uint      `gorm:"uniqueIndex:idx_conversa_par;not null" json:"usuario1_id"`
	Usuario2ID uint      `gorm:"uniqueIndex:idx_conversa_par;not null" json:"usuario2_id"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"data_criacao"`
}

func (Conversa) TableName() string { return "conversas" }

type Mensagem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ConversaID  uint      `gorm:"index;not null" json:"conversa_id"`
	RemetenteID uint      `gorm:"not null" json:"remetente_id"`
	Conteudo    string    `gorm:"type:text;not null" json:"conteudo"`
	Lida        bool      `gorm:"not null;default:false" json:"lida"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index" json:"data_envio"`
}

func (Mensagem) TableName() string { return "mensagens" }
