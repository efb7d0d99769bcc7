package models

type Comentario struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	PostID        uint   `gorm:"index;not null" json:"post_id"`
	UsuarioID     uint   `gorm:"index;not null" json:"usuario_id"`
	Conteudo      string `gorm:"type:text;not null" json:"conteudo"`
	CurtidasCount int    `gorm:"not null;default:0" json:"curtidas_count"`

	Timestamps
}

func (Comentario) TableName() string { return "comentarios" }
