package models

import "time"

type Post struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	UsuarioID uint   `gorm:"index;not null" json:"usuario_id"`
	Titulo    string `gorm:"not null" json:"titulo"`
	Conteudo  string `gorm:"type:text;not null" json:"conteudo"`
	Categoria string `gorm:"index" json:"categoria,omitempty"`

	// Contadores denormalizados, mantidos junto com as linhas de curtida/comentário.
	CurtidasCount    int `gorm:"not null;default:0" json:"curtidas_count"`
	ComentariosCount int `gorm:"not null;default:0" json:"comentarios_count"`

	Timestamps
}

func (Post) TableName() string { return "posts" }

// PostCurtida: uma linha por (post, usuário); impede curtida dupla.
type PostCurtida struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"uniqueIndex:idx_post_usuario;not null" json:"post_id"`
	UsuarioID uint      `gorm:"uniqueIndex:idx_post_usuario;not null" json:"usuario_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (PostCurtida) TableName() string { return "post_curtidas" }
