package models

import (
	"time"

	"gorm.io/gorm"
)

// Usuario é a cópia autoritativa do estado de progressão de cada usuário.
// xp_atual e nivel_atual só mudam através do XPService; titulo_equipado_id
// só muda através da política de equipar título.
type Usuario struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Nome      string `gorm:"not null" json:"nome"`
	Email     string `gorm:"uniqueIndex;not null" json:"email"`
	SenhaHash string `gorm:"not null" json:"-"`

	CEP        *string `json:"cep,omitempty"`
	Estado     *string `json:"estado,omitempty"`
	Cidade     *string `json:"cidade,omitempty"`
	Bio        *string `json:"bio,omitempty"`
	FotoPerfil *string `json:"foto_perfil,omitempty"`

	// Invariante: nivel_atual é sempre o maior nível cujo xp_necessario <= xp_atual.
	XPAtual          int   `gorm:"not null;default:0" json:"xp_atual"`
	NivelAtual       int   `gorm:"not null;default:1" json:"nivel_atual"`
	TituloEquipadoID *uint `json:"titulo_equipado_id,omitempty"`

	Timestamps
}

func (Usuario) TableName() string { return "usuarios" }

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
