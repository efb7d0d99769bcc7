package models

import "time"

// GrupoVulnerabilidade é o catálogo de grupos de vulnerabilidade que um
// usuário pode declarar no perfil. Provisionado administrativamente.
type GrupoVulnerabilidade struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Categoria string    `gorm:"not null;index" json:"categoria"`
	Tipo      string    `gorm:"not null" json:"tipo"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at,omitempty"`
}

func (GrupoVulnerabilidade) TableName() string { return "grupos_vulnerabilidade" }

// UsuarioGrupoVulnerabilidade liga usuários aos grupos declarados.
type UsuarioGrupoVulnerabilidade struct {
	UsuarioID uint `gorm:"primaryKey" json:"usuario_id"`
	GrupoID   uint `gorm:"primaryKey" json:"grupo_id"`
}

func (UsuarioGrupoVulnerabilidade) TableName() string { return "usuario_grupos_vulnerabilidade" }

// Catálogo padrão, inserido no primeiro boot quando a tabela está vazia.
var GruposVulnerabilidadePadrao = []GrupoVulnerabilidade{
	{Categoria: "Pessoa com Deficiência", Tipo: "Deficiência física"},
	{Categoria: "Pessoa com Deficiência", Tipo: "Deficiência visual"},
	{Categoria: "Pessoa com Deficiência", Tipo: "Deficiência auditiva"},
	{Categoria: "Pessoa com Deficiência", Tipo: "Deficiência intelectual"},
	{Categoria: "Raça e Etnia", Tipo: "Pessoa negra"},
	{Categoria: "Raça e Etnia", Tipo: "Pessoa indígena"},
	{Categoria: "Gênero e Sexualidade", Tipo: "Mulher"},
	{Categoria: "Gênero e Sexualidade", Tipo: "Pessoa LGBTQIA+"},
	{Categoria: "Situação Social", Tipo: "Baixa renda"},
	{Categoria: "Situação Social", Tipo: "Pessoa em situação de refúgio"},
	{Categoria: "Situação Social", Tipo: "Pessoa 60+"},
}
