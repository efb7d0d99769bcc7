package models

type Curso struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Titulo    string `gorm:"not null" json:"titulo"`
	Slug      string `gorm:"uniqueIndex;not null" json:"slug"`
	Descricao string `gorm:"type:text" json:"descricao,omitempty"`
	URLCurso  string `gorm:"uniqueIndex;not null" json:"url_curso"`
	ImagemURL string `json:"imagem_url,omitempty"`

	Modalidade   string `json:"modalidade,omitempty"`
	Area         string `gorm:"index" json:"area,omitempty"`
	Categoria    string `gorm:"index" json:"categoria,omitempty"`
	CargaHoraria int    `json:"carga_horaria,omitempty"`
	Gratuito     string `json:"gratuito,omitempty"`

	// Título sem acentos e minúsculo, preenchido na criação para busca.
	TituloBusca string `gorm:"index" json:"-"`

	Timestamps
}

func (Curso) TableName() string { return "cursos" }
