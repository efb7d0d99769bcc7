// services/course_service.go
package services

import (
	"errors"
	"log"
	"strings"

	"github.com/DjefferBP/sis-sistema-de-inclusao-social/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/slug"
	"github.com/gosimple/unidecode"
	"gorm.io/gorm"
)

// CourseService expõe o catálogo de cursos gratuitos. Os handlers recebem o
// *fiber.Ctx direto porque o serviço é todo de leitura/escrita simples, sem
// regra de negócio compartilhada com outros serviços.
type CourseService struct {
	DB *gorm.DB
}

func NewCourseService(db *gorm.DB) *CourseService {
	return &CourseService{DB: db}
}

// normalizarBusca remove acentos e baixa a caixa, para a coluna titulo_busca.
func normalizarBusca(s string) string {
	return strings.ToLower(strings.TrimSpace(unidecode.Unidecode(s)))
}

type novoCurso struct {
	Titulo       string `json:"titulo"`
	Descricao    string `json:"descricao"`
	URLCurso     string `json:"url_curso"`
	ImagemURL    string `json:"imagem_url"`
	Modalidade   string `json:"modalidade"`
	Area         string `json:"area"`
	Categoria    string `json:"categoria"`
	CargaHoraria int    `json:"carga_horaria"`
	Gratuito     string `json:"gratuito"`
}

// CriarCurso é o handler de POST /cursos.
func (s *CourseService) CriarCurso(c *fiber.Ctx) error {
	var req novoCurso
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Corpo da requisição inválido"})
	}
	if req.Titulo == "" || req.URLCurso == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Título e URL são obrigatórios"})
	}

	curso := models.Curso{
		Titulo:       req.Titulo,
		Slug:         slug.Make(req.Titulo),
		Descricao:    req.Descricao,
		URLCurso:     req.URLCurso,
		ImagemURL:    req.ImagemURL,
		Modalidade:   req.Modalidade,
		Area:         req.Area,
		Categoria:    req.Categoria,
		CargaHoraria: req.CargaHoraria,
		Gratuito:     req.Gratuito,
		TituloBusca:  normalizarBusca(req.Titulo),
	}
	if err := s.DB.Create(&curso).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "unique") {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Curso já cadastrado"})
		}
		log.Printf("❌ [Cursos] falha ao criar curso: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao criar curso"})
	}

	return c.Status(fiber.StatusCreated).JSON(curso)
}

// ListarCursos é o handler de GET /cursos.
func (s *CourseService) ListarCursos(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	consulta := s.DB.Model(&models.Curso{})
	if area := c.Query("area"); area != "" {
		consulta = consulta.Where("area = ?", area)
	}
	if modalidade := c.Query("modalidade"); modalidade != "" {
		consulta = consulta.Where("modalidade = ?", modalidade)
	}

	var total int64
	if err := consulta.Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao listar cursos"})
	}

	var cursos []models.Curso
	if err := consulta.Order("titulo ASC").Limit(limit).Offset(offset).Find(&cursos).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao listar cursos"})
	}

	return c.JSON(fiber.Map{
		"cursos": cursos,
		"total":  total,
	})
}

// ObterCurso é o handler de GET /cursos/:slug.
func (s *CourseService) ObterCurso(c *fiber.Ctx) error {
	var curso models.Curso
	err := s.DB.Where("slug = ?", c.Params("slug")).First(&curso).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Curso não encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao buscar curso"})
	}
	return c.JSON(curso)
}

// BuscarCursos é o handler de GET /cursos/buscar?q=. A busca ignora acentos
// dos dois lados usando a coluna titulo_busca.
func (s *CourseService) BuscarCursos(c *fiber.Ctx) error {
	termo := normalizarBusca(c.Query("q"))
	if termo == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Informe o termo de busca em 'q'"})
	}

	limit := c.QueryInt("limit", 20)
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var cursos []models.Curso
	err := s.DB.Where("titulo_busca LIKE ?", "%"+termo+"%").
		Order("titulo ASC").
		Limit(limit).
		Find(&cursos).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro na busca de cursos"})
	}

	return c.JSON(fiber.Map{
		"cursos": cursos,
		"total":  len(cursos),
		"termo":  c.Query("q"),
	})
}

// AreasDisponiveis é o handler de GET /cursos/areas.
func (s *CourseService) AreasDisponiveis(c *fiber.Ctx) error {
	var areas []string
	err := s.DB.Model(&models.Curso{}).
		Distinct("area").
		Where("area <> ''").
		Order("area ASC").
		Pluck("area", &areas).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao listar áreas"})
	}
	return c.JSON(fiber.Map{"areas": areas, "total": len(areas)})
}

// EstatisticasCursos é o handler de GET /cursos/estatisticas.
func (s *CourseService) EstatisticasCursos(c *fiber.Ctx) error {
	var total int64
	if err := s.DB.Model(&models.Curso{}).Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao calcular estatísticas"})
	}

	type contagem struct {
		Area  string `json:"area"`
		Total int64  `json:"total"`
	}
	var porArea []contagem
	err := s.DB.Model(&models.Curso{}).
		Select("area, COUNT(*) AS total").
		Where("area <> ''").
		Group("area").
		Order("total DESC").
		Scan(&porArea).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao calcular estatísticas"})
	}

	return c.JSON(fiber.Map{
		"total_cursos": total,
		"por_area":     porArea,
	})
}

// DeletarCurso é o handler de DELETE /cursos/:id.
func (s *CourseService) DeletarCurso(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID inválido"})
	}

	res := s.DB.Delete(&models.Curso{}, id)
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao remover curso"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Curso não encontrado"})
	}
	return c.JSON(fiber.Map{"mensagem": "Curso removido com sucesso"})
}
