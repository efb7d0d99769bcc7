// services/trabalhos_service.go
package services

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/DjefferBP/sis-sistema-de-inclusao-social/utils"

	"github.com/gofiber/fiber/v2"
)

// TrabalhosService faz proxy da busca de vagas do LinkedIn via scrapingdog,
// traduzindo os filtros em português para os parâmetros da API.
type TrabalhosService struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
}

func NewTrabalhosService(apiKey string) *TrabalhosService {
	return &TrabalhosService{
		APIKey:  apiKey,
		BaseURL: "https://api.scrapingdog.com/linkedinjobs",
		Client:  utils.HTTPClient,
	}
}

type BuscaVagas struct {
	Field           string `json:"field"`
	Location        string `json:"location"`
	Page            int    `json:"page"`
	SortBy          string `json:"sort_by"`
	ExperienceLevel string `json:"experience_level"`
	WorkType        string `json:"work_type"`
	JobType         string `json:"job_type"`
}

// ConsultarVagas é o handler de POST /trabalhos/vagas.
func (s *TrabalhosService) ConsultarVagas(c *fiber.Ctx) error {
	var req BuscaVagas
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Corpo da requisição inválido"})
	}

	if req.Page < 1 {
		req.Page = 1
	}

	params := url.Values{}
	params.Set("api_key", s.APIKey)
	params.Set("page", strconv.Itoa(req.Page))
	params.Set("field", req.Field)
	params.Set("location", req.Location)
	params.Set("sort_by", mapearPeriodo(req.SortBy))
	params.Set("exp_level", mapearExperiencia(req.ExperienceLevel))
	params.Set("job_type", mapearTipoServico(req.JobType))
	params.Set("work_type", mapearTipoTrabalho(req.WorkType))

	resp, err := s.Client.Get(s.BaseURL + "?" + params.Encode())
	if err != nil {
		log.Printf("❌ [Trabalhos] falha ao consultar vagas: %v", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Serviço de vagas indisponível"})
	}
	defer resp.Body.Close()

	corpo, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Resposta inválida do serviço de vagas"})
	}
	if resp.StatusCode != http.StatusOK {
		log.Printf("❌ [Trabalhos] serviço retornou status %d", resp.StatusCode)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Erro ao consultar o serviço de vagas"})
	}

	var vagas []map[string]interface{}
	if err := json.Unmarshal(corpo, &vagas); err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Resposta inválida do serviço de vagas"})
	}

	return c.JSON(fiber.Map{
		"vagas":  vagas,
		"total":  len(vagas),
		"pagina": req.Page,
		"filtros": fiber.Map{
			"field":    req.Field,
			"location": req.Location,
		},
	})
}

// Mapeamentos pt-BR → parâmetros da API. Valores não reconhecidos viram vazio
// (sem filtro), igual ao comportamento de referência.

func mapearPeriodo(periodo string) string {
	switch normalizarFiltro(periodo) {
	case "dia", "day":
		return "day"
	case "semana", "week":
		return "week"
	case "mês", "mes", "month":
		return "month"
	}
	return ""
}

func mapearExperiencia(nivel string) string {
	switch normalizarFiltro(nivel) {
	case "estágio", "estagio", "internship":
		return "internship"
	case "iniciante", "júnior", "junior", "entry":
		return "entry"
	case "pleno", "associado", "associate", "mid":
		return "mid"
	case "sênior", "senior", "experiente":
		return "senior"
	case "diretor", "director", "liderança", "lideranca":
		return "director"
	}
	return ""
}

func mapearTipoServico(tipo string) string {
	switch normalizarFiltro(tipo) {
	case "tempo integral", "integral", "full_time":
		return "full_time"
	case "meio período", "meio periodo", "meio-período", "part_time":
		return "part_time"
	case "contrato", "contract":
		return "contract"
	case "temporário", "temporario", "temporary":
		return "temporary"
	case "voluntário", "voluntario", "volunteer":
		return "volunteer"
	case "estágio", "estagio", "internship":
		return "internship"
	}
	return ""
}

func mapearTipoTrabalho(tipo string) string {
	switch normalizarFiltro(tipo) {
	case "presencial", "atwork":
		return "atwork"
	case "remoto", "remote":
		return "remote"
	case "híbrido", "hibrido", "hybrid":
		return "hybrid"
	}
	return ""
}

func normalizarFiltro(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}
