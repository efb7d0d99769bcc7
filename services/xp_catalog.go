package services

import (
	"fmt"
	"math"
	"sort"

	"github.com/DjefferBP/sis-sistema-de-inclusao-social/models"

	"gorm.io/gorm"
)

// XPCatalog guarda as tabelas acoes_xp e niveis_titulos em memória, carregadas
// uma vez no boot e imutáveis depois disso. O catálogo é injetado nos serviços
// em vez de consultado do banco a cada premiação.
type XPCatalog struct {
	acoes       map[string]models.AcaoXP
	niveis      []models.NivelTitulo // ordenado por nivel crescente
	niveisPorID map[uint]models.NivelTitulo
}

// NewXPCatalog valida e indexa as tabelas de referência. Exige ao menos um
// nível, limiares estritamente crescentes e o nível base começando em 0 XP.
func NewXPCatalog(acoes []models.AcaoXP, niveis []models.NivelTitulo) (*XPCatalog, error) {
	if len(niveis) == 0 {
		return nil, fmt.Errorf("tabela de níveis vazia")
	}

	ordenados := make([]models.NivelTitulo, len(niveis))
	copy(ordenados, niveis)
	sort.Slice(ordenados, func(i, j int) bool { return ordenados[i].Nivel < ordenados[j].Nivel })

	if ordenados[0].XPNecessario != 0 {
		return nil, fmt.Errorf("nível base %d deve exigir 0 XP, exige %d",
			ordenados[0].Nivel, ordenados[0].XPNecessario)
	}
	for i := 1; i < len(ordenados); i++ {
		if ordenados[i].Nivel == ordenados[i-1].Nivel {
			return nil, fmt.Errorf("nível %d duplicado", ordenados[i].Nivel)
		}
		if ordenados[i].XPNecessario <= ordenados[i-1].XPNecessario {
			return nil, fmt.Errorf("xp_necessario deve ser estritamente crescente: nível %d exige %d, nível %d exige %d",
				ordenados[i-1].Nivel, ordenados[i-1].XPNecessario,
				ordenados[i].Nivel, ordenados[i].XPNecessario)
		}
	}

	porNome := make(map[string]models.AcaoXP, len(acoes))
	for _, a := range acoes {
		if _, existe := porNome[a.Acao]; existe {
			return nil, fmt.Errorf("ação %q duplicada no catálogo", a.Acao)
		}
		porNome[a.Acao] = a
	}

	porID := make(map[uint]models.NivelTitulo, len(ordenados))
	for _, n := range ordenados {
		porID[n.ID] = n
	}

	return &XPCatalog{acoes: porNome, niveis: ordenados, niveisPorID: porID}, nil
}

// LoadXPCatalog popula as tabelas de referência com o catálogo padrão quando
// estão vazias (primeiro boot) e carrega tudo em memória.
func LoadXPCatalog(db *gorm.DB) (*XPCatalog, error) {
	var totalAcoes int64
	if err := db.Model(&models.AcaoXP{}).Count(&totalAcoes).Error; err != nil {
		return nil, fmt.Errorf("falha ao contar acoes_xp: %w", err)
	}
	if totalAcoes == 0 {
		if err := db.Create(&models.AcoesXPPadrao).Error; err != nil {
			return nil, fmt.Errorf("falha ao popular acoes_xp: %w", err)
		}
	}

	var totalNiveis int64
	if err := db.Model(&models.NivelTitulo{}).Count(&totalNiveis).Error; err != nil {
		return nil, fmt.Errorf("falha ao contar niveis_titulos: %w", err)
	}
	if totalNiveis == 0 {
		if err := db.Create(&models.NiveisTitulosPadrao).Error; err != nil {
			return nil, fmt.Errorf("falha ao popular niveis_titulos: %w", err)
		}
	}

	var acoes []models.AcaoXP
	if err := db.Find(&acoes).Error; err != nil {
		return nil, fmt.Errorf("falha ao carregar acoes_xp: %w", err)
	}
	var niveis []models.NivelTitulo
	if err := db.Order("nivel ASC").Find(&niveis).Error; err != nil {
		return nil, fmt.Errorf("falha ao carregar niveis_titulos: %w", err)
	}

	return NewXPCatalog(acoes, niveis)
}

// Acao retorna a definição da ação pelo nome.
func (c *XPCatalog) Acao(nome string) (models.AcaoXP, bool) {
	a, ok := c.acoes[nome]
	return a, ok
}

// NivelPorXP resolve o maior nível cujo limiar é <= xpTotal. Com o nível base
// em 0 sempre existe um candidato; se xpTotal for negativo cai no nível base.
func (c *XPCatalog) NivelPorXP(xpTotal int) models.NivelTitulo {
	atual := c.niveis[0]
	for _, n := range c.niveis {
		if n.XPNecessario > xpTotal {
			break
		}
		atual = n
	}
	return atual
}

// ProximoNivel retorna o menor nível acima do informado, ou false no topo.
func (c *XPCatalog) ProximoNivel(nivel int) (models.NivelTitulo, bool) {
	for _, n := range c.niveis {
		if n.Nivel > nivel {
			return n, true
		}
	}
	return models.NivelTitulo{}, false
}

// NivelPorNumero busca a linha do nível informado.
func (c *XPCatalog) NivelPorNumero(nivel int) (models.NivelTitulo, bool) {
	for _, n := range c.niveis {
		if n.Nivel == nivel {
			return n, true
		}
	}
	return models.NivelTitulo{}, false
}

// NivelPorID busca um título pelo id da linha (usado para equipar títulos).
func (c *XPCatalog) NivelPorID(id uint) (models.NivelTitulo, bool) {
	n, ok := c.niveisPorID[id]
	return n, ok
}

// TotalAcoes e TotalNiveis existem para o log de boot.
func (c *XPCatalog) TotalAcoes() int  { return len(c.acoes) }
func (c *XPCatalog) TotalNiveis() int { return len(c.niveis) }

// Niveis devolve a tabela completa, ordenada, como cópia.
func (c *XPCatalog) Niveis() []models.NivelTitulo {
	out := make([]models.NivelTitulo, len(c.niveis))
	copy(out, c.niveis)
	return out
}

// calcularProgresso devolve o percentual até o próximo nível, com duas casas
// decimais, limitado a [0,100]. proximo == nil significa nível máximo (100%).
func calcularProgresso(xpAtual int, nivelAtual models.NivelTitulo, proximo *models.NivelTitulo) float64 {
	if proximo == nil {
		return 100
	}
	faixa := proximo.XPNecessario - nivelAtual.XPNecessario
	if faixa <= 0 {
		return 100
	}
	progresso := float64(xpAtual-nivelAtual.XPNecessario) / float64(faixa) * 100
	if progresso < 0 {
		progresso = 0
	}
	if progresso > 100 {
		progresso = 100
	}
	return math.Round(progresso*100) / 100
}
