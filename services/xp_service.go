package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/DjefferBP/sis-sistema-de-inclusao-social/models"

	"gorm.io/gorm"
)

var (
	ErrAcaoDesconhecida     = errors.New("ação não configurada no sistema de XP")
	ErrUsuarioNaoEncontrado = errors.New("usuário não encontrado")
	ErrTituloNaoEncontrado  = errors.New("título não encontrado")
	ErrNivelInsuficiente    = errors.New("nível insuficiente para equipar este título")
)

// XPService concentra toda mutação de XP: premiação, equipar título e as
// leituras de progresso/histórico. O catálogo é imutável e injetado no boot.
type XPService struct {
	DB      *gorm.DB
	Catalog *XPCatalog
}

func NewXPService(db *gorm.DB, catalog *XPCatalog) *XPService {
	return &XPService{DB: db, Catalog: catalog}
}

// XPResultado resume uma premiação para o chamador propagar na resposta dele.
type XPResultado struct {
	XPGanho       int    `json:"xp_ganho"`
	XPTotal       int    `json:"xp_total"`
	NivelAnterior int    `json:"nivel_anterior"`
	NivelAtual    int    `json:"nivel_atual"`
	NivelUp       bool   `json:"nivel_up"`
	Acao          string `json:"acao"`
	Descricao     string `json:"descricao"`
	TituloAtual   string `json:"titulo_atual"`
}

// AdicionarXP premia o usuário pela ação: incrementa xp_atual, recalcula o
// nível pela tabela de limiares e registra uma linha de histórico — tudo em
// uma única transação. descricaoPersonalizada, quando não vazia, substitui a
// descrição do catálogo.
//
// Não há retry interno: repetir uma premiação não-idempotente duplicaria XP.
func (s *XPService) AdicionarXP(usuarioID uint, acao string, descricaoPersonalizada string) (*XPResultado, error) {
	acaoXP, ok := s.Catalog.Acao(acao)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrAcaoDesconhecida, acao)
	}

	descricao := acaoXP.Descricao
	if descricaoPersonalizada != "" {
		descricao = descricaoPersonalizada
	}

	var resultado XPResultado
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		// O UPDATE atômico segura o lock da linha até o commit: duas
		// premiações concorrentes para o mesmo usuário serializam aqui e
		// nenhuma sobrescreve o incremento da outra.
		var linha struct {
			XPAtual    int
			NivelAtual int
		}
		upd := tx.Raw(
			`UPDATE usuarios SET xp_atual = xp_atual + ?, updated_at = CURRENT_TIMESTAMP
			 WHERE id = ? AND deleted_at IS NULL
			 RETURNING xp_atual, nivel_atual`,
			acaoXP.XPGanho, usuarioID,
		).Scan(&linha)
		if upd.Error != nil {
			return upd.Error
		}
		if upd.RowsAffected == 0 {
			return ErrUsuarioNaoEncontrado
		}

		nivelAnterior := linha.NivelAtual
		novoNivel := s.Catalog.NivelPorXP(linha.XPAtual)
		nivelUp := novoNivel.Nivel != nivelAnterior
		if nivelUp {
			if err := tx.Model(&models.Usuario{}).Where("id = ?", usuarioID).
				Update("nivel_atual", novoNivel.Nivel).Error; err != nil {
				return err
			}
		}

		historico := models.XPHistorico{
			UsuarioID: usuarioID,
			Acao:      acao,
			XPGanho:   acaoXP.XPGanho,
			Descricao: descricao,
		}
		if err := tx.Create(&historico).Error; err != nil {
			return err
		}

		resultado = XPResultado{
			XPGanho:       acaoXP.XPGanho,
			XPTotal:       linha.XPAtual,
			NivelAnterior: nivelAnterior,
			NivelAtual:    novoNivel.Nivel,
			NivelUp:       nivelUp,
			Acao:          acao,
			Descricao:     descricao,
			TituloAtual:   novoNivel.Titulo,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if resultado.NivelUp {
		log.Printf("🎉 Level up: usuário %d alcançou o nível %d (%s)",
			usuarioID, resultado.NivelAtual, resultado.TituloAtual)
	}
	return &resultado, nil
}

type ProximoNivelInfo struct {
	Nivel        int    `json:"nivel"`
	Titulo       string `json:"titulo"`
	XPNecessario int    `json:"xp_necessario"`
	XPRestante   int    `json:"xp_restante"`
}

type ProgressoUsuario struct {
	UsuarioID             uint              `json:"usuario_id"`
	XPAtual               int               `json:"xp_atual"`
	NivelAtual            int               `json:"nivel_atual"`
	TituloAtual           string            `json:"titulo_atual"`
	ProgressoProximoNivel float64           `json:"progresso_proximo_nivel"`
	ProximoNivel          *ProximoNivelInfo `json:"proximo_nivel"`
}

// GetProgresso é leitura pura: um único SELECT na linha do usuário garante que
// xp_atual e nivel_atual vêm do mesmo snapshot.
func (s *XPService) GetProgresso(usuarioID uint) (*ProgressoUsuario, error) {
	var usuario models.Usuario
	if err := s.DB.First(&usuario, usuarioID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUsuarioNaoEncontrado
		}
		return nil, err
	}

	nivelAtual := s.Catalog.NivelPorXP(usuario.XPAtual)

	progresso := &ProgressoUsuario{
		UsuarioID:   usuario.ID,
		XPAtual:     usuario.XPAtual,
		NivelAtual:  usuario.NivelAtual,
		TituloAtual: nivelAtual.Titulo,
	}

	if proximo, ok := s.Catalog.ProximoNivel(usuario.NivelAtual); ok {
		restante := proximo.XPNecessario - usuario.XPAtual
		if restante < 0 {
			restante = 0
		}
		progresso.ProgressoProximoNivel = calcularProgresso(usuario.XPAtual, nivelAtual, &proximo)
		progresso.ProximoNivel = &ProximoNivelInfo{
			Nivel:        proximo.Nivel,
			Titulo:       proximo.Titulo,
			XPNecessario: proximo.XPNecessario,
			XPRestante:   restante,
		}
	} else {
		progresso.ProgressoProximoNivel = 100
	}
	return progresso, nil
}

// GetHistorico lista o razão de XP do usuário, mais recente primeiro.
func (s *XPService) GetHistorico(usuarioID uint, limit int) ([]models.XPHistorico, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	historico := make([]models.XPHistorico, 0, limit)
	err := s.DB.Where("usuario_id = ?", usuarioID).
		Order("data_acao DESC").
		Limit(limit).
		Find(&historico).Error
	return historico, err
}

// ListarNiveis devolve a tabela completa de níveis e títulos.
func (s *XPService) ListarNiveis() []models.NivelTitulo {
	return s.Catalog.Niveis()
}

type TituloEquipado struct {
	Mensagem       string `json:"mensagem"`
	TituloEquipado string `json:"titulo_equipado"`
	NivelRequerido int    `json:"nivel_requerido"`
	NivelUsuario   int    `json:"nivel_usuario"`
}

// EquiparTitulo aplica a regra de gate: só equipa títulos de nível já
// alcançado. Reequipar o mesmo título é permitido.
func (s *XPService) EquiparTitulo(usuarioID uint, tituloID uint) (*TituloEquipado, error) {
	titulo, ok := s.Catalog.NivelPorID(tituloID)
	if !ok {
		return nil, ErrTituloNaoEncontrado
	}

	var usuario models.Usuario
	if err := s.DB.First(&usuario, usuarioID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUsuarioNaoEncontrado
		}
		return nil, err
	}

	if usuario.NivelAtual < titulo.Nivel {
		return nil, fmt.Errorf("%w: você precisa alcançar o nível %d", ErrNivelInsuficiente, titulo.Nivel)
	}

	if err := s.DB.Model(&models.Usuario{}).Where("id = ?", usuarioID).
		Update("titulo_equipado_id", tituloID).Error; err != nil {
		return nil, err
	}

	return &TituloEquipado{
		Mensagem:       fmt.Sprintf("Título '%s' equipado com sucesso!", titulo.Titulo),
		TituloEquipado: titulo.Titulo,
		NivelRequerido: titulo.Nivel,
		NivelUsuario:   usuario.NivelAtual,
	}, nil
}

// RemoverTitulo limpa o título equipado; sempre sucede para usuário existente.
func (s *XPService) RemoverTitulo(usuarioID uint) error {
	res := s.DB.Model(&models.Usuario{}).Where("id = ?", usuarioID).
		Update("titulo_equipado_id", nil)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUsuarioNaoEncontrado
	}
	return nil
}

type ProximoNivelResumo struct {
	XPAtual                  int     `json:"xp_atual"`
	NivelAtual               int     `json:"nivel_atual"`
	XPNecessarioProximoNivel *int    `json:"xp_necessario_proximo_nivel"`
	XPRestante               int     `json:"xp_restante"`
	ProgressoPercentual      float64 `json:"progresso_percentual"`
}

// CalcularProximoNivel é uma visão compacta do progresso, derivada de GetProgresso.
func (s *XPService) CalcularProximoNivel(usuarioID uint) (*ProximoNivelResumo, error) {
	progresso, err := s.GetProgresso(usuarioID)
	if err != nil {
		return nil, err
	}

	resumo := &ProximoNivelResumo{
		XPAtual:             progresso.XPAtual,
		NivelAtual:          progresso.NivelAtual,
		ProgressoPercentual: progresso.ProgressoProximoNivel,
	}
	if progresso.ProximoNivel != nil {
		resumo.XPNecessarioProximoNivel = &progresso.ProximoNivel.XPNecessario
		resumo.XPRestante = progresso.ProximoNivel.XPRestante
	}
	return resumo, nil
}
