package services

import (
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// RankingService mantém um snapshot em memória do top de XP, recalculado em
// background. Leituras nunca tocam o banco.
type RankingService struct {
	DB      *gorm.DB
	Catalog *XPCatalog

	mu           sync.RWMutex
	entradas     []RankingEntrada
	atualizadoEm time.Time
}

type RankingEntrada struct {
	Posicao    int    `json:"posicao"`
	UsuarioID  uint   `json:"usuario_id"`
	Nome       string `json:"nome"`
	XPAtual    int    `json:"xp_atual"`
	NivelAtual int    `json:"nivel_atual"`
	Titulo     string `json:"titulo"`
}

func NewRankingService(db *gorm.DB, catalog *XPCatalog) *RankingService {
	return &RankingService{DB: db, Catalog: catalog}
}

// Atualizar recalcula o snapshot (top 100 por XP).
func (s *RankingService) Atualizar() error {
	var linhas []struct {
		ID         uint
		Nome       string
		XPAtual    int
		NivelAtual int
	}
	err := s.DB.Raw(
		`SELECT id, nome, xp_atual, nivel_atual
		 FROM usuarios
		 WHERE deleted_at IS NULL
		 ORDER BY xp_atual DESC, id ASC
		 LIMIT 100`,
	).Scan(&linhas).Error
	if err != nil {
		return err
	}

	entradas := make([]RankingEntrada, len(linhas))
	for i, l := range linhas {
		titulo := ""
		if n, ok := s.Catalog.NivelPorNumero(l.NivelAtual); ok {
			titulo = n.Titulo
		}
		entradas[i] = RankingEntrada{
			Posicao:    i + 1,
			UsuarioID:  l.ID,
			Nome:       l.Nome,
			XPAtual:    l.XPAtual,
			NivelAtual: l.NivelAtual,
			Titulo:     titulo,
		}
	}

	s.mu.Lock()
	s.entradas = entradas
	s.atualizadoEm = time.Now()
	s.mu.Unlock()
	return nil
}

// Snapshot devolve o ranking cacheado e quando foi calculado.
func (s *RankingService) Snapshot() ([]RankingEntrada, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]RankingEntrada, len(s.entradas))
	copy(out, s.entradas)
	return out, s.atualizadoEm
}

// StartScheduler recalcula o ranking a cada minuto.
func (s *RankingService) StartScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			if err := s.Atualizar(); err != nil {
				log.Printf("[Ranking] falha ao atualizar snapshot: %v", err)
			}
		}),
	)

	// Primeiro cálculo imediato para não servir ranking vazio.
	if err := s.Atualizar(); err != nil {
		log.Printf("[Ranking] falha no cálculo inicial: %v", err)
	}
}
