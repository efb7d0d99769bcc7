package services

import (
	"testing"

	"github.com/DjefferBP/sis-sistema-de-inclusao-social/models"
)

func catalogoPadrao(t *testing.T) *XPCatalog {
	t.Helper()
	catalog, err := NewXPCatalog(models.AcoesXPPadrao, models.NiveisTitulosPadrao)
	if err != nil {
		t.Fatalf("catálogo padrão deveria ser válido: %v", err)
	}
	return catalog
}

func TestNewXPCatalogValidacao(t *testing.T) {
	acoes := models.AcoesXPPadrao

	if _, err := NewXPCatalog(acoes, nil); err == nil {
		t.Fatal("tabela de níveis vazia deveria falhar")
	}

	if _, err := NewXPCatalog(acoes, []models.NivelTitulo{
		{Nivel: 1, XPNecessario: 50, Titulo: "Iniciante"},
	}); err == nil {
		t.Fatal("nível base com limiar != 0 deveria falhar")
	}

	if _, err := NewXPCatalog(acoes, []models.NivelTitulo{
		{Nivel: 1, XPNecessario: 0, Titulo: "Iniciante"},
		{Nivel: 2, XPNecessario: 100, Titulo: "Novato"},
		{Nivel: 3, XPNecessario: 100, Titulo: "Aprendiz"},
	}); err == nil {
		t.Fatal("limiares não estritamente crescentes deveriam falhar")
	}

	if _, err := NewXPCatalog(acoes, []models.NivelTitulo{
		{Nivel: 1, XPNecessario: 0, Titulo: "Iniciante"},
		{Nivel: 1, XPNecessario: 100, Titulo: "Duplicado"},
	}); err == nil {
		t.Fatal("nível duplicado deveria falhar")
	}

	duplicadas := append([]models.AcaoXP{}, acoes...)
	duplicadas = append(duplicadas, models.AcaoXP{Acao: "cadastro", XPGanho: 1})
	if _, err := NewXPCatalog(duplicadas, models.NiveisTitulosPadrao); err == nil {
		t.Fatal("ação duplicada deveria falhar")
	}
}

func TestNivelPorXP(t *testing.T) {
	catalog := catalogoPadrao(t)

	casos := []struct {
		xp    int
		nivel int
	}{
		{0, 1},
		{99, 1},
		{100, 2},   // limiar é inclusivo
		{299, 2},
		{300, 3},
		{9999, 9},
		{10000, 10},
		{50000, 10},
		{-10, 1}, // XP negativo cai no nível base
	}
	for _, c := range casos {
		if got := catalog.NivelPorXP(c.xp).Nivel; got != c.nivel {
			t.Errorf("NivelPorXP(%d) = %d, esperado %d", c.xp, got, c.nivel)
		}
	}
}

func TestProximoNivel(t *testing.T) {
	catalog := catalogoPadrao(t)

	proximo, ok := catalog.ProximoNivel(1)
	if !ok || proximo.Nivel != 2 || proximo.XPNecessario != 100 {
		t.Fatalf("próximo do nível 1 deveria ser 2/100, veio %+v (ok=%v)", proximo, ok)
	}

	if _, ok := catalog.ProximoNivel(10); ok {
		t.Fatal("nível máximo não deveria ter próximo")
	}
}

func TestCalcularProgresso(t *testing.T) {
	nivel2 := models.NivelTitulo{Nivel: 2, XPNecessario: 100}
	nivel3 := models.NivelTitulo{Nivel: 3, XPNecessario: 300}

	// 180 XP entre 100 e 300: 40% do caminho, faltando 120.
	if got := calcularProgresso(180, nivel2, &nivel3); got != 40.00 {
		t.Errorf("progresso(180) = %v, esperado 40.00", got)
	}

	if got := calcularProgresso(100, nivel2, &nivel3); got != 0 {
		t.Errorf("progresso no limiar = %v, esperado 0", got)
	}

	// Abaixo do limiar do nível corrente não vira negativo.
	if got := calcularProgresso(50, nivel2, &nivel3); got != 0 {
		t.Errorf("progresso abaixo do limiar = %v, esperado 0", got)
	}

	// Acima do limiar do próximo não passa de 100.
	if got := calcularProgresso(500, nivel2, &nivel3); got != 100 {
		t.Errorf("progresso acima do próximo = %v, esperado 100", got)
	}

	// Nível máximo.
	if got := calcularProgresso(99999, nivel3, nil); got != 100 {
		t.Errorf("progresso no nível máximo = %v, esperado 100", got)
	}

	// Arredondamento em duas casas: 1 de 3 = 33.33.
	nivelA := models.NivelTitulo{Nivel: 1, XPNecessario: 0}
	nivelB := models.NivelTitulo{Nivel: 2, XPNecessario: 3}
	if got := calcularProgresso(1, nivelA, &nivelB); got != 33.33 {
		t.Errorf("progresso(1/3) = %v, esperado 33.33", got)
	}
}

func TestNivelPorID(t *testing.T) {
	catalog, err := NewXPCatalog(models.AcoesXPPadrao, []models.NivelTitulo{
		{ID: 7, Nivel: 1, XPNecessario: 0, Titulo: "Iniciante"},
		{ID: 9, Nivel: 2, XPNecessario: 100, Titulo: "Novato"},
	})
	if err != nil {
		t.Fatalf("catálogo válido: %v", err)
	}

	if n, ok := catalog.NivelPorID(9); !ok || n.Titulo != "Novato" {
		t.Fatalf("NivelPorID(9) = %+v (ok=%v), esperado Novato", n, ok)
	}
	if _, ok := catalog.NivelPorID(42); ok {
		t.Fatal("id inexistente não deveria resolver")
	}
}

func TestAcao(t *testing.T) {
	catalog := catalogoPadrao(t)

	acao, ok := catalog.Acao("cadastro")
	if !ok || acao.XPGanho != 25 {
		t.Fatalf("cadastro deveria valer 25 XP, veio %+v (ok=%v)", acao, ok)
	}
	if _, ok := catalog.Acao("acao_inexistente"); ok {
		t.Fatal("ação desconhecida não deveria resolver")
	}
}
