package services

import "testing"

func TestMapearPeriodo(t *testing.T) {
	casos := map[string]string{
		"dia":     "day",
		"Semana":  "week",
		"mês":     "month",
		"mes":     "month",
		"":        "",
		"sempre":  "",
	}
	for entrada, esperado := range casos {
		if got := mapearPeriodo(entrada); got != esperado {
			t.Errorf("mapearPeriodo(%q) = %q, esperado %q", entrada, got, esperado)
		}
	}
}

func TestMapearExperiencia(t *testing.T) {
	casos := map[string]string{
		"estágio":   "internship",
		"Estagio":   "internship",
		"júnior":    "entry",
		"pleno":     "mid",
		"sênior":    "senior",
		"diretor":   "director",
		"qualquer":  "",
	}
	for entrada, esperado := range casos {
		if got := mapearExperiencia(entrada); got != esperado {
			t.Errorf("mapearExperiencia(%q) = %q, esperado %q", entrada, got, esperado)
		}
	}
}

func TestMapearTipoServico(t *testing.T) {
	casos := map[string]string{
		"tempo integral": "full_time",
		"Meio Período":   "part_time",
		"contrato":       "contract",
		"temporário":     "temporary",
		"voluntário":     "volunteer",
		"outro":          "",
	}
	for entrada, esperado := range casos {
		if got := mapearTipoServico(entrada); got != esperado {
			t.Errorf("mapearTipoServico(%q) = %q, esperado %q", entrada, got, esperado)
		}
	}
}

func TestMapearTipoTrabalho(t *testing.T) {
	casos := map[string]string{
		"presencial": "atwork",
		"Remoto":     "remote",
		"híbrido":    "hybrid",
		"hibrido":    "hybrid",
		"indefinido": "",
	}
	for entrada, esperado := range casos {
		if got := mapearTipoTrabalho(entrada); got != esperado {
			t.Errorf("mapearTipoTrabalho(%q) = %q, esperado %q", entrada, got, esperado)
		}
	}
}
