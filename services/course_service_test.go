package services

import "testing"

func TestNormalizarBusca(t *testing.T) {
	casos := map[string]string{
		"Programação":          "programacao",
		"  Inclusão Digital  ": "inclusao digital",
		"LÓGICA":               "logica",
		"excel":                "excel",
	}
	for entrada, esperado := range casos {
		if got := normalizarBusca(entrada); got != esperado {
			t.Errorf("normalizarBusca(%q) = %q, esperado %q", entrada, got, esperado)
		}
	}
}
