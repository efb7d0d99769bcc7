package services

import "testing"

func TestTruncar(t *testing.T) {
	if got := truncar("curto", 50); got != "curto" {
		t.Errorf("string menor que o limite não deveria mudar, veio %q", got)
	}
	if got := truncar("abcdef", 3); got != "abc" {
		t.Errorf("truncar(abcdef, 3) = %q, esperado abc", got)
	}
	// Corte em runas: acentos não podem ser partidos no meio.
	if got := truncar("ação social", 4); got != "ação" {
		t.Errorf("truncar(ação social, 4) = %q, esperado ação", got)
	}
}
