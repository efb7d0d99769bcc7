package services

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func servidorCEP(t *testing.T, handler http.HandlerFunc) *CEPService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	svc := NewCEPService()
	svc.BaseURL = srv.URL
	return svc
}

func TestConsultarCEPValido(t *testing.T) {
	svc := servidorCEP(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/01310100/json/" {
			t.Errorf("path inesperado: %s", r.URL.Path)
		}
		w.Write([]byte(`{"cep":"01310-100","logradouro":"Avenida Paulista","bairro":"Bela Vista","localidade":"São Paulo","uf":"SP"}`))
	})

	endereco, err := svc.ConsultarCEP("01310-100")
	if err != nil {
		t.Fatalf("CEP válido não deveria falhar: %v", err)
	}
	if endereco.Cidade != "São Paulo" || endereco.Estado != "SP" {
		t.Fatalf("endereço inesperado: %+v", endereco)
	}
}

func TestConsultarCEPInvalido(t *testing.T) {
	svc := NewCEPService()

	casos := []string{"", "123", "123456789", "abcdefgh", "1234-567"}
	for _, cep := range casos {
		if _, err := svc.ConsultarCEP(cep); !errors.Is(err, ErrCEPInvalido) {
			t.Errorf("ConsultarCEP(%q) deveria retornar ErrCEPInvalido, veio %v", cep, err)
		}
	}
}

func TestConsultarCEPNaoEncontrado(t *testing.T) {
	svc := servidorCEP(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"erro": true}`))
	})

	if _, err := svc.ConsultarCEP("99999999"); !errors.Is(err, ErrCEPNaoEncontrado) {
		t.Fatalf("esperado ErrCEPNaoEncontrado, veio %v", err)
	}
}

func TestConsultarCEPIndisponivel(t *testing.T) {
	svc := servidorCEP(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	if _, err := svc.ConsultarCEP("01310100"); !errors.Is(err, ErrCEPIndisponivel) {
		t.Fatalf("esperado ErrCEPIndisponivel, veio %v", err)
	}
}
