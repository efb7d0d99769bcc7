package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

var (
	ErrCEPInvalido      = errors.New("CEP inválido. Deve conter 8 dígitos")
	ErrCEPNaoEncontrado = errors.New("CEP não encontrado")
	ErrCEPIndisponivel  = errors.New("serviço de CEP indisponível")
)

// CEPService consulta o ViaCEP para preencher estado/cidade no cadastro.
type CEPService struct {
	BaseURL string
	Client  *http.Client
}

type EnderecoCEP struct {
	CEP        string `json:"cep"`
	Logradouro string `json:"logradouro"`
	Bairro     string `json:"bairro"`
	Cidade     string `json:"cidade"`
	Estado     string `json:"estado"`
}

func NewCEPService() *CEPService {
	return &CEPService{
		BaseURL: "https://viacep.com.br/ws",
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// ConsultarCEP valida e resolve o CEP; o corpo {"erro": true} do ViaCEP vira
// ErrCEPNaoEncontrado.
func (s *CEPService) ConsultarCEP(cep string) (*EnderecoCEP, error) {
	limpo := strings.ReplaceAll(strings.ReplaceAll(cep, "-", ""), " ", "")
	if len(limpo) != 8 || !somenteDigitos(limpo) {
		return nil, ErrCEPInvalido
	}

	url := fmt.Sprintf("%s/%s/json/", s.BaseURL, limpo)
	resp, err := s.Client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCEPIndisponivel, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrCEPIndisponivel, resp.StatusCode)
	}

	var corpo struct {
		CEP        string `json:"cep"`
		Logradouro string `json:"logradouro"`
		Bairro     string `json:"bairro"`
		Localidade string `json:"localidade"`
		UF         string `json:"uf"`
		Erro       bool   `json:"erro"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&corpo); err != nil {
		return nil, fmt.Errorf("%w: resposta inválida: %v", ErrCEPIndisponivel, err)
	}
	if corpo.Erro {
		return nil, ErrCEPNaoEncontrado
	}

	return &EnderecoCEP{
		CEP:        corpo.CEP,
		Logradouro: corpo.Logradouro,
		Bairro:     corpo.Bairro,
		Cidade:     corpo.Localidade,
		Estado:     corpo.UF,
	}, nil
}

func somenteDigitos(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
