package services

import (
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/DjefferBP/sis-sistema-de-inclusao-social/models"
	"github.com/DjefferBP/sis-sistema-de-inclusao-social/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

var (
	ErrEmailJaCadastrado    = errors.New("email já cadastrado")
	ErrCredenciaisInvalidas = errors.New("email ou senha incorretos")
)

// UserService cuida de cadastro, login e perfil. O cadastro é um colaborador
// do motor de XP: depois que o usuário existe, premia a ação "cadastro" — e
// tolera falha da premiação (o cadastro em si prevalece).
type UserService struct {
	DB  *gorm.DB
	XP  *XPService
	CEP *CEPService
}

func NewUserService(db *gorm.DB, xp *XPService, cep *CEPService) *UserService {
	return &UserService{DB: db, XP: xp, CEP: cep}
}

type RegistroUsuario struct {
	Nome                  string  `json:"nome"`
	Email                 string  `json:"email"`
	Senha                 string  `json:"senha"`
	CEP                   *string `json:"cep"`
	Estado                *string `json:"estado"`
	Cidade                *string `json:"cidade"`
	Bio                   *string `json:"bio"`
	GruposVulnerabilidade []uint  `json:"grupos_vulnerabilidade"`
}

var tituloPtBR = cases.Title(language.BrazilianPortuguese)

func validarNome(nome string) error {
	tamanho := len([]rune(strings.TrimSpace(nome)))
	if tamanho < 2 {
		return fmt.Errorf("o nome deve ter pelo menos 2 caracteres")
	}
	if tamanho > 150 {
		return fmt.Errorf("o nome deve ter no máximo 150 caracteres")
	}
	return nil
}

func validarSenha(senha string) error {
	tamanho := len([]rune(senha))
	if tamanho < 6 {
		return fmt.Errorf("a senha deve ter pelo menos 6 caracteres")
	}
	if tamanho > 100 {
		return fmt.Errorf("a senha deve ter no máximo 100 caracteres")
	}
	return nil
}

// RegistrarUsuario cria a conta com xp_atual=0/nivel_atual=1 e premia "cadastro".
func (s *UserService) RegistrarUsuario(req RegistroUsuario) (*models.Usuario, *XPResultado, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, nil, fmt.Errorf("nome, email e senha são obrigatórios")
	}
	if err := validarNome(req.Nome); err != nil {
		return nil, nil, err
	}
	if err := validarSenha(req.Senha); err != nil {
		return nil, nil, err
	}

	var existente models.Usuario
	err := s.DB.Where("email = ?", email).First(&existente).Error
	if err == nil {
		return nil, nil, ErrEmailJaCadastrado
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}

	estado := req.Estado
	cidade := req.Cidade
	if req.CEP != nil && *req.CEP != "" {
		endereco, cepErr := s.CEP.ConsultarCEP(*req.CEP)
		switch {
		case cepErr == nil:
			estado = &endereco.Estado
			cidade = &endereco.Cidade
			log.Printf("📍 CEP %s resolvido: %s/%s", *req.CEP, endereco.Cidade, endereco.Estado)
		case errors.Is(cepErr, ErrCEPInvalido), errors.Is(cepErr, ErrCEPNaoEncontrado):
			return nil, nil, cepErr
		default:
			// ViaCEP fora do ar não bloqueia o cadastro.
			log.Printf("⚠️  CEP %s não consultado: %v", *req.CEP, cepErr)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Senha), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("falha ao gerar hash da senha: %w", err)
	}

	usuario := models.Usuario{
		Nome:       tituloPtBR.String(strings.ToLower(strings.TrimSpace(req.Nome))),
		Email:      email,
		SenhaHash:  string(hash),
		CEP:        req.CEP,
		Estado:     estado,
		Cidade:     cidade,
		Bio:        req.Bio,
		XPAtual:    0,
		NivelAtual: 1,
	}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&usuario).Error; err != nil {
			return err
		}
		if len(req.GruposVulnerabilidade) == 0 {
			return nil
		}
		return inserirGrupos(tx, usuario.ID, req.GruposVulnerabilidade)
	})
	if err != nil {
		return nil, nil, err
	}

	xpResultado, err := s.XP.AdicionarXP(usuario.ID, "cadastro", "")
	if err != nil {
		// Premiação é efeito secundário: loga e segue.
		log.Printf("⚠️  XP de cadastro não aplicado para usuário %d: %v", usuario.ID, err)
		xpResultado = nil
	}

	return &usuario, xpResultado, nil
}

// AutenticarUsuario valida credenciais e retorna o usuário.
func (s *UserService) AutenticarUsuario(email, senha string) (*models.Usuario, error) {
	var usuario models.Usuario
	err := s.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&usuario).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCredenciaisInvalidas
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(usuario.SenhaHash), []byte(senha)) != nil {
		return nil, ErrCredenciaisInvalidas
	}
	return &usuario, nil
}

// PerfilUsuario é a visão completa do perfil: título equipado resolvido e os
// grupos de vulnerabilidade declarados.
type PerfilUsuario struct {
	Usuario               models.Usuario                `json:"usuario"`
	TituloEquipado        string                        `json:"titulo_equipado"`
	GruposVulnerabilidade []models.GrupoVulnerabilidade `json:"grupos_vulnerabilidade"`
}

// ObterPerfil retorna o usuário com o título equipado e os grupos declarados.
func (s *UserService) ObterPerfil(usuarioID uint) (*PerfilUsuario, error) {
	var usuario models.Usuario
	if err := s.DB.First(&usuario, usuarioID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUsuarioNaoEncontrado
		}
		return nil, err
	}

	tituloEquipado := ""
	if usuario.TituloEquipadoID != nil {
		if titulo, ok := s.XP.Catalog.NivelPorID(*usuario.TituloEquipadoID); ok {
			tituloEquipado = titulo.Titulo
		}
	}

	grupos, err := s.gruposDoUsuario(usuarioID)
	if err != nil {
		return nil, err
	}

	return &PerfilUsuario{
		Usuario:               usuario,
		TituloEquipado:        tituloEquipado,
		GruposVulnerabilidade: grupos,
	}, nil
}

type AtualizacaoUsuario struct {
	Nome                  *string `json:"nome"`
	Bio                   *string `json:"bio"`
	CEP                   *string `json:"cep"`
	Estado                *string `json:"estado"`
	Cidade                *string `json:"cidade"`
	GruposVulnerabilidade *[]uint `json:"grupos_vulnerabilidade"`
}

// AtualizarPerfil aplica só os campos enviados.
func (s *UserService) AtualizarPerfil(usuarioID uint, req AtualizacaoUsuario) (*models.Usuario, error) {
	var usuario models.Usuario
	if err := s.DB.First(&usuario, usuarioID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUsuarioNaoEncontrado
		}
		return nil, err
	}

	if req.Nome != nil {
		if err := validarNome(*req.Nome); err != nil {
			return nil, err
		}
		usuario.Nome = tituloPtBR.String(strings.ToLower(strings.TrimSpace(*req.Nome)))
	}
	if req.Bio != nil {
		usuario.Bio = req.Bio
	}
	if req.CEP != nil && *req.CEP != "" {
		endereco, err := s.CEP.ConsultarCEP(*req.CEP)
		if err != nil {
			if errors.Is(err, ErrCEPInvalido) || errors.Is(err, ErrCEPNaoEncontrado) {
				return nil, err
			}
			log.Printf("⚠️  CEP %s não consultado: %v", *req.CEP, err)
		} else {
			usuario.CEP = req.CEP
			usuario.Estado = &endereco.Estado
			usuario.Cidade = &endereco.Cidade
		}
	}
	if req.Estado != nil {
		usuario.Estado = req.Estado
	}
	if req.Cidade != nil {
		usuario.Cidade = req.Cidade
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&usuario).Error; err != nil {
			return err
		}
		if req.GruposVulnerabilidade != nil {
			return substituirGrupos(tx, usuarioID, *req.GruposVulnerabilidade)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &usuario, nil
}

// ListarGruposVulnerabilidade devolve o catálogo de grupos, agrupado por
// categoria.
func (s *UserService) ListarGruposVulnerabilidade() ([]models.GrupoVulnerabilidade, error) {
	var grupos []models.GrupoVulnerabilidade
	err := s.DB.Order("categoria ASC, tipo ASC").Find(&grupos).Error
	return grupos, err
}

func (s *UserService) gruposDoUsuario(usuarioID uint) ([]models.GrupoVulnerabilidade, error) {
	grupos := make([]models.GrupoVulnerabilidade, 0)
	err := s.DB.Raw(
		`SELECT g.id, g.categoria, g.tipo
		 FROM grupos_vulnerabilidade g
		 JOIN usuario_grupos_vulnerabilidade ug ON ug.grupo_id = g.id
		 WHERE ug.usuario_id = ?
		 ORDER BY g.categoria, g.tipo`,
		usuarioID,
	).Scan(&grupos).Error
	return grupos, err
}

func inserirGrupos(tx *gorm.DB, usuarioID uint, grupoIDs []uint) error {
	vinculos := make([]models.UsuarioGrupoVulnerabilidade, 0, len(grupoIDs))
	for _, grupoID := range grupoIDs {
		vinculos = append(vinculos, models.UsuarioGrupoVulnerabilidade{
			UsuarioID: usuarioID,
			GrupoID:   grupoID,
		})
	}
	return tx.Create(&vinculos).Error
}

// substituirGrupos troca o conjunto declarado inteiro; lista vazia limpa tudo.
func substituirGrupos(tx *gorm.DB, usuarioID uint, grupoIDs []uint) error {
	if err := tx.Where("usuario_id = ?", usuarioID).
		Delete(&models.UsuarioGrupoVulnerabilidade{}).Error; err != nil {
		return err
	}
	if len(grupoIDs) == 0 {
		return nil
	}
	return inserirGrupos(tx, usuarioID, grupoIDs)
}

// SeedGruposVulnerabilidade popula o catálogo padrão no primeiro boot.
func SeedGruposVulnerabilidade(db *gorm.DB) error {
	var total int64
	if err := db.Model(&models.GrupoVulnerabilidade{}).Count(&total).Error; err != nil {
		return fmt.Errorf("falha ao contar grupos_vulnerabilidade: %w", err)
	}
	if total > 0 {
		return nil
	}
	if err := db.Create(&models.GruposVulnerabilidadePadrao).Error; err != nil {
		return fmt.Errorf("falha ao popular grupos_vulnerabilidade: %w", err)
	}
	return nil
}

// ListarUsuarios pagina o diretório de usuários.
func (s *UserService) ListarUsuarios(limit, offset int) ([]models.Usuario, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	var usuarios []models.Usuario
	err := s.DB.Order("created_at DESC").Limit(limit).Offset(offset).Find(&usuarios).Error
	return usuarios, err
}

// AtualizarFotoPerfil sobe a foto para o bucket e grava a URL no perfil.
func (s *UserService) AtualizarFotoPerfil(usuarioID uint, arquivo *multipart.FileHeader) (string, error) {
	var usuario models.Usuario
	if err := s.DB.First(&usuario, usuarioID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUsuarioNaoEncontrado
		}
		return "", err
	}

	ext := filepath.Ext(arquivo.Filename)
	if ext == "" {
		ext = ".jpg"
	}
	key := fmt.Sprintf("perfil/%s%s", uuid.NewString(), ext)

	url, err := utils.UploadFotoPerfil(arquivo, key)
	if err != nil {
		return "", fmt.Errorf("falha ao enviar foto: %w", err)
	}

	if err := s.DB.Model(&models.Usuario{}).Where("id = ?", usuarioID).
		Update("foto_perfil", url).Error; err != nil {
		return "", err
	}
	return url, nil
}

// DeletarUsuario desativa a conta (soft delete); o histórico de XP permanece.
func (s *UserService) DeletarUsuario(usuarioID uint) error {
	res := s.DB.Delete(&models.Usuario{}, usuarioID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUsuarioNaoEncontrado
	}
	return nil
}

// RemoverFotoPerfil limpa a referência da foto.
func (s *UserService) RemoverFotoPerfil(usuarioID uint) error {
	res := s.DB.Model(&models.Usuario{}).Where("id = ?", usuarioID).
		Update("foto_perfil", nil)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUsuarioNaoEncontrado
	}
	return nil
}
