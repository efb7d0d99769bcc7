package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/DjefferBP/sis-sistema-de-inclusao-social/models"

	"gorm.io/gorm"
)

var (
	ErrPostNaoEncontrado = errors.New("post não encontrado")
	ErrJaCurtiu          = errors.New("você já curtiu este post")
	ErrNaoCurtiu         = errors.New("você não curtiu este post")
	ErrSemPermissao      = errors.New("você não tem permissão para esta operação")
)

// PostService é colaborador do motor de XP: cria o post primeiro e premia
// depois; falha na premiação não desfaz o post.
type PostService struct {
	DB *gorm.DB
	XP *XPService
}

func NewPostService(db *gorm.DB, xp *XPService) *PostService {
	return &PostService{DB: db, XP: xp}
}

type NovoPost struct {
	Titulo    string `json:"titulo"`
	Conteudo  string `json:"conteudo"`
	Categoria string `json:"categoria"`
}

// PostComCurtida anexa ao post se o usuário corrente já curtiu.
type PostComCurtida struct {
	models.Post
	Curtido bool `json:"curtido"`
}

type PostCriado struct {
	Post     models.Post `json:"post"`
	XPGanho  int         `json:"xp_ganho"`
	Mensagem string      `json:"mensagem"`
}

func (s *PostService) CriarPost(usuarioID uint, req NovoPost) (*PostCriado, error) {
	if req.Titulo == "" || req.Conteudo == "" {
		return nil, fmt.Errorf("título e conteúdo são obrigatórios")
	}

	post := models.Post{
		UsuarioID: usuarioID,
		Titulo:    req.Titulo,
		Conteudo:  req.Conteudo,
		Categoria: req.Categoria,
	}
	if err := s.DB.Create(&post).Error; err != nil {
		return nil, err
	}

	xpGanho := 0
	if resultado, err := s.XP.AdicionarXP(usuarioID, "criar_post",
		fmt.Sprintf("Criou o post: %s...", truncar(req.Titulo, 50))); err != nil {
		log.Printf("⚠️  XP de criar_post não aplicado para usuário %d: %v", usuarioID, err)
	} else {
		xpGanho = resultado.XPGanho
	}

	return &PostCriado{
		Post:     post,
		XPGanho:  xpGanho,
		Mensagem: fmt.Sprintf("Post criado com sucesso! +%d XP", xpGanho),
	}, nil
}

func (s *PostService) ObterPost(postID uint, usuarioID uint) (*PostComCurtida, error) {
	var post models.Post
	if err := s.DB.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNaoEncontrado
		}
		return nil, err
	}

	curtido, err := s.usuarioCurtiu(postID, usuarioID)
	if err != nil {
		return nil, err
	}
	return &PostComCurtida{Post: post, Curtido: curtido}, nil
}

type PaginaPosts struct {
	Posts        []PostComCurtida `json:"posts"`
	Total        int64            `json:"total"`
	Pagina       int              `json:"pagina"`
	PorPagina    int              `json:"por_pagina"`
	TotalPaginas int64            `json:"total_paginas"`
}

func (s *PostService) ListarPosts(limit, offset int, usuarioID uint) (*PaginaPosts, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var total int64
	if err := s.DB.Model(&models.Post{}).Count(&total).Error; err != nil {
		return nil, err
	}

	posts, err := s.consultarComCurtida(usuarioID, "", nil, limit, offset)
	if err != nil {
		return nil, err
	}

	return &PaginaPosts{
		Posts:        posts,
		Total:        total,
		Pagina:       (offset / limit) + 1,
		PorPagina:    limit,
		TotalPaginas: (total + int64(limit) - 1) / int64(limit),
	}, nil
}

func (s *PostService) ListarPostsUsuario(autorID uint, limit, offset int, usuarioID uint) ([]PostComCurtida, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.consultarComCurtida(usuarioID, "p.usuario_id = ?", []interface{}{autorID}, limit, offset)
}

func (s *PostService) ListarPostsPorCategoria(categoria string, limit, offset int, usuarioID uint) ([]PostComCurtida, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.consultarComCurtida(usuarioID, "p.categoria = ?", []interface{}{categoria}, limit, offset)
}

// consultarComCurtida resolve a flag "curtido" em uma única consulta em vez
// de um SELECT por post.
func (s *PostService) consultarComCurtida(usuarioID uint, filtro string, args []interface{}, limit, offset int) ([]PostComCurtida, error) {
	sql := `SELECT p.*, EXISTS (
	            SELECT 1 FROM post_curtidas pc
	            WHERE pc.post_id = p.id AND pc.usuario_id = ?
	        ) AS curtido
	        FROM posts p
	        WHERE p.deleted_at IS NULL`
	todos := []interface{}{usuarioID}
	if filtro != "" {
		sql += " AND " + filtro
		todos = append(todos, args...)
	}
	sql += " ORDER BY p.created_at DESC LIMIT ? OFFSET ?"
	todos = append(todos, limit, offset)

	posts := make([]PostComCurtida, 0, limit)
	if err := s.DB.Raw(sql, todos...).Scan(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

type CurtidaResultado struct {
	PostID        uint   `json:"post_id"`
	CurtidasCount int    `json:"curtidas_count"`
	Mensagem      string `json:"mensagem"`
}

// CurtirPost registra a curtida e premia o autor do post (nunca o próprio
// curtidor).
func (s *PostService) CurtirPost(postID, usuarioID uint) (*CurtidaResultado, error) {
	var post models.Post
	if err := s.DB.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNaoEncontrado
		}
		return nil, err
	}

	jaCurtiu, err := s.usuarioCurtiu(postID, usuarioID)
	if err != nil {
		return nil, err
	}
	if jaCurtiu {
		return nil, ErrJaCurtiu
	}

	var curtidas int
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.PostCurtida{PostID: postID, UsuarioID: usuarioID}).Error; err != nil {
			return err
		}
		return tx.Raw(
			`UPDATE posts SET curtidas_count = curtidas_count + 1, updated_at = CURRENT_TIMESTAMP
			 WHERE id = ? RETURNING curtidas_count`,
			postID,
		).Scan(&curtidas).Error
	})
	if err != nil {
		return nil, err
	}

	if post.UsuarioID != usuarioID {
		if _, err := s.XP.AdicionarXP(post.UsuarioID, "post_curtido",
			fmt.Sprintf("Post '%s...' recebeu uma curtida", truncar(post.Titulo, 30))); err != nil {
			log.Printf("⚠️  XP de post_curtido não aplicado para usuário %d: %v", post.UsuarioID, err)
		}
	}

	return &CurtidaResultado{
		PostID:        postID,
		CurtidasCount: curtidas,
		Mensagem:      "Post curtido com sucesso!",
	}, nil
}

func (s *PostService) DescurtirPost(postID, usuarioID uint) (*CurtidaResultado, error) {
	var post models.Post
	if err := s.DB.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNaoEncontrado
		}
		return nil, err
	}

	jaCurtiu, err := s.usuarioCurtiu(postID, usuarioID)
	if err != nil {
		return nil, err
	}
	if !jaCurtiu {
		return nil, ErrNaoCurtiu
	}

	var curtidas int
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ? AND usuario_id = ?", postID, usuarioID).
			Delete(&models.PostCurtida{}).Error; err != nil {
			return err
		}
		return tx.Raw(
			`UPDATE posts SET curtidas_count = GREATEST(curtidas_count - 1, 0), updated_at = CURRENT_TIMESTAMP
			 WHERE id = ? RETURNING curtidas_count`,
			postID,
		).Scan(&curtidas).Error
	})
	if err != nil {
		return nil, err
	}

	return &CurtidaResultado{
		PostID:        postID,
		CurtidasCount: curtidas,
		Mensagem:      "Curtida removida do post!",
	}, nil
}

// DeletarPost remove o post do dono (soft delete).
func (s *PostService) DeletarPost(postID, usuarioID uint) error {
	var post models.Post
	if err := s.DB.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNaoEncontrado
		}
		return err
	}
	if post.UsuarioID != usuarioID {
		return ErrSemPermissao
	}
	return s.DB.Delete(&post).Error
}

type EstatisticasPost struct {
	PostComCurtida
	ComentariosCount int64 `json:"comentarios_count"`
	EngajamentoTotal int64 `json:"engajamento_total"`
}

func (s *PostService) EstatisticasPost(postID uint, usuarioID uint) (*EstatisticasPost, error) {
	post, err := s.ObterPost(postID, usuarioID)
	if err != nil {
		return nil, err
	}

	var comentarios int64
	if err := s.DB.Model(&models.Comentario{}).Where("post_id = ?", postID).Count(&comentarios).Error; err != nil {
		return nil, err
	}

	return &EstatisticasPost{
		PostComCurtida:   *post,
		ComentariosCount: comentarios,
		EngajamentoTotal: int64(post.CurtidasCount) + comentarios,
	}, nil
}

func (s *PostService) usuarioCurtiu(postID, usuarioID uint) (bool, error) {
	if usuarioID == 0 {
		return false, nil
	}
	var total int64
	err := s.DB.Model(&models.PostCurtida{}).
		Where("post_id = ? AND usuario_id = ?", postID, usuarioID).
		Count(&total).Error
	return total > 0, err
}

// truncar corta em limite de runas, não de bytes.
func truncar(s string, limite int) string {
	runas := []rune(s)
	if len(runas) <= limite {
		return s
	}
	return string(runas[:limite])
}
