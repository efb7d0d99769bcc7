package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/DjefferBP/sis-sistema-de-inclusao-social/models"

	"gorm.io/gorm"
)

var ErrComentarioNaoEncontrado = errors.New("comentário não encontrado")

type CommentService struct {
	DB *gorm.DB
	XP *XPService
}

func NewCommentService(db *gorm.DB, xp *XPService) *CommentService {
	return &CommentService{DB: db, XP: xp}
}

type NovoComentario struct {
	PostID   uint   `json:"post_id"`
	Conteudo string `json:"conteudo"`
}

type ComentarioCriado struct {
	Comentario models.Comentario `json:"comentario"`
	XPGanho    int               `json:"xp_ganho"`
	Mensagem   string            `json:"mensagem"`
}

// CriarComentario premia o comentarista e, quando for outra pessoa, também o
// dono do post comentado.
func (s *CommentService) CriarComentario(usuarioID uint, req NovoComentario) (*ComentarioCriado, error) {
	if req.Conteudo == "" {
		return nil, fmt.Errorf("conteúdo é obrigatório")
	}

	var post models.Post
	if err := s.DB.First(&post, req.PostID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNaoEncontrado
		}
		return nil, err
	}

	comentario := models.Comentario{
		PostID:    req.PostID,
		UsuarioID: usuarioID,
		Conteudo:  req.Conteudo,
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&comentario).Error; err != nil {
			return err
		}
		return tx.Model(&models.Post{}).Where("id = ?", req.PostID).
			Update("comentarios_count", gorm.Expr("comentarios_count + 1")).Error
	})
	if err != nil {
		return nil, err
	}

	xpGanho := 0
	if resultado, err := s.XP.AdicionarXP(usuarioID, "comentar_post",
		fmt.Sprintf("Comentou no post: %s...", truncar(post.Titulo, 30))); err != nil {
		log.Printf("⚠️  XP de comentar_post não aplicado para usuário %d: %v", usuarioID, err)
	} else {
		xpGanho = resultado.XPGanho
	}

	if post.UsuarioID != usuarioID {
		if _, err := s.XP.AdicionarXP(post.UsuarioID, "post_comentado",
			fmt.Sprintf("Post '%s...' recebeu um comentário", truncar(post.Titulo, 30))); err != nil {
			log.Printf("⚠️  XP de post_comentado não aplicado para usuário %d: %v", post.UsuarioID, err)
		}
	}

	return &ComentarioCriado{
		Comentario: comentario,
		XPGanho:    xpGanho,
		Mensagem:   fmt.Sprintf("Comentário criado com sucesso! +%d XP", xpGanho),
	}, nil
}

func (s *CommentService) ObterComentario(comentarioID uint) (*models.Comentario, error) {
	var comentario models.Comentario
	if err := s.DB.First(&comentario, comentarioID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComentarioNaoEncontrado
		}
		return nil, err
	}
	return &comentario, nil
}

type ComentariosDoPost struct {
	Comentarios []models.Comentario `json:"comentarios"`
	PostID      uint                `json:"post_id"`
	PostTitulo  string              `json:"post_titulo"`
	Total       int                 `json:"total"`
}

func (s *CommentService) ListarPorPost(postID uint, limit, offset int) (*ComentariosDoPost, error) {
	var post models.Post
	if err := s.DB.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNaoEncontrado
		}
		return nil, err
	}

	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var comentarios []models.Comentario
	err := s.DB.Where("post_id = ?", postID).
		Order("created_at ASC").
		Limit(limit).Offset(offset).
		Find(&comentarios).Error
	if err != nil {
		return nil, err
	}

	return &ComentariosDoPost{
		Comentarios: comentarios,
		PostID:      postID,
		PostTitulo:  post.Titulo,
		Total:       len(comentarios),
	}, nil
}

func (s *CommentService) ListarPorUsuario(usuarioID uint, limit, offset int) ([]models.Comentario, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var comentarios []models.Comentario
	err := s.DB.Where("usuario_id = ?", usuarioID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&comentarios).Error
	return comentarios, err
}

type CurtidaComentario struct {
	ComentarioID  uint   `json:"comentario_id"`
	CurtidasCount int    `json:"curtidas_count"`
	Mensagem      string `json:"mensagem"`
}

// CurtirComentario incrementa o contador e premia o autor (exceto autocurtida).
func (s *CommentService) CurtirComentario(comentarioID, usuarioID uint) (*CurtidaComentario, error) {
	comentario, err := s.ObterComentario(comentarioID)
	if err != nil {
		return nil, err
	}

	var curtidas int
	err = s.DB.Raw(
		`UPDATE comentarios SET curtidas_count = curtidas_count + 1, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? RETURNING curtidas_count`,
		comentarioID,
	).Scan(&curtidas).Error
	if err != nil {
		return nil, err
	}

	if comentario.UsuarioID != usuarioID {
		if _, err := s.XP.AdicionarXP(comentario.UsuarioID, "comentario_curtido",
			"Comentário recebeu uma curtida"); err != nil {
			log.Printf("⚠️  XP de comentario_curtido não aplicado para usuário %d: %v", comentario.UsuarioID, err)
		}
	}

	return &CurtidaComentario{
		ComentarioID:  comentarioID,
		CurtidasCount: curtidas,
		Mensagem:      "Comentário curtido com sucesso!",
	}, nil
}

func (s *CommentService) DescurtirComentario(comentarioID uint) (*CurtidaComentario, error) {
	if _, err := s.ObterComentario(comentarioID); err != nil {
		return nil, err
	}

	var curtidas int
	err := s.DB.Raw(
		`UPDATE comentarios SET curtidas_count = GREATEST(curtidas_count - 1, 0), updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? RETURNING curtidas_count`,
		comentarioID,
	).Scan(&curtidas).Error
	if err != nil {
		return nil, err
	}

	return &CurtidaComentario{
		ComentarioID:  comentarioID,
		CurtidasCount: curtidas,
		Mensagem:      "Curtida removida do comentário!",
	}, nil
}

func (s *CommentService) DeletarComentario(comentarioID, usuarioID uint) error {
	comentario, err := s.ObterComentario(comentarioID)
	if err != nil {
		return err
	}
	if comentario.UsuarioID != usuarioID {
		return ErrSemPermissao
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(comentario).Error; err != nil {
			return err
		}
		return tx.Model(&models.Post{}).Where("id = ?", comentario.PostID).
			Update("comentarios_count", gorm.Expr("GREATEST(comentarios_count - 1, 0)")).Error
	})
}
