package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/DjefferBP/sis-sistema-de-inclusao-social/models"

	"gorm.io/gorm"
)

var (
	ErrConversaNaoEncontrada = errors.New("conversa não encontrada")
	ErrConversaConsigoMesmo  = errors.New("não é possível iniciar conversa consigo mesmo")
	ErrNaoParticipante       = errors.New("você não participa desta conversa")
)

// ChatService cuida das conversas 1:1. Cada conversa é única por par de
// usuários; o par é normalizado (menor id primeiro) antes de qualquer consulta.
type ChatService struct {
	DB *gorm.DB
	XP *XPService
}

func NewChatService(db *gorm.DB, xp *XPService) *ChatService {
	return &ChatService{DB: db, XP: xp}
}

func normalizarPar(a, b uint) (uint, uint) {
	if a > b {
		return b, a
	}
	return a, b
}

type ConversaIniciada struct {
	Conversa models.Conversa `json:"conversa"`
	Criada   bool            `json:"criada"`
	Mensagem string          `json:"mensagem"`
}

// IniciarConversa busca ou cria a conversa do par. Só a criação de uma conversa
// nova premia "iniciar_conversa"; reabrir conversa existente não gera XP.
func (s *ChatService) IniciarConversa(usuarioID, outroID uint) (*ConversaIniciada, error) {
	if usuarioID == outroID {
		return nil, ErrConversaConsigoMesmo
	}

	var outro models.Usuario
	if err := s.DB.First(&outro, outroID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUsuarioNaoEncontrado
		}
		return nil, err
	}

	u1, u2 := normalizarPar(usuarioID, outroID)

	var conversa models.Conversa
	err := s.DB.Where("usuario1_id = ? AND usuario2_id = ?", u1, u2).First(&conversa).Error
	if err == nil {
		return &ConversaIniciada{
			Conversa: conversa,
			Criada:   false,
			Mensagem: "Conversa já existente",
		}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	conversa = models.Conversa{Usuario1ID: u1, Usuario2ID: u2}
	if err := s.DB.Create(&conversa).Error; err != nil {
		return nil, err
	}

	if _, err := s.XP.AdicionarXP(usuarioID, "iniciar_conversa",
		fmt.Sprintf("Iniciou conversa com %s", outro.Nome)); err != nil {
		log.Printf("⚠️  XP de iniciar_conversa não aplicado para usuário %d: %v", usuarioID, err)
	}

	return &ConversaIniciada{
		Conversa: conversa,
		Criada:   true,
		Mensagem: "Conversa iniciada com sucesso!",
	}, nil
}

type ConversaResumo struct {
	ID             uint   `json:"id"`
	OutroUsuarioID uint   `json:"outro_usuario_id"`
	OutroNome      string `json:"outro_nome"`
	UltimaMensagem string `json:"ultima_mensagem"`
	NaoLidas       int    `json:"nao_lidas"`
}

// ListarConversas retorna as conversas do usuário com a última mensagem e o
// total de não lidas, em uma única consulta.
func (s *ChatService) ListarConversas(usuarioID uint) ([]ConversaResumo, error) {
	var resumos []ConversaResumo
	err := s.DB.Raw(`
		SELECT c.id,
		       CASE WHEN c.usuario1_id = ? THEN c.usuario2_id ELSE c.usuario1_id END AS outro_usuario_id,
		       u.nome AS outro_nome,
		       COALESCE((SELECT m.conteudo FROM mensagens m
		                 WHERE m.conversa_id = c.id
		                 ORDER BY m.created_at DESC LIMIT 1), '') AS ultima_mensagem,
		       (SELECT COUNT(*) FROM mensagens m
		        WHERE m.conversa_id = c.id AND m.remetente_id <> ? AND m.lida = FALSE) AS nao_lidas
		FROM conversas c
		JOIN usuarios u ON u.id = CASE WHEN c.usuario1_id = ? THEN c.usuario2_id ELSE c.usuario1_id END
		WHERE c.usuario1_id = ? OR c.usuario2_id = ?
		ORDER BY c.created_at DESC`,
		usuarioID, usuarioID, usuarioID, usuarioID, usuarioID,
	).Scan(&resumos).Error
	if err != nil {
		return nil, err
	}
	return resumos, nil
}

func (s *ChatService) buscarConversaDoUsuario(conversaID, usuarioID uint) (*models.Conversa, error) {
	var conversa models.Conversa
	if err := s.DB.First(&conversa, conversaID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversaNaoEncontrada
		}
		return nil, err
	}
	if conversa.Usuario1ID != usuarioID && conversa.Usuario2ID != usuarioID {
		return nil, ErrNaoParticipante
	}
	return &conversa, nil
}

type MensagemEnviada struct {
	Mensagem models.Mensagem `json:"mensagem"`
	XPGanho  int             `json:"xp_ganho"`
}

// EnviarMensagem grava a mensagem e premia "enviar_mensagem".
func (s *ChatService) EnviarMensagem(conversaID, usuarioID uint, conteudo string) (*MensagemEnviada, error) {
	if conteudo == "" {
		return nil, fmt.Errorf("conteúdo é obrigatório")
	}
	if _, err := s.buscarConversaDoUsuario(conversaID, usuarioID); err != nil {
		return nil, err
	}

	mensagem := models.Mensagem{
		ConversaID:  conversaID,
		RemetenteID: usuarioID,
		Conteudo:    conteudo,
	}
	if err := s.DB.Create(&mensagem).Error; err != nil {
		return nil, err
	}

	xpGanho := 0
	if resultado, err := s.XP.AdicionarXP(usuarioID, "enviar_mensagem", ""); err != nil {
		log.Printf("⚠️  XP de enviar_mensagem não aplicado para usuário %d: %v", usuarioID, err)
	} else {
		xpGanho = resultado.XPGanho
	}

	return &MensagemEnviada{Mensagem: mensagem, XPGanho: xpGanho}, nil
}

// ListarMensagens pagina as mensagens da conversa e marca como lidas as
// recebidas pelo usuário.
func (s *ChatService) ListarMensagens(conversaID, usuarioID uint, limit, offset int) ([]models.Mensagem, error) {
	if _, err := s.buscarConversaDoUsuario(conversaID, usuarioID); err != nil {
		return nil, err
	}

	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var mensagens []models.Mensagem
	err := s.DB.Where("conversa_id = ?", conversaID).
		Order("created_at ASC").
		Limit(limit).Offset(offset).
		Find(&mensagens).Error
	if err != nil {
		return nil, err
	}

	err = s.DB.Model(&models.Mensagem{}).
		Where("conversa_id = ? AND remetente_id <> ? AND lida = ?", conversaID, usuarioID, false).
		Update("lida", true).Error
	if err != nil {
		log.Printf("⚠️  falha ao marcar mensagens como lidas na conversa %d: %v", conversaID, err)
	}

	return mensagens, nil
}

type ConversaCompleta struct {
	Conversa       models.Conversa   `json:"conversa"`
	Mensagens      []models.Mensagem `json:"mensagens"`
	TotalMensagens int               `json:"total_mensagens"`
}

// ObterConversaCompleta devolve a conversa com as últimas mensagens de uma vez
// (abrir a tela do chat com uma chamada só) e marca as recebidas como lidas.
func (s *ChatService) ObterConversaCompleta(conversaID, usuarioID uint) (*ConversaCompleta, error) {
	conversa, err := s.buscarConversaDoUsuario(conversaID, usuarioID)
	if err != nil {
		return nil, err
	}

	var mensagens []models.Mensagem
	err = s.DB.Where("conversa_id = ?", conversaID).
		Order("created_at ASC").
		Limit(100).
		Find(&mensagens).Error
	if err != nil {
		return nil, err
	}

	err = s.DB.Model(&models.Mensagem{}).
		Where("conversa_id = ? AND remetente_id <> ? AND lida = ?", conversaID, usuarioID, false).
		Update("lida", true).Error
	if err != nil {
		log.Printf("⚠️  falha ao marcar mensagens como lidas na conversa %d: %v", conversaID, err)
	}

	return &ConversaCompleta{
		Conversa:       *conversa,
		Mensagens:      mensagens,
		TotalMensagens: len(mensagens),
	}, nil
}

// BuscarConversaPorUsuarios localiza a conversa existente com outro usuário,
// sem criar uma nova (criação fica em IniciarConversa, que premia XP).
func (s *ChatService) BuscarConversaPorUsuarios(usuarioID, outroID uint) (*models.Conversa, error) {
	u1, u2 := normalizarPar(usuarioID, outroID)
	var conversa models.Conversa
	err := s.DB.Where("usuario1_id = ? AND usuario2_id = ?", u1, u2).First(&conversa).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversaNaoEncontrada
		}
		return nil, err
	}
	return &conversa, nil
}

// ContarNaoLidas retorna o total de mensagens não lidas do usuário em todas as
// conversas.
func (s *ChatService) ContarNaoLidas(usuarioID uint) (int64, error) {
	var total int64
	err := s.DB.Raw(`
		SELECT COUNT(*) FROM mensagens m
		JOIN conversas c ON c.id = m.conversa_id
		WHERE (c.usuario1_id = ? OR c.usuario2_id = ?)
		  AND m.remetente_id <> ? AND m.lida = FALSE`,
		usuarioID, usuarioID, usuarioID,
	).Scan(&total).Error
	return total, err
}
