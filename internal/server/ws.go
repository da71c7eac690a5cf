// Package server exposes running matches over a websocket JSON protocol.
// Each command addresses a session by key; the reply carries the action
// outcome and a fresh snapshot of the match. Rendering is the client's
// problem.
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Skeome/Arcana-Sim/internal/catalog"
	"github.com/Skeome/Arcana-Sim/internal/game"
	"github.com/Skeome/Arcana-Sim/internal/game/ai"
	"github.com/Skeome/Arcana-Sim/internal/session"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // clients connect from anywhere; there is no auth layer
	},
}

// DeckSource supplies a player's saved deck list. storage.DeckStore
// implements it; a nil source means everyone plays the default deck.
type DeckSource interface {
	LoadDeck(ctx context.Context, playerID string) (catalog.DeckList, error)
}

// Command is one client request.
type Command struct {
	Command string `json:"command"` // create, state, summon, prepare, replace, ability, activate, attack, advance, destroy
	Session string `json:"session"`
	Player  string `json:"player"`

	CardID     string `json:"card_id,omitempty"`
	Slot       int    `json:"slot,omitempty"`
	Copies     int    `json:"copies,omitempty"`
	TargetType string `json:"target_type,omitempty"` // "wizard" or "spirit"
	TargetSlot int    `json:"target_slot,omitempty"`
}

// Response is the reply to one command.
type Response struct {
	OK      bool            `json:"ok"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
	State   *game.MatchView `json:"state,omitempty"`
}

// Server handles websocket connections and routes commands to sessions.
type Server struct {
	sessions    *session.Manager
	catalog     *catalog.Catalog
	decks       map[string]catalog.DeckList
	deckSource  DeckSource
	defaultDeck string
	difficulty  ai.Difficulty
	logger      *zap.Logger
}

// New creates the gateway. deckSource may be nil.
func New(sessions *session.Manager, cat *catalog.Catalog, decks map[string]catalog.DeckList, deckSource DeckSource, defaultDeck string, difficulty ai.Difficulty, logger *zap.Logger) *Server {
	return &Server{
		sessions:    sessions,
		catalog:     cat,
		decks:       decks,
		deckSource:  deckSource,
		defaultDeck: defaultDeck,
		difficulty:  difficulty,
		logger:      logger,
	}
}

// Handler returns the http handler serving the websocket endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	for {
		var cmd Command
		if err := conn.ReadJSON(&cmd); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Debug("websocket read ended", zap.Error(err))
			}
			return
		}
		resp := s.dispatch(r.Context(), cmd)
		if err := conn.WriteJSON(resp); err != nil {
			s.logger.Debug("websocket write failed", zap.Error(err))
			return
		}
	}
}

func (s *Server) dispatch(ctx context.Context, cmd Command) Response {
	if cmd.Command == "create" {
		return s.create(ctx, cmd)
	}

	sess, err := s.sessions.Get(cmd.Session)
	if err != nil {
		return fail(err)
	}

	switch cmd.Command {
	case "state":
		view := sess.View()
		return Response{OK: true, State: &view}
	case "destroy":
		if err := s.sessions.Destroy(cmd.Session); err != nil {
			return fail(err)
		}
		return Response{OK: true, Message: "session destroyed"}
	default:
		return s.act(sess, cmd)
	}
}

// create starts a new match for the session key: the named player against
// the built-in opponent, using the player's saved deck when one exists.
func (s *Server) create(ctx context.Context, cmd Command) Response {
	const aiSide = "opponent"
	if cmd.Player == "" || cmd.Player == aiSide {
		return fail(errors.New("invalid player name"))
	}

	playerDeck := s.deckFor(ctx, cmd.Player)
	aiDeck := s.catalog.Materialize(s.decks[s.defaultDeck], s.logger)

	match := game.NewMatch(cmd.Player, aiSide, playerDeck, aiDeck, s.logger)
	driver := ai.NewDriver(ai.NewPolicy(s.difficulty), s.logger)

	if _, err := s.sessions.Create(cmd.Session, match, aiSide, driver); err != nil {
		return fail(err)
	}

	sess, _ := s.sessions.Get(cmd.Session)
	view := sess.View()
	return Response{OK: true, Message: "match created", State: &view}
}

// deckFor materializes the player's saved deck, falling back to the
// default deck when there is no store or no saved deck.
func (s *Server) deckFor(ctx context.Context, playerID string) []*game.CardInstance {
	if s.deckSource != nil {
		if list, err := s.deckSource.LoadDeck(ctx, playerID); err == nil {
			return s.catalog.Materialize(list, s.logger)
		}
	}
	return s.catalog.Materialize(s.decks[s.defaultDeck], s.logger)
}

// act applies one resolver action for the human side, then lets the AI
// answer if the action handed the turn over.
func (s *Server) act(sess *session.Session, cmd Command) Response {
	var (
		msg string
		err error
	)
	doErr := sess.Do(func(m *game.MatchState) error {
		switch cmd.Command {
		case "summon":
			msg, err = m.SummonSpirit(cmd.Player, cmd.CardID, cmd.Slot)
		case "prepare":
			msg, err = m.PrepareSpell(cmd.Player, cmd.CardID, cmd.Slot)
		case "replace":
			msg, err = m.ReplaceSpell(cmd.Player, cmd.CardID, cmd.Slot)
		case "ability":
			msg, err = m.UseWizardAbility(cmd.Player)
		case "activate":
			msg, err = m.ActivateSpell(cmd.Player, cmd.Slot, cmd.Copies)
		case "attack":
			target := game.TargetWizard
			if cmd.TargetType == "spirit" {
				target = game.TargetSpirit
			}
			msg, err = m.AttackWithSpirit(cmd.Player, cmd.Slot, target, cmd.TargetSlot)
		case "advance":
			switch {
			case m.GameOver:
				err = game.ErrGameOver
			case cmd.Player != m.CurrentSide:
				err = game.ErrNotYourTurn
			default:
				m.AdvancePhase()
				msg = "phase advanced"
			}
		default:
			return errors.New("unknown command")
		}
		return nil
	})
	if doErr != nil {
		return fail(doErr)
	}
	if err != nil {
		view := sess.View()
		return Response{OK: false, Error: err.Error(), State: &view}
	}

	sess.RunAITurn()

	view := sess.View()
	return Response{OK: true, Message: msg, State: &view}
}

func fail(err error) Response {
	return Response{OK: false, Error: err.Error()}
}
