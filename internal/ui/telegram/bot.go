package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/felores/agent-twitter-client/internal/chat"
	"github.com/felores/agent-twitter-client/internal/core/domain"
	"github.com/felores/agent-twitter-client/internal/core/ports"
)

// Relay bridges a Telegram chat to a Grok conversation. Each incoming text
// message becomes one conversation turn; the per-chat state lives in the
// StateStore so a dialogue survives restarts.
type Relay struct {
	Bot     *tgbotapi.BotAPI
	ChatID  int64
	session *chat.Session
	store   ports.StateStore
	log     zerolog.Logger
}

func NewRelay(token, chatIDStr string, session *chat.Session, store ports.StateStore, logger zerolog.Logger) (*Relay, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	chatID, err := strconv.ParseInt(chatIDStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid chat id: %w", err)
	}

	return &Relay{
		Bot:     bot,
		ChatID:  chatID,
		session: session,
		store:   store,
		log:     logger,
	}, nil
}

// Listen consumes updates until ctx is cancelled.
func (r *Relay) Listen(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := r.Bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			r.Bot.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil || update.Message.Chat.ID != r.ChatID || update.Message.Text == "" {
				continue
			}
			r.handleMessage(ctx, update.Message.Text)
		}
	}
}

func (r *Relay) handleMessage(ctx context.Context, text string) {
	key := strconv.FormatInt(r.ChatID, 10)

	if text == "/new" {
		if err := r.store.Reset(ctx, key); err != nil {
			r.log.Error().Err(err).Msg("failed to reset conversation")
			return
		}
		r.reply("Starting a fresh conversation.")
		return
	}

	state, err := r.store.Load(ctx, key)
	if err != nil {
		r.log.Error().Err(err).Msg("failed to load conversation state")
		return
	}

	var turn *domain.Turn
	if state == nil {
		turn, err = r.session.Start(ctx, text)
	} else {
		turn, err = r.session.Continue(ctx, *state, text)
	}
	if err != nil {
		r.log.Error().Err(err).Msg("chat turn failed")
		r.reply("Something went wrong, try again.")
		return
	}

	if err := r.store.Save(ctx, key, turn.State()); err != nil {
		r.log.Error().Err(err).Msg("failed to save conversation state")
	}
	r.reply(renderTurn(turn))
}

func (r *Relay) reply(text string) {
	msg := tgbotapi.NewMessage(r.ChatID, text)
	if _, err := r.Bot.Send(msg); err != nil {
		r.log.Error().Err(err).Msg("failed to send telegram message")
	}
}

// renderTurn formats a turn as reply text, then sources, then any
// rate-limit notice.
func renderTurn(t *domain.Turn) string {
	var b strings.Builder
	b.WriteString(t.Message)
	if len(t.Citations) > 0 {
		b.WriteString("\n\nSources:")
		for i, c := range t.Citations {
			fmt.Fprintf(&b, "\n%d. %s", i+1, c.URL)
		}
	}
	if t.RateLimit != nil {
		fmt.Fprintf(&b, "\n\nRate limit: %s", t.RateLimit.Message)
	}
	return b.String()
}
