package app

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"sync"
	"time"

	"github.com/FogoReed/random-stickers-bot/internal/app/cmdHandlers"
	"github.com/FogoReed/random-stickers-bot/internal/config"
	"github.com/FogoReed/random-stickers-bot/internal/model"
	"github.com/FogoReed/random-stickers-bot/internal/repository"
	"github.com/FogoReed/random-stickers-bot/internal/service"
	"github.com/FogoReed/random-stickers-bot/pkg/telegram"
)

// mediaGroupSweepInterval is how often stale media-group entries are
// evicted.
const mediaGroupSweepInterval = 5 * time.Minute

// App coordinates the services and the telegram client.
type App struct {
	cfg      *config.Config
	tgClient *telegram.Client
	handler  *cmdHandlers.CmdHandler
	reply    *service.ReplyService
	groups   *service.MediaGroupCache
}

func New(cfg *config.Config, store repository.Store) *App {
	tg := telegram.NewClient(cfg.TelegramToken)
	lookup := &stickerSetLookup{tg: tg, timeout: cfg.LookupTimeout}

	settings := service.NewSettingsService(store)
	packs := service.NewPackService(store, settings, lookup)
	users := service.NewUserService(store)
	groups := service.NewMediaGroupCache()
	reply := service.NewReplyService(settings, packs, users, groups, lookup, tg)
	handler := cmdHandlers.NewCmdHandler(tg, settings, packs, users, reply)

	return &App{
		cfg:      cfg,
		tgClient: tg,
		handler:  handler,
		reply:    reply,
		groups:   groups,
	}
}

// stickerSetLookup adapts the Telegram client to the service lookup
// interfaces, bounding every call with the configured timeout so a slow
// API never stalls event handling.
type stickerSetLookup struct {
	tg      *telegram.Client
	timeout time.Duration
}

func (l *stickerSetLookup) StickerCount(ctx context.Context, setName string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()
	set, err := l.tg.GetStickerSet(ctx, setName)
	if err != nil {
		return 0, err
	}
	return len(set.Stickers), nil
}

func (l *stickerSetLookup) StickerFileIDs(ctx context.Context, setName string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()
	set, err := l.tg.GetStickerSet(ctx, setName)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(set.Stickers))
	for i, st := range set.Stickers {
		ids[i] = st.FileID
	}
	return ids, nil
}

func (a *App) Run(ctx context.Context) error {
	a.setCommands(ctx)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		a.handleUpdates(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		a.sweepMediaGroups(ctx)
	}()

	<-ctx.Done()
	wg.Wait()
	return nil
}

func (a *App) handleUpdates(ctx context.Context) {
	offset := 0
	for {
		if ctx.Err() != nil {
			return
		}
		updates, err := a.tgClient.GetUpdates(ctx, offset, int(a.cfg.PollTimeout.Seconds()))
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Println("get updates:", err)
			time.Sleep(time.Second)
			continue
		}
		for _, u := range updates {
			offset = u.UpdateID + 1
			a.handleUpdate(ctx, u)
		}
	}
}

func (a *App) handleUpdate(ctx context.Context, u telegram.Update) {
	if u.CallbackQuery != nil {
		a.handler.HandleCallback(ctx, u.CallbackQuery)
		return
	}
	m := u.Message
	if m == nil || m.From == nil {
		return
	}

	if m.Sticker != nil {
		ev := service.Event{
			Type:       service.EventSticker,
			ChatID:     m.Chat.ID,
			MessageID:  m.MessageID,
			User:       userStats(m.From),
			StickerSet: m.Sticker.SetName,
		}
		if _, err := a.reply.HandleEvent(ctx, ev); err != nil {
			log.Printf("chat_id=%d: handle sticker: %v", m.Chat.ID, err)
		}
		return
	}

	if strings.HasPrefix(m.Text, "/") && a.handler.HandleCommand(ctx, m) {
		return
	}

	ev, ok := classify(m)
	if !ok {
		return
	}
	if _, err := a.reply.HandleEvent(ctx, ev); err != nil {
		log.Printf("chat_id=%d: handle event: %v", m.Chat.ID, err)
	}
}

// classify maps a non-sticker, non-command message onto a reply-engine
// event. Messages that are neither text nor supported media kinds are
// ignored.
func classify(m *telegram.Message) (service.Event, bool) {
	ev := service.Event{
		ChatID:       m.Chat.ID,
		MessageID:    m.MessageID,
		MediaGroupID: m.MediaGroupID,
		User:         userStats(m.From),
	}
	switch {
	case m.Text != "":
		ev.Type = service.EventText
	case len(m.Photo) > 0 || m.Video != nil || m.Animation != nil || m.VideoNote != nil:
		ev.Type = service.EventMedia
	default:
		return ev, false
	}
	return ev, true
}

func userStats(u *telegram.User) model.UserStats {
	return model.UserStats{
		UserID:    u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.Username,
	}
}

func (a *App) sweepMediaGroups(ctx context.Context) {
	ticker := time.NewTicker(mediaGroupSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.groups.Cleanup(time.Now())
		}
	}
}

func (a *App) setCommands(ctx context.Context) {
	cmds := []telegram.BotCommand{
		{Command: "random_pack", Description: "Get a random sticker from the saved packs"},
		{Command: "stats", Description: "Sticker pack statistics for this chat"},
		{Command: "top_users", Description: "Most active sticker and media senders"},
		{Command: "list_packs", Description: "List all packs and their status"},
		{Command: "get_pack_limit", Description: "Show the current pack limit"},
		{Command: "get_reply_chance", Description: "Show the current sticker reply chance"},
		{Command: "set_language", Description: "Choose the chat language"},
		{Command: "help", Description: "Show all commands"},
	}
	if err := a.tgClient.SetCommands(ctx, cmds); err != nil {
		log.Println("set commands:", err)
	}
}
