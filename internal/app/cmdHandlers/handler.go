package cmdHandlers

import (
	"context"
	"log"
	"strings"

	"github.com/FogoReed/random-stickers-bot/internal/model"
	"github.com/FogoReed/random-stickers-bot/internal/service"
	"github.com/FogoReed/random-stickers-bot/internal/translation"
	"github.com/FogoReed/random-stickers-bot/pkg/telegram"
)

const (
	RandomPackCmd     = "/random_pack"
	StatsCmd          = "/stats"
	SetReplyChanceCmd = "/set_reply_chance"
	GetReplyChanceCmd = "/get_reply_chance"
	BanPackCmd        = "/ban_pack"
	UnbanPackCmd      = "/unban_pack"
	ListPacksCmd      = "/list_packs"
	ClearPacksCmd     = "/clear_packs"
	SetPackLimitCmd   = "/set_pack_limit"
	GetPackLimitCmd   = "/get_pack_limit"
	HelpCmd           = "/help"
	TopUsersCmd       = "/top_users"
	SetLanguageCmd    = "/set_language"
)

// Messenger is the slice of the Telegram client the handlers use.
type Messenger interface {
	SendMessage(ctx context.Context, chatID int64, text string, opts *telegram.SendOptions) (int, error)
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error
	AnswerCallbackQuery(ctx context.Context, callbackID, text string) error
	GetChatMember(ctx context.Context, chatID, userID int64) (*telegram.ChatMember, error)
}

// CmdHandler dispatches slash commands to their handlers.
type CmdHandler struct {
	tg       Messenger
	settings *service.SettingsService
	packs    *service.PackService
	users    *service.UserService
	reply    *service.ReplyService
}

func NewCmdHandler(tg Messenger, settings *service.SettingsService, packs *service.PackService,
	users *service.UserService, reply *service.ReplyService) *CmdHandler {
	return &CmdHandler{tg: tg, settings: settings, packs: packs, users: users, reply: reply}
}

// HandleCommand runs the command in m and reports whether the text was
// a known command. Unknown slash texts fall through to the reply
// engine, the same way unregistered commands did before.
func (c *CmdHandler) HandleCommand(ctx context.Context, m *telegram.Message) bool {
	fields := strings.Fields(m.Text)
	if len(fields) == 0 {
		return false
	}
	cmd := fields[0]
	// Commands in groups may arrive as /stats@botname.
	if i := strings.Index(cmd, "@"); i > 0 {
		cmd = cmd[:i]
	}

	switch cmd {
	case RandomPackCmd:
		c.handleRandomPack(ctx, m)
	case StatsCmd:
		c.handleStats(ctx, m)
	case SetReplyChanceCmd:
		c.handleSetReplyChance(ctx, m)
	case GetReplyChanceCmd:
		c.handleGetReplyChance(ctx, m)
	case BanPackCmd:
		c.handleBanPack(ctx, m)
	case UnbanPackCmd:
		c.handleUnbanPack(ctx, m)
	case ListPacksCmd:
		c.handleListPacks(ctx, m)
	case ClearPacksCmd:
		c.handleClearPacks(ctx, m)
	case SetPackLimitCmd:
		c.handleSetPackLimit(ctx, m)
	case GetPackLimitCmd:
		c.handleGetPackLimit(ctx, m)
	case HelpCmd:
		c.handleHelp(ctx, m)
	case TopUsersCmd:
		c.handleTopUsers(ctx, m)
	case SetLanguageCmd:
		c.handleSetLanguage(ctx, m)
	default:
		return false
	}
	return true
}

// lang resolves the chat language, falling back to the default when the
// settings read fails.
func (c *CmdHandler) lang(ctx context.Context, chatID int64) model.Language {
	lang, err := c.settings.Language(ctx, chatID)
	if err != nil {
		log.Printf("chat_id=%d: read language: %v", chatID, err)
		return model.DefaultLanguage
	}
	return lang
}

// replyTo is a small wrapper that replies to the message and logs
// delivery failures.
func (c *CmdHandler) replyTo(ctx context.Context, m *telegram.Message, text string) {
	opts := &telegram.SendOptions{ReplyTo: m.MessageID}
	if _, err := c.tg.SendMessage(ctx, m.Chat.ID, text, opts); err != nil {
		log.Printf("telegram send message: %v\ntext: %s", err, text)
	}
}

// isAdmin asks Telegram whether the user administrates the chat. A
// failed check counts as not an admin.
func (c *CmdHandler) isAdmin(ctx context.Context, chatID, userID int64) bool {
	member, err := c.tg.GetChatMember(ctx, chatID, userID)
	if err != nil {
		log.Printf("chat_id=%d, user_id=%d: admin check failed: %v", chatID, userID, err)
		return false
	}
	return member.Status == "administrator" || member.Status == "creator"
}

// requireAdmin enforces the admin gate for privileged commands. Private
// 1:1 chats are exempt.
func (c *CmdHandler) requireAdmin(ctx context.Context, m *telegram.Message) bool {
	if m.Chat.Type == "private" {
		return true
	}
	if m.From != nil && c.isAdmin(ctx, m.Chat.ID, m.From.ID) {
		return true
	}
	c.replyTo(ctx, m, translation.Get(c.lang(ctx, m.Chat.ID), "admin_only"))
	log.Printf("chat_id=%d: non-admin attempted privileged command %s", m.Chat.ID, m.Text)
	return false
}
