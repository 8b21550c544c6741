// Package telegram is a minimal Telegram Bot API client covering the
// methods this bot needs.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
)

// Update represents a Telegram update. Only fields we need.
type Update struct {
	UpdateID      int            `json:"update_id"`
	Message       *Message       `json:"message,omitempty"`
	CallbackQuery *CallbackQuery `json:"callback_query,omitempty"`
}

type Message struct {
	MessageID    int         `json:"message_id"`
	From         *User       `json:"from,omitempty"`
	Chat         Chat        `json:"chat"`
	Text         string      `json:"text,omitempty"`
	Sticker      *Sticker    `json:"sticker,omitempty"`
	Photo        []PhotoSize `json:"photo,omitempty"`
	Video        *Video      `json:"video,omitempty"`
	Animation    *Animation  `json:"animation,omitempty"`
	VideoNote    *VideoNote  `json:"video_note,omitempty"`
	MediaGroupID string      `json:"media_group_id,omitempty"`
}

type Chat struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Username  string `json:"username,omitempty"`
}

type Sticker struct {
	FileID  string `json:"file_id"`
	SetName string `json:"set_name,omitempty"`
	Emoji   string `json:"emoji,omitempty"`
}

type StickerSet struct {
	Name     string    `json:"name"`
	Title    string    `json:"title"`
	Stickers []Sticker `json:"stickers"`
}

type PhotoSize struct {
	FileID string `json:"file_id"`
}

type Video struct {
	FileID string `json:"file_id"`
}

type Animation struct {
	FileID string `json:"file_id"`
}

type VideoNote struct {
	FileID string `json:"file_id"`
}

type CallbackQuery struct {
	ID      string   `json:"id"`
	From    User     `json:"from"`
	Message *Message `json:"message,omitempty"`
	Data    string   `json:"data,omitempty"`
}

type ChatMember struct {
	Status string `json:"status"`
}

// BotCommand describes a bot command for the Telegram menu.
type BotCommand struct {
	Command     string `json:"command"`
	Description string `json:"description"`
}

type InlineKeyboardButton struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data,omitempty"`
}

// SendOptions are the optional parts of sendMessage.
type SendOptions struct {
	ReplyTo        int
	InlineKeyboard [][]InlineKeyboardButton
}

// Client is a minimal Telegram Bot API client.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

func NewClient(token string) *Client {
	return &Client{
		token:      token,
		baseURL:    "https://api.telegram.org",
		httpClient: http.DefaultClient,
	}
}

func (c *Client) url(method string) string {
	return c.baseURL + "/bot" + c.token + "/" + method
}

// postJSON calls a Bot API method and decodes the result into out when
// out is non-nil.
func (c *Client) postJSON(ctx context.Context, method string, body any, out any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(method), bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	var wrapper struct {
		OK          bool            `json:"ok"`
		Description string          `json:"description"`
		Result      json.RawMessage `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&wrapper); err != nil {
		return errors.New("telegram: unexpected status " + resp.Status)
	}
	if !wrapper.OK {
		if wrapper.Description != "" {
			return errors.New("telegram: " + wrapper.Description)
		}
		return errors.New("telegram: api responded with not ok")
	}
	if out != nil {
		return json.Unmarshal(wrapper.Result, out)
	}
	return nil
}

// SendMessage sends a text message and returns its message ID.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string, opts *SendOptions) (int, error) {
	body := map[string]any{
		"chat_id": chatID,
		"text":    text,
	}
	if opts != nil {
		if opts.ReplyTo != 0 {
			body["reply_to_message_id"] = opts.ReplyTo
		}
		if opts.InlineKeyboard != nil {
			body["reply_markup"] = map[string]any{
				"inline_keyboard": opts.InlineKeyboard,
			}
		}
	}
	var msg Message
	if err := c.postJSON(ctx, "sendMessage", body, &msg); err != nil {
		return 0, err
	}
	return msg.MessageID, nil
}

// SendSticker sends a sticker by file ID, optionally as a reply.
func (c *Client) SendSticker(ctx context.Context, chatID int64, fileID string, replyTo int) error {
	body := map[string]any{
		"chat_id": chatID,
		"sticker": fileID,
	}
	if replyTo != 0 {
		body["reply_to_message_id"] = replyTo
	}
	return c.postJSON(ctx, "sendSticker", body, nil)
}

// GetStickerSet fetches a sticker set by name.
func (c *Client) GetStickerSet(ctx context.Context, name string) (*StickerSet, error) {
	var set StickerSet
	if err := c.postJSON(ctx, "getStickerSet", map[string]any{"name": name}, &set); err != nil {
		return nil, err
	}
	return &set, nil
}

// GetChatMember returns the membership info of a user in a chat.
func (c *Client) GetChatMember(ctx context.Context, chatID, userID int64) (*ChatMember, error) {
	var member ChatMember
	body := map[string]any{"chat_id": chatID, "user_id": userID}
	if err := c.postJSON(ctx, "getChatMember", body, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

// DeleteMessage removes a previously sent message.
func (c *Client) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	body := map[string]any{"chat_id": chatID, "message_id": messageID}
	return c.postJSON(ctx, "deleteMessage", body, nil)
}

// AnswerCallbackQuery acknowledges an inline-keyboard press, optionally
// with a toast shown to the user.
func (c *Client) AnswerCallbackQuery(ctx context.Context, callbackID, text string) error {
	body := map[string]any{"callback_query_id": callbackID}
	if text != "" {
		body["text"] = text
	}
	return c.postJSON(ctx, "answerCallbackQuery", body, nil)
}

// SetCommands registers the bot commands shown in the Telegram UI.
func (c *Client) SetCommands(ctx context.Context, commands []BotCommand) error {
	return c.postJSON(ctx, "setMyCommands", map[string]any{"commands": commands}, nil)
}

// GetUpdates long-polls for updates starting at offset. timeoutSec is
// the server-side poll timeout in seconds.
func (c *Client) GetUpdates(ctx context.Context, offset, timeoutSec int) ([]Update, error) {
	q := url.Values{}
	if offset != 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
	if timeoutSec > 0 {
		q.Set("timeout", strconv.Itoa(timeoutSec))
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url("getUpdates"), nil)
	if err != nil {
		return nil, err
	}
	req.URL.RawQuery = q.Encode()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.New("telegram: unexpected status " + resp.Status)
	}
	var wrapper struct {
		OK     bool     `json:"ok"`
		Result []Update `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&wrapper); err != nil {
		return nil, err
	}
	if !wrapper.OK {
		return nil, errors.New("telegram: api responded with not ok")
	}
	return wrapper.Result, nil
}
