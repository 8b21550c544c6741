// Package translation holds the user-facing string tables. The chat's
// configured language decides which table is used; English is the
// fallback for unknown languages and missing keys.
package translation

import (
	"fmt"

	"github.com/FogoReed/random-stickers-bot/internal/model"
)

var tables = map[model.Language]map[string]string{
	model.LangRU: {
		"no_packs":               "В этом чате ещё нет сохранённых стикерпаков.",
		"stats":                  "Сохранено паков: %d\nСуммарное количество стикеров: %d\nЛимит паков: %d",
		"set_reply_chance_usage": "Использование: /set_reply_chance <число в %%>",
		"invalid_chance":         "Введите число от 0 до 100.",
		"reply_chance_set":       "Шанс ответа стикером установлен на %s%%",
		"get_reply_chance":       "Текущий шанс ответа стикером: %.2f%%",
		"ban_pack_usage":         "Использование: /ban_pack <название_пака>",
		"pack_not_found":         "Пак %s не найден в базе.",
		"pack_banned":            "Пак %s добавлен в ЧС 🚫",
		"unban_pack_usage":       "Использование: /unban_pack <название_пака>",
		"pack_unbanned":          "Пак %s убран из ЧС ✅",
		"pack_list":              "Список паков:",
		"packs_cleared":          "База паков для этого чата очищена.",
		"set_pack_limit_usage":   "Использование: /set_pack_limit <число>",
		"invalid_limit":          "Пожалуйста, введите положительное число.",
		"pack_limit_set":         "Лимит паков для этого чата установлен на %d.",
		"get_pack_limit":         "Текущий лимит паков для этого чата: %d.",
		"help": "Доступные команды:\n" +
			"/random_pack — получить случайный стикер из сохранённых паков\n" +
			"/stats — статистика по стикерпакам в чате\n" +
			"/top_users — вывести рейтинг пользователей с наибольшим количеством отправленных стикеров и реакций на медиа\n" +
			"/ban_pack <название_пака> — добавить пак в чёрный список (только для админов)\n" +
			"/unban_pack <название_пака> — убрать пак из чёрного списка (только для админов)\n" +
			"/list_packs — список всех паков и их статус\n" +
			"/clear_packs — очистить базу паков чата (только для админов)\n" +
			"/set_pack_limit <число> — установить лимит паков (только для админов)\n" +
			"/get_pack_limit — узнать текущий лимит паков\n" +
			"/set_reply_chance <число> — установить шанс ответа стикером (%%) (только для админов)\n" +
			"/get_reply_chance — узнать текущий шанс ответа стикером\n" +
			"/set_language — выбрать язык чата через кнопки\n" +
			"/help — показать это сообщение",
		"no_users":             "Пока нет данных по пользователям.",
		"top_users":            "🏆 Топ пользователей:",
		"stickers_label":       "стикеры",
		"media_label":          "медиа",
		"select_language":      "Выберите язык чата:",
		"language_changed":     "Язык чата изменён.",
		"lang_ru":              "Русский",
		"lang_uk":              "Українська",
		"lang_en":              "English",
		"invalid_callback":     "Ошибка: неверный запрос или вы не можете изменить язык чата.",
		"unsupported_language": "Ошибка: неподдерживаемый язык.",
		"admin_only":           "Только администраторы могут выполнять эту команду.",
	},
	model.LangUK: {
		"no_packs":               "У цьому чаті ще немає збережених стікерпаків.",
		"stats":                  "Збережено паків: %d\nЗагальна кількість стікерів: %d\nЛіміт паків: %d",
		"set_reply_chance_usage": "Використання: /set_reply_chance <число в %%>",
		"invalid_chance":         "Введіть число від 0 до 100.",
		"reply_chance_set":       "Шанс відповіді стікером встановлено на %s%%",
		"get_reply_chance":       "Поточний шанс відповіді стікером: %.2f%%",
		"ban_pack_usage":         "Використання: /ban_pack <назва_паку>",
		"pack_not_found":         "Пак %s не знайдено в базі.",
		"pack_banned":            "Пак %s додано до чорного списку 🚫",
		"unban_pack_usage":       "Використання: /unban_pack <назва_паку>",
		"pack_unbanned":          "Пак %s видалено з чорного списку ✅",
		"pack_list":              "Список паків:",
		"packs_cleared":          "База паків для цього чату очищена.",
		"set_pack_limit_usage":   "Використання: /set_pack_limit <число>",
		"invalid_limit":          "Будь ласка, введіть позитивне число.",
		"pack_limit_set":         "Ліміт паків для цього чату встановлено на %d.",
		"get_pack_limit":         "Поточний ліміт паків для цього чату: %d.",
		"help": "Доступні команди:\n" +
			"/random_pack — отримати випадковий стікер зі збережених паків\n" +
			"/stats — статистика стікерпаків у чаті\n" +
			"/top_users — вивести рейтинг користувачів з найбільшою кількістю надісланих стікерів та реакцій на медіа\n" +
			"/ban_pack <назва_паку> — додати пак до чорного списку (тільки для адмінів)\n" +
			"/unban_pack <назва_паку> — видалити пак з чорного списку (тільки для адмінів)\n" +
			"/list_packs — список усіх паків та їх статус\n" +
			"/clear_packs — очистити базу паків чату (тільки для адмінів)\n" +
			"/set_pack_limit <число> — встановити ліміт паків (тільки для адмінів)\n" +
			"/get_pack_limit — дізнатися поточний ліміт паків\n" +
			"/set_reply_chance <число> — встановити шанс відповіді стікером (%%) (тільки для адмінів)\n" +
			"/get_reply_chance — дізнатися поточний шанс відповіді стікером\n" +
			"/set_language — обрати мову чату через кнопки\n" +
			"/help — показати це повідомлення",
		"no_users":             "Поки немає даних про користувачів.",
		"top_users":            "🏆 Топ користувачів:",
		"stickers_label":       "стікери",
		"media_label":          "медіа",
		"select_language":      "Оберіть мову чату:",
		"language_changed":     "Мову чату змінено.",
		"lang_ru":              "Русский",
		"lang_uk":              "Українська",
		"lang_en":              "English",
		"invalid_callback":     "Помилка: невірний запит або ви не можете змінити мову чату.",
		"unsupported_language": "Помилка: непідтримувана мова.",
		"admin_only":           "Тільки адміністратори можуть виконувати цю команду.",
	},
	model.LangEN: {
		"no_packs":               "No sticker packs saved in this chat yet.",
		"stats":                  "Saved packs: %d\nTotal stickers: %d\nPack limit: %d",
		"set_reply_chance_usage": "Usage: /set_reply_chance <number in %%>",
		"invalid_chance":         "Enter a number between 0 and 100.",
		"reply_chance_set":       "Sticker reply chance set to %s%%",
		"get_reply_chance":       "Current sticker reply chance: %.2f%%",
		"ban_pack_usage":         "Usage: /ban_pack <pack_name>",
		"pack_not_found":         "Pack %s not found in the database.",
		"pack_banned":            "Pack %s added to blacklist 🚫",
		"unban_pack_usage":       "Usage: /unban_pack <pack_name>",
		"pack_unbanned":          "Pack %s removed from blacklist ✅",
		"pack_list":              "List of packs:",
		"packs_cleared":          "Pack database for this chat cleared.",
		"set_pack_limit_usage":   "Usage: /set_pack_limit <number>",
		"invalid_limit":          "Please enter a positive number.",
		"pack_limit_set":         "Pack limit for this chat set to %d.",
		"get_pack_limit":         "Current pack limit for this chat: %d.",
		"help": "Available commands:\n" +
			"/random_pack — get a random sticker from the saved packs\n" +
			"/stats — sticker pack statistics for this chat\n" +
			"/top_users — show the users with the most stickers sent and media reactions\n" +
			"/ban_pack <pack_name> — add a pack to the blacklist (admins only)\n" +
			"/unban_pack <pack_name> — remove a pack from the blacklist (admins only)\n" +
			"/list_packs — list all packs and their status\n" +
			"/clear_packs — clear the chat's pack database (admins only)\n" +
			"/set_pack_limit <number> — set the pack limit (admins only)\n" +
			"/get_pack_limit — show the current pack limit\n" +
			"/set_reply_chance <number> — set the sticker reply chance (%%) (admins only)\n" +
			"/get_reply_chance — show the current sticker reply chance\n" +
			"/set_language — choose the chat language via buttons\n" +
			"/help — show this message",
		"no_users":             "No user data yet.",
		"top_users":            "🏆 Top users:",
		"stickers_label":       "stickers",
		"media_label":          "media",
		"select_language":      "Choose the chat language:",
		"language_changed":     "Chat language changed.",
		"lang_ru":              "Русский",
		"lang_uk":              "Українська",
		"lang_en":              "English",
		"invalid_callback":     "Error: invalid request, or you cannot change the chat language.",
		"unsupported_language": "Error: unsupported language.",
		"admin_only":           "Only administrators can run this command.",
	},
}

// Get returns the translated string for key, formatted with args.
// Unknown languages fall back to English. A missing key comes back as
// the key itself so the gap is visible instead of silent.
func Get(lang model.Language, key string, args ...any) string {
	table, ok := tables[lang]
	if !ok {
		table = tables[model.LangEN]
	}
	s, ok := table[key]
	if !ok {
		if s, ok = tables[model.LangEN][key]; !ok {
			return key
		}
	}
	return fmt.Sprintf(s, args...)
}
