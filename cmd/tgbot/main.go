// Admin bot: lists pending Pro-upgrade tickets on /pending and lets the
// admin approve or reject them from an inline keyboard. Approval grants 30
// days of Pro.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"ObraCalc/internal/auth"
	"ObraCalc/internal/repo"
)

const proDuration = 30 * 24 * time.Hour

type Update struct {
	UpdateID      int            `json:"update_id"`
	Message       *Message       `json:"message"`
	CallbackQuery *CallbackQuery `json:"callback_query"`
}

type Message struct {
	MessageID int    `json:"message_id"`
	Chat      Chat   `json:"chat"`
	Text      string `json:"text"`
}

type Chat struct {
	ID int64 `json:"id"`
}

type CallbackQuery struct {
	ID      string   `json:"id"`
	Data    string   `json:"data"`
	Message *Message `json:"message"`
}

type UpdateResponse struct {
	OK     bool     `json:"ok"`
	Result []Update `json:"result"`
}

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	token := os.Getenv("TOKEN_BOT")
	peerStr := os.Getenv("ADMIN_PEER_ID")
	if token == "" || peerStr == "" {
		log.Fatal("TOKEN_BOT or ADMIN_PEER_ID missing")
	}
	adminID, _ := strconv.ParseInt(peerStr, 10, 64)

	db := auth.InitDB(log)
	defer db.Close()
	userRepo := repo.NewPostgres(db)

	offset := 0
	for {
		updates, err := getUpdates(token, offset)
		if err != nil {
			log.Warn("getUpdates", zap.Error(err))
			time.Sleep(2 * time.Second)
			continue
		}
		for _, u := range updates {
			offset = u.UpdateID + 1
			switch {
			case u.CallbackQuery != nil:
				handleCallback(token, adminID, userRepo, u.CallbackQuery)
			case u.Message != nil && strings.TrimSpace(u.Message.Text) == "/pending":
				handlePending(token, adminID, userRepo, u.Message)
			}
		}
		time.Sleep(1 * time.Second)
	}
}

func handlePending(token string, adminID int64, userRepo repo.Repository, msg *Message) {
	if msg.Chat.ID != adminID {
		return
	}
	tickets, err := userRepo.ListPendingUpgradeTickets(context.Background())
	if err != nil {
		sendMessage(token, adminID, "Failed to list tickets", nil)
		return
	}
	if len(tickets) == 0 {
		sendMessage(token, adminID, "No pending tickets", nil)
		return
	}
	for _, t := range tickets {
		text := fmt.Sprintf("Upgrade ticket #%d\nuser %d\nopened %s",
			t.ID, t.UserID, t.CreatedAt.Format("2006-01-02 15:04"))
		keyboard := map[string]any{
			"inline_keyboard": [][]map[string]string{{
				{"text": "✅ Approve", "callback_data": fmt.Sprintf("approve:%d", t.ID)},
				{"text": "❌ Reject", "callback_data": fmt.Sprintf("reject:%d", t.ID)},
			}},
		}
		sendMessage(token, adminID, text, keyboard)
	}
}

func handleCallback(token string, adminID int64, userRepo repo.Repository, cb *CallbackQuery) {
	if cb.Message == nil || cb.Message.Chat.ID != adminID {
		answerCallback(token, cb.ID, "Not allowed")
		return
	}
	parts := strings.Split(cb.Data, ":")
	if len(parts) != 2 {
		answerCallback(token, cb.ID, "Bad data")
		return
	}
	action := parts[0]
	id, _ := strconv.Atoi(parts[1])
	ticket, err := userRepo.GetUpgradeTicket(context.Background(), id)
	if err != nil {
		answerCallback(token, cb.ID, "Ticket not found")
		return
	}

	switch action {
	case "approve":
		_ = userRepo.UpdateUpgradeTicketStatus(context.Background(), id, "approved")
		_ = userRepo.SetProUntil(context.Background(), ticket.UserID, time.Now().UTC().Add(proDuration))
		answerCallback(token, cb.ID, "Approved")
		editMessage(token, cb.Message.Chat.ID, cb.Message.MessageID, fmt.Sprintf("✅ Approved ticket #%d", id))
	case "reject":
		_ = userRepo.UpdateUpgradeTicketStatus(context.Background(), id, "rejected")
		answerCallback(token, cb.ID, "Rejected")
		editMessage(token, cb.Message.Chat.ID, cb.Message.MessageID, fmt.Sprintf("❌ Rejected ticket #%d", id))
	default:
		answerCallback(token, cb.ID, "Unknown action")
	}
}

func getUpdates(token string, offset int) ([]Update, error) {
	url := fmt.Sprintf("https://api.telegram.org/bot%s/getUpdates?timeout=20&offset=%d", token, offset)
	res, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	var out UpdateResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, err
	}
	return out.Result, nil
}

func sendMessage(token string, chatID int64, text string, keyboard map[string]any) {
	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", token)
	payload := map[string]any{
		"chat_id": chatID,
		"text":    text,
	}
	if keyboard != nil {
		payload["reply_markup"] = keyboard
	}
	b, _ := json.Marshal(payload)
	_, _ = http.Post(url, "application/json", strings.NewReader(string(b)))
}

func answerCallback(token, id, text string) {
	url := fmt.Sprintf("https://api.telegram.org/bot%s/answerCallbackQuery", token)
	payload := map[string]any{"callback_query_id": id, "text": text}
	b, _ := json.Marshal(payload)
	_, _ = http.Post(url, "application/json", strings.NewReader(string(b)))
}

func editMessage(token string, chatID int64, messageID int, text string) {
	url := fmt.Sprintf("https://api.telegram.org/bot%s/editMessageText", token)
	payload := map[string]any{
		"chat_id":    chatID,
		"message_id": messageID,
		"text":       text,
	}
	b, _ := json.Marshal(payload)
	_, _ = http.Post(url, "application/json", strings.NewReader(string(b)))
}
