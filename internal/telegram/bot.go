// Package telegram is the chat surface over the shopping list. The bot
// serves a single household: allowlisted Telegram users all act on the
// configured list owner's shopping list.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"meal-planner/internal/clipper"
	"meal-planner/internal/config"
	"meal-planner/internal/meal"
	"meal-planner/internal/metrics"
	"meal-planner/internal/shopping"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// MealDirectory is the slice of the saved-meal repository the bot uses.
type MealDirectory interface {
	List(ctx context.Context, userID string) ([]meal.Meal, error)
	MealByID(ctx context.Context, userID, mealID string) (*meal.Meal, error)
}

// Bot wraps the Telegram API over the shopping engine and the clipper.
type Bot struct {
	api     *tgbotapi.BotAPI
	engine  *shopping.Engine
	meals   MealDirectory
	clipper *clipper.Clipper
	metrics *metrics.Store
	cfg     *config.Config
}

// NewBot initializes the Telegram Bot and sets the webhook.
func NewBot(
	cfg *config.Config,
	engine *shopping.Engine,
	meals MealDirectory,
	clip *clipper.Clipper,
	metricsStore *metrics.Store,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	log.Printf("Authorized on account %s", api.Self.UserName)

	wh, _ := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	resp, err := api.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	log.Printf("Webhook set response: %s", resp.Description)

	return &Bot{
		api:     api,
		engine:  engine,
		meals:   meals,
		clipper: clip,
		metrics: metricsStore,
		cfg:     cfg,
	}, nil
}

// RegisterHandlers registers the webhook handler with the default HTTP mux.
func (b *Bot) RegisterHandlers() {
	http.HandleFunc("/webhook", b.handleWebhook)
	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		log.Printf("Error parsing update: %v", err)
		return
	}

	if update.Message == nil {
		return
	}

	isAllowed := false
	for _, id := range b.cfg.TelegramAllowedUserIDs {
		if update.Message.From.ID == id {
			isAllowed = true
			break
		}
	}
	if !isAllowed {
		log.Printf("⚠️ Unauthorized access attempt from UserID: %d (@%s)", update.Message.From.ID, update.Message.From.UserName)
		return
	}

	go b.processMessage(update.Message)
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	if strings.HasPrefix(msg.Text, "http://") || strings.HasPrefix(msg.Text, "https://") {
		b.handleClipRequest(msg)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	reply := tgbotapi.NewMessage(msg.Chat.ID, b.executeCommand(ctx, msg.Text))
	reply.ParseMode = "Markdown"
	if _, err := b.api.Send(reply); err != nil {
		log.Printf("Failed to send reply: %v", err)
	}
}

func (b *Bot) handleClipRequest(msg *tgbotapi.Message) {
	statusMsg := tgbotapi.NewMessage(msg.Chat.ID, "✂️ *Clipping recipe...*")
	statusMsg.ParseMode = "Markdown"
	sent, err := b.api.Send(statusMsg)
	if err != nil {
		log.Printf("Failed to send initial reply: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	result, err := b.clipper.ClipURL(ctx, b.cfg.TelegramListOwner, msg.Text)
	var finalText string
	if err != nil {
		log.Printf("Error clipping recipe: %v", err)
		safeErr := strings.ReplaceAll(err.Error(), "`", "'")
		finalText = fmt.Sprintf("❌ *Error clipping recipe:*\n```\n%v\n```", safeErr)
	} else {
		if b.metrics != nil {
			if err := b.metrics.RecordMeta(result.Meta); err != nil {
				log.Printf("Warning: failed to record metrics: %v", err)
			}
		}
		finalText = fmt.Sprintf("✅ *Recipe saved!*\n\n*%s*\nAdd it to the list with /add %s", result.Meal.Name, result.Meal.ID)
	}

	edit := tgbotapi.NewEditMessageText(msg.Chat.ID, sent.MessageID, finalText)
	edit.ParseMode = "Markdown"
	b.api.Send(edit)
}

const helpText = `🛒 *Shopping list commands*
/list - show the shopping list
/meals - show saved meals and their ids
/add id - add a meal's ingredients to the list
/remove id - take a meal's ingredients off the list
/check n - tick item n
/uncheck n - untick item n
/clear - empty the list

Send a recipe URL to save it as a meal.`

// executeCommand runs one chat command against the list owner's data and
// returns the reply text.
func (b *Bot) executeCommand(ctx context.Context, text string) string {
	owner := b.cfg.TelegramListOwner
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return helpText
	}

	switch fields[0] {
	case "/start", "/help":
		return helpText

	case "/list":
		return b.renderList(ctx, owner)

	case "/meals":
		return b.renderMeals(ctx, owner)

	case "/add":
		if len(fields) < 2 {
			return "Usage: /add meal-id"
		}
		m, err := b.meals.MealByID(ctx, owner, fields[1])
		if err != nil {
			log.Printf("Error loading meal %s: %v", fields[1], err)
			return "❌ Something went wrong, try again."
		}
		if m == nil {
			return fmt.Sprintf("No saved meal with id `%s`. Try /meals.", fields[1])
		}
		if _, err := b.engine.AddMeal(ctx, owner, m); err != nil {
			if errors.Is(err, shopping.ErrMealAlreadyInList) {
				return fmt.Sprintf("*%s* is already on the list.", m.Name)
			}
			log.Printf("Error adding meal %s: %v", m.ID, err)
			return "❌ Something went wrong, try again."
		}
		return b.renderList(ctx, owner)

	case "/remove":
		if len(fields) < 2 {
			return "Usage: /remove meal-id"
		}
		if _, err := b.engine.RemoveMeal(ctx, owner, fields[1]); err != nil {
			switch {
			case errors.Is(err, shopping.ErrListNotFound):
				return "The shopping list is empty."
			case errors.Is(err, shopping.ErrMealNotInList):
				return fmt.Sprintf("Meal `%s` is not on the list.", fields[1])
			case errors.Is(err, shopping.ErrMealNotFound):
				return fmt.Sprintf("No saved meal with id `%s`.", fields[1])
			default:
				log.Printf("Error removing meal %s: %v", fields[1], err)
				return "❌ Something went wrong, try again."
			}
		}
		return b.renderList(ctx, owner)

	case "/check", "/uncheck":
		if len(fields) < 2 {
			return fmt.Sprintf("Usage: %s item-number", fields[0])
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil || n < 1 {
			return "Item numbers are the ones shown by /list."
		}
		checked := fields[0] == "/check"
		if err := b.engine.ToggleItem(ctx, owner, n-1, checked); err != nil {
			if errors.Is(err, shopping.ErrListNotFound) {
				return "No such item. Try /list."
			}
			log.Printf("Error toggling item %d: %v", n, err)
			return "❌ Something went wrong, try again."
		}
		return b.renderList(ctx, owner)

	case "/clear":
		if err := b.engine.Clear(ctx, owner); err != nil {
			log.Printf("Error clearing list: %v", err)
			return "❌ Something went wrong, try again."
		}
		return "🧹 Shopping list cleared."

	case "/metrics":
		return b.renderUsage()

	default:
		return helpText
	}
}

// renderList formats the list grouped by aisle. Item numbers are stable
// across renders so /check n always refers to the same item.
func (b *Bot) renderList(ctx context.Context, owner string) string {
	list, err := b.engine.Get(ctx, owner)
	if err != nil {
		log.Printf("Error loading shopping list: %v", err)
		return "❌ Something went wrong, try again."
	}
	if list == nil || len(list.Items) == 0 {
		return "Your shopping list is empty. Add meals with /add."
	}

	var sb strings.Builder
	sb.WriteString("🛒 *Shopping List*\n")
	for _, cat := range meal.Categories {
		var lines []string
		for i, item := range list.Items {
			if item.Category != cat {
				continue
			}
			mark := "⬜"
			if item.Checked {
				mark = "✅"
			}
			line := fmt.Sprintf("%s %d. %s", mark, i+1, item.Name)
			if item.Quantity != "" {
				line += fmt.Sprintf(" (%s)", item.Quantity)
			}
			if len(item.FromMeals) > 1 {
				line += fmt.Sprintf(" ×%d meals", len(item.FromMeals))
			}
			lines = append(lines, line)
		}
		if len(lines) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("\n*%s*\n", titleCase(string(cat))))
		for _, l := range lines {
			sb.WriteString(l + "\n")
		}
	}
	sb.WriteString(fmt.Sprintf("\n_%d meals on the list_", len(list.MealIDs)))
	return sb.String()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (b *Bot) renderMeals(ctx context.Context, owner string) string {
	meals, err := b.meals.List(ctx, owner)
	if err != nil {
		log.Printf("Error listing meals: %v", err)
		return "❌ Something went wrong, try again."
	}
	if len(meals) == 0 {
		return "No saved meals yet. Send a recipe URL to save one."
	}

	var sb strings.Builder
	sb.WriteString("📖 *Saved Meals*\n\n")
	for _, m := range meals {
		fav := ""
		if m.IsFavourite {
			fav = " ⭐"
		}
		sb.WriteString(fmt.Sprintf("• *%s*%s\n  `%s`\n", m.Name, fav, m.ID))
	}
	return sb.String()
}

func (b *Bot) renderUsage() string {
	if b.metrics == nil {
		return "_No data yet_"
	}
	usage, err := b.metrics.GetDailyUsage(7)
	if err != nil {
		log.Printf("Error fetching metrics: %v", err)
		return "❌ Error fetching metrics."
	}

	var sb strings.Builder
	sb.WriteString("📊 *Recent LLM Activity*\n\n")
	if len(usage) == 0 {
		sb.WriteString("_No data yet_")
	}
	for _, d := range usage {
		sb.WriteString(fmt.Sprintf("• *%s*: %d tokens (%d execs)\n", d.Date, d.TotalPrompt+d.TotalCompletion, d.TotalExecutions))
	}
	return sb.String()
}
