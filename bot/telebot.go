package bot

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"assetmaster"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

type TeleBot struct {
	bot     *tgbotapi.BotAPI
	chatId  int64
	updates tgbotapi.UpdatesChannel
	lg      zerolog.Logger
}

type TeleBotConfig struct {
	Token  string
	ChatId int64
}

type EventController interface {
	Events() []*assetmaster.EnrolledEvent
	LaunchEvent(id uint) error
}

func NewTeleBot(conf *TeleBotConfig) (*TeleBot, error) {

	bot, err := tgbotapi.NewBotAPI(conf.Token) // memo. Go automatically dereferences struct pointers when accessing fields
	if err != nil {
		return nil, err
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := bot.GetUpdatesChan(u)

	return &TeleBot{
		bot:     bot,
		chatId:  conf.ChatId,
		updates: updates,
		lg:      zerolog.New(os.Stdout).With().Str("Module", "TeleBot").Timestamp().Logger(),
	}, nil
}

// Run forwards every operator message on ch to the chat and answers commands. It blocks until ch is closed.
func (t TeleBot) Run(ch <-chan string, ctl EventController) {
	t.SendMessage("LAUNCHED SUCCESSFULLY")

	go t.communicate(ctl)

	for msg := range ch {
		t.SendMessage(msg)
		t.lg.Info().Str("msg", msg).Msg("Forwarded")
	}
}

func (t TeleBot) SendMessage(msg string) {
	if _, err := t.bot.Send(tgbotapi.NewMessage(t.chatId, msg)); err != nil {
		t.lg.Error().Err(err).Msg("SendMessage 시 오류 발생")
	}
}

func (t TeleBot) communicate(ctl EventController) {

	for update := range t.updates {
		if update.Message == nil || update.Message.Chat.ID != t.chatId {
			continue
		}
		if rtn := command(ctl, update.Message.Text); rtn != "" {
			t.SendMessage(rtn)
		}
	}
}

const helpMsg = `명령어 목록
/help
/events
/check : 목표 비용 확인 즉시 실행
/launch {id} : 이벤트 즉시 실행`

// command answers one operator command. Non command text yields an empty answer.
func command(ctl EventController, txt string) string {

	fields := strings.Fields(txt)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return ""
	}

	switch fields[0] {
	case "/help":
		return helpMsg
	case "/events":
		var sb strings.Builder
		for _, ev := range ctl.Events() {
			fmt.Fprintf(&sb, "%d. %s (활성: %t)\n  %s\n", ev.Id, ev.Title, ev.IsActive, ev.Description)
		}
		return strings.TrimSpace(sb.String())
	case "/check":
		return launch(ctl, assetmaster.TargetCheckEventId)
	case "/launch":
		if len(fields) < 2 {
			return "이벤트 id 필요. /launch {id}"
		}
		id, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil {
			return fmt.Sprintf("잘못된 이벤트 id : %s", fields[1])
		}
		return launch(ctl, uint(id))
	default:
		return fmt.Sprintf("미지원 명령어 : %s\n\n%s", fields[0], helpMsg)
	}
}

func launch(ctl EventController, id uint) string {
	if err := ctl.LaunchEvent(id); err != nil {
		return err.Error()
	}
	return fmt.Sprintf("이벤트 %d 실행 완료", id)
}
