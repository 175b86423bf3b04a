package notifier

import (
	tele "gopkg.in/telebot.v3"

	"github.com/sonderworks/beacon/config"
)

type TelegramNotifier struct {
	errNotifier Notifier
	chat        int64
	bot         *tele.Bot
}

func NewTelegramNotifier(c *config.Telegram) (Notifier, error) {
	bot, err := tele.NewBot(tele.Settings{Token: c.Token})
	if err != nil {
		return nil, err
	}

	return &TelegramNotifier{
		errNotifier: NewLogNotifier(),
		chat:        c.ChatID,
		bot:         bot,
	}, nil
}

func (n *TelegramNotifier) Info(msg string) {
	_, err := n.bot.Send(&tele.Chat{ID: n.chat}, msg, &tele.SendOptions{
		DisableWebPagePreview: true,
	})
	if err != nil {
		n.errNotifier.Error(err)
	}
}

func (n *TelegramNotifier) Error(err error) {
	n.errNotifier.Error(err)

	_, botErr := n.bot.Send(&tele.Chat{ID: n.chat}, "An error occurred:\n"+err.Error(), &tele.SendOptions{
		DisableWebPagePreview: true,
	})
	if botErr != nil {
		n.errNotifier.Error(botErr)
	}
}
