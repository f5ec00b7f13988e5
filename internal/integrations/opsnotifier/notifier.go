// Package opsnotifier отправляет оповещения операторам в Discord
package opsnotifier

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// maxListedWarnings сколько предупреждений попадает в одно сообщение
const maxListedWarnings = 10

// MessageSender часть *discordgo.Session, нужная для отправки сообщений
type MessageSender interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Notifier оповещения в канал операторов
// Нулевой sender отключает отправку
type Notifier struct {
	sender    MessageSender
	channelID string
	log       Logger
}

// NewNotifier создает оповещатель. sender может быть nil (Discord выключен в конфиге)
func NewNotifier(sender MessageSender, channelID string, log Logger) *Notifier {
	return &Notifier{
		sender:    sender,
		channelID: channelID,
		log:       log,
	}
}

// NewSession открывает сессию бота Discord
func NewSession(botToken string) (*discordgo.Session, error) {
	session, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, fmt.Errorf("opsnotifier: create discord session: %w", err)
	}
	return session, nil
}

// NotifyGenerationIssues сообщает о частично или полностью неудачной генерации слотов
func (n *Notifier) NotifyGenerationIssues(ctx context.Context, alert GenerationAlert) error {
	title := "⚠️ **Slot generation partially failed**"
	if alert.Failed {
		title = "🚨 **Slot generation failed**"
	}

	course := alert.CourseID
	if course == "" {
		course = "unassigned"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n**Range:** %s - %s\n**Course:** %s\n**Created:** %d\n**Skipped:** %d\n",
		title, alert.StartDate, alert.EndDate, course, alert.Created, alert.Skipped)

	for i, w := range alert.Warnings {
		if i == maxListedWarnings {
			fmt.Fprintf(&b, "... and %d more\n", len(alert.Warnings)-maxListedWarnings)
			break
		}
		fmt.Fprintf(&b, "- %s\n", w)
	}

	return n.send(ctx, b.String())
}

// NotifyRefundFailed сообщает о возврате, который нужно повторить вручную
func (n *Notifier) NotifyRefundFailed(ctx context.Context, alert RefundAlert) error {
	message := fmt.Sprintf("💸 **Refund failed**\n**Booking:** %s\n**Refund:** %s\n**Amount:** ¥%d\n**Reason:** %s",
		alert.BookingNumber, alert.RefundID, alert.Amount, alert.Reason)

	return n.send(ctx, message)
}

func (n *Notifier) send(ctx context.Context, message string) error {
	if n == nil || n.sender == nil {
		return nil
	}

	_, err := n.sender.ChannelMessageSend(n.channelID, message, discordgo.WithContext(ctx))
	if err != nil {
		n.log.Warn("opsnotifier: failed to send discord message: %v", err)
		return err
	}

	return nil
}
