package notifier

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

type discordSender interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type DiscordNotifier struct {
	session   discordSender
	channelID string
}

// NewDiscordSession opens a bot session for the notifier. The session only
// sends messages so no gateway connection is made.
func NewDiscordSession(botToken string) (*discordgo.Session, error) {
	if botToken == "" {
		return nil, fmt.Errorf("discord bot token is empty")
	}
	return discordgo.New("Bot " + botToken)
}

func NewDiscordNotifier(session discordSender, channelID string) *DiscordNotifier {
	return &DiscordNotifier{
		session:   session,
		channelID: channelID,
	}
}

func (n *DiscordNotifier) Name() string {
	return "discord"
}

func (n *DiscordNotifier) NotifyBooking(ctx context.Context, notice BookingNotice) error {
	emoji := "📞"
	if notice.BookingType == "online_token" {
		emoji = "💰"
	}

	specialStr := ""
	if notice.SpecialNeeds != "" {
		specialStr = fmt.Sprintf("\n**Special needs:** %s", notice.SpecialNeeds)
	}

	message := fmt.Sprintf("%s **New Booking #%d**\n**Camp:** %s\n**Guest:** %s (%s)\n**Dates:** %s - %s\n**Guests:** %d\n**Total:** ₹%d (advance ₹%d)\n**Type:** %s\n**Status:** %s%s",
		emoji,
		notice.BookingID,
		notice.CampName,
		notice.GuestName,
		notice.Mobile,
		notice.CheckIn,
		notice.CheckOut,
		notice.GuestCount,
		notice.TotalAmount,
		notice.AdvanceAmount,
		notice.BookingType,
		notice.Status,
		specialStr,
	)
	return n.send(ctx, message)
}

func (n *DiscordNotifier) NotifyContact(ctx context.Context, notice ContactNotice) error {
	message := fmt.Sprintf("✉️ **New Inquiry**\n**Name:** %s\n**Mobile:** %s\n**Message:** %s",
		notice.Name,
		notice.Mobile,
		notice.Message,
	)
	return n.send(ctx, message)
}

func (n *DiscordNotifier) send(ctx context.Context, message string) error {
	if n.session == nil {
		return fmt.Errorf("discord session is nil")
	}
	if n.channelID == "" {
		return fmt.Errorf("discord channel ID is empty")
	}

	_, err := n.session.ChannelMessageSend(n.channelID, message, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to send discord message: %w", err)
	}
	return nil
}
