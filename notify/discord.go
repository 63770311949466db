package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

const embedColor = 0x2ecc71

// DiscordSink posts each listing as an embed to a fixed channel.
type DiscordSink struct {
	session   *discordgo.Session
	channelID string
}

// NewDiscordSink builds a sink from a bot token and channel ID. The
// session is REST-only; no gateway connection is opened.
func NewDiscordSink(token, channelID string) (*DiscordSink, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("discord: create session: %w", err)
	}
	return &DiscordSink{session: session, channelID: channelID}, nil
}

func (d *DiscordSink) Notify(ctx context.Context, n Notification) error {
	embed := &discordgo.MessageEmbed{
		Title:       n.Title,
		URL:         n.Link,
		Description: "💷 " + n.PriceDisplay,
		Color:       embedColor,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Keyword: " + n.ContextLabel,
		},
	}
	if n.ImageURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: n.ImageURL}
	}
	if len(n.Annotations) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Signals",
			Value: strings.Join(n.Annotations, "\n"),
		})
	}

	_, err := d.session.ChannelMessageSendEmbed(d.channelID, embed, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("discord: send embed: %w", err)
	}
	return nil
}
