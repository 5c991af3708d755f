package main

import (
	"context"
	"slices"
	"strings"

	"github.com/Jacobbrewer1/concierge/pkg/tickets"
	"github.com/Jacobbrewer1/discordgo"
)

const (
	historyPageSize = 100

	// threadAutoArchive is the auto archive duration of ticket threads, in minutes.
	threadAutoArchive = 10080
)

// ticketPlatform runs tickets on discord private threads.
type ticketPlatform struct {
	s *discordgo.Session
}

// NewTicketPlatform creates the discord backed ticket platform.
func NewTicketPlatform(s *discordgo.Session) tickets.Platform {
	return &ticketPlatform{s: s}
}

func (p *ticketPlatform) CreateThread(ctx context.Context, channelID, name string) (*tickets.Thread, error) {
	ch, err := p.s.ThreadStartComplex(channelID, &discordgo.ThreadStart{
		Name:                name,
		AutoArchiveDuration: threadAutoArchive,
		Type:                discordgo.ChannelTypeGuildPrivateThread,
		Invitable:           false,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return nil, platformError(err, tickets.ErrPlatformNotFound, "error creating thread in channel %s", channelID)
	}
	return toThread(ch), nil
}

func (p *ticketPlatform) GrantRole(ctx context.Context, threadID, roleID string) error {
	err := p.s.ChannelPermissionSet(threadID, roleID, discordgo.PermissionOverwriteTypeRole,
		discordgo.PermissionViewChannel|discordgo.PermissionSendMessages, 0, discordgo.WithContext(ctx))
	return platformError(err, tickets.ErrPlatformNotFound, "error granting role %s", roleID)
}

func (p *ticketPlatform) AddMember(ctx context.Context, threadID, userID string) error {
	err := p.s.ThreadMemberAdd(threadID, userID, discordgo.WithContext(ctx))
	return platformError(err, tickets.ErrPlatformNotFound, "error adding member %s", userID)
}

func (p *ticketPlatform) SendHandleNotice(ctx context.Context, channelID string, n *tickets.HandleNotice) (string, error) {
	msg, err := p.s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{handleNoticeEmbed(n)},
		Components: handleNoticeComponents(n),
	}, discordgo.WithContext(ctx))
	if err != nil {
		return "", platformError(err, tickets.ErrPlatformNotFound, "error sending handle notice to %s", channelID)
	}
	return msg.ID, nil
}

func (p *ticketPlatform) EditHandleNotice(ctx context.Context, channelID, messageID string, n *tickets.HandleNotice) error {
	_, err := p.s.ChannelMessageEditComplex(&discordgo.MessageEdit{
		ID:         messageID,
		Channel:    channelID,
		Embeds:     []*discordgo.MessageEmbed{handleNoticeEmbed(n)},
		Components: handleNoticeComponents(n),
	}, discordgo.WithContext(ctx))
	return platformError(err, tickets.ErrPlatformNotFound, "error editing handle notice %s", messageID)
}

func (p *ticketPlatform) SendWelcome(ctx context.Context, threadID string, w *tickets.Welcome) error {
	_, err := p.s.ChannelMessageSendComplex(threadID, &discordgo.MessageSend{
		Content:    welcomeContent(w),
		Components: closeComponents(),
	}, discordgo.WithContext(ctx))
	return platformError(err, tickets.ErrPlatformNotFound, "error sending welcome message")
}

func (p *ticketPlatform) SendMessage(ctx context.Context, channelID, content string) error {
	_, err := p.s.ChannelMessageSend(channelID, content, discordgo.WithContext(ctx))
	return platformError(err, tickets.ErrPlatformNotFound, "error sending message to %s", channelID)
}

func (p *ticketPlatform) DeleteMessage(ctx context.Context, channelID, messageID string) error {
	err := p.s.ChannelMessageDelete(channelID, messageID, discordgo.WithContext(ctx))
	return platformError(err, tickets.ErrPlatformNotFound, "error deleting message %s", messageID)
}

func (p *ticketPlatform) Thread(ctx context.Context, threadID string) (*tickets.Thread, error) {
	ch, err := p.s.Channel(threadID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, platformError(err, tickets.ErrPlatformNotFound, "error getting thread %s", threadID)
	}
	return toThread(ch), nil
}

func (p *ticketPlatform) History(ctx context.Context, threadID string) ([]*tickets.Message, error) {
	all := make([]*tickets.Message, 0)
	before := ""
	for {
		page, err := p.s.ChannelMessages(threadID, historyPageSize, before, "", "", discordgo.WithContext(ctx))
		if err != nil {
			return nil, platformError(err, tickets.ErrPlatformNotFound, "error reading thread history")
		}

		// Pages come newest first.
		for _, m := range page {
			all = append(all, toMessage(m))
		}

		if len(page) < historyPageSize {
			break
		}
		before = page[len(page)-1].ID
	}

	slices.Reverse(all)
	return all, nil
}

func (p *ticketPlatform) SendTranscript(ctx context.Context, channelID string, t *tickets.Transcript) error {
	_, err := p.s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content: t.Summary,
		Files: []*discordgo.File{
			{
				Name:        t.FileName,
				ContentType: "text/plain",
				Reader:      strings.NewReader(t.Body),
			},
		},
	}, discordgo.WithContext(ctx))
	return platformError(err, tickets.ErrPlatformNotFound, "error sending transcript to %s", channelID)
}

func (p *ticketPlatform) DeleteThread(ctx context.Context, threadID string) error {
	_, err := p.s.ChannelDelete(threadID, discordgo.WithContext(ctx))
	return platformError(err, tickets.ErrPlatformNotFound, "error deleting thread %s", threadID)
}

func (p *ticketPlatform) ArchiveThread(ctx context.Context, threadID string) error {
	archived := true
	_, err := p.s.ChannelEditComplex(threadID, &discordgo.ChannelEdit{
		Archived: &archived,
		Locked:   &archived,
	}, discordgo.WithContext(ctx))
	return platformError(err, tickets.ErrPlatformNotFound, "error archiving thread %s", threadID)
}

func toThread(ch *discordgo.Channel) *tickets.Thread {
	t := &tickets.Thread{
		ID:   ch.ID,
		Name: ch.Name,
	}
	if created, err := discordgo.SnowflakeTimestamp(ch.ID); err == nil {
		t.CreatedAt = created.UTC()
	}
	return t
}

func toMessage(m *discordgo.Message) *tickets.Message {
	author := "Unknown"
	if m.Author != nil {
		author = m.Author.Username
		if m.Author.Bot {
			author = "[BOT] " + author
		}
	}

	return &tickets.Message{
		AuthorName: author,
		Content:    m.Content,
		Timestamp:  m.Timestamp,
		HasExtras:  len(m.Attachments) > 0 || len(m.Embeds) > 0,
	}
}
