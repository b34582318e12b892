package checker

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"
	"github.com/emersion/go-message/mail"

	"github.com/nvu/maildeck/internal/model"
)

// FetchedMessage is one message pulled from the remote mailbox before it
// is cached.
type FetchedMessage struct {
	Subject        string
	Sender         string
	ReceivedTime   time.Time
	Content        string
	Folder         string
	HasAttachments bool
}

// Fetcher pulls messages from the remote mailbox for one account. It is an
// interface so the check pipeline can be tested without a live server.
type Fetcher interface {
	Fetch(
		ctx context.Context,
		account model.AccountRecord,
		accessToken string,
		mailbox string,
		since time.Time,
		limit int,
	) ([]FetchedMessage, error)
}

// imapFetcher fetches over IMAP with XOAUTH2 authentication.
type imapFetcher struct {
	host string
	port string
}

// newIMAPFetcher creates a Fetcher against the given IMAP server.
func newIMAPFetcher(host, port string) Fetcher {
	return &imapFetcher{host: host, port: port}
}

// Fetch connects, authenticates as the account, selects the mailbox, and
// returns the newest messages received after since (all messages when
// since is zero), capped at limit.
func (f *imapFetcher) Fetch(
	_ context.Context,
	account model.AccountRecord,
	accessToken string,
	mailbox string,
	since time.Time,
	limit int,
) ([]FetchedMessage, error) {
	addr := f.host + ":" + f.port

	client, err := imapclient.DialTLS(addr, nil)
	if err != nil {
		return nil, fmt.Errorf("connecting to IMAP %s: %w", addr, err)
	}
	defer func() { _ = client.Logout().Wait() }()

	saslClient := newXOAuth2Client(account.Address, accessToken)
	if err := client.Authenticate(saslClient); err != nil {
		return nil, &AuthError{
			Address: account.Address,
			Message: fmt.Sprintf("XOAUTH2 authentication failed: %v", err),
		}
	}

	if _, err := client.Select(mailbox, nil).Wait(); err != nil {
		return nil, fmt.Errorf("selecting %s: %w", mailbox, err)
	}

	criteria := &imap.SearchCriteria{}
	if !since.IsZero() {
		criteria.Since = since
	}

	searchData, err := client.UIDSearch(criteria, nil).Wait()
	if err != nil {
		return nil, fmt.Errorf("searching %s: %w", mailbox, err)
	}

	uids := searchData.AllUIDs()
	if len(uids) == 0 {
		return nil, nil
	}

	// Keep the most recent messages when the mailbox exceeds the cap.
	if limit > 0 && len(uids) > limit {
		uids = uids[len(uids)-limit:]
	}

	uidSet := imap.UIDSetNum(uids...)

	bodySection := &imap.FetchItemBodySection{Peek: true}
	fetchOpts := &imap.FetchOptions{
		Envelope:    true,
		UID:         true,
		BodySection: []*imap.FetchItemBodySection{bodySection},
	}

	fetchCmd := client.Fetch(uidSet, fetchOpts)

	var messages []FetchedMessage
	for {
		msg := fetchCmd.Next()
		if msg == nil {
			break
		}

		buf, err := msg.Collect()
		if err != nil {
			continue
		}

		messages = append(messages, messageFromBuffer(buf, bodySection, mailbox))
	}

	if err := fetchCmd.Close(); err != nil {
		return messages, fmt.Errorf("fetching messages: %w", err)
	}

	return messages, nil
}

// messageFromBuffer maps a fetched IMAP message to a FetchedMessage.
func messageFromBuffer(
	buf *imapclient.FetchMessageBuffer,
	bodySection *imap.FetchItemBodySection,
	mailbox string,
) FetchedMessage {
	fm := FetchedMessage{Folder: mailbox}

	if buf.Envelope != nil {
		fm.Subject = buf.Envelope.Subject
		fm.ReceivedTime = buf.Envelope.Date

		if len(buf.Envelope.From) > 0 {
			from := buf.Envelope.From[0]
			if from.Name != "" {
				fm.Sender = fmt.Sprintf("%s <%s>", from.Name, from.Addr())
			} else {
				fm.Sender = from.Addr()
			}
		}
	}

	if raw := buf.FindBodySection(bodySection); raw != nil {
		textBody, htmlBody, hasAttachments := parseMIMEBody(raw)
		fm.HasAttachments = hasAttachments
		// Prefer the plain text part, fall back to HTML.
		if textBody != "" {
			fm.Content = textBody
		} else {
			fm.Content = htmlBody
		}
	}

	return fm
}

// parseMIMEBody parses a raw RFC 2822 message using go-message and
// extracts the text/plain body, the text/html body, and whether any
// attachment parts are present.
func parseMIMEBody(raw []byte) (textBody, htmlBody string, hasAttachments bool) {
	reader := bytes.NewReader(raw)

	mr, err := mail.CreateReader(reader)
	if err != nil {
		// If parsing fails, treat the whole thing as plain text.
		return string(raw), "", false
	}
	defer mr.Close()

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			break
		}

		switch h := part.Header.(type) {
		case *mail.InlineHeader:
			contentType, _, _ := h.ContentType()
			body, readErr := io.ReadAll(part.Body)
			if readErr != nil {
				continue
			}

			switch {
			case strings.HasPrefix(contentType, "text/plain") && textBody == "":
				textBody = string(body)
			case strings.HasPrefix(contentType, "text/html") && htmlBody == "":
				htmlBody = string(body)
			}

		case *mail.AttachmentHeader:
			hasAttachments = true
		}
	}

	return textBody, htmlBody, hasAttachments
}
